package wsrender

import (
	"testing"

	"github.com/vtcore/purfectvt"
)

func TestToWireCellBlankIsSpace(t *testing.T) {
	w := toWireCell(purfectvt.Cell{})
	if w.Ch != " " {
		t.Fatalf("blank cell Ch = %q, want %q", w.Ch, " ")
	}
}

func TestToWireCellCarriesCodePointAndAttrs(t *testing.T) {
	c := purfectvt.Cell{CodePoint: 'x', Bold: true, Underline: true}
	w := toWireCell(c)
	if w.Ch != "x" {
		t.Fatalf("Ch = %q, want %q", w.Ch, "x")
	}
	if !w.Bold || !w.Und {
		t.Fatalf("expected bold and underline to carry through, got %+v", w)
	}
	if w.Ital || w.Inv {
		t.Fatalf("expected italic/inverse to stay false, got %+v", w)
	}
}

func TestToWireCellDWidthContIsSpace(t *testing.T) {
	c := purfectvt.Cell{CodePoint: '?', DWidthCont: true}
	w := toWireCell(c)
	if w.Ch != " " {
		t.Fatalf("DWidthCont cell Ch = %q, want %q", w.Ch, " ")
	}
}

func TestKeyByNameCoversArrowsAndEditing(t *testing.T) {
	for _, name := range []string{"ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight", "Home", "End", "PageUp", "PageDown", "Enter", "Backspace"} {
		if _, ok := keyByName[name]; !ok {
			t.Fatalf("keyByName missing entry for %q", name)
		}
	}
}
