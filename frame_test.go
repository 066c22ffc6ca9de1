package purfectvt

import "testing"

func TestFrameScrollbackAccumulates(t *testing.T) {
	v := NewVterm(10, 3, 50)
	for i := 0; i < 10; i++ {
		v.Feed([]byte("line\r\n"))
	}

	f := v.CurrentFrame()
	if f.HistoryRows() == 0 {
		t.Fatalf("expected HistoryRows() > 0 after scrolling past the bottom margin")
	}
}

func TestFramePageUpShiftsViewOffset(t *testing.T) {
	v := NewVterm(10, 3, 50)
	for i := 0; i < 10; i++ {
		v.Feed([]byte("line\r\n"))
	}

	f := v.CurrentFrame()
	if f.ViewOffset() != 0 {
		t.Fatalf("ViewOffset() = %d before any PageUp, want 0", f.ViewOffset())
	}
	f.PageUp(1)
	if f.ViewOffset() != 1 {
		t.Fatalf("ViewOffset() = %d after PageUp(1), want 1", f.ViewOffset())
	}
	f.PageToBottom()
	if f.ViewOffset() != 0 {
		t.Fatalf("ViewOffset() = %d after PageToBottom, want 0", f.ViewOffset())
	}
}

func TestFrameSelectionMaterializesText(t *testing.T) {
	v := NewVterm(10, 3, 50)
	v.Feed([]byte("hello"))

	f := v.CurrentFrame()
	f.SetSelection(Rect{TL: Point{X: 0, Y: 0}, BR: Point{X: 5, Y: 0}}, SnapChar)
	text, ok := f.GetSelectedUtf8()
	if !ok {
		t.Fatalf("expected a selection to be present")
	}
	if text != "hello" {
		t.Fatalf("selected text = %q, want %q", text, "hello")
	}
}

func TestFrameClearSelection(t *testing.T) {
	v := NewVterm(10, 3, 50)
	v.Feed([]byte("hello"))

	f := v.CurrentFrame()
	f.SetSelection(Rect{TL: Point{X: 0, Y: 0}, BR: Point{X: 5, Y: 0}}, SnapChar)
	f.ClearSelection()
	if _, ok := f.GetSelectedUtf8(); ok {
		t.Fatalf("expected no selection after ClearSelection")
	}
}

func TestFrameResizeShrinkAndGrow(t *testing.T) {
	v := NewVterm(10, 5, 50)
	v.Feed([]byte("hello"))

	f := v.CurrentFrame()
	f.Resize(6, 3)
	if f.NCols() != 6 || f.NRows() != 3 {
		t.Fatalf("size after shrink = (%d,%d), want (6,3)", f.NCols(), f.NRows())
	}

	f.Resize(20, 10)
	if f.NCols() != 20 || f.NRows() != 10 {
		t.Fatalf("size after grow = (%d,%d), want (20,10)", f.NCols(), f.NRows())
	}
	if got := rune(f.GetCell(0, 0).CodePoint); got != 'h' {
		t.Fatalf("cell(0,0) after grow = %q, want 'h'", got)
	}
}
