package wsrender

import "github.com/vtcore/purfectvt"

// keyByName maps the named keys a browser's keydown handler reports
// (event.key values for non-printable keys) to VtKey, for the "key"
// wire message in server.go. Mirrors the key set cli/input.go recognizes
// from raw host escape sequences, so both front ends drive the same
// Vterm.WritePtyKey encoder.
var keyByName = map[string]purfectvt.VtKey{
	"Enter":      purfectvt.KeyReturn,
	"Backspace":  purfectvt.KeyBackspace,
	"Tab":        purfectvt.KeyTab,
	"ArrowUp":    purfectvt.KeyUp,
	"ArrowDown":  purfectvt.KeyDown,
	"ArrowLeft":  purfectvt.KeyLeft,
	"ArrowRight": purfectvt.KeyRight,
	"Home":       purfectvt.KeyHome,
	"End":        purfectvt.KeyEnd,
	"PageUp":     purfectvt.KeyPageUp,
	"PageDown":   purfectvt.KeyPageDown,
	"Insert":     purfectvt.KeyInsert,
	"Delete":     purfectvt.KeyDelete,
	"F1":         purfectvt.KeyF1,
	"F2":         purfectvt.KeyF2,
	"F3":         purfectvt.KeyF3,
	"F4":         purfectvt.KeyF4,
	"F5":         purfectvt.KeyF5,
	"F6":         purfectvt.KeyF6,
	"F7":         purfectvt.KeyF7,
	"F8":         purfectvt.KeyF8,
	"F9":         purfectvt.KeyF9,
	"F10":        purfectvt.KeyF10,
	"F11":        purfectvt.KeyF11,
	"F12":        purfectvt.KeyF12,
}
