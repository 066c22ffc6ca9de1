package purfectvt

import "strings"

// handleDCS parses the accumulated DCS payload and dispatches it. Only
// DECRQSS (DEC Request Status String) is implemented; anything else is
// ignored, matching spec scope.
func (v *Vterm) handleDCS() {
	raw := string(v.parser.argBuf)
	if strings.HasPrefix(raw, "$q") {
		v.dcs_DECRQSS(raw[2:])
	}
}

// dcs_DECRQSS answers a status-string request for the settings spec.md
// calls out: SGR (m), DECSTBM margins (r), DECSCUSR cursor style (q).
// Unrecognized requests get the "invalid request" form (DCS 0 $ r ST).
func (v *Vterm) dcs_DECRQSS(req string) {
	var body string
	valid := true
	switch req {
	case "m":
		body = v.sgrStatusString() + "m"
	case "r":
		body = itoa(v.marginTop+1) + ";" + itoa(v.marginBottom) + "r"
	case "q":
		body = itoa(cursorStyleParam(v.cf.Cursor().Style)) + " q"
	default:
		valid = false
	}
	if valid {
		v.writeOut([]byte("\x1bP1$r" + body + "\x1b\\"))
	} else {
		v.writeOut([]byte("\x1bP0$r\x1b\\"))
	}
}

func cursorStyleParam(s CursorStyle) int {
	switch s {
	case CursorUnderline:
		return 4
	case CursorBar:
		return 6
	default:
		return 2
	}
}

// sgrStatusString renders the current SGR attribute state as the
// parameter list DECRQSS "m" reports back.
func (v *Vterm) sgrStatusString() string {
	parts := []string{"0"}
	a := v.attrs
	if a.Bold {
		parts = append(parts, "1")
	}
	if a.Italic {
		parts = append(parts, "3")
	}
	if a.Underline {
		parts = append(parts, "4")
	}
	if a.Inverse {
		parts = append(parts, "7")
	}
	if !a.Fg.IsDefault() {
		parts = append(parts, sgrColorParams(a.Fg, true)...)
	}
	if !a.Bg.IsDefault() {
		parts = append(parts, sgrColorParams(a.Bg, false)...)
	}
	return strings.Join(parts, ";")
}

func sgrColorParams(c Color, fg bool) []string {
	base := 30
	if !fg {
		base = 40
	}
	switch c.Type {
	case ColorTypeStandard:
		if c.Index < 8 {
			return []string{itoa(base + int(c.Index))}
		}
		return []string{itoa(base + 60 + int(c.Index) - 8)}
	case ColorTypePalette:
		return []string{itoa(base + 8), "5", itoa(int(c.Index))}
	case ColorTypeTrueColor:
		return []string{itoa(base + 8), "2", itoa(int(c.R)), itoa(int(c.G)), itoa(int(c.B))}
	}
	return nil
}
