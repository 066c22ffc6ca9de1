package purfectvt

import (
	"strconv"
	"strings"
)

// handleOSC parses the accumulated "Ps;Pt" OSC payload and dispatches it,
// mirroring zutty's handle_OSC.
func (v *Vterm) handleOSC() {
	raw := string(v.parser.argBuf)
	if raw == "104" {
		raw += ";"
	}
	semi := indexByte(raw, ';')
	if semi < 0 {
		return
	}
	ps, err := strconv.Atoi(raw[:semi])
	if err != nil {
		return
	}
	pt := raw[semi+1:]

	switch {
	case ps == 0 || ps == 1 || ps == 2:
		if v.onTitle != nil {
			v.onTitle(pt)
		}
	case ps == 4:
		v.osc_PaletteQuery(ps, pt)
	case ps == 10 || ps == 11 || ps == 12:
		v.osc_DynamicColorQuery(ps, pt)
	case ps == 52:
		v.osc_ClipboardSet(pt)
	case ps == 104: // reset the listed palette entries, or all of them
		for i := range v.palette256 {
			if pt == "" || strings.Contains(";"+pt+";", ";"+strconv.Itoa(i)+";") {
				v.palette256[i] = PaletteColor(i)
			}
		}
		if v.onOsc != nil {
			v.onOsc(ps, pt)
		}
	default:
		if v.onOsc != nil {
			v.onOsc(ps, pt)
		}
	}
}

// osc_PaletteQuery implements OSC 4 ; idx ; spec — either a "?" query
// (answered with the current RGB) or a "#rgb"/"#rrggbb" set; other color
// spec forms such as "rgb:..." are ignored.
func (v *Vterm) osc_PaletteQuery(ps int, pt string) {
	semi := indexByte(pt, ';')
	if semi < 0 {
		return
	}
	idx, err := strconv.Atoi(pt[:semi])
	if err != nil || idx < 0 || idx > 255 {
		return
	}
	spec := pt[semi+1:]
	if spec == "?" {
		v.writeOut([]byte("\x1b]4;" + strconv.Itoa(idx) + ";" + v.palette256[idx].ToRGBSpec() + "\x07"))
		return
	}
	if c, ok := ParseHexColor(spec); ok {
		v.palette256[idx] = c
	}
}

// osc_DynamicColorQuery implements OSC 10/11/12 (fg/bg/cursor color)
// query and set.
func (v *Vterm) osc_DynamicColorQuery(ps int, pt string) {
	if ps == 12 {
		if pt == "?" {
			v.writeOut([]byte("\x1b]12;" + v.cf.Cursor().Color.ToRGBSpec() + "\x07"))
			return
		}
		if c, ok := ParseHexColor(pt); ok {
			v.cf.SetCursorColor(c)
		}
		return
	}

	var cur *Color
	var oscNum string
	switch ps {
	case 10:
		cur, oscNum = &v.attrs.Fg, "10"
	case 11:
		cur, oscNum = &v.attrs.Bg, "11"
	default:
		return
	}
	if pt == "?" {
		v.writeOut([]byte("\x1b]" + oscNum + ";" + cur.ToRGBSpec() + "\x07"))
		return
	}
	if c, ok := ParseHexColor(pt); ok {
		*cur = c
	}
}

// osc_ClipboardSet implements OSC 52: base64-encoded clipboard set,
// handed to the host's onOsc callback since clipboard access is a host
// concern (the core has no I/O beyond the PTY).
func (v *Vterm) osc_ClipboardSet(pt string) {
	if v.onOsc != nil {
		v.onOsc(52, pt)
	}
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
