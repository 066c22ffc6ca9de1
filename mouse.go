package purfectvt

// MouseTrackingMode selects which mouse events are reported to the
// application (DECSET 9/1000/1002/1003).
type MouseTrackingMode uint8

const (
	MouseTrackingDisabled MouseTrackingMode = iota
	MouseTrackingX10Compat
	MouseTrackingVT200
	MouseTrackingVT200ButtonEvent
	MouseTrackingVT200AnyEvent
)

// MouseTrackingEnc selects the wire encoding of reported coordinates
// (DECSET 1005/1006/1015).
type MouseTrackingEnc uint8

const (
	MouseEncDefault MouseTrackingEnc = iota
	MouseEncUTF8
	MouseEncSGR
	MouseEncURXVT
)

// MouseTrackingState is the terminal's current mouse-reporting
// configuration.
type MouseTrackingState struct {
	Mode          MouseTrackingMode
	Enc           MouseTrackingEnc
	FocusEventMode bool
}

// MouseButton identifies which button (or wheel direction) a mouse event
// concerns; ButtonNone marks a pure-motion event under AnyEvent tracking.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	WheelUp
	WheelDown
)

// MouseEventKind distinguishes press, release and motion.
type MouseEventKind uint8

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
)

// shouldReport decides whether an event of this kind/button is reported
// at all under the current tracking mode, mirroring xterm's mode ladder:
// X10 only reports presses, VT200 adds releases, ButtonEvent adds
// button-drag motion, AnyEvent adds motion with no button down.
func (st MouseTrackingState) shouldReport(kind MouseEventKind, btn MouseButton) bool {
	switch st.Mode {
	case MouseTrackingDisabled:
		return false
	case MouseTrackingX10Compat:
		return kind == MousePress
	case MouseTrackingVT200:
		return kind == MousePress || kind == MouseRelease
	case MouseTrackingVT200ButtonEvent:
		if kind == MouseMotion {
			return btn != ButtonNone
		}
		return true
	case MouseTrackingVT200AnyEvent:
		return true
	}
	return false
}

// EncodeMouseEvent renders a mouse event as the byte sequence written to
// the PTY, or ("", false) if the current tracking mode suppresses it.
// pX, pY are 0-based cell coordinates; mod carries the modifier bitmask.
func EncodeMouseEvent(st MouseTrackingState, kind MouseEventKind, btn MouseButton, pX, pY int, mod VtModifier) (string, bool) {
	if !st.shouldReport(kind, btn) {
		return "", false
	}

	cb := mouseButtonCode(kind, btn, mod)

	switch st.Enc {
	case MouseEncSGR:
		final := byte('M')
		if kind == MouseRelease {
			final = 'm'
			cb = mouseButtonCode(MousePress, btn, mod)
		}
		return "\x1b[<" + itoa(int(cb)) + ";" + itoa(pX+1) + ";" + itoa(pY+1) + string(final), true
	case MouseEncURXVT:
		return "\x1b[" + itoa(int(cb)+32) + ";" + itoa(pX+1) + ";" + itoa(pY+1) + "M", true
	case MouseEncUTF8:
		var b []byte
		b = append(b, 0x1b, '[', 'M')
		b = EncodeUTF8(b, rune(cb+32))
		b = EncodeUTF8(b, rune(pX+1+32))
		b = EncodeUTF8(b, rune(pY+1+32))
		return string(b), true
	default: // MouseEncDefault: offset-by-32 single bytes, caps coords at 255-32
		x, y := pX+1, pY+1
		if x > 223 {
			x = 223
		}
		if y > 223 {
			y = 223
		}
		return "\x1b[M" + string([]byte{cb + 32, byte(x + 32), byte(y + 32)}), true
	}
}

// mouseButtonCode builds the Cb byte per xterm's X10/VT200 button-code
// convention: bits 0-1 select button (3 = release in non-SGR encodings,
// wheel events set bit 6 and encode direction in bits 0-1), bit 2 shift,
// bit 3 meta/alt, bit 4 control, bit 5 motion.
func mouseButtonCode(kind MouseEventKind, btn MouseButton, mod VtModifier) byte {
	var cb byte
	switch btn {
	case ButtonLeft:
		cb = 0
	case ButtonMiddle:
		cb = 1
	case ButtonRight:
		cb = 2
	case WheelUp:
		cb = 0x40
	case WheelDown:
		cb = 0x41
	default:
		cb = 3
	}
	if kind == MouseRelease && btn != WheelUp && btn != WheelDown {
		cb = 3
	}
	if kind == MouseMotion {
		cb |= 0x20
	}
	if mod&ModShift != 0 {
		cb |= 0x04
	}
	if mod&ModAlt != 0 {
		cb |= 0x08
	}
	if mod&ModControl != 0 {
		cb |= 0x10
	}
	return cb
}
