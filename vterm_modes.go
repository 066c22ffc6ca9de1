package purfectvt

// csi_SM / csi_RM: ANSI (non-DEC) Set/Reset Mode. Only IRM (4) and LNM
// (20) are meaningful here; others are accepted and ignored.
func (v *Vterm) csi_SM() { v.applyAnsiModes(true) }
func (v *Vterm) csi_RM() { v.applyAnsiModes(false) }

func (v *Vterm) applyAnsiModes(set bool) {
	for i := 0; i < v.parser.argCount(); i++ {
		switch v.parser.arg(i, 0) {
		case 4:
			v.insertMode = set
		case 20:
			v.autoNewlineMode = set
		}
	}
}

// csi_privSM / csi_privRM: DEC private Set/Reset Mode (CSI ? Pm h/l).
func (v *Vterm) csi_privSM() { v.applyDecModes(true) }
func (v *Vterm) csi_privRM() { v.applyDecModes(false) }

func (v *Vterm) applyDecModes(set bool) {
	for i := 0; i < v.parser.argCount(); i++ {
		v.applyOneDecMode(v.parser.arg(i, 0), set)
	}
}

func (v *Vterm) applyOneDecMode(mode int, set bool) {
	switch mode {
	case 1: // DECCKM
		if set {
			v.cursorKeyMode = CursorKeyApplication
		} else {
			v.cursorKeyMode = CursorKeyANSI
		}
	case 2: // DECANM: VT52 <-> ANSI
		if set {
			v.compatLevel = CompatVT400
		} else {
			v.compatLevel = CompatVT52
		}
	case 3: // DECCOLM
		if set {
			v.switchColMode(Col132)
		} else {
			v.switchColMode(Col80)
		}
	case 5: // DECSCNM: reverse video
		v.reverseVideo = set
		v.cf.Expose()
	case 6: // DECOM
		if set {
			v.originMode = OriginScrollingRegion
		} else {
			v.originMode = OriginAbsolute
		}
		v.posX, v.posY = 0, 0
		if set {
			v.posY = v.marginTop
		}
		v.normalizeCursorPos()
	case 7: // DECAWM
		v.autoWrapMode = set
	case 8: // DECARM: autorepeat, host input-layer concern, accepted no-op
	case 9:
		v.setMouseMode(set, MouseTrackingX10Compat)
	case 12: // cursor blink (xterm rmcup extension variant); accepted and ignored
	case 25: // DECTCEM
		v.showCursorMode = set
		v.cf.SetCursorVisible(set)
	case 40: // allow 80/132 switch via DECCOLM
	case 45: // reverse-wrap: accepted as Open Question default (no reverse-wrap)
	case 47:
		v.switchScreenBufferMode(set)
	case 66: // DECNKM: application keypad alias of ESC =/>
		if set {
			v.keypadMode = KeypadApplication
		} else {
			v.keypadMode = KeypadNormal
		}
	case 69: // DECLRMM
		v.horizMarginMode = set
		if !set {
			v.hMarginLeft, v.hMargin = 0, v.nCols
			v.cf.ResetHorizMargins()
		}
	case 1000:
		v.setMouseMode(set, MouseTrackingVT200)
	case 1002:
		v.setMouseMode(set, MouseTrackingVT200ButtonEvent)
	case 1003:
		v.setMouseMode(set, MouseTrackingVT200AnyEvent)
	case 1004:
		v.mouseTrk.FocusEventMode = set
	case 1005:
		if set {
			v.mouseTrk.Enc = MouseEncUTF8
		}
	case 1006:
		if set {
			v.mouseTrk.Enc = MouseEncSGR
		}
	case 1015:
		if set {
			v.mouseTrk.Enc = MouseEncURXVT
		}
	case 1047:
		v.switchScreenBufferMode(set)
	case 1048:
		if set {
			v.esc_DECSC()
		} else {
			v.esc_DECRC()
		}
	case 1049:
		if set {
			v.esc_DECSC()
			v.switchScreenBufferMode(true)
		} else {
			v.switchScreenBufferMode(false)
			v.esc_DECRC()
		}
	case 1034: // altSendsEscape / metaSendsEscape
		v.altSendsEscape = set
	case 1007:
		v.altScrollMode = set
	case 2004:
		v.bracketedPasteMode = set
	}
}

func (v *Vterm) setMouseMode(set bool, mode MouseTrackingMode) {
	if set {
		v.mouseTrk.Mode = mode
	} else if v.mouseTrk.Mode == mode {
		v.mouseTrk.Mode = MouseTrackingDisabled
	}
}
