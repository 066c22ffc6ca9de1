package purfectvt

// inputGraphicChar feeds one raw input byte through the UTF-8 decoder (or
// the active 96-entry 8-bit charset table when not in UTF-8 mode) and
// places the resulting rune, if any, onto the screen.
func (v *Vterm) inputGraphicChar(ch byte) {
	if v.charsetState.G[v.glActive()] != CharsetUTF8 {
		r := translate(v.charsetState.G[v.glActive()], ch)
		v.placeGraphicChar(r)
		return
	}
	v.parser.utf8dec.PushByte(ch)
}

// glActive returns the index of the charset slot currently invoked into
// GL, honoring a pending single-shift (SS2/SS3) which applies to exactly
// one character.
func (v *Vterm) glActive() int {
	if v.charsetState.SS != 0 {
		g := v.charsetState.SS
		v.charsetState.SS = 0
		return int(g)
	}
	return int(v.charsetState.GL)
}

// placeGraphicChar writes one decoded rune to the current cursor cell,
// handling deferred autowrap, insert mode, and double-width glyph
// pairing.
func (v *Vterm) placeGraphicChar(r rune) {
	w := RuneWidth(r, AmbiguousWidthNarrow)
	if w <= 0 {
		w = 1
	}

	if v.lastCol {
		if v.autoWrapMode {
			v.cf.SetCell(v.posY, v.nCols-1, setWrap(v.cf.GetCell(v.posY, v.nCols-1)))
			v.inp_LF()
			v.posX = 0
		} else {
			v.posX = v.nCols - 1
		}
		v.lastCol = false
	}

	if v.insertMode {
		v.cf.InsertChars(v.posY, v.posX, w, v.attrs)
	}

	cell := v.attrs
	cell.CodePoint = uint16(r)
	cell.DWidth = w == 2
	v.cf.SetCell(v.posY, v.posX, cell)
	if w == 2 && v.posX+1 < v.nCols {
		cont := v.attrs
		cont.DWidthCont = true
		v.cf.SetCell(v.posY, v.posX+1, cont)
	}

	if v.posX+w >= v.nCols {
		v.posX = v.nCols - 1
		v.lastCol = true
	} else {
		v.posX += w
	}
	v.cf.SetCursorPos(v.posY, v.posX)
}

func setWrap(c Cell) Cell {
	c.Wrap = true
	return c
}

// esc_SCS: Select Character Set, designates one of four 96-entry tables
// into G0-G3 per the destination byte collected in Escape state ('(' =
// G0, ')' = G1, '*' = G2, '+' = G3).
func (v *Vterm) esc_SCS(dst, sel byte) {
	idx := 0
	switch dst {
	case '(':
		idx = 0
	case ')':
		idx = 1
	case '*':
		idx = 2
	case '+':
		idx = 3
	}
	var cs Charset
	switch sel {
	case '0':
		cs = CharsetDecSpec
	case '<':
		cs = CharsetDecSuppl
	case '>':
		cs = CharsetDecTechn
	case 'A':
		cs = CharsetIsoUK
	case 'B':
		cs = CharsetUTF8 // US-ASCII, indistinguishable from UTF-8's ASCII range
	default:
		cs = CharsetUTF8
	}
	v.charsetState.G[idx] = cs
}

// esc_IND: Index — move down one line, scrolling if already at the
// bottom margin.
func (v *Vterm) esc_IND() bool {
	if v.posY == v.marginBottom-1 {
		v.cf.ScrollUp(1, v.attrs, v.cf == v.framePri)
		return true
	}
	if v.posY < v.nRows-1 {
		v.posY++
	}
	v.normalizeCursorPos()
	return false
}

// esc_RI: Reverse Index — move up one line, scrolling down if already at
// the top margin.
func (v *Vterm) esc_RI() {
	if v.posY == v.marginTop {
		v.cf.ScrollDown(1, v.attrs)
		return
	}
	if v.posY > 0 {
		v.posY--
	}
	v.normalizeCursorPos()
}

// esc_NEL: Next Line — CR followed by IND.
func (v *Vterm) esc_NEL() {
	v.esc_IND()
	v.posX = 0
	v.normalizeCursorPos()
}

func (v *Vterm) esc_BI() {
	if v.posX > 0 {
		v.posX--
		v.normalizeCursorPos()
	}
}

func (v *Vterm) esc_FI() {
	if v.posX < v.nCols-1 {
		v.posX++
		v.normalizeCursorPos()
	}
}

// esc_HTS: Horizontal Tab Set — set a tab stop at the cursor column.
func (v *Vterm) esc_HTS() {
	if v.posX >= 0 && v.posX < len(v.tabStops) {
		v.tabStops[v.posX] = true
	}
}

// esc_DECSC: Save Cursor and Attributes (DEC variant, distinct from the
// SCO CSI s save — each screen buffer keeps its own saved state).
func (v *Vterm) esc_DECSC() {
	*v.savedCursorDECCur = savedCursorDEC{
		savedCursorSCO: savedCursorSCO{isSet: true, posX: v.posX, posY: v.posY, lastCol: v.lastCol},
		attrs:          v.attrs,
		originMode:     v.originMode,
		charsetState:   v.charsetState,
	}
}

// esc_DECRC: Restore Cursor and Attributes.
func (v *Vterm) esc_DECRC() {
	sc := v.savedCursorDECCur
	if !sc.isSet {
		return
	}
	v.posX, v.posY, v.lastCol = sc.posX, sc.posY, sc.lastCol
	v.attrs = sc.attrs
	v.originMode = sc.originMode
	v.charsetState = sc.charsetState
	v.normalizeCursorPos()
}

// esch_DECALN: DEC Screen Alignment Pattern — fills the screen with 'E'
// for calibrating screen alignment.
func (v *Vterm) esch_DECALN() {
	v.fillScreen('E')
}
