package purfectvt

// dispatchCSI routes a completed CSI sequence (selected by the
// intermediate-byte substate it was collected under) to its handler by
// final byte, mirroring zutty's csi_*/csiq_* naming.
func (v *Vterm) dispatchCSI(state inputState, final byte) {
	switch state {
	case stCSIPriv:
		v.dispatchCSIPriv(final)
		return
	case stCSIGT:
		if final == 'c' {
			v.csi_secDA()
		} else if final == 'm' || final == 'T' {
			v.csi_XTMODKEYS()
		}
		return
	case stCSIBang:
		if final == 'p' {
			v.csi_DECSTR()
		}
		return
	case stCSISPC:
		if final == 'q' {
			v.csi_DECSCUSR()
		}
		return
	case stCSIQuote:
		if final == '}' {
			v.csi_DECIC()
		} else if final == '~' {
			v.csi_DECDC()
		}
		return
	case stCSIDblQuote:
		if final == 'p' {
			v.csiq_DECSCL()
		}
		return
	}

	switch final {
	case 'A':
		v.csi_CUU()
	case 'B':
		v.csi_CUD()
	case 'C':
		v.csi_CUF()
	case 'D':
		v.csi_CUB()
	case 'E':
		v.csi_CNL()
	case 'F':
		v.csi_CPL()
	case 'G', '`':
		v.csi_CHA()
	case 'H', 'f':
		v.csi_CUP()
	case 'I':
		v.csi_CHT()
	case 'J':
		v.csi_ED()
	case 'K':
		v.csi_EL()
	case 'L':
		v.csi_IL()
	case 'M':
		v.csi_DL()
	case 'P':
		v.csi_DCH()
	case 'S':
		v.csi_SU()
	case 'T':
		v.csi_SD()
	case 'X':
		v.csi_ECH()
	case 'Z':
		v.csi_CBT()
	case '@':
		v.csi_ICH()
	case 'a':
		v.csi_HPR()
	case 'b':
		v.csi_REP()
	case 'c':
		v.csi_priDA()
	case 'd':
		v.csi_VPA()
	case 'e':
		v.csi_VPR()
	case 'g':
		v.csi_TBC()
	case 'h':
		v.csi_SM()
	case 'l':
		v.csi_RM()
	case 'm':
		v.csi_SGR()
	case 'n':
		v.csi_DSR()
	case 'r':
		v.csi_STBM()
	case 's':
		v.csi_SCOSC_SLRM()
	case 't':
		v.csi_XTWINOPS()
	case 'u':
		v.csi_SCORC()
	}
}

func (v *Vterm) dispatchCSIPriv(final byte) {
	switch final {
	case 'h':
		v.csi_privSM()
	case 'l':
		v.csi_privRM()
	case 'J':
		v.csi_ED() // DECSED treated identically to ED (no selective erase)
	case 'K':
		v.csi_EL()
	case 'S':
		v.csiq_sixelOrPalette()
	}
}

func (v *Vterm) csiq_sixelOrPalette() {
	// XTSMGRAPHICS and sixel queries are out of scope (spec Non-goals);
	// silently ignored rather than echoed back as unrecognized input.
}

func (v *Vterm) csi_CUU() {
	n := max(v.parser.arg(0, 1), 1)
	v.posY = clamp(v.posY-n, v.effectiveTop(), v.nRows-1)
	v.lastCol = false
	v.normalizeCursorPos()
}

func (v *Vterm) csi_CUD() {
	n := max(v.parser.arg(0, 1), 1)
	v.posY = clamp(v.posY+n, 0, v.effectiveBottom())
	v.lastCol = false
	v.normalizeCursorPos()
}

func (v *Vterm) csi_CUF() {
	n := max(v.parser.arg(0, 1), 1)
	v.posX = clamp(v.posX+n, 0, v.nCols-1)
	v.lastCol = false
	v.normalizeCursorPos()
}

func (v *Vterm) csi_CUB() {
	n := max(v.parser.arg(0, 1), 1)
	v.posX = clamp(v.posX-n, 0, v.nCols-1)
	v.lastCol = false
	v.normalizeCursorPos()
}

func (v *Vterm) csi_CNL() {
	v.csi_CUD()
	v.posX = 0
	v.normalizeCursorPos()
}

func (v *Vterm) csi_CPL() {
	v.csi_CUU()
	v.posX = 0
	v.normalizeCursorPos()
}

func (v *Vterm) csi_CHA() {
	n := max(v.parser.arg(0, 1), 1)
	v.posX = clamp(n-1, 0, v.nCols-1)
	v.lastCol = false
	v.normalizeCursorPos()
}

func (v *Vterm) csi_HPA() { v.csi_CHA() }

func (v *Vterm) csi_HPR() {
	v.csi_CUF()
}

func (v *Vterm) csi_VPA() {
	n := max(v.parser.arg(0, 1), 1)
	top, bottom := 0, v.nRows-1
	if v.originMode == OriginScrollingRegion {
		top, bottom = v.marginTop, v.marginBottom-1
		v.posY = clamp(top+n-1, top, bottom)
	} else {
		v.posY = clamp(n-1, top, bottom)
	}
	v.normalizeCursorPos()
}

func (v *Vterm) csi_VPR() { v.csi_CUD() }

// csi_CUP is Cursor Position (row;col), origin-mode aware.
func (v *Vterm) csi_CUP() {
	row := max(v.parser.arg(0, 1), 1)
	col := max(v.parser.arg(1, 1), 1)
	top := 0
	left := 0
	if v.originMode == OriginScrollingRegion {
		top = v.marginTop
		if v.horizMarginMode {
			left = v.hMarginOf()
		}
	}
	v.posY = clamp(top+row-1, 0, v.nRows-1)
	v.posX = clamp(left+col-1, 0, v.nCols-1)
	v.lastCol = false
	v.normalizeCursorPos()
}

func (v *Vterm) hMarginOf() int {
	if v.horizMarginMode {
		return v.hMarginLeft
	}
	return 0
}

func (v *Vterm) effectiveTop() int {
	if v.originMode == OriginScrollingRegion {
		return v.marginTop
	}
	return 0
}

func (v *Vterm) effectiveBottom() int {
	if v.originMode == OriginScrollingRegion {
		return v.marginBottom - 1
	}
	return v.nRows - 1
}

// csi_SU / csi_SD: Scroll Up/Down the whole scroll region by Pn lines.
func (v *Vterm) csi_SU() {
	n := max(v.parser.arg(0, 1), 1)
	v.cf.ScrollUp(n, v.attrs, v.cf == v.framePri)
}

func (v *Vterm) csi_SD() {
	n := max(v.parser.arg(0, 1), 1)
	v.cf.ScrollDown(n, v.attrs)
}

func (v *Vterm) csi_CHT() {
	n := max(v.parser.arg(0, 1), 1)
	for i := 0; i < n; i++ {
		v.jumpToNextTabStop()
	}
}

func (v *Vterm) csi_CBT() {
	n := max(v.parser.arg(0, 1), 1)
	for i := 0; i < n; i++ {
		x := v.posX - 1
		for x > 0 && !v.tabStops[x] {
			x--
		}
		v.posX = max(x, 0)
	}
	v.normalizeCursorPos()
}

func (v *Vterm) jumpToNextTabStop() {
	x := v.posX + 1
	for x < v.nCols-1 && !v.tabStops[x] {
		x++
	}
	v.posX = min(x, v.nCols-1)
	v.normalizeCursorPos()
}

func (v *Vterm) inp_HT() { v.jumpToNextTabStop() }

func (v *Vterm) inp_LF() {
	if v.posY == v.marginBottom-1 {
		v.cf.ScrollUp(1, v.attrs, v.cf == v.framePri)
	} else if v.posY < v.nRows-1 {
		v.posY++
	}
	if v.autoNewlineMode {
		v.posX = 0
	}
	v.lastCol = false
	v.normalizeCursorPos()
}

func (v *Vterm) inp_CR() {
	left := 0
	if v.horizMarginMode {
		left = v.hMarginOf()
	}
	v.posX = left
	v.lastCol = false
	v.normalizeCursorPos()
}

func (v *Vterm) inp_BS() {
	if v.posX > 0 {
		v.posX--
	}
	v.lastCol = false
	v.normalizeCursorPos()
}

// csi_ED: Erase in Display. 0=cursor-to-end, 1=start-to-cursor, 2/3=all.
func (v *Vterm) csi_ED() {
	switch v.parser.arg(0, 0) {
	case 0:
		v.cf.EraseInRow(v.posY, v.posX, v.nCols-v.posX, v.attrs)
		v.cf.EraseRows(v.posY+1, v.nRows, v.attrs)
	case 1:
		v.cf.EraseInRow(v.posY, 0, v.posX+1, v.attrs)
		v.cf.EraseRows(0, v.posY, v.attrs)
	case 2, 3:
		v.cf.EraseRows(0, v.nRows, v.attrs)
		if v.parser.arg(0, 0) == 3 {
			v.framePri.DropScrollbackHistory()
		}
	}
}

// csi_EL: Erase in Line.
func (v *Vterm) csi_EL() {
	switch v.parser.arg(0, 0) {
	case 0:
		v.cf.EraseInRow(v.posY, v.posX, v.nCols-v.posX, v.attrs)
	case 1:
		v.cf.EraseInRow(v.posY, 0, v.posX+1, v.attrs)
	case 2:
		v.cf.EraseInRow(v.posY, 0, v.nCols, v.attrs)
	}
}

func (v *Vterm) csi_IL() {
	n := max(v.parser.arg(0, 1), 1)
	if v.isCursorInsideMargins() {
		v.cf.InsertRows(v.posY, n, v.attrs)
	}
}

func (v *Vterm) csi_DL() {
	n := max(v.parser.arg(0, 1), 1)
	if v.isCursorInsideMargins() {
		v.cf.DeleteRows(v.posY, n, v.attrs)
	}
}

func (v *Vterm) csi_ICH() {
	n := max(v.parser.arg(0, 1), 1)
	v.cf.InsertChars(v.posY, v.posX, n, v.attrs)
}

func (v *Vterm) csi_DCH() {
	n := max(v.parser.arg(0, 1), 1)
	v.cf.DeleteChars(v.posY, v.posX, n, v.attrs)
}

func (v *Vterm) csi_ECH() {
	n := max(v.parser.arg(0, 1), 1)
	v.cf.EraseInRow(v.posY, v.posX, n, v.attrs)
}

func (v *Vterm) csi_DECIC() {
	n := max(v.parser.arg(0, 1), 1)
	v.cf.InsertCols(v.posX, n, v.attrs)
}

func (v *Vterm) csi_DECDC() {
	n := max(v.parser.arg(0, 1), 1)
	v.cf.DeleteCols(v.posX, n, v.attrs)
}

// csi_REP repeats the last printed graphic character Pn times (ECMA-48).
func (v *Vterm) csi_REP() {
	n := max(v.parser.arg(0, 1), 1)
	ch := rune(v.cf.GetCell(v.posY, max(v.posX-1, 0)).CodePoint)
	for i := 0; i < n; i++ {
		v.placeGraphicChar(ch)
	}
}

// csi_STBM: Set Top and Bottom Margins (DECSTBM).
func (v *Vterm) csi_STBM() {
	top := max(v.parser.arg(0, 1), 1) - 1
	bottom := v.parser.arg(1, v.nRows)
	if bottom > v.nRows {
		bottom = v.nRows
	}
	if top >= bottom {
		top, bottom = 0, v.nRows
	}
	v.marginTop, v.marginBottom = top, bottom
	v.cf.SetMargins(top, bottom)
	v.posX, v.posY = 0, 0
	if v.originMode == OriginScrollingRegion {
		v.posY = top
	}
	v.normalizeCursorPos()
}

// csi_SLRM: Set Left and Right Margins (DECSLRM, only meaningful with
// horizMarginMode enabled by DECSET 69).
func (v *Vterm) csi_SLRM() {
	if !v.horizMarginMode {
		v.csi_SCOSC()
		return
	}
	left := max(v.parser.arg(0, 1), 1) - 1
	right := v.parser.arg(1, v.nCols)
	if right > v.nCols {
		right = v.nCols
	}
	if left >= right {
		left, right = 0, v.nCols
	}
	v.hMarginLeft, v.hMargin = left, right
	v.cf.SetHorizMargins(left, right)
	v.posX, v.posY = 0, 0
	v.normalizeCursorPos()
}

// csi_SCOSC_SLRM disambiguates CSI s between SCO Save Cursor and DECSLRM,
// matching zutty's approach: DECSLRM applies only when horizMarginMode
// (DECSET 69) is active, otherwise treat it as the SCO save.
func (v *Vterm) csi_SCOSC_SLRM() { v.csi_SLRM() }

func (v *Vterm) csi_SCOSC() {
	v.savedCursorSCO = savedCursorSCO{isSet: true, posX: v.posX, posY: v.posY, lastCol: v.lastCol}
}

func (v *Vterm) csi_SCORC() {
	if !v.savedCursorSCO.isSet {
		return
	}
	v.posX, v.posY, v.lastCol = v.savedCursorSCO.posX, v.savedCursorSCO.posY, v.savedCursorSCO.lastCol
	v.normalizeCursorPos()
}

func (v *Vterm) csi_TBC() {
	switch v.parser.arg(0, 0) {
	case 0:
		if v.posX >= 0 && v.posX < len(v.tabStops) {
			v.tabStops[v.posX] = false
		}
	case 3:
		for i := range v.tabStops {
			v.tabStops[i] = false
		}
	}
}

func (v *Vterm) csi_DECSCUSR() {
	n := v.parser.arg(0, 1)
	switch n {
	case 0, 1:
		v.cf.SetCursorStyle(CursorBlock)
	case 2:
		v.cf.SetCursorStyle(CursorBlock)
	case 3, 4:
		v.cf.SetCursorStyle(CursorUnderline)
	case 5, 6:
		v.cf.SetCursorStyle(CursorBar)
	}
}

func (v *Vterm) csi_DECSTR() {
	v.resetAttrs()
	v.showCursorMode = true
	v.insertMode = false
	v.originMode = OriginAbsolute
	v.marginTop, v.marginBottom = 0, v.nRows
	v.cf.ResetMargins()
	v.posX, v.posY, v.lastCol = 0, 0, false
	v.normalizeCursorPos()
}

// csi_priDA: Primary Device Attributes response, advertising VT420-level
// support (the capability list the teacher's terminal_caps.go hard-coded
// is folded in here as the response payload).
func (v *Vterm) csi_priDA() {
	v.writeOut([]byte("\x1b[?64;1;9;15;21;22c"))
}

func (v *Vterm) csi_secDA() {
	v.writeOut([]byte("\x1b[>41;1;0c"))
}

func (v *Vterm) csi_DSR() {
	switch v.parser.arg(0, 0) {
	case 5:
		v.writeOut([]byte("\x1b[0n"))
	case 6:
		row, col := v.posY+1, v.posX+1
		if v.originMode == OriginScrollingRegion {
			row -= v.marginTop
		}
		v.writeOut([]byte("\x1b[" + itoa(row) + ";" + itoa(col) + "R"))
	}
}

func (v *Vterm) csiq_DECSCL() {
	switch v.parser.arg(0, 65) {
	case 61:
		v.compatLevel = CompatVT100
	case 62, 63, 64, 65:
		v.compatLevel = CompatVT400
	}
}

// csi_XTWINOPS: xterm window operations; only the report-size requests
// relevant to a headless core are answered, the rest (iconify, raise,
// etc) are no-ops since there is no window here.
func (v *Vterm) csi_XTWINOPS() {
	switch v.parser.arg(0, 0) {
	case 18:
		v.writeOut([]byte("\x1b[8;" + itoa(v.nRows) + ";" + itoa(v.nCols) + "t"))
	case 19:
		v.writeOut([]byte("\x1b[9;" + itoa(v.nRows) + ";" + itoa(v.nCols) + "t"))
	}
}

func (v *Vterm) csi_XTMODKEYS() {
	if v.parser.arg(0, 0) == 4 {
		v.modifyOtherKeys = uint8(v.parser.arg(1, 0))
	}
}
