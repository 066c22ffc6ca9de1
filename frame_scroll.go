package purfectvt

// ScrollUp scrolls the scroll region up by n rows: content moves toward
// row 0, blank rows appear at the bottom of the region. When there are no
// custom margins active, this rotates scrollHead (O(1)) and, if the frame
// is the primary screen, extends scrollback by the scrolled-off rows.
// isPrimary distinguishes the primary screen (which accumulates
// scrollback) from the alternate screen (saveLines=0, never does).
func (f *Frame) ScrollUp(n int, attrs Cell, isPrimary bool) {
	if n <= 0 {
		return
	}
	regionHeight := f.marginBottom - f.marginTop
	if n > regionHeight {
		n = regionHeight
	}

	if f.fastPathEligible() {
		f.scrollHead = mod(f.scrollHead+n, f.ringLen())
		f.eraseRows(f.nRows-n, f.nRows, attrs)
		if isPrimary && f.marginTop == 0 {
			f.historyRows = min(f.historyRows+n, f.saveLines)
		}
		f.Expose()
		return
	}

	f.physicalScrollUp(n, attrs)
}

// ScrollDown scrolls the scroll region down by n rows: content moves
// toward the bottom, blank rows appear at the top. Never produces
// scrollback.
func (f *Frame) ScrollDown(n int, attrs Cell) {
	if n <= 0 {
		return
	}
	regionHeight := f.marginBottom - f.marginTop
	if n > regionHeight {
		n = regionHeight
	}

	if f.fastPathEligible() {
		f.scrollHead = mod(f.scrollHead-n, f.ringLen())
		f.eraseRows(f.marginTop, f.marginTop+n, attrs)
		f.Expose()
		return
	}

	f.physicalScrollDown(n, attrs)
}

// physicalScrollUp moves rows within [marginTop, marginBottom) physically
// (no ring rotation), respecting the active horizontal margins so that
// DECSLRM-scoped scrolling leaves columns outside [hMarginLeft,
// hMarginRight) untouched.
func (f *Frame) physicalScrollUp(n int, attrs Cell) {
	left, right := f.hMarginLeft, f.hMarginRight
	for y := f.marginTop; y < f.marginBottom-n; y++ {
		f.copyRowRange(y, y+n, left, right-left)
	}
	f.eraseRowsRange(f.marginBottom-n, f.marginBottom, left, right, attrs)
	f.Expose()
}

// physicalScrollDown is the mirror of physicalScrollUp.
func (f *Frame) physicalScrollDown(n int, attrs Cell) {
	left, right := f.hMarginLeft, f.hMarginRight
	for y := f.marginBottom - 1; y >= f.marginTop+n; y-- {
		f.copyRowRange(y, y-n, left, right-left)
	}
	f.eraseRowsRange(f.marginTop, f.marginTop+n, left, right, attrs)
	f.Expose()
}

// copyRowRange copies count cells starting at column startX from row
// srcY to row dstY.
func (f *Frame) copyRowRange(dstY, srcY, startX, count int) {
	dstBase := f.idx(dstY, startX)
	srcBase := f.idx(srcY, startX)
	copy(f.cells[dstBase:dstBase+count], f.cells[srcBase:srcBase+count])
	f.damage.Add(dstBase, dstBase+count)
}

func (f *Frame) eraseRows(startY, endY int, attrs Cell) {
	f.eraseRowsRange(startY, endY, 0, f.nCols, attrs)
}

func (f *Frame) eraseRowsRange(startY, endY, startX, endX int, attrs Cell) {
	blank := attrs
	blank.CodePoint = ' '
	blank.DWidth, blank.DWidthCont, blank.Wrap = false, false, false
	for y := startY; y < endY; y++ {
		base := f.idx(y, startX)
		f.fill(base, base+(endX-startX), blank)
		f.damage.Add(base, base+(endX-startX))
	}
}

// PageUp scrolls the user's view further back into scrollback by n rows,
// clamped to the available history.
func (f *Frame) PageUp(n int) {
	f.viewOffset = clamp(f.viewOffset+n, 0, f.historyRows)
	f.Expose()
}

// PageDown scrolls the user's view toward the live screen by n rows.
func (f *Frame) PageDown(n int) {
	f.viewOffset = clamp(f.viewOffset-n, 0, f.historyRows)
	f.Expose()
}

// PageToBottom snaps the view back to the live screen.
func (f *Frame) PageToBottom() {
	f.viewOffset = 0
}
