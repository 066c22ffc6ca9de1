package purfectvt

// EraseInRow blanks count cells in row pY starting at startX, using attrs
// as the fill (code point space, current fg/bg/style minus shape flags).
func (f *Frame) EraseInRow(pY, startX, count int, attrs Cell) {
	if count <= 0 {
		return
	}
	f.eraseRowsRange(pY, pY+1, startX, startX+count, attrs)
}

// EraseRows blanks whole rows [startY, endY) across the full row width.
func (f *Frame) EraseRows(startY, endY int, attrs Cell) {
	f.eraseRowsRange(startY, endY, 0, f.nCols, attrs)
}

// CopyRow copies count cells starting at column startX from row srcY to
// row dstY. Source and destination may be the same row.
func (f *Frame) CopyRow(dstY, srcY, startX, count int) {
	f.copyRowRange(dstY, srcY, startX, count)
}

// MoveInRow moves count cells within row pY from srcX to dstX. Source and
// destination ranges may overlap in either direction; copy() (Go's
// built-in, memmove-equivalent for overlapping slices) preserves content
// semantics regardless of overlap direction.
func (f *Frame) MoveInRow(pY, dstX, srcX, count int) {
	if count <= 0 {
		return
	}
	base := f.physRow(pY) * f.nCols
	copy(f.cells[base+dstX:base+dstX+count], f.cells[base+srcX:base+srcX+count])
	lo, hi := dstX, dstX+count
	if srcX < lo {
		lo = srcX
	}
	if srcX+count > hi {
		hi = srcX + count
	}
	f.damage.Add(base+lo, base+hi)
}

// InsertRows inserts count blank rows at startY within [marginTop,
// marginBottom), shifting rows at and below startY down; rows pushed past
// marginBottom are discarded. Never produces scrollback.
func (f *Frame) InsertRows(startY, count int, attrs Cell) {
	if count <= 0 {
		return
	}
	if count > f.marginBottom-startY {
		count = f.marginBottom - startY
	}
	left, right := 0, f.nCols
	if f.colMarginsActive {
		left, right = f.hMarginLeft, f.hMarginRight
	}
	for y := f.marginBottom - 1; y >= startY+count; y-- {
		f.copyRowRange(y, y-count, left, right-left)
	}
	f.eraseRowsRange(startY, startY+count, left, right, attrs)
	f.Expose()
}

// DeleteRows deletes count rows at startY within [marginTop, marginBottom),
// shifting rows below startY up; blank rows appear at the bottom of the
// region.
func (f *Frame) DeleteRows(startY, count int, attrs Cell) {
	if count <= 0 {
		return
	}
	if count > f.marginBottom-startY {
		count = f.marginBottom - startY
	}
	left, right := 0, f.nCols
	if f.colMarginsActive {
		left, right = f.hMarginLeft, f.hMarginRight
	}
	for y := startY; y < f.marginBottom-count; y++ {
		f.copyRowRange(y, y+count, left, right-left)
	}
	f.eraseRowsRange(f.marginBottom-count, f.marginBottom, left, right, attrs)
	f.Expose()
}

// InsertCols inserts count blank columns at startX across every row of
// the current scroll region (DECIC).
func (f *Frame) InsertCols(startX, count int, attrs Cell) {
	right := f.nCols
	if f.colMarginsActive {
		right = f.hMarginRight
	}
	if count > right-startX {
		count = right - startX
	}
	if count <= 0 {
		return
	}
	for y := f.marginTop; y < f.marginBottom; y++ {
		f.MoveInRow(y, startX+count, startX, right-startX-count)
		f.EraseInRow(y, startX, count, attrs)
	}
	f.Expose()
}

// DeleteCols deletes count columns at startX across every row of the
// current scroll region (DECDC).
func (f *Frame) DeleteCols(startX, count int, attrs Cell) {
	right := f.nCols
	if f.colMarginsActive {
		right = f.hMarginRight
	}
	if count > right-startX {
		count = right - startX
	}
	if count <= 0 {
		return
	}
	for y := f.marginTop; y < f.marginBottom; y++ {
		f.MoveInRow(y, startX, startX+count, right-startX-count)
		f.EraseInRow(y, right-count, count, attrs)
	}
	f.Expose()
}

// InsertChars shifts count cells right starting at startX within row pY
// (ICH), cells pushed past the right margin are discarded.
func (f *Frame) InsertChars(pY, startX, count int, attrs Cell) {
	right := f.nCols
	if f.colMarginsActive {
		right = f.hMarginRight
	}
	if count > right-startX {
		count = right - startX
	}
	if count <= 0 {
		return
	}
	f.MoveInRow(pY, startX+count, startX, right-startX-count)
	f.EraseInRow(pY, startX, count, attrs)
}

// DeleteChars shifts count cells left starting at startX within row pY
// (DCH), blank cells appear at the right margin.
func (f *Frame) DeleteChars(pY, startX, count int, attrs Cell) {
	right := f.nCols
	if f.colMarginsActive {
		right = f.hMarginRight
	}
	if count > right-startX {
		count = right - startX
	}
	if count <= 0 {
		return
	}
	f.MoveInRow(pY, startX, startX+count, right-startX-count)
	f.EraseInRow(pY, right-count, count, attrs)
}
