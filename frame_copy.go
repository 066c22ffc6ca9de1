package purfectvt

// FullCopyCells writes the nRows*nCols visible area into dst, honoring the
// current viewOffset: row pY of dst is the frame's logical row pY-viewOffset,
// so a caller mid-scrollback gets exactly what's on screen. dst must have
// length nCols*nRows. Used to seed a renderer's first snapshot or to
// rebuild one from scratch (e.g. after a resize changes the buffer shape).
func (f *Frame) FullCopyCells(dst []Cell) {
	for pY := 0; pY < f.nRows; pY++ {
		base := f.physRow(pY-f.viewOffset) * f.nCols
		copy(dst[pY*f.nCols:(pY+1)*f.nCols], f.cells[base:base+f.nCols])
	}
}

// DeltaCopyCells updates dst (same nRows*nCols visible-area shape and
// viewOffset as a prior FullCopyCells call) with only the cells that fall
// within the frame's current damage range, honoring viewOffset the same
// way FullCopyCells does. Cells whose value actually changed get Dirty
// set; cells outside the damage range, or within it but unchanged, are
// left alone.
func (f *Frame) DeltaCopyCells(dst []Cell) {
	for pY := 0; pY < f.nRows; pY++ {
		base := f.physRow(pY-f.viewOffset) * f.nCols
		f.damageDeltaCopy(dst[pY*f.nCols:(pY+1)*f.nCols], base, f.nCols)
	}
}

// damageDeltaCopy copies the overlap of [start, start+count) with the
// frame's damage range from raw physical storage into dst[0:count],
// flagging only the cells that actually changed.
func (f *Frame) damageDeltaCopy(dst []Cell, start, count int) {
	end := start + count
	if f.damage.End <= start || end <= f.damage.Start {
		return
	}
	dstOff := 0
	if start < f.damage.Start {
		dstOff = f.damage.Start - start
		start = f.damage.Start
	}
	if f.damage.End < end {
		end = f.damage.End
	}
	for i, j := dstOff, start; j < end; i, j = i+1, j+1 {
		if dst[i] != f.cells[j] {
			dst[i] = f.cells[j]
			dst[i].Dirty = true
		}
	}
}
