package purfectvt

// Frame is the addressable cell matrix for one screen (primary or
// alternate): an nCols x (nRows+saveLines) buffer addressed as a logical
// ring rotated by scrollHead, so a single-row scroll is O(1). Vterm owns
// both the primary and alternate Frame directly (no back-pointer between
// Frame and Vterm, see DESIGN.md's restatement of zutty's cyclic
// ownership); Frame methods never mutate anything outside themselves.
type Frame struct {
	nCols, nRows int
	saveLines    int

	cells []Cell

	scrollHead int // physical row index of logical row 0 in the ring
	// marginsActive / colMarginsActive record whether the O(1) ring
	// fast path is disabled because custom scroll margins are set.
	marginTop, marginBottom int
	marginsActive           bool
	hMarginLeft, hMarginRight int
	colMarginsActive          bool

	historyRows int // scrollback rows holding real content, <= saveLines
	viewOffset  int // rows scrolled up into history by the user

	cursor    Cursor
	selection Rect
	snapTo    SelectSnapTo

	damage Damage
}

// NewFrame allocates a blank frame. saveLines is the scrollback depth (0
// for the alternate screen, per spec.md's "alternate frame has saveLines=0").
func NewFrame(nCols, nRows, saveLines int) *Frame {
	ringLen := nRows + saveLines
	f := &Frame{
		nCols:        nCols,
		nRows:        nRows,
		saveLines:    saveLines,
		cells:        make([]Cell, nCols*ringLen),
		marginTop:    0,
		marginBottom: nRows,
		hMarginLeft:  0,
		hMarginRight: nCols,
	}
	f.cursor.Visible = true
	f.fill(0, len(f.cells), EmptyCell())
	f.damage.totalCells = nCols * ringLen
	return f
}

// NCols, NRows, SaveLines, HistoryRows, ViewOffset are read-only geometry
// accessors for hosts (resize negotiation, scrollback UI, etc).
func (f *Frame) NCols() int       { return f.nCols }
func (f *Frame) NRows() int       { return f.nRows }
func (f *Frame) SaveLines() int   { return f.saveLines }
func (f *Frame) HistoryRows() int { return f.historyRows }
func (f *Frame) ViewOffset() int  { return f.viewOffset }

// MarginTop and MarginBottom are the current scroll-region row bounds
// (row indices into the visible area; default 0 and nRows).
func (f *Frame) MarginTop() int    { return f.marginTop }
func (f *Frame) MarginBottom() int { return f.marginBottom }

// Cursor returns the frame's cursor position and display style.
func (f *Frame) Cursor() Cursor { return f.cursor }

// SetCursorPos clamps and sets the cursor's logical position.
func (f *Frame) SetCursorPos(y, x int) {
	f.cursor.Y = clamp(y, 0, f.nRows-1)
	f.cursor.X = clamp(x, 0, f.nCols-1)
}

// SetCursorStyle sets the cursor's display style.
func (f *Frame) SetCursorStyle(s CursorStyle) { f.cursor.Style = s }

// SetCursorVisible sets whether the cursor should be rendered (DECTCEM).
func (f *Frame) SetCursorVisible(visible bool) { f.cursor.Visible = visible }

// SetCursorColor overrides the cursor's rendered color (OSC 12); the zero
// Color means "use the scheme default".
func (f *Frame) SetCursorColor(c Color) { f.cursor.Color = c }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mod(a, m int) int {
	a %= m
	if a < 0 {
		a += m
	}
	return a
}

func (f *Frame) ringLen() int { return f.nRows + f.saveLines }

// physRow converts a logical row (0..nRows-1 visible, negative into
// scrollback) to a physical storage row index.
func (f *Frame) physRow(pY int) int {
	return mod(f.scrollHead+pY, f.ringLen())
}

func (f *Frame) idx(pY, pX int) int {
	return f.physRow(pY)*f.nCols + pX
}

// GetCell returns the cell at logical (pY, pX), 0 <= pY < nRows (use
// negative pY only through scrollback-aware callers such as DeltaCopyCells).
func (f *Frame) GetCell(pY, pX int) Cell {
	return f.cells[f.idx(pY, pX)]
}

// SetCell writes the cell at logical (pY, pX) and widens the damage range.
func (f *Frame) SetCell(pY, pX int, c Cell) {
	i := f.idx(pY, pX)
	f.cells[i] = c
	f.damage.Add(i, i+1)
}

func (f *Frame) fill(start, end int, c Cell) {
	for i := start; i < end; i++ {
		f.cells[i] = c
	}
}

// DropScrollbackHistory discards all retained scrollback rows and resets
// the view to the live screen.
func (f *Frame) DropScrollbackHistory() {
	f.viewOffset = 0
	f.historyRows = 0
	f.Expose()
}

// Expose widens the damage range to cover the whole cell store, forcing a
// full redraw on the next snapshot.
func (f *Frame) Expose() { f.damage.Expose(len(f.cells)) }

// ResetDamage clears the damage range; called by the producer once the
// damaged cells have been copied out for a snapshot.
func (f *Frame) ResetDamage() { f.damage.Reset() }

// Resize reallocates the frame for new geometry, copying as much of the
// visible content and scrollback as fits into the new buffer.
func (f *Frame) Resize(nCols, nRows int) {
	if nCols == f.nCols && nRows == f.nRows {
		return
	}

	newRingLen := nRows + f.saveLines
	newCells := make([]Cell, nCols*newRingLen)
	for i := range newCells {
		newCells[i] = EmptyCell()
	}

	rowLen := min(f.nCols, nCols)
	copyRows := min(f.nRows, nRows)

	for pY := 0; pY < copyRows; pY++ {
		srcBase := f.physRow(pY) * f.nCols
		copy(newCells[pY*nCols:pY*nCols+rowLen], f.cells[srcBase:srcBase+rowLen])
	}

	histCopy := min(f.historyRows, f.saveLines)
	for i := 1; i <= histCopy; i++ {
		pY := -i
		srcBase := f.physRow(pY) * f.nCols
		dstBase := (newRingLen - i) * nCols
		copy(newCells[dstBase:dstBase+rowLen], f.cells[srcBase:srcBase+rowLen])
	}

	f.cells = newCells
	f.nCols = nCols
	f.nRows = nRows
	f.scrollHead = 0
	f.marginTop = 0
	f.marginBottom = nRows
	f.marginsActive = false
	f.hMarginLeft = 0
	f.hMarginRight = nCols
	f.colMarginsActive = false
	f.viewOffset = 0
	f.historyRows = histCopy
	f.cursor.X = clamp(f.cursor.X, 0, nCols-1)
	f.cursor.Y = clamp(f.cursor.Y, 0, nRows-1)
	f.damage.totalCells = nCols * newRingLen
	f.Expose()
}

// unwrap rebuilds cell storage as a contiguous buffer with scrollHead
// reset to 0 ("entering custom margins unwraps the ring" per spec.md
// §4.2), preserving all history and visible content addressable via the
// existing physRow mapping.
func (f *Frame) unwrap() {
	if f.scrollHead == 0 {
		return
	}
	ringLen := f.ringLen()
	newCells := make([]Cell, len(f.cells))
	for pY := -f.historyRows; pY < f.nRows; pY++ {
		srcBase := f.physRow(pY) * f.nCols
		dstBase := mod(pY, ringLen) * f.nCols
		copy(newCells[dstBase:dstBase+f.nCols], f.cells[srcBase:srcBase+f.nCols])
	}
	f.cells = newCells
	f.scrollHead = 0
}

// SetMargins establishes a custom top/bottom scroll region, disabling the
// ring fast path until ResetMargins is called.
func (f *Frame) SetMargins(top, bottom int) {
	f.unwrap()
	f.marginTop = top
	f.marginBottom = bottom
	f.marginsActive = top != 0 || bottom != f.nRows
	f.Expose()
}

// ResetMargins restores the full-screen scroll region.
func (f *Frame) ResetMargins() {
	f.unwrap()
	f.marginTop = 0
	f.marginBottom = f.nRows
	f.marginsActive = false
	f.Expose()
}

// SetHorizMargins establishes a left/right scroll region (DECSLRM).
func (f *Frame) SetHorizMargins(left, right int) {
	f.unwrap()
	f.hMarginLeft = left
	f.hMarginRight = right
	f.colMarginsActive = left != 0 || right != f.nCols
	f.Expose()
}

// ResetHorizMargins restores the full-width scroll region.
func (f *Frame) ResetHorizMargins() {
	f.unwrap()
	f.hMarginLeft = 0
	f.hMarginRight = f.nCols
	f.colMarginsActive = false
	f.Expose()
}

// fastPathEligible reports whether scrollUp/scrollDown may use the O(1)
// ring-rotation path: no custom vertical or horizontal margins.
func (f *Frame) fastPathEligible() bool {
	return !f.marginsActive && !f.colMarginsActive
}
