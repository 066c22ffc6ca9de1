package purfectvt

// SelectStart begins a new selection at the given cell with character
// snapping. cycleSnapTo instead advances the current snap mode, for a
// repeated click at (nearly) the same spot (double/triple-click cycling).
func (v *Vterm) SelectStart(pX, pY int, cycleSnapTo bool) {
	snap := SnapChar
	if cycleSnapTo {
		snap = v.cf.snapTo.Cycle()
	}
	v.cf.SetSelection(Rect{TL: Point{X: pX, Y: pY}, BR: Point{X: pX, Y: pY}}, snap)
	v.selectUpdatesTop, v.selectUpdatesLeft = false, false
}

// SelectExtend grows the existing selection to include the given cell:
// a cell before the selection's start moves the start, any other cell
// moves the end (drag in either direction).
func (v *Vterm) SelectExtend(pX, pY int, cycleSnapTo bool) {
	sel := v.cf.Selection()
	p := Point{X: pX, Y: pY}
	if p.Less(sel.TL) {
		sel.TL = p
		v.selectUpdatesTop = true
	} else {
		sel.BR = p
		v.selectUpdatesTop = false
	}
	snap := v.cf.snapTo
	if cycleSnapTo {
		snap = snap.Cycle()
	}
	v.cf.SetSelection(sel.Normalize(), snap)
}

// SelectUpdate moves whichever end of the selection is currently being
// dragged (set by the most recent SelectExtend) to the given cell.
func (v *Vterm) SelectUpdate(pX, pY int) {
	sel := v.cf.Selection()
	p := Point{X: pX, Y: pY}
	if v.selectUpdatesTop {
		sel.TL = p
	} else {
		sel.BR = p
	}
	v.cf.SetSelection(sel.Normalize(), v.cf.snapTo)
}

// SelectFinish materializes the current selection as UTF-8 text.
func (v *Vterm) SelectFinish() (string, bool) {
	return v.cf.GetSelectedUtf8()
}

// SelectClear drops the current selection.
func (v *Vterm) SelectClear() {
	v.cf.ClearSelection()
}

// SelectRectangularModeToggle toggles whether the in-progress selection
// is a column-rectangular block instead of a run of text lines.
func (v *Vterm) SelectRectangularModeToggle() {
	sel := v.cf.Selection()
	sel.Rectangular = !sel.Rectangular
	v.cf.SetSelection(sel, v.cf.snapTo)
}

// MouseWheelUp/MouseWheelDown scroll the scrollback view, or (when
// altScrollMode is set and the alternate screen is active) synthesize
// cursor-up/down key presses for scroll-unaware full-screen apps.
func (v *Vterm) MouseWheelUp() {
	if v.altScrollMode && v.altScreenBufferMode {
		v.WritePtyKey(KeyUp, ModNone, false)
		return
	}
	v.cf.PageUp(3)
}

func (v *Vterm) MouseWheelDown() {
	if v.altScrollMode && v.altScreenBufferMode {
		v.WritePtyKey(KeyDown, ModNone, false)
		return
	}
	v.cf.PageDown(3)
}

// PageUp/PageDown scroll a full screen of scrollback.
func (v *Vterm) PageUp()   { v.cf.PageUp(v.nRows) }
func (v *Vterm) PageDown() { v.cf.PageDown(v.nRows) }
