package purfectvt

// Point is a zero-based (column, row) cell coordinate. The zero value
// Point{} is used as Rect's "null" sentinel (no selection).
type Point struct {
	X, Y int
}

// Less reports reading order: top-to-bottom, then left-to-right.
func (p Point) Less(o Point) bool {
	return p.Y < o.Y || (p.Y == o.Y && p.X < o.X)
}

// LessEq reports p <= o in reading order.
func (p Point) LessEq(o Point) bool {
	return p.Less(o) || p == o
}

// Rect is a selection (or erase) region expressed as two corner points in
// reading order (TL <= BR), optionally a column-rectangular block instead
// of a run of full text lines.
type Rect struct {
	TL, BR      Point
	Rectangular bool
}

// Null reports whether this is the zero-value "no selection" sentinel.
func (r Rect) Null() bool {
	return r.TL == Point{} && r.BR == Point{}
}

// Empty reports whether the region spans no cells.
func (r Rect) Empty() bool {
	return r.TL == r.BR
}

// Normalize reorders TL/BR so TL <= BR in reading order. Rectangular
// selections normalize X independently of Y since rows aren't flattened.
func (r Rect) Normalize() Rect {
	if r.Rectangular {
		if r.BR.X < r.TL.X {
			r.TL.X, r.BR.X = r.BR.X, r.TL.X
		}
		if r.BR.Y < r.TL.Y {
			r.TL.Y, r.BR.Y = r.BR.Y, r.TL.Y
		}
		return r
	}
	if r.BR.Less(r.TL) {
		r.TL, r.BR = r.BR, r.TL
	}
	return r
}

// CursorStyle is the on-screen rendering style for the text cursor,
// selected by DECSCUSR (CSI Ps SP q).
type CursorStyle uint8

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// Cursor is the terminal's cursor position and display style.
type Cursor struct {
	X, Y    int
	Style   CursorStyle
	Blink   bool
	Visible bool
	Color   Color // zero value means "use scheme default"
}

// SelectSnapTo controls how a raw click-drag selection is expanded before
// being materialized as text.
type SelectSnapTo uint8

const (
	SnapChar SelectSnapTo = iota
	SnapWord
	SnapLine
	snapCount
)

// Cycle advances to the next snap mode, wrapping Line back to Char —
// the behavior bound to repeated clicks of the same mouse button within
// the multi-click window.
func (s SelectSnapTo) Cycle() SelectSnapTo {
	return (s + 1) % snapCount
}
