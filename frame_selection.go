package purfectvt

import "strings"

// Selection returns the raw (unsnapped) selection rectangle.
func (f *Frame) Selection() Rect { return f.selection }

// SetSelection sets the raw selection rectangle and the snap mode to apply
// when materializing it.
func (f *Frame) SetSelection(r Rect, snap SelectSnapTo) {
	f.selection = r
	f.snapTo = snap
	f.Expose()
}

// ClearSelection drops the current selection.
func (f *Frame) ClearSelection() {
	f.selection = Rect{}
	f.Expose()
}

// GetSnappedSelection expands the raw selection per the active snap mode:
// SnapChar leaves it untouched, SnapWord grows each end to the nearest run
// of non-space cells, SnapLine grows to full row width. Rectangular
// (column-block) selections are never snapped.
func (f *Frame) GetSnappedSelection() Rect {
	ret := f.selection
	if ret.Null() || ret.Rectangular {
		return ret
	}

	switch f.snapTo {
	case SnapChar:
	case SnapWord:
		for ret.TL.X < f.nCols && f.GetCell(ret.TL.Y, ret.TL.X).CodePoint == ' ' {
			ret.TL.X++
		}
		for ret.TL.X > 0 && f.GetCell(ret.TL.Y, ret.TL.X-1).CodePoint != ' ' {
			ret.TL.X--
		}
		for ret.BR.X > 0 && f.GetCell(ret.BR.Y, ret.BR.X).CodePoint == ' ' {
			ret.BR.X--
		}
		for ret.BR.X < f.nCols && f.GetCell(ret.BR.Y, ret.BR.X).CodePoint != ' ' {
			ret.BR.X++
		}
	case SnapLine:
		ret.TL.X = 0
		ret.BR.X = f.nCols
	}

	return ret
}

// GetSelectedUtf8 materializes the current selection as UTF-8 text,
// joining wrapped rows, skipping double-width continuation cells, and
// trimming trailing whitespace from each non-wrapped line. Reports false
// if there is nothing selected.
func (f *Frame) GetSelectedUtf8() (string, bool) {
	sel := f.GetSnappedSelection()
	if sel.Empty() {
		return "", false
	}

	var lines [][]rune
	wrap := false

	addLine := func(y, x1, x2 int) {
		var line []rune
		wrapBack := wrap
		wrap = false
		for x := x1; x < x2; x++ {
			cell := f.GetCell(y, x)
			if !cell.DWidthCont {
				line = append(line, rune(cell.CodePoint))
			}
			if cell.Wrap {
				wrap = true
				break
			}
		}
		for !wrap && len(line) > 0 && line[len(line)-1] == ' ' {
			line = line[:len(line)-1]
		}
		if wrapBack && len(lines) > 0 {
			lines[len(lines)-1] = append(lines[len(lines)-1], line...)
		} else {
			lines = append(lines, line)
		}
	}

	switch {
	case sel.TL.Y == sel.BR.Y:
		addLine(sel.TL.Y, sel.TL.X, sel.BR.X)
	case sel.Rectangular:
		for y := sel.TL.Y; y <= sel.BR.Y; y++ {
			addLine(y, sel.TL.X, sel.BR.X)
		}
	default:
		addLine(sel.TL.Y, sel.TL.X, f.nCols)
		for y := sel.TL.Y + 1; y < sel.BR.Y; y++ {
			addLine(y, 0, f.nCols)
		}
		addLine(sel.BR.Y, 0, sel.BR.X)
	}

	var b strings.Builder
	for _, line := range lines {
		for _, r := range line {
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	out := b.String()
	for len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out, true
}
