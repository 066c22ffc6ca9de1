package purfectvt

// Damage tracks the half-open range [Start, End) of cell-storage indices
// touched since the last renderer snapshot. The range only ever widens
// between Reset calls; Expose widens it to the full store.
type Damage struct {
	Start, End int
	totalCells int
}

// Reset clears the range to empty, called by the producer once the
// damaged cells have been copied out for a snapshot.
func (d *Damage) Reset() {
	d.Start, d.End = 0, 0
}

// Expose widens the range to cover the whole cell store (total cells),
// forcing a full redraw on the next snapshot.
func (d *Damage) Expose(totalCells int) {
	d.totalCells = totalCells
	d.Start, d.End = 0, totalCells
}

// Add widens [Start, End) to include [start, end), or sets it outright if
// currently empty.
func (d *Damage) Add(start, end int) {
	if start >= end {
		return
	}
	if d.Start == d.End {
		d.Start, d.End = start, end
		return
	}
	if start < d.Start {
		d.Start = start
	}
	if end > d.End {
		d.End = end
	}
}

// Empty reports whether nothing has been damaged since the last Reset.
func (d *Damage) Empty() bool {
	return d.Start == d.End
}
