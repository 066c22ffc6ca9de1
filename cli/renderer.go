package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vtcore/purfectvt"
)

// Renderer handles rendering the Vterm core's current Frame to the actual CLI terminal
type Renderer struct {
	term *Terminal
	mu   sync.Mutex

	renderNeeded bool
	lastCells    [][]renderedCell // Previous frame for differential rendering
	renderTicker *time.Ticker

	output strings.Builder

	borderChars borderCharSet
}

// renderedCell stores the last rendered state of a cell for diff comparison
type renderedCell struct {
	codePoint uint16
	fg        purfectvt.Color
	bg        purfectvt.Color
	bold      bool
	italic    bool
	underline bool
	inverse   bool
}

// borderCharSet contains the characters for drawing borders
type borderCharSet struct {
	topLeft     rune
	topRight    rune
	bottomLeft  rune
	bottomRight rune
	horizontal  rune
	vertical    rune
	titleLeft   rune
	titleRight  rune
}

var borderStyles = map[BorderStyle]borderCharSet{
	BorderSingle: {
		topLeft: '┌', topRight: '┐', bottomLeft: '└', bottomRight: '┘',
		horizontal: '─', vertical: '│', titleLeft: '┤', titleRight: '├',
	},
	BorderDouble: {
		topLeft: '╔', topRight: '╗', bottomLeft: '╚', bottomRight: '╝',
		horizontal: '═', vertical: '║', titleLeft: '╡', titleRight: '╞',
	},
	BorderHeavy: {
		topLeft: '┏', topRight: '┓', bottomLeft: '┗', bottomRight: '┛',
		horizontal: '━', vertical: '┃', titleLeft: '┫', titleRight: '┣',
	},
	BorderRounded: {
		topLeft: '╭', topRight: '╮', bottomLeft: '╰', bottomRight: '╯',
		horizontal: '─', vertical: '│', titleLeft: '┤', titleRight: '├',
	},
}

// NewRenderer creates a new renderer for the terminal
func NewRenderer(term *Terminal) *Renderer {
	r := &Renderer{
		term:         term,
		renderNeeded: true,
	}

	if term.options.BorderStyle != BorderNone {
		r.borderChars = borderStyles[term.options.BorderStyle]
	}

	return r
}

// RequestRender marks that a render is needed
func (r *Renderer) RequestRender() {
	r.mu.Lock()
	r.renderNeeded = true
	r.mu.Unlock()
}

// NeedsRender reports whether a render is pending
func (r *Renderer) NeedsRender() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renderNeeded
}

// RenderLoop runs the main render loop
func (r *Renderer) RenderLoop() {
	r.renderTicker = time.NewTicker(16 * time.Millisecond)
	defer r.renderTicker.Stop()

	for {
		select {
		case <-r.renderTicker.C:
			r.mu.Lock()
			needsRender := r.renderNeeded
			r.renderNeeded = false
			r.mu.Unlock()

			if needsRender {
				r.Render()
			}
		case <-r.term.stopRender:
			return
		}
	}
}

// Render performs a full or differential render of the terminal
func (r *Renderer) Render() {
	os.Stdout.WriteString(r.buildFrame())
}

// RenderToString returns the rendered frame as a string without writing it,
// for embedded mode.
func (r *Renderer) RenderToString() string {
	return r.buildFrame()
}

func (r *Renderer) buildFrame() string {
	r.term.mu.Lock()
	opts := r.term.options
	focused := r.term.focused
	r.term.mu.Unlock()

	frame := r.term.vt.CurrentFrame()
	cols, rows := frame.NCols(), frame.NRows()
	cursor := frame.Cursor()
	viewOffset := frame.ViewOffset()

	startX := opts.OffsetX
	startY := opts.OffsetY

	contentStartX := startX
	contentStartY := startY
	if opts.BorderStyle != BorderNone {
		contentStartX++
		contentStartY++
	}

	r.output.Reset()
	r.output.WriteString("\033[?25l")

	if opts.BorderStyle != BorderNone {
		r.renderBorder(startX, startY, cols, rows, opts.Title, viewOffset)
	}

	prevCells := r.lastCells
	needsFullRender := prevCells == nil || len(prevCells) != rows

	newCells := make([][]renderedCell, rows)
	for y := 0; y < rows; y++ {
		newCells[y] = make([]renderedCell, cols)
	}

	var currentFg, currentBg purfectvt.Color
	currentBold := false
	currentItalic := false
	currentUnderline := false
	currentInverse := false
	firstAttr := true

	for y := 0; y < rows; y++ {
		rowChanged := needsFullRender
		if !needsFullRender && len(prevCells[y]) != cols {
			rowChanged = true
		}

		for x := 0; x < cols; x++ {
			cell := frame.GetCell(y-viewOffset, x)

			fg := opts.Scheme.ResolveColor(cell.Fg, true, true)
			bg := opts.Scheme.ResolveColor(cell.Bg, false, true)
			if cell.Inverse {
				fg, bg = bg, fg
			}

			newCells[y][x] = renderedCell{
				codePoint: cell.CodePoint,
				fg:        fg,
				bg:        bg,
				bold:      cell.Bold,
				italic:    cell.Italic,
				underline: cell.Underline,
				inverse:   cell.Inverse,
			}

			if !rowChanged {
				prev := prevCells[y][x]
				if prev.codePoint == cell.CodePoint &&
					prev.fg == fg && prev.bg == bg &&
					prev.bold == cell.Bold && prev.italic == cell.Italic &&
					prev.underline == cell.Underline && prev.inverse == cell.Inverse {
					continue
				}
			}

			r.output.WriteString(fmt.Sprintf("\033[%d;%dH", contentStartY+y+1, contentStartX+x+1))

			var sgr []string
			needsReset := !firstAttr && ((currentBold && !cell.Bold) ||
				(currentItalic && !cell.Italic) ||
				(currentUnderline && !cell.Underline) ||
				(currentInverse && !cell.Inverse))

			if needsReset || firstAttr {
				sgr = append(sgr, "0")
				currentBold, currentItalic, currentUnderline, currentInverse = false, false, false, false
				currentFg, currentBg = purfectvt.Color{}, purfectvt.Color{}
			}
			firstAttr = false

			if cell.Bold && !currentBold {
				sgr = append(sgr, "1")
				currentBold = true
			}
			if cell.Italic && !currentItalic {
				sgr = append(sgr, "3")
				currentItalic = true
			}
			if cell.Underline && !currentUnderline {
				sgr = append(sgr, "4")
				currentUnderline = true
			}
			if cell.Inverse && !currentInverse {
				sgr = append(sgr, "7")
				currentInverse = true
			}

			if fg != currentFg {
				sgr = append(sgr, sgrColorCode(fg, true))
				currentFg = fg
			}
			if bg != currentBg {
				sgr = append(sgr, sgrColorCode(bg, false))
				currentBg = bg
			}

			if len(sgr) > 0 {
				r.output.WriteString("\033[")
				r.output.WriteString(strings.Join(sgr, ";"))
				r.output.WriteString("m")
			}

			if cell.CodePoint == 0 || cell.DWidthCont {
				r.output.WriteRune(' ')
			} else {
				r.output.WriteRune(rune(cell.CodePoint))
			}
		}
	}

	if opts.ShowStatusBar {
		r.renderStatusBar(startX, contentStartY+rows, cols, viewOffset, frame)
	}

	r.output.WriteString("\033[0m")

	if cursor.Visible && viewOffset == 0 && focused {
		r.output.WriteString(fmt.Sprintf("\033[%d;%dH", contentStartY+cursor.Y+1, contentStartX+cursor.X+1))
		r.output.WriteString("\033[?25h")
	}

	r.lastCells = newCells

	return r.output.String()
}

// sgrColorCode renders a Color as the SGR parameter(s) that set it as
// foreground (isFg) or background, preferring the true-color form for
// anything that isn't a default or standard 16-color entry.
func sgrColorCode(c purfectvt.Color, isFg bool) string {
	base := 30
	if !isFg {
		base = 40
	}
	switch c.Type {
	case purfectvt.ColorTypeDefault:
		return strconv.Itoa(base + 9)
	case purfectvt.ColorTypeStandard:
		idx := int(c.Index)
		if idx < 8 {
			return strconv.Itoa(base + idx)
		}
		return strconv.Itoa(base + 60 + (idx - 8))
	default:
		prefix := "38"
		if !isFg {
			prefix = "48"
		}
		return prefix + ";2;" + strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
	}
}

// renderBorder draws the terminal window border
func (r *Renderer) renderBorder(x, y, innerCols, innerRows int, title string, viewOffset int) {
	bc := r.borderChars
	totalWidth := innerCols + 2

	r.output.WriteString(fmt.Sprintf("\033[%d;%dH", y+1, x+1))
	r.output.WriteString("\033[0m")

	r.output.WriteRune(bc.topLeft)

	if title != "" && len(title) < innerCols-4 {
		padding := (innerCols - len(title) - 2) / 2
		for i := 0; i < padding; i++ {
			r.output.WriteRune(bc.horizontal)
		}
		r.output.WriteRune(bc.titleRight)
		r.output.WriteString(" ")
		r.output.WriteString(title)
		r.output.WriteString(" ")
		r.output.WriteRune(bc.titleLeft)
		remaining := innerCols - padding - len(title) - 4
		for i := 0; i < remaining; i++ {
			r.output.WriteRune(bc.horizontal)
		}
	} else {
		for i := 0; i < innerCols; i++ {
			r.output.WriteRune(bc.horizontal)
		}
	}
	r.output.WriteRune(bc.topRight)

	for row := 0; row < innerRows; row++ {
		r.output.WriteString(fmt.Sprintf("\033[%d;%dH", y+row+2, x+1))
		r.output.WriteRune(bc.vertical)

		r.output.WriteString(fmt.Sprintf("\033[%d;%dH", y+row+2, x+totalWidth))
		if viewOffset > 0 {
			maxScroll := r.term.vt.CurrentFrame().HistoryRows()
			if maxScroll > 0 {
				scrollPos := float64(maxScroll-viewOffset) / float64(maxScroll)
				thumbPos := int(scrollPos * float64(innerRows-1))
				if row == thumbPos {
					r.output.WriteString("\033[7m")
					r.output.WriteRune(bc.vertical)
					r.output.WriteString("\033[27m")
					continue
				}
			}
		}
		r.output.WriteRune(bc.vertical)
	}

	r.output.WriteString(fmt.Sprintf("\033[%d;%dH", y+innerRows+2, x+1))
	r.output.WriteRune(bc.bottomLeft)
	for i := 0; i < innerCols; i++ {
		r.output.WriteRune(bc.horizontal)
	}
	r.output.WriteRune(bc.bottomRight)
}

// renderStatusBar draws the status bar at the bottom
func (r *Renderer) renderStatusBar(x, y, width, viewOffset int, frame *purfectvt.Frame) {
	r.output.WriteString(fmt.Sprintf("\033[%d;%dH", y+1, x+1))
	r.output.WriteString("\033[7m")

	cols, rows := frame.NCols(), frame.NRows()
	cursor := frame.Cursor()

	var status string
	if viewOffset > 0 {
		maxScroll := frame.HistoryRows()
		percent := 100 - (viewOffset * 100 / maxScroll)
		status = fmt.Sprintf(" [%d%%] Lines: %d | Cursor: %d,%d | Size: %dx%d ",
			percent, maxScroll, cursor.X+1, cursor.Y+1, cols, rows)
	} else {
		status = fmt.Sprintf(" Lines: %d | Cursor: %d,%d | Size: %dx%d ",
			frame.HistoryRows(), cursor.X+1, cursor.Y+1, cols, rows)
	}

	if len(status) < width {
		status = status + strings.Repeat(" ", width-len(status))
	} else if len(status) > width {
		status = status[:width]
	}

	r.output.WriteString(status)
	r.output.WriteString("\033[27m")
}

// ForceFullRedraw clears the cached state and forces a complete redraw
func (r *Renderer) ForceFullRedraw() {
	r.mu.Lock()
	r.lastCells = nil
	r.renderNeeded = true
	r.mu.Unlock()
}
