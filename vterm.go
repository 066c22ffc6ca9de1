package purfectvt

// Vterm is the terminal core: it owns the primary and alternate Frame,
// decodes an inbound PTY byte stream into screen updates (Parser), and
// encodes outbound key/mouse events. It never touches the PTY file
// descriptor itself — hosts feed bytes in via Feed and read generated
// output via the WritePty callback, so the same core drives a local PTY,
// a websocket relay, or a test harness identically.
type Vterm struct {
	framePri *Frame
	frameAlt *Frame
	cf       *Frame // current frame: framePri or frameAlt

	nCols, nRows int

	// posX/posY mirror cf.Cursor() during active editing; lastCol tracks
	// the "about to wrap" deferred-wrap state (cursor sits one past the
	// last column until the next graphic character forces the wrap).
	posX, posY int
	lastCol    bool

	marginTop, marginBottom int

	attrs Cell // prototype cell carrying current SGR state

	palette256 [256]Color
	reverseVideo bool
	hasFocus     bool

	parser parserState

	modifiers VtModifier

	showCursorMode      bool
	altScreenBufferMode bool
	autoWrapMode        bool
	autoNewlineMode     bool
	keyboardLocked      bool
	insertMode          bool
	bkspSendsDel        bool
	localEcho           bool
	bracketedPasteMode  bool
	altScrollMode       bool
	altSendsEscape      bool
	modifyOtherKeys     uint8

	horizMarginMode bool
	hMarginLeft     int
	hMargin         int // right margin column

	tabStops []bool

	compatLevel   CompatibilityLevel
	cursorKeyMode CursorKeyMode
	keypadMode    KeypadMode
	originMode    OriginMode
	colMode       ColMode

	charsetState CharsetState

	savedCursorSCO     savedCursorSCO
	savedCursorDECPri  savedCursorDEC
	savedCursorDECAlt  savedCursorDEC
	savedCursorDECCur  *savedCursorDEC

	selectUpdatesTop, selectUpdatesLeft bool

	mouseTrk MouseTrackingState

	onRefresh func(*Frame)
	onOsc     func(int, string)
	onBell    func()
	onTitle   func(string)
	writePty  func([]byte)

	bellCount uint64
}

// OriginMode selects whether cursor addressing is absolute or relative
// to the active scroll region (DECOM).
type OriginMode uint8

const (
	OriginAbsolute OriginMode = iota
	OriginScrollingRegion
)

// ColMode selects 80 or 132 column mode (DECCOLM).
type ColMode uint8

const (
	Col80 ColMode = iota
	Col132
)

type savedCursorSCO struct {
	isSet   bool
	posX    int
	posY    int
	lastCol bool
}

type savedCursorDEC struct {
	savedCursorSCO
	attrs        Cell
	originMode   OriginMode
	charsetState CharsetState
}

// NewVterm allocates a Vterm with nCols x nRows primary and alternate
// frames, saveLines of scrollback on the primary only.
func NewVterm(nCols, nRows, saveLines int) *Vterm {
	v := &Vterm{
		framePri:            NewFrame(nCols, nRows, saveLines),
		frameAlt:            NewFrame(nCols, nRows, 0),
		nCols:               nCols,
		nRows:               nRows,
		marginBottom:        nRows,
		showCursorMode:      true,
		autoWrapMode:        true,
		bkspSendsDel:        true,
		altSendsEscape:      true,
		modifyOtherKeys:     1,
		compatLevel:         CompatVT400,
		cursorKeyMode:       CursorKeyANSI,
		keypadMode:          KeypadNormal,
		originMode:          OriginAbsolute,
		colMode:             Col80,
		charsetState:        DefaultCharsetState(),
		attrs:               EmptyCell(),
	}
	for i := 0; i < 256; i++ {
		v.palette256[i] = PaletteColor(i)
	}
	v.cf = v.framePri
	v.savedCursorDECCur = &v.savedCursorDECPri
	v.parser.utf8dec = NewUtf8Decoder(func(cp rune, valid bool) {
		v.placeGraphicChar(cp)
	})
	v.resetTabStops()
	return v
}

// SetRefreshHandler registers the callback invoked after each batch of
// input has been processed, whether or not it changed the screen.
func (v *Vterm) SetRefreshHandler(fn func(*Frame)) { v.onRefresh = fn }

// SetOscHandler registers the callback for OSC sequences the core does
// not interpret itself (e.g. hyperlinks), given as (Ps, Pt).
func (v *Vterm) SetOscHandler(fn func(int, string)) { v.onOsc = fn }

// SetBellHandler registers the callback invoked on BEL (0x07).
func (v *Vterm) SetBellHandler(fn func()) { v.onBell = fn }

// SetTitleHandler registers the callback invoked when OSC 0/2 sets the
// window title.
func (v *Vterm) SetTitleHandler(fn func(string)) { v.onTitle = fn }

// SetWritePty registers the sink for outbound bytes (key encodings,
// DA/DSR/DECRQSS responses, bracketed paste).
func (v *Vterm) SetWritePty(fn func([]byte)) { v.writePty = fn }

// NCols, NRows are the current screen geometry.
func (v *Vterm) NCols() int { return v.nCols }
func (v *Vterm) NRows() int { return v.nRows }

// CurrentFrame returns the frame currently being displayed (primary or
// alternate), for renderer snapshot construction.
func (v *Vterm) CurrentFrame() *Frame { return v.cf }

// GetMouseTrackingState returns the current mouse reporting configuration.
func (v *Vterm) GetMouseTrackingState() MouseTrackingState { return v.mouseTrk }

// SetHasFocus records window focus state and, if focus-event reporting is
// enabled, writes a CSI I / CSI O focus event to the PTY.
func (v *Vterm) SetHasFocus(has bool) {
	if has == v.hasFocus {
		return
	}
	v.hasFocus = has
	if v.mouseTrk.FocusEventMode {
		if has {
			v.writeOut([]byte("\x1b[I"))
		} else {
			v.writeOut([]byte("\x1b[O"))
		}
	}
}

// Resize changes the screen geometry, resizing both frames and clamping
// margins and cursor; nCols/nRows of 0 are rejected silently.
func (v *Vterm) Resize(nCols, nRows int) {
	if nCols <= 0 || nRows <= 0 || (nCols == v.nCols && nRows == v.nRows) {
		return
	}
	v.framePri.Resize(nCols, nRows)
	v.frameAlt.Resize(nCols, nRows)
	v.nCols, v.nRows = nCols, nRows
	v.marginTop, v.marginBottom = 0, nRows
	v.horizMarginMode = false
	v.hMargin = nCols
	v.posX = clamp(v.posX, 0, nCols-1)
	v.posY = clamp(v.posY, 0, nRows-1)
	v.lastCol = false
	v.resetTabStops()
	v.cf.SetCursorPos(v.posY, v.posX)
}

// Redraw forces the next snapshot to cover the whole screen.
func (v *Vterm) Redraw() {
	v.cf.Expose()
	if v.onRefresh != nil {
		v.onRefresh(v.cf)
	}
}

func (v *Vterm) writeOut(b []byte) {
	if v.writePty != nil {
		v.writePty(b)
	}
}

// WritePtyKey encodes key+current modifiers and writes it to the PTY,
// applying bkspSendsDel/altSendsEscape adjustments. userInput distinguishes
// genuine keyboard events from programmatic replays (e.g. paste), which
// bypass keyboardLocked.
func (v *Vterm) WritePtyKey(key VtKey, mod VtModifier, userInput bool) {
	if userInput && v.keyboardLocked {
		return
	}
	switch key {
	case KeyBackspace:
		if v.bkspSendsDel {
			v.writeOut([]byte{0x7f})
		} else {
			v.writeOut([]byte{0x08})
		}
		return
	case KeyReturn:
		if v.autoNewlineMode {
			v.writeOut([]byte("\r\n"))
		} else {
			v.writeOut([]byte("\r"))
		}
		return
	}
	if seq := EncodeKey(key, mod, v.cursorKeyMode, v.keypadMode); seq != "" {
		if mod&ModAlt != 0 && v.altSendsEscape {
			v.writeOut(append([]byte{0x1b}, seq...))
		} else {
			v.writeOut([]byte(seq))
		}
	}
}

// WritePtyRune encodes a plain printable character typed by the user,
// applying control/alt modifiers (Ctrl lowers to the C0 range, Alt
// prefixes ESC per altSendsEscape).
func (v *Vterm) WritePtyRune(r rune, mod VtModifier, userInput bool) {
	if userInput && v.keyboardLocked {
		return
	}
	var buf []byte
	if mod&ModControl != 0 && r >= '@' && r <= '_' {
		buf = append(buf, byte(r)-'@')
	} else if mod&ModControl != 0 && r >= 'a' && r <= 'z' {
		buf = append(buf, byte(r)-'a'+1)
	} else {
		buf = EncodeUTF8(buf, r)
	}
	if mod&ModAlt != 0 && v.altSendsEscape {
		out := append([]byte{0x1b}, buf...)
		v.writeOut(out)
		return
	}
	v.writeOut(buf)
}

// WritePtyMouse encodes a mouse event per the current tracking mode and
// writes it to the PTY if the mode reports this event.
func (v *Vterm) WritePtyMouse(kind MouseEventKind, btn MouseButton, pX, pY int, mod VtModifier) {
	if seq, ok := EncodeMouseEvent(v.mouseTrk, kind, btn, pX, pY, mod); ok {
		v.writeOut([]byte(seq))
	}
}

// PasteSelection writes text to the PTY as user input, bracketed if
// bracketedPasteMode is set, and with embedded CR/LF normalized to CR.
func (v *Vterm) PasteSelection(text string) {
	norm := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			norm = append(norm, '\r')
			continue
		}
		norm = append(norm, c)
	}
	if v.bracketedPasteMode {
		v.writeOut([]byte(FrameBracketedPaste(string(norm))))
		return
	}
	v.writeOut(norm)
}

func (v *Vterm) resetTabStops() {
	v.tabStops = make([]bool, v.nCols)
	for i := 0; i < v.nCols; i += 8 {
		v.tabStops[i] = true
	}
}

func (v *Vterm) isCursorInsideMargins() bool {
	right := v.nCols
	if v.horizMarginMode {
		right = v.hMargin
	}
	return v.posY >= v.marginTop && v.posY < v.marginBottom && v.posX < right
}

func (v *Vterm) normalizeCursorPos() {
	v.posX = clamp(v.posX, 0, v.nCols-1)
	v.posY = clamp(v.posY, 0, v.nRows-1)
	v.cf.SetCursorPos(v.posY, v.posX)
}

// switchScreenBufferMode swaps between primary and alternate frame
// (DECSET 1049/47/1047), clearing the alternate screen on entry.
func (v *Vterm) switchScreenBufferMode(alt bool) {
	if alt == v.altScreenBufferMode {
		return
	}
	v.altScreenBufferMode = alt
	if alt {
		v.cf = v.frameAlt
		v.savedCursorDECCur = &v.savedCursorDECAlt
		v.cf.EraseRows(0, v.nRows, v.attrs)
	} else {
		v.cf = v.framePri
		v.savedCursorDECCur = &v.savedCursorDECPri
	}
	v.marginTop, v.marginBottom = 0, v.nRows
	v.cf.ResetMargins()
	v.normalizeCursorPos()
	v.cf.Expose()
}

// switchColMode implements DECCOLM (80/132 columns): it resizes the
// terminal and clears the screen, matching zutty's switchColMode.
func (v *Vterm) switchColMode(mode ColMode) {
	if mode == v.colMode {
		return
	}
	v.colMode = mode
	nCols := 80
	if mode == Col132 {
		nCols = 132
	}
	v.Resize(nCols, v.nRows)
	v.clearScreen()
}

func (v *Vterm) clearScreen() {
	v.cf.EraseRows(0, v.nRows, v.attrs)
	v.posX, v.posY = 0, 0
	v.lastCol = false
	v.normalizeCursorPos()
}

func (v *Vterm) fillScreen(ch rune) {
	blank := v.attrs
	blank.CodePoint = uint16(ch)
	for y := 0; y < v.nRows; y++ {
		for x := 0; x < v.nCols; x++ {
			v.cf.SetCell(y, x, blank)
		}
	}
}

// resetAttrs clears SGR state back to defaults (used by SGR 0 and RIS).
func (v *Vterm) resetAttrs() {
	v.attrs = EmptyCell()
	v.reverseVideo = false
}

// resetTerminal performs RIS: full state reset to power-on defaults,
// keeping the kept-in-sync field list zutty documents in vterm.h.
func (v *Vterm) resetTerminal() {
	v.showCursorMode = true
	v.altScreenBufferMode = false
	v.autoWrapMode = true
	v.autoNewlineMode = false
	v.keyboardLocked = false
	v.insertMode = false
	v.bkspSendsDel = true
	v.localEcho = false
	v.bracketedPasteMode = false
	v.altScrollMode = false
	v.altSendsEscape = true
	v.modifyOtherKeys = 1
	v.horizMarginMode = false
	v.hMargin = v.nCols
	v.compatLevel = CompatVT400
	v.cursorKeyMode = CursorKeyANSI
	v.keypadMode = KeypadNormal
	v.originMode = OriginAbsolute
	v.colMode = Col80
	v.charsetState = DefaultCharsetState()
	v.mouseTrk = MouseTrackingState{}
	v.resetAttrs()
	v.cf = v.framePri
	v.marginTop, v.marginBottom = 0, v.nRows
	v.framePri.ResetMargins()
	v.frameAlt.ResetMargins()
	v.resetTabStops()
	v.clearScreen()
	v.frameAlt.EraseRows(0, v.nRows, EmptyCell())
	v.framePri.DropScrollbackHistory()
	v.savedCursorSCO = savedCursorSCO{}
	v.savedCursorDECPri = savedCursorDEC{}
	v.savedCursorDECAlt = savedCursorDEC{}
	v.savedCursorDECCur = &v.savedCursorDECPri
	v.framePri.Expose()
	v.frameAlt.Expose()
}
