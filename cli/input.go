package cli

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"

	"github.com/vtcore/purfectvt"
)

// InputHandler reads raw bytes from the host terminal's stdin (already in
// raw mode — see Terminal.Start) and turns them into Vterm key/rune events,
// the same way zutty's own X11 key-event path feeds Vterm.WritePtyKey: the
// host only ever recognizes *which* key was pressed, and it is the Vterm
// core — honoring DECCKM/keypad/modifyOtherKeys — that decides what bytes
// actually reach the child process.
type InputHandler struct {
	term *Terminal
}

// NewInputHandler creates a new input handler
func NewInputHandler(term *Terminal) *InputHandler {
	return &InputHandler{term: term}
}

// InputLoop reads stdin until the terminal is stopped.
func (h *InputHandler) InputLoop() {
	r := bufio.NewReaderSize(os.Stdin, 4096)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		select {
		case <-h.term.stopRender:
			return
		default:
		}
		h.feedByte(r, b)
	}
}

// processInput handles a buffer of raw input bytes (embedded mode, where
// the parent TUI owns the read loop and just forwards what it read).
func (h *InputHandler) processInput(data []byte) {
	r := bufio.NewReader(&byteSliceReader{data: data})
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		h.feedByte(r, b)
	}
}

// feedByte consumes one input byte, expanding it into an escape sequence
// read from r when b starts one, and dispatches the resulting key or rune.
func (h *InputHandler) feedByte(r *bufio.Reader, b byte) {
	h.term.mu.Lock()
	callback := h.term.inputCallback
	h.term.mu.Unlock()

	if b == 0x1b {
		key, mod, raw, ok := readEscapeSequence(r)
		if callback != nil && callback(raw) {
			return
		}
		h.scrollToBottomOnInput()
		if ok {
			h.dispatchKey(key, mod)
			return
		}
		// Not a sequence we recognize: forward exactly what we read
		// (ESC plus whatever lookahead bytes were consumed) unchanged.
		h.sendToPTY(raw)
		return
	}

	switch b {
	case 0x7f:
		if callback != nil && callback([]byte{0x7f}) {
			return
		}
		h.scrollToBottomOnInput()
		h.term.vt.WritePtyKey(purfectvt.KeyBackspace, purfectvt.ModNone, true)
		return
	case '\r', '\n':
		if callback != nil && callback([]byte{b}) {
			return
		}
		h.scrollToBottomOnInput()
		h.term.vt.WritePtyKey(purfectvt.KeyReturn, purfectvt.ModNone, true)
		return
	case '\t':
		if callback != nil && callback([]byte{b}) {
			return
		}
		h.scrollToBottomOnInput()
		h.term.vt.WritePtyKey(purfectvt.KeyTab, purfectvt.ModNone, true)
		return
	}

	if b < 0x20 {
		if callback != nil && callback([]byte{b}) {
			return
		}
		h.scrollToBottomOnInput()
		h.term.vt.WritePtyRune(rune(b)+'@', purfectvt.ModControl, true)
		return
	}

	ru, raw := decodeRuneFrom(r, b)
	if callback != nil && callback(raw) {
		return
	}
	h.scrollToBottomOnInput()
	h.term.vt.WritePtyRune(ru, purfectvt.ModNone, true)
}

// dispatchKey handles scrollback shortcuts locally; everything else goes
// to the Vterm core for encoding to the child process.
func (h *InputHandler) dispatchKey(key purfectvt.VtKey, mod purfectvt.VtModifier) {
	if mod&purfectvt.ModShift != 0 {
		switch key {
		case purfectvt.KeyPageUp:
			_, rows := h.term.GetSize()
			h.term.ScrollUp(rows - 1)
			h.term.renderer.RequestRender()
			return
		case purfectvt.KeyPageDown:
			_, rows := h.term.GetSize()
			h.term.ScrollDown(rows - 1)
			h.term.renderer.RequestRender()
			return
		case purfectvt.KeyUp:
			h.term.ScrollUp(1)
			h.term.renderer.RequestRender()
			return
		case purfectvt.KeyDown:
			h.term.ScrollDown(1)
			h.term.renderer.RequestRender()
			return
		case purfectvt.KeyHome:
			h.term.ScrollToTop()
			h.term.renderer.RequestRender()
			return
		case purfectvt.KeyEnd:
			h.term.ScrollToBottom()
			h.term.renderer.RequestRender()
			return
		}
	}

	h.scrollToBottomOnInput()
	h.term.vt.WritePtyKey(key, mod, true)
}

// scrollToBottomOnInput snaps the view back to the live screen, matching
// the convention that any ordinary keystroke cancels scrollback review.
func (h *InputHandler) scrollToBottomOnInput() {
	if h.term.GetScrollOffset() > 0 {
		h.term.ScrollToBottom()
		h.term.renderer.RequestRender()
	}
}

// sendToPTY writes raw bytes straight to the child process, bypassing
// Vterm key encoding. Used for the bare-ESC fallback and for escape
// sequences the input parser does not recognize.
func (h *InputHandler) sendToPTY(data []byte) {
	h.term.mu.Lock()
	pty := h.term.pty
	h.term.mu.Unlock()
	if pty != nil {
		pty.Write(data)
	}
}

// decodeRuneFrom decodes one UTF-8 rune starting with the already-read
// byte first, consuming continuation bytes from r as needed, and returns
// both the rune and the raw bytes consumed (for the input callback).
func decodeRuneFrom(r *bufio.Reader, first byte) (rune, []byte) {
	if first < 0x80 {
		return rune(first), []byte{first}
	}
	n := utf8.RuneLen(rune(first))
	if n <= 1 {
		return utf8.RuneError, []byte{first}
	}
	buf := make([]byte, 1, n)
	buf[0] = first
	for i := 1; i < n; i++ {
		c, err := r.ReadByte()
		if err != nil {
			break
		}
		buf = append(buf, c)
	}
	ru, _ := utf8.DecodeRune(buf)
	return ru, buf
}

// byteSliceReader adapts a []byte into an io.Reader for processInput.
type byteSliceReader struct {
	data []byte
	pos  int
}

func (b *byteSliceReader) Read(p []byte) (int, error) {
	if b.pos >= len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += n
	return n, nil
}

// readEscapeSequence consumes a CSI (ESC [ ...) or SS3 (ESC O letter)
// sequence immediately following an already-consumed ESC byte, recognizing
// the cursor/navigation/function keys a host terminal commonly emits
// (with an optional ";<mod>" CSI-u style modifier parameter), and returns
// the decoded key, modifier, and the raw bytes read (ESC included) for the
// input callback. ok is false if the bytes did not form a recognized
// sequence (caller should fall back to treating the lone ESC as Escape).
func readEscapeSequence(r *bufio.Reader) (purfectvt.VtKey, purfectvt.VtModifier, []byte, bool) {
	raw := []byte{0x1b}

	b, err := r.Peek(1)
	if err != nil || (b[0] != '[' && b[0] != 'O') {
		return purfectvt.KeyNone, purfectvt.ModNone, raw, false
	}
	intro, _ := r.ReadByte()
	raw = append(raw, intro)

	if intro == 'O' {
		c, err := r.ReadByte()
		if err != nil {
			return purfectvt.KeyNone, purfectvt.ModNone, raw, false
		}
		raw = append(raw, c)
		switch c {
		case 'A':
			return purfectvt.KeyUp, purfectvt.ModNone, raw, true
		case 'B':
			return purfectvt.KeyDown, purfectvt.ModNone, raw, true
		case 'C':
			return purfectvt.KeyRight, purfectvt.ModNone, raw, true
		case 'D':
			return purfectvt.KeyLeft, purfectvt.ModNone, raw, true
		case 'H':
			return purfectvt.KeyHome, purfectvt.ModNone, raw, true
		case 'F':
			return purfectvt.KeyEnd, purfectvt.ModNone, raw, true
		case 'P':
			return purfectvt.KeyF1, purfectvt.ModNone, raw, true
		case 'Q':
			return purfectvt.KeyF2, purfectvt.ModNone, raw, true
		case 'R':
			return purfectvt.KeyF3, purfectvt.ModNone, raw, true
		case 'S':
			return purfectvt.KeyF4, purfectvt.ModNone, raw, true
		}
		return purfectvt.KeyNone, purfectvt.ModNone, raw, false
	}

	// CSI: collect parameter bytes (digits and ';') until the final letter/tilde.
	var params []byte
	var final byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			return purfectvt.KeyNone, purfectvt.ModNone, raw, false
		}
		raw = append(raw, c)
		if c >= '0' && c <= '9' || c == ';' {
			params = append(params, c)
			continue
		}
		final = c
		break
	}

	mod := purfectvt.ModNone
	if n := csiModifierParam(params); n > 1 {
		m := n - 1
		if m&1 != 0 {
			mod |= purfectvt.ModShift
		}
		if m&2 != 0 {
			mod |= purfectvt.ModAlt
		}
		if m&4 != 0 {
			mod |= purfectvt.ModControl
		}
	}

	switch final {
	case 'A':
		return purfectvt.KeyUp, mod, raw, true
	case 'B':
		return purfectvt.KeyDown, mod, raw, true
	case 'C':
		return purfectvt.KeyRight, mod, raw, true
	case 'D':
		return purfectvt.KeyLeft, mod, raw, true
	case 'H':
		return purfectvt.KeyHome, mod, raw, true
	case 'F':
		return purfectvt.KeyEnd, mod, raw, true
	case '~':
		switch csiFirstParam(params) {
		case 1:
			return purfectvt.KeyHome, mod, raw, true
		case 2:
			return purfectvt.KeyInsert, mod, raw, true
		case 3:
			return purfectvt.KeyDelete, mod, raw, true
		case 4:
			return purfectvt.KeyEnd, mod, raw, true
		case 5:
			return purfectvt.KeyPageUp, mod, raw, true
		case 6:
			return purfectvt.KeyPageDown, mod, raw, true
		case 15:
			return purfectvt.KeyF5, mod, raw, true
		case 17:
			return purfectvt.KeyF6, mod, raw, true
		case 18:
			return purfectvt.KeyF7, mod, raw, true
		case 19:
			return purfectvt.KeyF8, mod, raw, true
		case 20:
			return purfectvt.KeyF9, mod, raw, true
		case 21:
			return purfectvt.KeyF10, mod, raw, true
		case 23:
			return purfectvt.KeyF11, mod, raw, true
		case 24:
			return purfectvt.KeyF12, mod, raw, true
		}
	}
	return purfectvt.KeyNone, purfectvt.ModNone, raw, false
}

// csiFirstParam returns the leading ';'-separated numeric field of a CSI
// parameter string, or 0 if absent/unparsable.
func csiFirstParam(params []byte) int {
	n := 0
	seen := false
	for _, c := range params {
		if c == ';' {
			break
		}
		seen = true
		n = n*10 + int(c-'0')
	}
	if !seen {
		return 0
	}
	return n
}

// csiModifierParam returns the second ';'-separated numeric field (the
// xterm modifier parameter in sequences like "ESC[1;5A"), or 0 if absent.
func csiModifierParam(params []byte) int {
	sepIdx := -1
	for i, c := range params {
		if c == ';' {
			sepIdx = i
			break
		}
	}
	if sepIdx < 0 || sepIdx+1 >= len(params) {
		return 0
	}
	n := 0
	for _, c := range params[sepIdx+1:] {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// HandleMouseInput processes mouse events (when mouse tracking is enabled
// by the running program via DECSET). x and y are 0-based cell
// coordinates.
func (h *InputHandler) HandleMouseInput(kind purfectvt.MouseEventKind, btn purfectvt.MouseButton, x, y int, mod purfectvt.VtModifier) {
	h.term.vt.WritePtyMouse(kind, btn, x, y, mod)
}
