package purfectvt

// inputState names the byte-stream parser's current state, mirroring
// zutty's Vterm::InputState (a closed set, never extended).
type inputState uint8

const (
	stNormal inputState = iota
	stIgnoreSequence
	stEscape
	stEscapeVT52
	stEscSPC
	stEscHash
	stEscPct
	stSelectCharset
	stCSI
	stCSIPriv
	stCSIQuote
	stCSIDblQuote
	stCSIBang
	stCSISPC
	stCSIGT
	stDCS
	stDCSEsc
	stOSC
	stOSCEsc
)

const maxEscOps = 16

// parserState is the PTY byte-stream decoder's mutable state: the
// current inputState, the pending CSI/DCS/OSC argument accumulator, and
// the UTF-8 decoder used for Normal-state text.
type parserState struct {
	state   inputState
	ops     [maxEscOps]int
	hasArg  [maxEscOps]bool // whether ops[i] received any digit
	nOps    int
	argBuf  []byte
	scsDst  byte
	scsMod  byte
	utf8dec *Utf8Decoder
}

// Feed decodes a chunk of PTY output, applying every resulting screen
// change to the current frame, then invokes the refresh handler once,
// whether or not the chunk changed anything. Safe to call repeatedly with arbitrary chunk
// boundaries, including ones that split a multi-byte UTF-8 sequence or an
// escape sequence across calls.
func (v *Vterm) Feed(data []byte) {
	for _, ch := range data {
		v.processByte(ch)
	}
	if v.onRefresh != nil {
		v.onRefresh(v.cf)
	}
}

func (v *Vterm) processByte(ch byte) {
	p := &v.parser

	// C0 controls are recognized in (almost) every state, matching
	// real terminals: ESC/CAN/SUB always abort an in-progress sequence.
	switch ch {
	case 0x18, 0x1a: // CAN, SUB
		p.state = stNormal
		return
	case 0x1b: // ESC
		if p.state == stOSC {
			p.state = stOSCEsc
			return
		}
		if p.state == stDCS {
			p.state = stDCSEsc
			return
		}
		p.resetOps()
		p.state = stEscape
		return
	}

	switch p.state {
	case stNormal:
		v.inputNormal(ch)
	case stIgnoreSequence:
		if ch == 0x07 || ch == 0x9c {
			p.state = stNormal
		}
	case stEscape:
		v.inputEscape(ch)
	case stEscapeVT52:
		v.inputEscapeVT52(ch)
	case stEscSPC:
		v.inputEscSPC(ch)
	case stEscHash:
		v.inputEscHash(ch)
	case stEscPct:
		v.inputEscPct(ch)
	case stSelectCharset:
		v.inputSelectCharset(ch)
	case stCSI, stCSIPriv, stCSIQuote, stCSIDblQuote, stCSIBang, stCSISPC, stCSIGT:
		v.inputCSI(ch)
	case stDCS:
		v.inputDCS(ch)
	case stDCSEsc:
		v.inputDCSEsc(ch)
	case stOSC:
		v.inputOSC(ch)
	case stOSCEsc:
		v.inputOSCEsc(ch)
	case stVT52CupArg1:
		v.posY = clamp(int(ch)-0x20, 0, v.nRows-1)
		p.state = stVT52CupArg2
	case stVT52CupArg2:
		v.posX = clamp(int(ch)-0x20, 0, v.nCols-1)
		v.normalizeCursorPos()
		p.state = stNormal
	}
}

func (p *parserState) resetOps() {
	p.nOps = 0
	for i := range p.ops {
		p.ops[i] = 0
		p.hasArg[i] = false
	}
	p.argBuf = p.argBuf[:0]
}

func (p *parserState) digit(d byte) {
	if p.nOps >= maxEscOps {
		return
	}
	p.ops[p.nOps] = p.ops[p.nOps]*10 + int(d-'0')
	p.hasArg[p.nOps] = true
}

func (p *parserState) sep() {
	if p.nOps < maxEscOps-1 {
		p.nOps++
	}
}

// arg returns the i-th CSI parameter, or def if it was omitted (either
// never reached, or reached but never given a digit — "CSI ; 5" treats
// the first field as omitted).
func (p *parserState) arg(i, def int) int {
	if i > p.nOps || !p.hasArg[i] {
		return def
	}
	return p.ops[i]
}

// argCount is the number of parameter fields the sequence actually
// touched (including ones that separators reached but left empty).
func (p *parserState) argCount() int {
	return p.nOps + 1
}

func (v *Vterm) inputNormal(ch byte) {
	switch ch {
	case 0x07: // BEL
		v.bellCount++
		if v.onBell != nil {
			v.onBell()
		}
	case 0x08: // BS
		v.inp_BS()
	case 0x09: // HT
		v.inp_HT()
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		v.inp_LF()
	case 0x0d: // CR
		v.inp_CR()
	case 0x0e: // SO: invoke G1 into GL
		v.charsetState.GL = 1
	case 0x0f: // SI: invoke G0 into GL
		v.charsetState.GL = 0
	default:
		if ch >= 0x20 {
			v.inputGraphicChar(ch)
		}
	}
}

func (v *Vterm) inputEscape(ch byte) {
	p := &v.parser
	if v.compatLevel == CompatVT52 {
		v.inputEscapeVT52(ch)
		return
	}
	switch ch {
	case '[':
		p.resetOps()
		p.state = stCSI
	case ']':
		p.argBuf = p.argBuf[:0]
		p.state = stOSC
	case 'P':
		p.argBuf = p.argBuf[:0]
		p.state = stDCS
	case 'X', '^', '_': // SOS/PM/APC: ignored until ST
		p.state = stIgnoreSequence
	case ' ':
		p.state = stEscSPC
	case '#':
		p.state = stEscHash
	case '%':
		p.state = stEscPct
	case '(', ')', '*', '+':
		p.scsDst = ch
		p.state = stSelectCharset
	case '7':
		v.esc_DECSC()
		p.state = stNormal
	case '8':
		v.esc_DECRC()
		p.state = stNormal
	case '=':
		v.keypadMode = KeypadApplication
		p.state = stNormal
	case '>':
		v.keypadMode = KeypadNormal
		p.state = stNormal
	case 'D':
		v.esc_IND()
		p.state = stNormal
	case 'M':
		v.esc_RI()
		p.state = stNormal
	case 'E':
		v.esc_NEL()
		p.state = stNormal
	case 'H':
		v.esc_HTS()
		p.state = stNormal
	case 'c':
		v.resetTerminal()
		p.state = stNormal
	case 'n', 'o', '|', '}', '~': // LS2/LS3/LS3R/LS2R/LS1R
		v.applyLockingShift(ch)
		p.state = stNormal
	default:
		p.state = stNormal
	}
}

func (v *Vterm) applyLockingShift(ch byte) {
	switch ch {
	case 'n':
		v.charsetState.GL = 2
	case 'o':
		v.charsetState.GL = 3
	case '~':
		v.charsetState.GR = 1
	case '}':
		v.charsetState.GR = 2
	case '|':
		v.charsetState.GR = 3
	}
}

func (v *Vterm) inputEscSPC(ch byte) {
	// ESC SP F/G/L/M: S7C1T/S8C1T/ANSI-conformance-level; accepted, no-op.
	v.parser.state = stNormal
}

func (v *Vterm) inputEscHash(ch byte) {
	if ch == '8' {
		v.esch_DECALN()
	}
	v.parser.state = stNormal
}

func (v *Vterm) inputEscPct(ch byte) {
	// ESC % G / ESC % @: select UTF-8 / default charset signaling.
	switch ch {
	case 'G':
		v.charsetState.G[0] = CharsetUTF8
	case '@':
		v.charsetState.G[0] = CharsetDecSuppl
	}
	v.parser.state = stNormal
}

func (v *Vterm) inputSelectCharset(ch byte) {
	v.esc_SCS(v.parser.scsDst, ch)
	v.parser.state = stNormal
}

func (v *Vterm) inputCSI(ch byte) {
	p := &v.parser
	switch {
	case ch >= '0' && ch <= '9':
		p.digit(ch)
		return
	case ch == ';':
		p.sep()
		return
	case ch == '?':
		p.state = stCSIPriv
		return
	case ch == '\'':
		p.state = stCSIQuote
		return
	case ch == '"':
		p.state = stCSIDblQuote
		return
	case ch == '!':
		p.state = stCSIBang
		return
	case ch == ' ':
		p.state = stCSISPC
		return
	case ch == '>':
		p.state = stCSIGT
		return
	case ch >= 0x40 && ch <= 0x7e:
		v.dispatchCSI(p.state, ch)
		p.state = stNormal
		return
	default:
		// unrecognized intermediate: ignore and keep collecting
	}
}

func (v *Vterm) inputDCS(ch byte) {
	if ch == 0x9c {
		v.handleDCS()
		v.parser.state = stNormal
		return
	}
	v.parser.argBuf = append(v.parser.argBuf, ch)
}

func (v *Vterm) inputDCSEsc(ch byte) {
	if ch == '\\' {
		v.handleDCS()
		v.parser.state = stNormal
		return
	}
	v.parser.argBuf = append(v.parser.argBuf, 0x1b, ch)
	v.parser.state = stDCS
}

func (v *Vterm) inputOSC(ch byte) {
	if ch == 0x07 || ch == 0x9c {
		v.handleOSC()
		v.parser.state = stNormal
		return
	}
	v.parser.argBuf = append(v.parser.argBuf, ch)
}

func (v *Vterm) inputOSCEsc(ch byte) {
	if ch == '\\' {
		v.handleOSC()
		v.parser.state = stNormal
		return
	}
	v.parser.argBuf = append(v.parser.argBuf, 0x1b, ch)
	v.parser.state = stOSC
}

func (v *Vterm) inputEscapeVT52(ch byte) {
	// Minimal VT52 compatibility: cursor motion, erase and identify only.
	p := &v.parser
	switch ch {
	case 'A':
		v.posY = clamp(v.posY-1, 0, v.nRows-1)
	case 'B':
		v.posY = clamp(v.posY+1, 0, v.nRows-1)
	case 'C':
		v.posX = clamp(v.posX+1, 0, v.nCols-1)
	case 'D':
		v.posX = clamp(v.posX-1, 0, v.nCols-1)
	case 'H':
		v.posX, v.posY = 0, 0
	case 'I':
		v.esc_RI()
	case 'J':
		v.cf.EraseRows(v.posY, v.nRows, v.attrs)
	case 'K':
		v.cf.EraseInRow(v.posY, v.posX, v.nCols-v.posX, v.attrs)
	case 'Y':
		p.state = stVT52CupArg1
		return
	case 'Z':
		v.writeOut([]byte("\x1b/Z"))
	case '<':
		v.compatLevel = CompatVT100
	}
	v.normalizeCursorPos()
	p.state = stNormal
}

const (
	stVT52CupArg1 inputState = 100 + iota
	stVT52CupArg2
)
