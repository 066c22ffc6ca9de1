package purfectvt

// VtKey is a logical keyboard key, independent of any host windowing
// toolkit's key-code representation. Hosts translate their own key events
// into VtKey before calling Vterm.WritePtyKey.
type VtKey uint8

const (
	KeyNone VtKey = iota

	KeySpace
	KeyReturn
	KeyBackspace
	KeyTab
	KeyBacktick
	KeyTilde
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyK0
	KeyK1
	KeyK2
	KeyK3
	KeyK4
	KeyK5
	KeyK6
	KeyK7
	KeyK8
	KeyK9

	KeyKP_F1
	KeyKP_F2
	KeyKP_F3
	KeyKP_F4
	KeyKP_Insert
	KeyKP_Delete
	KeyKP_Up
	KeyKP_Down
	KeyKP_Left
	KeyKP_Right
	KeyKP_Home
	KeyKP_End
	KeyKP_PageUp
	KeyKP_PageDown
	KeyKP_Begin
	KeyKP_Plus
	KeyKP_Minus
	KeyKP_Star
	KeyKP_Slash
	KeyKP_Comma
	KeyKP_Dot
	KeyKP_Space
	KeyKP_Equal
	KeyKP_Tab
	KeyKP_Enter
	KeyKP_0
	KeyKP_1
	KeyKP_2
	KeyKP_3
	KeyKP_4
	KeyKP_5
	KeyKP_6
	KeyKP_7
	KeyKP_8
	KeyKP_9

	KeyPrint
)

// VtModifier is a bitmask of the four modifier keys, matching the DEC
// CSI-u modifier parameter encoding (1=none, 2=shift, 3=alt, 5=control,
// etc. via ModParam()).
type VtModifier uint8

const (
	ModNone    VtModifier = 0
	ModShift   VtModifier = 1
	ModControl VtModifier = 2
	ModAlt     VtModifier = 4
)

// ModParam returns the CSI modifier parameter value (CSI 1 ; M key),
// where M = 1, plus 1 for Shift, 2 for Alt and 4 for Control.
func (m VtModifier) ModParam() int {
	p := 1
	if m&ModShift != 0 {
		p += 1
	}
	if m&ModAlt != 0 {
		p += 2
	}
	if m&ModControl != 0 {
		p += 4
	}
	return p
}

// CursorKeyMode selects the encoding of the arrow/Home/End keys (DECCKM).
type CursorKeyMode uint8

const (
	CursorKeyANSI CursorKeyMode = iota
	CursorKeyApplication
)

// KeypadMode selects numeric vs application encoding of the keypad (DECKPAM/DECKPNM).
type KeypadMode uint8

const (
	KeypadNormal KeypadMode = iota
	KeypadApplication
)

// CompatibilityLevel gates which InputSpec table is active (DECSCL).
type CompatibilityLevel uint8

const (
	CompatVT52 CompatibilityLevel = iota
	CompatVT100
	CompatVT400
)

// inputSpec maps one VtKey to the bytes written to the PTY.
type inputSpec struct {
	key   VtKey
	bytes string
}

// inputSpecTable is a predicate-gated set of key mappings; the first
// table (in declaration order) whose predicate is satisfied is used,
// mirroring zutty's Vterm::getInputSpecTable table-selection scheme.
type inputSpecTable struct {
	predicate func(v *Vterm) bool
	specs     []inputSpec
}

// keypadAppSpecs covers the keypad in application mode (DECKPAM):
// distinct SS3-prefixed codes for digits and operators.
var keypadAppSpecs = []inputSpec{
	{KeyKP_0, "\x1bOp"}, {KeyKP_1, "\x1bOq"}, {KeyKP_2, "\x1bOr"},
	{KeyKP_3, "\x1bOs"}, {KeyKP_4, "\x1bOt"}, {KeyKP_5, "\x1bOu"},
	{KeyKP_6, "\x1bOv"}, {KeyKP_7, "\x1bOw"}, {KeyKP_8, "\x1bOx"},
	{KeyKP_9, "\x1bOy"},
	{KeyKP_Plus, "\x1bOk"}, {KeyKP_Minus, "\x1bOm"}, {KeyKP_Star, "\x1bOj"},
	{KeyKP_Slash, "\x1bOo"}, {KeyKP_Comma, "\x1bOl"}, {KeyKP_Dot, "\x1bOn"},
	{KeyKP_Enter, "\x1bOM"}, {KeyKP_Equal, "\x1bOX"},
	{KeyKP_Space, "\x1bO "}, {KeyKP_Tab, "\x1bOI"},
}

// cursorAppSpecs covers arrow/Home/End/Begin in cursor-key application mode.
var cursorAppSpecs = []inputSpec{
	{KeyUp, "\x1bOA"}, {KeyDown, "\x1bOB"}, {KeyRight, "\x1bOC"}, {KeyLeft, "\x1bOD"},
	{KeyHome, "\x1bOH"}, {KeyEnd, "\x1bOF"},
	{KeyKP_Up, "\x1bOA"}, {KeyKP_Down, "\x1bOB"}, {KeyKP_Right, "\x1bOC"}, {KeyKP_Left, "\x1bOD"},
	{KeyKP_Home, "\x1bOH"}, {KeyKP_End, "\x1bOF"}, {KeyKP_Begin, "\x1bOE"},
}

// cursorAnsiSpecs covers the same keys in ANSI (normal) cursor-key mode.
var cursorAnsiSpecs = []inputSpec{
	{KeyUp, "\x1b[A"}, {KeyDown, "\x1b[B"}, {KeyRight, "\x1b[C"}, {KeyLeft, "\x1b[D"},
	{KeyHome, "\x1b[H"}, {KeyEnd, "\x1b[F"},
	{KeyKP_Up, "\x1b[A"}, {KeyKP_Down, "\x1b[B"}, {KeyKP_Right, "\x1b[C"}, {KeyKP_Left, "\x1b[D"},
	{KeyKP_Home, "\x1b[H"}, {KeyKP_End, "\x1b[F"}, {KeyKP_Begin, "\x1b[E"},
}

// editingSpecs covers Insert/Delete/PageUp/PageDown (tilde-terminated CSI).
var editingSpecs = []inputSpec{
	{KeyInsert, "\x1b[2~"}, {KeyDelete, "\x1b[3~"},
	{KeyPageUp, "\x1b[5~"}, {KeyPageDown, "\x1b[6~"},
	{KeyKP_Insert, "\x1b[2~"}, {KeyKP_Delete, "\x1b[3~"},
	{KeyKP_PageUp, "\x1b[5~"}, {KeyKP_PageDown, "\x1b[6~"},
}

// functionSpecs covers F1-F20 (SS3 for F1-F4, tilde CSI for F5 and up).
var functionSpecs = []inputSpec{
	{KeyF1, "\x1bOP"}, {KeyF2, "\x1bOQ"}, {KeyF3, "\x1bOR"}, {KeyF4, "\x1bOS"},
	{KeyF5, "\x1b[15~"}, {KeyF6, "\x1b[17~"}, {KeyF7, "\x1b[18~"}, {KeyF8, "\x1b[19~"},
	{KeyF9, "\x1b[20~"}, {KeyF10, "\x1b[21~"}, {KeyF11, "\x1b[23~"}, {KeyF12, "\x1b[24~"},
	{KeyF13, "\x1b[25~"}, {KeyF14, "\x1b[26~"}, {KeyF15, "\x1b[28~"}, {KeyF16, "\x1b[29~"},
	{KeyF17, "\x1b[31~"}, {KeyF18, "\x1b[32~"}, {KeyF19, "\x1b[33~"}, {KeyF20, "\x1b[34~"},
}

// lookupSpec finds the byte sequence for key given the current mode
// state, searching keypad/cursor/editing/function tables in order; keys
// with no table entry (Space, Return, plain characters) are handled by
// the caller directly rather than through this table.
func lookupSpec(key VtKey, cursorMode CursorKeyMode, keypadMode KeypadMode) (string, bool) {
	if keypadMode == KeypadApplication {
		if s, ok := find(keypadAppSpecs, key); ok {
			return s, true
		}
	}
	if cursorMode == CursorKeyApplication {
		if s, ok := find(cursorAppSpecs, key); ok {
			return s, true
		}
	} else if s, ok := find(cursorAnsiSpecs, key); ok {
		return s, true
	}
	if s, ok := find(editingSpecs, key); ok {
		return s, true
	}
	if s, ok := find(functionSpecs, key); ok {
		return s, true
	}
	return "", false
}

func find(specs []inputSpec, key VtKey) (string, bool) {
	for _, s := range specs {
		if s.key == key {
			return s.bytes, true
		}
	}
	return "", false
}

// EncodeKey renders key+modifiers as the byte sequence written to the
// PTY. With no modifiers, known keys use their plain table entry. With
// modifiers, CSI-final sequences gain a ";M" modifier parameter (DEC
// CSI-u style: "CSI 1 ; M key"); SS3 sequences are rewritten to the CSI
// form to carry the modifier, since SS3 has no parameter slot.
func EncodeKey(key VtKey, mod VtModifier, cursorMode CursorKeyMode, keypadMode KeypadMode) string {
	seq, ok := lookupSpec(key, cursorMode, keypadMode)
	if !ok {
		return ""
	}
	if mod == ModNone {
		return seq
	}
	if len(seq) >= 3 && seq[0] == 0x1b && seq[1] == 'O' {
		fin := seq[2]
		return "\x1b[1;" + itoa(mod.ModParam()) + string(fin)
	}
	if n := len(seq); n > 0 && seq[n-1] == '~' {
		return seq[:n-1] + ";" + itoa(mod.ModParam()) + "~"
	}
	if n := len(seq); n > 0 {
		fin := seq[n-1]
		return "\x1b[1;" + itoa(mod.ModParam()) + string(fin)
	}
	return seq
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

const (
	bracketedPasteStart = "\x1b[200~"
	bracketedPasteEnd   = "\x1b[201~"
)

// FrameBracketedPaste wraps pasted text in the bracketed-paste markers.
func FrameBracketedPaste(text string) string {
	return bracketedPasteStart + text + bracketedPasteEnd
}
