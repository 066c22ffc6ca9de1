package purfectvt

// Charset identifies which 96-entry translation table a G-set slot is
// designated to. UTF8 bypasses translation entirely: printable bytes are
// routed to the Utf8Decoder instead of a table lookup.
type Charset uint8

const (
	CharsetUTF8 Charset = iota
	CharsetDecSpec
	CharsetDecSuppl
	CharsetDecUserPref
	CharsetDecTechn
	CharsetIsoLatin1
	CharsetIsoUK
)

// CharsetState holds the four G-set slots and the GL/GR/single-shift
// invocation state that routes printable bytes through them.
type CharsetState struct {
	G [4]Charset // g0..g3, indexed 0-3

	GL uint8 // locking shift: index into G[] used for 0x20-0x7F
	GR uint8 // locking shift: index into G[] used for 0xA0-0xFF

	// SS is the single-shift state: 0 none, 2 (next GL byte from G2),
	// 3 (next GL byte from G3). Consumed by the next printable byte.
	SS uint8
}

// DefaultCharsetState returns the power-on default: all four slots UTF-8,
// GL locked to G0, GR locked to G2, no single shift pending.
func DefaultCharsetState() CharsetState {
	return CharsetState{
		G:  [4]Charset{CharsetUTF8, CharsetUTF8, CharsetUTF8, CharsetUTF8},
		GL: 0,
		GR: 2,
		SS: 0,
	}
}

// translate maps a single byte in 0x20-0x7F through the given
// 96-entry charset table. Bytes outside the table's domain pass through
// unchanged (this also handles the UTF8/DecUserPref "no table" case when
// callers special-case CharsetUTF8 before calling translate).
func translate(cs Charset, b byte) rune {
	if b < 0x20 || b > 0x7F {
		return rune(b)
	}
	idx := int(b) - 0x20
	switch cs {
	case CharsetDecSpec:
		return decSpecialGraphics[idx]
	case CharsetDecSuppl:
		return decSupplemental[idx]
	case CharsetDecTechn:
		return decTechnical[idx]
	case CharsetIsoLatin1:
		return isoLatin1[idx]
	case CharsetIsoUK:
		return isoUK[idx]
	case CharsetDecUserPref:
		return decSpecialGraphics[idx] // no user-loaded soft font: fall back to DEC Special Graphics
	default: // CharsetUTF8 or unknown: identity
		return rune(b)
	}
}

// decSpecialGraphics is the classic DEC Special Graphics / line-drawing
// set (designated with ESC ( 0). Most positions are identity-mapped ASCII;
// 0x60-0x7E carry the line-drawing glyphs.
var decSpecialGraphics = buildIdentityTable(func(t *[96]rune) {
	t[0x60-0x20] = '◆' // ♦ diamond
	t[0x61-0x20] = '▒' // ▒ checkerboard
	t[0x62-0x20] = '␉' // HT symbol
	t[0x63-0x20] = '␌' // FF symbol
	t[0x64-0x20] = '␍' // CR symbol
	t[0x65-0x20] = '␊' // LF symbol
	t[0x66-0x20] = '°' // ° degree
	t[0x67-0x20] = '±' // ± plus/minus
	t[0x68-0x20] = '␤' // NL symbol
	t[0x69-0x20] = '␋' // VT symbol
	t[0x6A-0x20] = '┘' // ┘ lower-right corner
	t[0x6B-0x20] = '┐' // ┐ upper-right corner
	t[0x6C-0x20] = '┌' // ┌ upper-left corner
	t[0x6D-0x20] = '└' // └ lower-left corner
	t[0x6E-0x20] = '┼' // ┼ crossing lines
	t[0x6F-0x20] = '⎺' // ⎺ scan line 1
	t[0x70-0x20] = '⎻' // ⎻ scan line 3
	t[0x71-0x20] = '─' // ─ horizontal line (scan line 5)
	t[0x72-0x20] = '⎼' // ⎼ scan line 7
	t[0x73-0x20] = '⎽' // ⎽ scan line 9
	t[0x74-0x20] = '├' // ├ left tee
	t[0x75-0x20] = '┤' // ┤ right tee
	t[0x76-0x20] = '┴' // ┴ bottom tee
	t[0x77-0x20] = '┬' // ┬ top tee
	t[0x78-0x20] = '│' // │ vertical line
	t[0x79-0x20] = '≤' // ≤ less-or-equal
	t[0x7A-0x20] = '≥' // ≥ greater-or-equal
	t[0x7B-0x20] = 'π' // π pi
	t[0x7C-0x20] = '≠' // ≠ not equal
	t[0x7D-0x20] = '£' // £ pound sterling
	t[0x7E-0x20] = '·' // · middle dot
})

// decSupplemental is the DEC Supplemental (multinational) set, designated
// with ESC ( < / ESC - 0x25... sequences, providing accented Latin letters
// in the 0xA0-equivalent positions.
var decSupplemental = buildIdentityTable(func(t *[96]rune) {
	accents := map[byte]rune{
		0x24: '¤', 0x31: '¡', 0x32: '¢', 0x33: '£',
		0x35: '¥', 0x37: '§', 0x38: '¤', 0x3C: '«',
		0x3E: '»', 0x41: 'Á', 0x45: 'É', 0x49: 'Í',
		0x4F: 'Ó', 0x55: 'Ú', 0x61: 'á', 0x65: 'é',
		0x69: 'í', 0x6F: 'ó', 0x75: 'ú', 0x7F: 'ß',
	}
	for b, r := range accents {
		t[b-0x20] = r
	}
})

// decTechnical is the DEC Technical character set (math/engineering
// symbols), designated with ESC ( >.
var decTechnical = buildIdentityTable(func(t *[96]rune) {
	t[0x22-0x20] = '√' // √ square root
	t[0x28-0x20] = '⌠' // ⌠ integral top
	t[0x29-0x20] = '⌡' // ⌡ integral bottom
	t[0x2B-0x20] = '≤' // ≤
	t[0x2F-0x20] = '≥' // ≥
	t[0x61-0x20] = 'α' // α alpha
	t[0x62-0x20] = 'β' // β beta
	t[0x67-0x20] = 'γ' // γ gamma
	t[0x64-0x20] = 'δ' // δ delta
	t[0x6C-0x20] = 'λ' // λ lambda
	t[0x6D-0x20] = 'μ' // μ mu
	t[0x70-0x20] = 'π' // π pi
	t[0x73-0x20] = 'σ' // σ sigma
	t[0x74-0x20] = 'τ' // τ tau
	t[0x77-0x20] = 'ω' // ω omega
})

// isoLatin1 is identity: printable ASCII maps straight through, and the
// 0xA0-0xFF range (reached via GR) is already ISO 8859-1 in Unicode.
var isoLatin1 = buildIdentityTable(func(*[96]rune) {})

// isoUK differs from US-ASCII only at 0x23 (# becomes £).
var isoUK = buildIdentityTable(func(t *[96]rune) {
	t[0x23-0x20] = '£' // £ pound sterling replaces '#'
})

func buildIdentityTable(patch func(*[96]rune)) [96]rune {
	var t [96]rune
	for i := range t {
		t[i] = rune(i + 0x20)
	}
	patch(&t)
	return t
}
