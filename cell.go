// Package purfectvt implements a DEC VT / xterm-compatible terminal core:
// a byte-stream parser, a cell-buffer frame engine with scrollback and
// scroll margins, and a renderer handoff for an independent rendering
// worker. It does not itself spawn PTYs, build font atlases or dispatch
// GPU work — those are host collaborators that consume the types defined
// here (see cli/ and wsrender/ for examples).
package purfectvt

// Cell is a single addressable character cell. Equality is structural, so
// Frame.DeltaCopyCells can compare cells with ==.
type Cell struct {
	CodePoint uint16 // BMP code point; code points above U+FFFF are not stored

	Bold       bool
	Italic     bool
	Underline  bool
	Inverse    bool
	DWidth     bool // this cell is the left half of a double-width glyph
	DWidthCont bool // this cell is the right half of a double-width glyph
	Wrap       bool // row continues into the next row (soft wrap, not a hard newline)
	Dirty      bool // set by DeltaCopyCells when a renderer-private buffer cell changed

	Fg Color
	Bg Color
}

// EmptyCell returns a blank cell in the default foreground and background
// colors, with all style flags cleared.
func EmptyCell() Cell {
	return Cell{CodePoint: ' ', Fg: DefaultForeground, Bg: DefaultBackground}
}

// EmptyCellWithColors returns a blank cell with the given fg/bg.
func EmptyCellWithColors(fg, bg Color) Cell {
	return Cell{CodePoint: ' ', Fg: fg, Bg: bg}
}

// EastAsianWidth represents the Unicode East Asian Width property.
type EastAsianWidth int

const (
	EAWidthNeutral   EastAsianWidth = iota // N - Neutral (most Western characters)
	EAWidthAmbiguous                       // A - Ambiguous (narrow or wide depending on context)
	EAWidthHalfwidth                       // H - Halfwidth (halfwidth CJK punctuation, Katakana)
	EAWidthFullwidth                       // F - Fullwidth (fullwidth ASCII, punctuation)
	EAWidthNarrow                          // Na - Narrow (narrow but not neutral)
	EAWidthWide                            // W - Wide (CJK ideographs, etc.)
)

// AmbiguousWidthMode controls how ambiguous East Asian Width characters are
// counted when deciding whether a code point needs a paired DWidthCont cell.
type AmbiguousWidthMode int

const (
	AmbiguousWidthNarrow AmbiguousWidthMode = iota // treat ambiguous-width runes as single-width (default)
	AmbiguousWidthWide                             // treat ambiguous-width runes as double-width
)

// RuneWidth returns 1 or 2, the number of cell columns r occupies. This is
// the wcwidth() oracle spec.md §9 asks an implementer to supply: code
// points outside the BMP are assumed to already have been substituted with
// U+FFFD by the caller, so RuneWidth never needs to consider them.
func RuneWidth(r rune, ambiguous AmbiguousWidthMode) int {
	switch GetEastAsianWidthCategory(r) {
	case EAWidthFullwidth, EAWidthWide:
		return 2
	case EAWidthAmbiguous:
		if ambiguous == AmbiguousWidthWide {
			return 2
		}
		return 1
	default:
		return 1
	}
}

// GetEastAsianWidthCategory returns the East Asian Width category for a rune.
// Based on Unicode 15.0 East_Asian_Width property.
func GetEastAsianWidthCategory(r rune) EastAsianWidth {
	// Halfwidth forms (H)
	switch {
	case r >= 0xFF61 && r <= 0xFF64: // Halfwidth CJK punctuation
		return EAWidthHalfwidth
	case r >= 0xFF65 && r <= 0xFF9F: // Halfwidth Katakana
		return EAWidthHalfwidth
	case r >= 0xFFA0 && r <= 0xFFDC: // Halfwidth Hangul
		return EAWidthHalfwidth
	case r >= 0xFFE8 && r <= 0xFFEE: // Halfwidth symbols
		return EAWidthHalfwidth

	// Fullwidth forms (F)
	case r >= 0xFF01 && r <= 0xFF60: // Fullwidth ASCII variants
		return EAWidthFullwidth
	case r >= 0xFFE0 && r <= 0xFFE6: // Fullwidth currency symbols
		return EAWidthFullwidth

	// Wide characters (W)
	case r >= 0x2E80 && r <= 0x2EFF, // CJK Radicals Supplement
		r >= 0x2F00 && r <= 0x2FDF, // Kangxi Radicals
		r >= 0x3000 && r <= 0x303F, // CJK Symbols and Punctuation
		r >= 0x3040 && r <= 0x309F, // Hiragana
		r >= 0x30A0 && r <= 0x30FF, // Katakana
		r >= 0x3100 && r <= 0x312F, // Bopomofo
		r >= 0x3130 && r <= 0x318F, // Hangul Compatibility Jamo
		r >= 0x3190 && r <= 0x319F, // Kanbun
		r >= 0x31A0 && r <= 0x31BF, // Bopomofo Extended
		r >= 0x31C0 && r <= 0x31EF, // CJK Strokes
		r >= 0x31F0 && r <= 0x31FF, // Katakana Phonetic Extensions
		r >= 0x3200 && r <= 0x32FF, // Enclosed CJK Letters and Months
		r >= 0x3300 && r <= 0x33FF, // CJK Compatibility
		r >= 0x3400 && r <= 0x4DBF, // CJK Unified Ideographs Extension A
		r >= 0x4E00 && r <= 0x9FFF, // CJK Unified Ideographs
		r >= 0xA000 && r <= 0xA48F, // Yi Syllables
		r >= 0xA490 && r <= 0xA4CF, // Yi Radicals
		r >= 0xAC00 && r <= 0xD7AF, // Hangul Syllables
		r >= 0xF900 && r <= 0xFAFF, // CJK Compatibility Ideographs
		r >= 0xFE10 && r <= 0xFE1F, // Vertical Forms
		r >= 0xFE30 && r <= 0xFE4F, // CJK Compatibility Forms
		r >= 0xFE50 && r <= 0xFE6F: // Small Form Variants
		return EAWidthWide

	// Ambiguous characters (A)
	case r >= 0x0370 && r <= 0x03FF, // Greek
		r >= 0x0400 && r <= 0x04FF, // Cyrillic
		r >= 0x1E00 && r <= 0x1EFF, // Latin Extended Additional
		r >= 0x2010 && r <= 0x2027, // General Punctuation (some)
		r >= 0x20A0 && r <= 0x20CF, // Currency Symbols
		r >= 0x2100 && r <= 0x214F, // Letterlike Symbols
		r >= 0x2150 && r <= 0x218F, // Number Forms
		r >= 0x2190 && r <= 0x21FF, // Arrows
		r >= 0x2200 && r <= 0x22FF, // Mathematical Operators
		r >= 0x2300 && r <= 0x23FF, // Miscellaneous Technical
		r >= 0x2500 && r <= 0x257F, // Box Drawing
		r >= 0x2580 && r <= 0x259F, // Block Elements
		r >= 0x25A0 && r <= 0x25FF, // Geometric Shapes
		r >= 0x2600 && r <= 0x26FF, // Miscellaneous Symbols
		r >= 0x2700 && r <= 0x27BF: // Dingbats
		return EAWidthAmbiguous

	// Narrow (Na)
	case r >= 0x0020 && r <= 0x007E: // Basic Latin (ASCII)
		return EAWidthNarrow
	case r >= 0x00A0 && r <= 0x00FF: // Latin-1 Supplement
		return EAWidthNarrow
	}

	return EAWidthNeutral
}
