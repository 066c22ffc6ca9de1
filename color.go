package purfectvt

// ColorType indicates how a color was specified.
type ColorType uint8

const (
	ColorTypeDefault   ColorType = iota // terminal default fg/bg (SGR 39/49)
	ColorTypeStandard                   // standard 16 ANSI colors (0-15)
	ColorTypePalette                    // 256-color palette (0-255)
	ColorTypeTrueColor                  // 24-bit RGB
)

// Color represents a terminal color with its original specification
// preserved, so SGR encoding can round-trip (DECRQSS, OSC palette queries).
type Color struct {
	Type    ColorType
	Index   uint8 // for Standard (0-15) or Palette (0-255)
	R, G, B uint8 // for TrueColor, or resolved RGB for display
}

// Predefined colors.
var (
	DefaultForeground = Color{Type: ColorTypeDefault, R: 212, G: 212, B: 212}
	DefaultBackground = Color{Type: ColorTypeDefault, R: 30, G: 30, B: 30}
)

// StandardColor creates a standard 16-color ANSI color (index 0-15).
func StandardColor(index int) Color {
	if index < 0 || index > 15 {
		index = 7
	}
	rgb := ANSIColorsRGB[index]
	return Color{Type: ColorTypeStandard, Index: uint8(index), R: rgb.R, G: rgb.G, B: rgb.B}
}

// PaletteColor creates a 256-color palette color (index 0-255).
func PaletteColor(index int) Color {
	if index < 0 || index > 255 {
		index = 7
	}
	rgb := Get256ColorRGB(index)
	return Color{Type: ColorTypePalette, Index: uint8(index), R: rgb.R, G: rgb.G, B: rgb.B}
}

// TrueColor creates a 24-bit true color.
func TrueColor(r, g, b uint8) Color {
	return Color{Type: ColorTypeTrueColor, R: r, G: g, B: b}
}

// IsDefault returns true if this is the default fg/bg color.
func (c Color) IsDefault() bool {
	return c.Type == ColorTypeDefault
}

// RGB holds just the red, green, blue components.
type RGB struct {
	R, G, B uint8
}

// ANSIColorsRGB are the standard ANSI 16-color palette RGB values, in
// ANSI order (0=black .. 7=white, 8=bright black .. 15=bright white).
var ANSIColorsRGB = []RGB{
	{R: 0, G: 0, B: 0},
	{R: 170, G: 0, B: 0},
	{R: 0, G: 170, B: 0},
	{R: 170, G: 85, B: 0},
	{R: 0, G: 0, B: 170},
	{R: 170, G: 0, B: 170},
	{R: 0, G: 170, B: 170},
	{R: 170, G: 170, B: 170},
	{R: 85, G: 85, B: 85},
	{R: 255, G: 85, B: 85},
	{R: 85, G: 255, B: 85},
	{R: 255, G: 255, B: 85},
	{R: 85, G: 85, B: 255},
	{R: 255, G: 85, B: 255},
	{R: 85, G: 255, B: 255},
	{R: 255, G: 255, B: 255},
}

// ANSIColors returns standard ANSI colors as full Color structs.
var ANSIColors = func() []Color {
	colors := make([]Color, 16)
	for i := 0; i < 16; i++ {
		colors[i] = StandardColor(i)
	}
	return colors
}()

// Get256ColorRGB returns the RGB values for a 256-color palette index: the
// first 16 are the ANSI colors, 16-231 are a 6x6x6 color cube, 232-255 are
// a grayscale ramp.
func Get256ColorRGB(idx int) RGB {
	if idx < 0 {
		idx = 0
	} else if idx > 255 {
		idx = 255
	}
	switch {
	case idx < 16:
		return ANSIColorsRGB[idx]
	case idx < 232:
		idx -= 16
		b := idx % 6
		g := (idx / 6) % 6
		r := idx / 36
		return RGB{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51)}
	default:
		gray := uint8((idx-232)*10 + 8)
		return RGB{R: gray, G: gray, B: gray}
	}
}

// ToHex returns the color as a hex string like "#RRGGBB".
func (c Color) ToHex() string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

func hexByte(b uint8) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[b>>4], hex[b&0x0F]})
}

// ParseHexColor parses a hex color string in "#RRGGBB" or "#RGB" form,
// the format zutty's dynamic-color query/set (OSC 4/10/11) accepts.
func ParseHexColor(s string) (Color, bool) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, false
	}
	s = s[1:]
	var r, g, b uint8
	switch len(s) {
	case 3:
		r = parseHexNibble(s[0]) * 17
		g = parseHexNibble(s[1]) * 17
		b = parseHexNibble(s[2]) * 17
	case 6:
		r = parseHexNibble(s[0])<<4 | parseHexNibble(s[1])
		g = parseHexNibble(s[2])<<4 | parseHexNibble(s[3])
		b = parseHexNibble(s[4])<<4 | parseHexNibble(s[5])
	default:
		return Color{}, false
	}
	return TrueColor(r, g, b), true
}

// ToRGBSpec renders the color the way zutty answers an OSC 10/11/4 query:
// "rgb:rrrr/gggg/bbbb" with each 8-bit component doubled to 16 bits.
func (c Color) ToRGBSpec() string {
	dbl := func(b uint8) string {
		const hex = "0123456789abcdef"
		hi, lo := hex[b>>4], hex[b&0x0F]
		return string([]byte{hi, lo, hi, lo})
	}
	return "rgb:" + dbl(c.R) + "/" + dbl(c.G) + "/" + dbl(c.B)
}

func parseHexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// BlinkMode determines how the blink attribute is rendered by a host.
type BlinkMode int

const (
	BlinkModeBlink  BlinkMode = iota // traditional on/off blinking
	BlinkModeBounce                  // bobbing-wave animation
	BlinkModeBright                  // interpret as bright background (VGA style)
)

// ColorScheme defines the colors used by the terminal for both dark and
// light modes. DECSCNM (CSI ?5h / CSI ?5l) swaps between them.
type ColorScheme struct {
	DarkForeground Color
	DarkBackground Color
	DarkPalette    []Color

	LightForeground Color
	LightBackground Color
	LightPalette    []Color

	Cursor    Color
	Selection Color
	BlinkMode BlinkMode
}

// Foreground returns the foreground color for the specified mode.
func (s ColorScheme) Foreground(isDark bool) Color {
	if isDark {
		return s.DarkForeground
	}
	return s.LightForeground
}

// Background returns the background color for the specified mode.
func (s ColorScheme) Background(isDark bool) Color {
	if isDark {
		return s.DarkBackground
	}
	return s.LightBackground
}

// Palette returns the 16-color palette for the specified mode.
func (s ColorScheme) Palette(isDark bool) []Color {
	if isDark {
		return s.DarkPalette
	}
	return s.LightPalette
}

// ResolveColor resolves a color using the appropriate palette based on mode.
func (s ColorScheme) ResolveColor(c Color, isFg bool, isDark bool) Color {
	palette := s.Palette(isDark)

	switch c.Type {
	case ColorTypeDefault:
		if isFg {
			return s.Foreground(isDark)
		}
		return s.Background(isDark)
	case ColorTypeStandard:
		idx := int(c.Index)
		if idx >= 0 && idx < len(palette) {
			return palette[idx]
		}
		if idx >= 0 && idx < len(ANSIColors) {
			return ANSIColors[idx]
		}
	case ColorTypePalette:
		idx := int(c.Index)
		if idx < 16 && idx < len(palette) {
			return palette[idx]
		}
	}
	return c
}

// DefaultColorScheme returns a color scheme with both dark and light mode
// colors set to the classic VGA-derived defaults.
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		DarkForeground: TrueColor(212, 212, 212),
		DarkBackground: TrueColor(30, 30, 30),
		DarkPalette:    ANSIColors,

		LightForeground: TrueColor(30, 30, 30),
		LightBackground: TrueColor(255, 255, 255),
		LightPalette:    ANSIColors,

		Cursor:    TrueColor(255, 255, 255),
		Selection: TrueColor(68, 68, 68),
	}
}
