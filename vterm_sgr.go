package purfectvt

// csi_SGR: Select Graphic Rendition. Parameters are processed in order;
// 38/48 consume following sub-parameters for 256-color/truecolor.
func (v *Vterm) csi_SGR() {
	p := &v.parser
	n := p.argCount()
	if n == 0 {
		v.resetAttrs()
		return
	}
	for i := 0; i < n; i++ {
		code := p.arg(i, 0)
		switch {
		case code == 0:
			v.resetAttrs()
		case code == 1:
			v.attrs.Bold = true
		case code == 3:
			v.attrs.Italic = true
		case code == 4:
			v.attrs.Underline = true
		case code == 7:
			v.attrs.Inverse = true
		case code == 22:
			v.attrs.Bold = false
		case code == 23:
			v.attrs.Italic = false
		case code == 24:
			v.attrs.Underline = false
		case code == 27:
			v.attrs.Inverse = false
		case code == 39:
			v.attrs.Fg = DefaultForeground
		case code == 49:
			v.attrs.Bg = DefaultBackground
		case code >= 30 && code <= 37:
			v.attrs.Fg = StandardColor(code - 30)
		case code >= 90 && code <= 97:
			v.attrs.Fg = StandardColor(code - 90 + 8)
		case code >= 40 && code <= 47:
			v.attrs.Bg = StandardColor(code - 40)
		case code >= 100 && code <= 107:
			v.attrs.Bg = StandardColor(code - 100 + 8)
		case code == 38:
			i = v.parseExtendedColor(i, &v.attrs.Fg)
		case code == 48:
			i = v.parseExtendedColor(i, &v.attrs.Bg)
		}
	}
}

// parseExtendedColor handles the 38/48 ; 5 ; idx (256-color) and
// 38/48 ; 2 ; r ; g ; b (truecolor) sub-parameter forms, returning the
// index of the last sub-parameter consumed.
func (v *Vterm) parseExtendedColor(i int, dst *Color) int {
	p := &v.parser
	if i+1 >= p.argCount() {
		return i
	}
	switch p.arg(i+1, 0) {
	case 5:
		if i+2 < p.argCount() {
			*dst = PaletteColor(p.arg(i+2, 0))
			return i + 2
		}
	case 2:
		if i+4 < p.argCount() {
			r := uint8(p.arg(i+2, 0))
			g := uint8(p.arg(i+3, 0))
			b := uint8(p.arg(i+4, 0))
			*dst = TrueColor(r, g, b)
			return i + 4
		}
	}
	return i
}
