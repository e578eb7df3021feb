package grob

import (
	"image/color"
	"math"
)

// Color is a fill or stroke color with red, green, blue and alpha
// components, each in the range [0, 1]. Colors are comparable values.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black = Color{R: 0, G: 0, B: 0, A: 1}
	White = Color{R: 1, G: 1, B: 1, A: 1}

	// NoColor disables filling or stroking.
	NoColor = Color{}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Gray creates an opaque gray level.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v, A: 1.0}
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return NoColor
	}
	// color.Color is premultiplied.
	return Color{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: float64(a) / 65535,
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without '#'.
// The second result is false if the string is not a valid hex color.
func Hex(hex string) (Color, bool) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255
	ok := true

	switch len(hex) {
	case 3:
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) &&
			parseHex(hex[2:3], &b) && parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) &&
			parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		return Black, false
	}
	if !ok {
		return Black, false
	}

	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, true
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Visible reports whether drawing with c has any effect.
func (c Color) Visible() bool {
	return c.A > 0
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Std converts c to the standard color.Color interface.
func (c Color) Std() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

func clamp255(x float64) float64 {
	return math.Max(0, math.Min(255, math.Round(x)))
}
