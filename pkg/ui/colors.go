package ui

import (
	"image/color"

	"github.com/mazznoer/csscolorparser"
)

// ParseColor parses any CSS color notation, falling back when value is invalid
func ParseColor(value string, fallback color.Color) color.NRGBA {
	c, err := csscolorparser.Parse(value)
	if err != nil {
		r, g, b, a := fallback.RGBA()
		if a == 0 {
			return color.NRGBA{}
		}
		// RGBA is alpha premultiplied
		return color.NRGBA{
			R: uint8(r * 0xff / a),
			G: uint8(g * 0xff / a),
			B: uint8(b * 0xff / a),
			A: uint8(a >> 8),
		}
	}

	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Translucent applies a transparency in [0,1] where 1 is fully transparent
func Translucent(c color.NRGBA, transparency float64) color.NRGBA {
	if transparency < 0 {
		transparency = 0
	}
	if transparency > 1 {
		transparency = 1
	}
	c.A = uint8(float64(c.A) * (1 - transparency))
	return c
}
