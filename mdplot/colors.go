package mdplot

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/vg/draw"
)

//Some internal convenience functions for styling.

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var r, g, b float64
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

//Color returns the color of the series key out of steps. The hues are spread
//from red to violet, skipping the yellows, which are hard to see on white.
func Color(key, steps int) color.Color {
	if steps < 1 {
		steps = 1
	}
	hp := float64(key)*260.0/float64(steps) + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	r, g, b := iHVS2RGB(h, 0.85, 1)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

//faded returns c, half transparent.
func faded(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 110}
}

//glyph returns the marker shape for the series n. Shapes are reused after
//the fourth.
func glyph(n int) draw.GlyphDrawer {
	switch n % 4 {
	case 0:
		return draw.PyramidGlyph{}
	case 1:
		return draw.CircleGlyph{}
	case 2:
		return draw.SquareGlyph{}
	default:
		return draw.CrossGlyph{}
	}
}
