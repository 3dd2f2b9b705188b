package hqx

import (
	"image/color"
)

// RGB is a texel color with red, green and blue components.
// Each component is nominally in the range [0, 1]. The filter does not
// apply any gamma or color management; values are blended as given.
type RGB struct {
	R, G, B float32
}

// Common colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
)

// FromColor converts a standard color.Color to RGB.
// Alpha is discarded: premultiplied channels are un-premultiplied first so
// that translucent source pixels keep their hue.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
	}
}

// Gray returns an opaque gray level.
func Gray(v float32) RGB {
	return RGB{v, v, v}
}

// NRGBA converts the color to an opaque color.NRGBA, rounding to the
// nearest 8-bit value.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: 255,
	}
}

// RGBA implements the color.Color interface. Alpha is always fully opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// scale returns c multiplied by f.
func (c RGB) scale(f float32) RGB {
	return RGB{c.R * f, c.G * f, c.B * f}
}

// add returns the component-wise sum of c and o.
func (c RGB) add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// to8 converts a [0, 1] channel to a rounded byte.
func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
