package hqx

import (
	"fmt"
	"image"
	"image/color"
)

// Sampler provides read access to a 2D grid of texels.
//
// Texel must implement clamp-to-edge addressing: coordinates outside the
// grid read the nearest edge texel. Implementations must be safe for
// concurrent reads and must not change during a pass.
type Sampler interface {
	// Size returns the grid dimensions in texels.
	Size() (width, height int)

	// Texel returns the color at (x, y) with clamp-to-edge addressing.
	Texel(x, y int) RGB
}

// Image is a grid of RGB texels stored as float32 triples.
//
// Image is the source and destination type of the filter. It is safe for
// concurrent reads; writes require external synchronization, except that
// distinct pixels may be written concurrently.
type Image struct {
	width  int
	height int
	pix    []float32 // RGB, 3 floats per texel, row-major
}

var _ Sampler = (*Image)(nil)

// NewImage creates a black image with the given dimensions.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Image{
		width:  width,
		height: height,
		pix:    make([]float32, width*height*3),
	}, nil
}

// FromImage converts a standard library image. Alpha is discarded.
func FromImage(img image.Image) (*Image, error) {
	b := img.Bounds()
	m, err := NewImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	// Fast path for the common decoder output.
	if n, ok := img.(*image.NRGBA); ok {
		for y := range m.height {
			row := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := range m.width {
				m.Set(x, y, RGB{
					R: float32(row[x*4+0]) / 255,
					G: float32(row[x*4+1]) / 255,
					B: float32(row[x*4+2]) / 255,
				})
			}
		}
		return m, nil
	}

	for y := range m.height {
		for x := range m.width {
			m.Set(x, y, FromColor(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return m, nil
}

// Width returns the image width.
func (m *Image) Width() int {
	return m.width
}

// Height returns the image height.
func (m *Image) Height() int {
	return m.height
}

// Size implements Sampler.
func (m *Image) Size() (int, int) {
	return m.width, m.height
}

// Pix returns the raw RGB float data.
func (m *Image) Pix() []float32 {
	return m.pix
}

// Texel implements Sampler with clamp-to-edge addressing.
func (m *Image) Texel(x, y int) RGB {
	x = clampInt(x, 0, m.width-1)
	y = clampInt(y, 0, m.height-1)
	i := (y*m.width + x) * 3
	return RGB{m.pix[i], m.pix[i+1], m.pix[i+2]}
}

// Set stores a texel. Out-of-bounds writes are ignored.
func (m *Image) Set(x, y int, c RGB) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	i := (y*m.width + x) * 3
	m.pix[i] = c.R
	m.pix[i+1] = c.G
	m.pix[i+2] = c.B
}

// Fill sets every texel to c.
func (m *Image) Fill(c RGB) {
	for i := 0; i < len(m.pix); i += 3 {
		m.pix[i] = c.R
		m.pix[i+1] = c.G
		m.pix[i+2] = c.B
	}
}

// Equal reports whether both images have the same size and bit-identical
// texels.
func (m *Image) Equal(o *Image) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i, v := range m.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}

// ToNRGBA converts the image to 8-bit NRGBA with alpha fixed at 255.
func (m *Image) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	for y := range m.height {
		for x := range m.width {
			c := m.Texel(x, y).NRGBA()
			o := img.PixOffset(x, y)
			img.Pix[o+0] = c.R
			img.Pix[o+1] = c.G
			img.Pix[o+2] = c.B
			img.Pix[o+3] = 255
		}
	}
	return img
}

// At implements the image.Image interface.
func (m *Image) At(x, y int) color.Color {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return color.NRGBA{}
	}
	return m.Texel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// ColorModel implements the image.Image interface.
func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}
