package hqx

import (
	"fmt"
	"image"
	"image/color"
)

// LUT is a read-only table of blend weights.
//
// The table is EdgePatterns (256) columns wide and 16*scale^2 rows tall.
// Each entry holds four 8-bit weights stored in R, G, B, A order; the
// weights apply to the candidate texels in the same order (center,
// diagonal, horizontal, vertical).
//
// A LUT is validated once on construction and never mutated afterwards,
// so it is safe for concurrent use by any number of passes.
type LUT struct {
	scale int
	rows  int
	pix   []uint8 // RGBA, row-major, EdgePatterns*rows*4 bytes
}

// NewLUT creates a LUT for the given scale from raw RGBA bytes.
// The data is copied. It must hold exactly 256 x 16*scale^2 entries.
func NewLUT(scale int, rgba []byte) (*LUT, error) {
	if scale < MinScale || scale > MaxScale {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScale, scale)
	}
	rows := lutRowsFor(scale)
	want := EdgePatterns * rows * 4
	if len(rgba) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d (256x%d RGBA)", ErrLUTDimensions, len(rgba), want, rows)
	}
	pix := make([]uint8, want)
	copy(pix, rgba)
	return &LUT{scale: scale, rows: rows, pix: pix}, nil
}

// InferLUTScale returns the scale whose row count matches a LUT image of
// the given dimensions.
func InferLUTScale(width, height int) (int, error) {
	if width != EdgePatterns {
		return 0, fmt.Errorf("%w: width %d, want %d", ErrLUTDimensions, width, EdgePatterns)
	}
	for s := MinScale; s <= MaxScale; s++ {
		if lutRowsFor(s) == height {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: height %d is not 16*scale^2 for any supported scale", ErrLUTDimensions, height)
}

// LUTFromImage builds a LUT from a decoded LUT image. Channels are read
// without premultiplication. If scale is 0 it is inferred from the image
// height.
func LUTFromImage(img image.Image, scale int) (*LUT, error) {
	b := img.Bounds()
	if scale == 0 {
		s, err := InferLUTScale(b.Dx(), b.Dy())
		if err != nil {
			return nil, err
		}
		scale = s
	}
	if b.Dx() != EdgePatterns || b.Dy() != lutRowsFor(scale) {
		return nil, fmt.Errorf("%w: image is %dx%d, want %dx%d for scale %d",
			ErrLUTDimensions, b.Dx(), b.Dy(), EdgePatterns, lutRowsFor(scale), scale)
	}

	rgba := make([]byte, b.Dx()*b.Dy()*4)
	if n, ok := img.(*image.NRGBA); ok {
		for y := range b.Dy() {
			start := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(rgba[y*b.Dx()*4:], n.Pix[start:start+b.Dx()*4])
		}
		return NewLUT(scale, rgba)
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rgba[i+0] = c.R
			rgba[i+1] = c.G
			rgba[i+2] = c.B
			rgba[i+3] = c.A
			i += 4
		}
	}
	return NewLUT(scale, rgba)
}

// IdentityLUT returns a LUT that puts all weight on the center candidate.
// Filtering with it is nearest-neighbor scaling; at scale 1 it returns
// the source unchanged.
func IdentityLUT(scale int) *LUT {
	return uniformLUT(scale, [4]uint8{255, 0, 0, 0})
}

// uniformLUT returns a LUT with the same weights in every entry.
func uniformLUT(scale int, w [4]uint8) *LUT {
	if scale < MinScale {
		scale = MinScale
	}
	if scale > MaxScale {
		scale = MaxScale
	}
	rows := lutRowsFor(scale)
	pix := make([]uint8, EdgePatterns*rows*4)
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:i+4], w[:])
	}
	return &LUT{scale: scale, rows: rows, pix: pix}
}

// Scale returns the upscale factor the LUT was built for.
func (l *LUT) Scale() int {
	return l.scale
}

// Rows returns the number of rows (16*scale^2).
func (l *LUT) Rows() int {
	return l.rows
}

// Bytes returns the raw RGBA table. The slice aliases the LUT's storage
// and must not be modified.
func (l *LUT) Bytes() []byte {
	return l.pix
}

// Raw returns the 8-bit weights at an address, clamping both coordinates
// to the table edges.
func (l *LUT) Raw(a Address) [4]uint8 {
	col := clampInt(a.Col, 0, EdgePatterns-1)
	row := clampInt(a.Row, 0, l.rows-1)
	i := (row*EdgePatterns + col) * 4
	return [4]uint8{l.pix[i], l.pix[i+1], l.pix[i+2], l.pix[i+3]}
}

// Weights returns the weight vector at an address as values in [0, 1].
// Lookup is exact; entries are never interpolated.
func (l *LUT) Weights(a Address) [4]float32 {
	r := l.Raw(a)
	return [4]float32{
		float32(r[0]) / 255,
		float32(r[1]) / 255,
		float32(r[2]) / 255,
		float32(r[3]) / 255,
	}
}

// CheckWeights verifies that every entry has a positive weight sum.
// The reference assets satisfy this by construction; the check is meant
// for untrusted or hand-made tables.
func (l *LUT) CheckWeights() error {
	for i := 0; i < len(l.pix); i += 4 {
		if l.pix[i]|l.pix[i+1]|l.pix[i+2]|l.pix[i+3] == 0 {
			entry := i / 4
			return fmt.Errorf("%w: col %d row %d", ErrZeroWeights, entry%EdgePatterns, entry/EdgePatterns)
		}
	}
	return nil
}

// Image returns the table as an NRGBA image, the layout of the LUT assets.
func (l *LUT) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, EdgePatterns, l.rows))
	copy(img.Pix, l.pix)
	return img
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
