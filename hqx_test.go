package hqx

import (
	"math"
	"testing"
)

const eps = 1e-5

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= eps
}

func approxRGB(a, b RGB) bool {
	return approx(a.R, b.R) && approx(a.G, b.G) && approx(a.B, b.B)
}

// mustImage builds an image from rows of gray levels.
func mustImage(t testing.TB, rows [][]float32) *Image {
	t.Helper()
	m, err := NewImage(len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	for y, row := range rows {
		for x, v := range row {
			m.Set(x, y, Gray(v))
		}
	}
	return m
}

// checkerboard returns the 2x2 black/white checkerboard
//
//	B W
//	W B
func checkerboard(t testing.TB) *Image {
	return mustImage(t, [][]float32{
		{0, 1},
		{1, 0},
	})
}

// syntheticLUT puts all weight on the center for edge pattern 0 and
// weights 2:1:0:1 (center, diagonal, horizontal, vertical) everywhere else.
func syntheticLUT(t testing.TB, scale int) *LUT {
	t.Helper()
	rows := CrossPatterns * scale * scale
	pix := make([]byte, EdgePatterns*rows*4)
	for row := range rows {
		for col := range EdgePatterns {
			i := (row*EdgePatterns + col) * 4
			if col == 0 {
				copy(pix[i:], []byte{255, 0, 0, 0})
			} else {
				copy(pix[i:], []byte{128, 64, 0, 64})
			}
		}
	}
	lut, err := NewLUT(scale, pix)
	if err != nil {
		t.Fatalf("NewLUT: %v", err)
	}
	return lut
}

// noiseImage returns a deterministic pseudo-random color image.
func noiseImage(t testing.TB, w, h int) *Image {
	t.Helper()
	m, err := NewImage(w, h)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	seed := uint32(2463534242)
	next := func() float32 {
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		return float32(seed%256) / 255
	}
	for y := range h {
		for x := range w {
			m.Set(x, y, RGB{next(), next(), next()})
		}
	}
	return m
}
