package hqx

import "fmt"

// Kernel evaluates the filter for single output pixels.
//
// Kernel holds only immutable state and is safe for concurrent use.
type Kernel struct {
	cfg Config
	lut *LUT
}

// NewKernel binds a configuration to a LUT. The LUT's scale must match
// cfg.Scale.
func NewKernel(cfg Config, lut *LUT) (*Kernel, error) {
	if lut == nil {
		return nil, ErrNilLUT
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lut.Scale() != cfg.Scale {
		return nil, fmt.Errorf("%w: config %d, LUT %d", ErrScaleMismatch, cfg.Scale, lut.Scale())
	}
	return &Kernel{cfg: cfg, lut: lut}, nil
}

// Config returns the kernel configuration.
func (k *Kernel) Config() Config {
	return k.cfg
}

// LUT returns the kernel's lookup table.
func (k *Kernel) LUT() *LUT {
	return k.lut
}

// Sample converts the 3x3 block around texel (tx, ty).
func (k *Kernel) Sample(src Sampler, tx, ty int) Neighborhood {
	var n Neighborhood
	i := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n[i] = k.cfg.Matrix.Convert(src.Texel(tx+dx, ty+dy))
			i++
		}
	}
	return n
}

// Address classifies the texel (tx, ty) and returns the LUT address for
// the sub-position (fx, fy).
func (k *Kernel) Address(src Sampler, tx, ty int, fx, fy float32) Address {
	n := k.Sample(src, tx, ty)
	edge, cross := Classify(&n, k.cfg.Thresholds)
	q := QuadrantIndex(fx, fy, k.cfg.Scale)
	return ComposeAddress(edge, cross, q, k.cfg.Scale)
}

// Shade computes output pixel (ox, oy) of the upscaled image.
func (k *Kernel) Shade(src Sampler, ox, oy int) RGB {
	tx, fx := SubPixel(ox, k.cfg.Scale)
	ty, fy := SubPixel(oy, k.cfg.Scale)

	addr := k.Address(src, tx, ty, fx, fy)
	w := k.lut.Weights(addr)
	return Blend(w, Candidates(src, tx, ty, fx, fy))
}

// ShadeRect computes the output pixels in [x0,x1) x [y0,y1) into dst.
func (k *Kernel) ShadeRect(dst *Image, src Sampler, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.Set(x, y, k.Shade(src, x, y))
		}
	}
}
