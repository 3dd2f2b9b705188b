package hqx

import (
	"fmt"
)

// Supported upscale factors. Scale 1 is accepted so that an identity LUT
// can be used as a passthrough.
const (
	MinScale = 1
	MaxScale = 4
)

// DefaultThresholds are the per-channel edge thresholds {48, 7, 6} on a
// 0-255 scale.
var DefaultThresholds = Thresholds255(48, 7, 6)

// Thresholds255 builds a threshold triple from values on a 0-255 scale.
func Thresholds255(y, u, v float32) YUV {
	return YUV{Y: y / 255, U: u / 255, V: v / 255}
}

// Config is the immutable per-pass configuration of the filter.
//
// A Config is passed by value into every pass, so passes with different
// thresholds or matrices can run concurrently without interfering.
type Config struct {
	// Scale is the integer upscale factor. It must match the LUT row stride
	// (16*Scale*Scale rows).
	Scale int

	// Thresholds are the per-channel |a-b| limits above which two converted
	// colors are considered different. Comparison is strict.
	Thresholds YUV

	// Matrix converts RGB into the space the thresholds apply to.
	Matrix YUVMatrix
}

// DefaultConfig returns the reference configuration for the given scale.
func DefaultConfig(scale int) Config {
	return Config{
		Scale:      scale,
		Thresholds: DefaultThresholds,
		Matrix:     DefaultYUVMatrix,
	}
}

// Validate reports whether the configuration can drive a pass.
func (c Config) Validate() error {
	if c.Scale < MinScale || c.Scale > MaxScale {
		return fmt.Errorf("%w: %d", ErrInvalidScale, c.Scale)
	}
	if c.Thresholds.Y < 0 || c.Thresholds.U < 0 || c.Thresholds.V < 0 {
		return fmt.Errorf("hqx: negative threshold %+v", c.Thresholds)
	}
	return nil
}

// LUTRows returns the number of LUT rows required by the scale.
func (c Config) LUTRows() int {
	return lutRowsFor(c.Scale)
}

func lutRowsFor(scale int) int {
	return CrossPatterns * scale * scale
}
