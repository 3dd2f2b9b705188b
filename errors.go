package hqx

import "errors"

// Errors returned while setting up a pass. The per-pixel kernel itself
// has no error states.
var (
	// ErrInvalidScale is returned when the upscale factor is outside
	// [MinScale, MaxScale].
	ErrInvalidScale = errors.New("hqx: invalid scale")

	// ErrInvalidDimensions is returned when an image has a non-positive size.
	ErrInvalidDimensions = errors.New("hqx: invalid dimensions")

	// ErrLUTDimensions is returned when a LUT is not 256 x 16*scale^2.
	ErrLUTDimensions = errors.New("hqx: LUT dimensions do not match scale")

	// ErrZeroWeights is returned by strict LUT validation when an entry's
	// weights sum to zero.
	ErrZeroWeights = errors.New("hqx: LUT entry has zero weight sum")

	// ErrNilLUT is returned when a filter is created without a LUT.
	ErrNilLUT = errors.New("hqx: LUT must not be nil")

	// ErrScaleMismatch is returned when the configured scale differs from
	// the LUT's scale.
	ErrScaleMismatch = errors.New("hqx: config scale does not match LUT")

	// ErrClosed is returned when a pass is started on a closed Filter.
	ErrClosed = errors.New("hqx: filter is closed")

	// ErrNoAccelerator is returned in ModeGPU when no accelerator is registered.
	ErrNoAccelerator = errors.New("hqx: no GPU accelerator registered")
)
