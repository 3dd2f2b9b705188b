package hqx

import (
	"context"
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the GPU accelerator cannot handle this pass.
// The caller should transparently fall back to the software backend.
var ErrFallbackToCPU = errors.New("hqx: falling back to CPU rendering")

// GPUAccelerator is an optional GPU backend that runs the filter as a
// compute dispatch over the output grid.
//
// When registered via RegisterAccelerator, a Filter tries the accelerator
// first (subject to its ExecMode). If the accelerator returns
// ErrFallbackToCPU or any other error, the pass transparently runs on the
// CPU instead.
//
// Implementations are provided by GPU backend packages. Users opt in via
// blank import:
//
//	import _ "github.com/gogpu/hqx/gpu" // enables GPU acceleration
type GPUAccelerator interface {
	// Name returns the accelerator name (e.g., "hqx-wgpu").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// CanAccelerate reports whether a pass with the given configuration and
	// output size can run on the GPU. This is a fast check used to skip
	// the GPU entirely.
	CanAccelerate(cfg Config, outWidth, outHeight int) bool

	// Upscale runs one full pass, writing every pixel of dst.
	// dst is (src width*cfg.Scale) x (src height*cfg.Scale).
	// Returns ErrFallbackToCPU if the pass cannot be GPU-accelerated.
	Upscale(ctx context.Context, dst, src *Image, lut *LUT, cfg Config) error
}

// DeviceProviderAware is an optional interface for accelerators that can
// share a GPU device with an external provider. When SetDeviceProvider is
// called, the accelerator reuses the provided device instead of creating
// its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   GPUAccelerator
)

// RegisterAccelerator registers a GPU accelerator.
//
// Only one accelerator can be registered. Subsequent calls replace (and
// close) the previous one. The accelerator's Init method is called during
// registration; if it fails, the accelerator is not registered and the
// error is returned.
func RegisterAccelerator(a GPUAccelerator) error {
	if a == nil {
		return errors.New("hqx: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())

	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// UnregisterAccelerator removes and closes the registered accelerator.
func UnregisterAccelerator() {
	accelMu.Lock()
	old := accel
	accel = nil
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
}

// Accelerator returns the currently registered GPU accelerator, or nil.
func Accelerator() GPUAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider passes a device provider to the registered
// accelerator, enabling GPU device sharing. If no accelerator is registered
// or it does not support device sharing, this is a no-op.
func SetAcceleratorDeviceProvider(provider any) error {
	a := Accelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
