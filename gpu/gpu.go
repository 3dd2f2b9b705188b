//go:build !nogpu

// Package gpu registers the wgpu compute accelerator for HQx passes.
//
// Import this package to run large passes as a compute shader. The
// accelerator uploads the source image and LUT, dispatches one invocation
// per output pixel and reads the result back.
//
// If GPU initialization fails (no Vulkan device available), the
// registration is skipped with a warning and every pass runs on the CPU.
//
// Usage:
//
//	import _ "github.com/gogpu/hqx/gpu" // enable GPU acceleration
package gpu

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/hqx"
	gpuimpl "github.com/gogpu/hqx/internal/gpu"
)

// ErrNilProvider is returned by SetDeviceProvider for a nil provider.
var ErrNilProvider = errors.New("hqx/gpu: device provider must not be nil")

func init() {
	accel := &gpuimpl.HQxAccelerator{}
	if err := hqx.RegisterAccelerator(accel); err != nil {
		hqx.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider configures the accelerator to use a shared GPU device
// from an external provider (e.g., a gogpu application). This avoids
// creating a second GPU instance.
//
// The provider must also expose HalDevice() and HalQueue() for direct HAL
// access.
func SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	if provider == nil {
		return ErrNilProvider
	}
	return hqx.SetAcceleratorDeviceProvider(provider)
}

// Available reports whether a GPU accelerator is registered.
func Available() bool {
	return hqx.Accelerator() != nil
}
