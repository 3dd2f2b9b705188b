//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/hqx"
)

func TestSetDeviceProviderNil(t *testing.T) {
	if err := SetDeviceProvider(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("SetDeviceProvider(nil) = %v, want ErrNilProvider", err)
	}
}

func TestAvailableMatchesRegistry(t *testing.T) {
	if got, want := Available(), hqx.Accelerator() != nil; got != want {
		t.Errorf("Available() = %v, want %v", got, want)
	}
	if a := hqx.Accelerator(); a != nil && a.Name() != "hqx-wgpu" {
		t.Errorf("registered accelerator = %q, want hqx-wgpu", a.Name())
	}
}
