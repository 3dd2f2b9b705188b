// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/hqx"
)

func TestHQxAcceleratorUninitialized(t *testing.T) {
	a := &HQxAccelerator{}
	defer a.Close()

	if a.Name() != "hqx-wgpu" {
		t.Errorf("Name() = %q", a.Name())
	}
	if a.CanAccelerate(hqx.DefaultConfig(2), 512, 512) {
		t.Error("CanAccelerate should be false before Init")
	}

	src, _ := hqx.NewImage(4, 4)
	dst, _ := hqx.NewImage(8, 8)
	err := a.Upscale(context.Background(), dst, src, hqx.IdentityLUT(2), hqx.DefaultConfig(2))
	if !errors.Is(err, hqx.ErrFallbackToCPU) {
		t.Errorf("Upscale err = %v, want ErrFallbackToCPU", err)
	}
}

func TestHQxAcceleratorUpscaleValidation(t *testing.T) {
	a := &HQxAccelerator{}
	src, _ := hqx.NewImage(4, 4)
	dst, _ := hqx.NewImage(7, 8)

	err := a.Upscale(context.Background(), dst, src, hqx.IdentityLUT(2), hqx.DefaultConfig(2))
	if !errors.Is(err, hqx.ErrInvalidDimensions) {
		t.Errorf("wrong dst size: err = %v, want ErrInvalidDimensions", err)
	}
	err = a.Upscale(context.Background(), dst, src, hqx.IdentityLUT(3), hqx.DefaultConfig(2))
	if !errors.Is(err, hqx.ErrScaleMismatch) {
		t.Errorf("LUT scale mismatch: err = %v, want ErrScaleMismatch", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Upscale(ctx, dst, src, hqx.IdentityLUT(2), hqx.DefaultConfig(2)); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: err = %v, want context.Canceled", err)
	}
}

func TestHQxAcceleratorSetDeviceProviderRejectsNonHAL(t *testing.T) {
	a := &HQxAccelerator{}
	if err := a.SetDeviceProvider(struct{}{}); err == nil {
		t.Error("SetDeviceProvider should reject a provider without HAL accessors")
	}
}

func TestFitsStorage(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{1024, 1024, true},
		{4096, 8192, true},
		{8192, 8192, false},
		{0, 10, false},
	}
	for _, tt := range tests {
		if got := fitsStorage(tt.w, tt.h); got != tt.want {
			t.Errorf("fitsStorage(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

// TestHQxAcceleratorMatchesCPU runs the same pass on the GPU and the CPU.
// The GPU works on 8-bit texels, so channels may differ by one step.
func TestHQxAcceleratorMatchesCPU(t *testing.T) {
	a := &HQxAccelerator{}
	if err := a.Init(); err != nil {
		t.Skipf("GPU not available: %v (expected in CI/test environments)", err)
	}
	defer a.Close()

	const w, h, scale = 37, 29, 3
	src := gradientImage(t, w, h)
	lut := mixedLUT(t, scale)
	cfg := hqx.DefaultConfig(scale)

	gpuOut, _ := hqx.NewImage(w*scale, h*scale)
	if err := a.Upscale(context.Background(), gpuOut, src, lut, cfg); err != nil {
		t.Fatalf("GPU Upscale: %v", err)
	}

	f, err := hqx.New(lut, cfg, hqx.WithMode(hqx.ModeCPU))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cpuOut, err := f.Upscale(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	mismatches := 0
	for y := range h * scale {
		for x := range w * scale {
			g := gpuOut.Texel(x, y).NRGBA()
			c := cpuOut.Texel(x, y).NRGBA()
			if absDiff(g.R, c.R) > 1 || absDiff(g.G, c.G) > 1 || absDiff(g.B, c.B) > 1 {
				if mismatches < 5 {
					t.Errorf("pixel (%d,%d): GPU %v, CPU %v", x, y, g, c)
				}
				mismatches++
			}
		}
	}
	if mismatches > 0 {
		t.Errorf("%d of %d pixels differ", mismatches, w*h*scale*scale)
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// gradientImage builds an image of hard-edged color bands.
func gradientImage(t *testing.T, w, h int) *hqx.Image {
	t.Helper()
	img, err := hqx.NewImage(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for y := range h {
		for x := range w {
			img.Set(x, y, hqx.RGB{
				R: float32((x/4)*40%256) / 255,
				G: float32((y/3)*70%256) / 255,
				B: float32(((x+y)/5)*25%256) / 255,
			})
		}
	}
	return img
}

// mixedLUT varies the weights by column and row so every address maps to
// a distinguishable blend.
func mixedLUT(t *testing.T, scale int) *hqx.LUT {
	t.Helper()
	rows := hqx.CrossPatterns * scale * scale
	pix := make([]byte, hqx.EdgePatterns*rows*4)
	for row := range rows {
		for col := range hqx.EdgePatterns {
			i := (row*hqx.EdgePatterns + col) * 4
			pix[i+0] = byte(64 + col%128)
			pix[i+1] = byte(col * 7 % 97)
			pix[i+2] = byte(row * 13 % 89)
			pix[i+3] = byte((col + row) % 61)
		}
	}
	lut, err := hqx.NewLUT(scale, pix)
	if err != nil {
		t.Fatal(err)
	}
	return lut
}
