package hqx

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
)

// Filter runs HQx upscaling passes with a fixed configuration and LUT.
//
// A Filter is safe for concurrent use. Concurrent passes share the CPU
// worker pool and the registered GPU accelerator; each pass writes only
// its own destination image. Close waits for running passes to finish.
//
// With ModeAuto and a registered accelerator, large passes run on the GPU,
// which classifies and blends 8-bit texels. Sources holding colors that are
// not exact multiples of 1/255 may then differ slightly from a CPU pass.
// Use WithMode(ModeCPU) when results must not depend on the host.
type Filter struct {
	kernel *Kernel
	opts   options
	cpu    *softwareBackend

	// mu is held for reading by each pass and for writing by Close.
	mu     sync.RWMutex
	closed bool
}

// New creates a filter. The LUT's scale must equal cfg.Scale.
//
// Example:
//
//	lut, err := hqx.LoadLUT("resources/hq2x.png", 2)
//	if err != nil { ... }
//	f, err := hqx.New(lut, hqx.DefaultConfig(2))
//	if err != nil { ... }
//	defer f.Close()
//	out, err := f.Upscale(ctx, src)
func New(lut *LUT, cfg Config, opts ...Option) (*Filter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	k, err := NewKernel(cfg, lut)
	if err != nil {
		return nil, err
	}
	if o.strictLUT {
		if err := lut.CheckWeights(); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		kernel: k,
		opts:   o,
		cpu:    newSoftwareBackend(o.workers),
	}
	Logger().Debug("hqx: filter created",
		"scale", cfg.Scale, "mode", o.mode.String(), "workers", f.cpu.workers())
	return f, nil
}

// Config returns the filter configuration.
func (f *Filter) Config() Config {
	return f.kernel.Config()
}

// Kernel returns the per-pixel kernel used by the CPU backend.
func (f *Filter) Kernel() *Kernel {
	return f.kernel
}

// OutputSize returns the size of the image produced for a source of the
// given size.
func (f *Filter) OutputSize(width, height int) (int, int) {
	s := f.kernel.cfg.Scale
	return width * s, height * s
}

// Upscale runs one pass over src and returns the scaled image.
func (f *Filter) Upscale(ctx context.Context, src *Image) (*Image, error) {
	w, h := f.OutputSize(src.Width(), src.Height())
	dst, err := NewImage(w, h)
	if err != nil {
		return nil, err
	}
	if err := f.UpscaleInto(ctx, dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// UpscaleImage converts a standard library image, upscales it and returns
// an opaque NRGBA result.
func (f *Filter) UpscaleImage(ctx context.Context, img image.Image) (*image.NRGBA, error) {
	src, err := FromImage(img)
	if err != nil {
		return nil, err
	}
	dst, err := f.Upscale(ctx, src)
	if err != nil {
		return nil, err
	}
	return dst.ToNRGBA(), nil
}

// UpscaleInto runs one pass over src writing into dst, which must be
// exactly scale times larger than src on both axes.
//
// src must not be modified while the pass runs. If ctx is cancelled the
// pass stops between tiles, dst is left partially written and ctx.Err()
// is returned.
func (f *Filter) UpscaleInto(ctx context.Context, dst, src *Image) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return ErrClosed
	}
	w, h := f.OutputSize(src.Width(), src.Height())
	if dst.Width() != w || dst.Height() != h {
		return fmt.Errorf("%w: destination is %dx%d, want %dx%d",
			ErrInvalidDimensions, dst.Width(), dst.Height(), w, h)
	}

	log := Logger()
	mode, a, err := f.resolveMode(w, h)
	if err != nil {
		return err
	}

	if mode == ModeGPU {
		err := a.Upscale(ctx, dst, src, f.kernel.lut, f.kernel.cfg)
		switch {
		case err == nil:
			log.Debug("hqx: pass complete", "backend", a.Name(), "width", w, "height", h)
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, ErrFallbackToCPU):
			log.Debug("hqx: accelerator declined pass", "backend", a.Name())
		default:
			log.Warn("hqx: GPU pass failed, falling back to CPU", "backend", a.Name(), "err", err)
		}
	}

	if err := f.cpu.upscale(ctx, f.kernel, dst, src); err != nil {
		return err
	}
	log.Debug("hqx: pass complete", "backend", "cpu", "width", w, "height", h)
	return nil
}

// resolveMode picks the backend for a pass of w x h output pixels.
func (f *Filter) resolveMode(w, h int) (ExecMode, GPUAccelerator, error) {
	if f.opts.mode == ModeCPU {
		return ModeCPU, nil, nil
	}

	a := Accelerator()
	if a == nil {
		if f.opts.mode == ModeGPU {
			return ModeCPU, nil, ErrNoAccelerator
		}
		return ModeCPU, nil, nil
	}

	capable := a.CanAccelerate(f.kernel.cfg, w, h)
	if f.opts.mode == ModeGPU {
		if !capable {
			Logger().Debug("hqx: accelerator cannot run pass", "backend", a.Name(), "width", w, "height", h)
			return ModeCPU, nil, nil
		}
		return ModeGPU, a, nil
	}

	if SelectMode(w*h, capable) == ModeGPU {
		return ModeGPU, a, nil
	}
	return ModeCPU, nil, nil
}

// Close waits for running passes, then releases the CPU worker pool.
// Passes started after Close return ErrClosed. The registered accelerator
// is owned globally and is not closed. Close is safe to call multiple times.
func (f *Filter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	f.cpu.close()
}
