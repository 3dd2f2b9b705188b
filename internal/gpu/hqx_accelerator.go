// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/hqx"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// maxStorageBytes is the largest storage binding requested by a pass.
// It matches the WebGPU default maxStorageBufferBindingSize.
const maxStorageBytes = 128 << 20

// gpuTimeout bounds the fence wait for one pass.
const gpuTimeout = 5 * time.Second

// HQxAccelerator runs HQx passes as a wgpu/hal compute dispatch with one
// invocation per output pixel. It implements hqx.GPUAccelerator.
//
// Passes are serialized on the device; each pass uploads the source and
// LUT, dispatches once and reads the output back.
type HQxAccelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	adapterName    string
	gpuReady       bool
	externalDevice bool // true when using a shared device (don't destroy on Close)
}

var _ hqx.GPUAccelerator = (*HQxAccelerator)(nil)

// acceleratorName is reported by Name and attached to log records.
const acceleratorName = "hqx-wgpu"

// Name implements hqx.GPUAccelerator.
func (a *HQxAccelerator) Name() string { return acceleratorName }

// Init opens a Vulkan device and builds the compute pipeline.
// It returns an error when no usable GPU is present, so the accelerator
// is never registered without a device.
func (a *HQxAccelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gpuReady {
		return nil
	}
	if err := a.initGPU(); err != nil {
		a.releaseLocked()
		return fmt.Errorf("gpu-hqx: %w", err)
	}
	return nil
}

// Close releases all GPU resources.
func (a *HQxAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
}

// SetLogger implements the logger propagation hook used by hqx.SetLogger.
func (a *HQxAccelerator) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// AdapterName returns the name of the GPU in use, or "" before Init.
func (a *HQxAccelerator) AdapterName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.adapterName
}

// CanAccelerate implements hqx.GPUAccelerator.
func (a *HQxAccelerator) CanAccelerate(cfg hqx.Config, outWidth, outHeight int) bool {
	a.mu.Lock()
	ready := a.gpuReady
	a.mu.Unlock()
	if !ready || cfg.Validate() != nil {
		return false
	}
	return fitsStorage(outWidth, outHeight)
}

func fitsStorage(w, h int) bool {
	return w > 0 && h > 0 && w*h*4 <= maxStorageBytes
}

// SetDeviceProvider switches the accelerator to a shared GPU device from
// an external provider. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func (a *HQxAccelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("gpu-hqx: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("gpu-hqx: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("gpu-hqx: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseLocked()
	a.device = device
	a.queue = queue
	a.externalDevice = true
	a.adapterName = "shared"

	if err := a.createPipeline(); err != nil {
		a.gpuReady = false
		return fmt.Errorf("gpu-hqx: create pipeline with shared device: %w", err)
	}
	a.gpuReady = true
	slogger().Info("gpu-hqx: switched to shared GPU device")
	return nil
}

// Upscale implements hqx.GPUAccelerator.
func (a *HQxAccelerator) Upscale(ctx context.Context, dst, src *hqx.Image, lut *hqx.LUT, cfg hqx.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if lut == nil || lut.Scale() != cfg.Scale {
		return hqx.ErrScaleMismatch
	}
	srcW, srcH := src.Size()
	outW, outH := dst.Size()
	if outW != srcW*cfg.Scale || outH != srcH*cfg.Scale {
		return fmt.Errorf("%w: destination is %dx%d, want %dx%d",
			hqx.ErrInvalidDimensions, outW, outH, srcW*cfg.Scale, srcH*cfg.Scale)
	}
	if !fitsStorage(outW, outH) {
		return hqx.ErrFallbackToCPU
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return hqx.ErrFallbackToCPU
	}

	start := time.Now()
	if err := a.dispatch(dst, src, lut, cfg); err != nil {
		return err
	}
	slogger().Debug("gpu-hqx: pass complete",
		"width", outW, "height", outH, "scale", cfg.Scale, "elapsed", time.Since(start))
	return nil
}

// passBuffers holds the per-pass GPU buffers.
type passBuffers struct {
	params  hal.Buffer
	src     hal.Buffer
	lut     hal.Buffer
	out     hal.Buffer
	staging hal.Buffer
}

func (a *HQxAccelerator) destroyBuffers(b *passBuffers) {
	for _, buf := range []hal.Buffer{b.params, b.src, b.lut, b.out, b.staging} {
		if buf != nil {
			a.device.DestroyBuffer(buf)
		}
	}
}

func (a *HQxAccelerator) createBuffer(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := a.device.CreateBuffer(&hal.BufferDescriptor{Label: label, Size: size, Usage: usage})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	return buf, nil
}

// dispatch uploads inputs, runs the kernel and reads the result into dst.
func (a *HQxAccelerator) dispatch(dst, src *hqx.Image, lut *hqx.LUT, cfg hqx.Config) error {
	srcW, srcH := src.Size()
	outW, outH := dst.Size()
	paramsBytes := packParams(uint32(srcW), uint32(srcH), cfg) //nolint:gosec // dimensions always fit uint32
	srcBytes := packSource(src)
	lutBytes := lut.Bytes()
	outSize := uint64(outW) * uint64(outH) * 4 //nolint:gosec // bounded by maxStorageBytes

	var bufs passBuffers
	defer a.destroyBuffers(&bufs)

	var err error
	if bufs.params, err = a.createBuffer("hqx_params", uint64(len(paramsBytes)),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if bufs.src, err = a.createBuffer("hqx_src", uint64(len(srcBytes)),
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if bufs.lut, err = a.createBuffer("hqx_lut", uint64(len(lutBytes)),
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if bufs.out, err = a.createBuffer("hqx_out", outSize,
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc); err != nil {
		return err
	}
	if bufs.staging, err = a.createBuffer("hqx_staging", outSize,
		gputypes.BufferUsageMapRead|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}

	a.queue.WriteBuffer(bufs.params, 0, paramsBytes)
	a.queue.WriteBuffer(bufs.src, 0, srcBytes)
	a.queue.WriteBuffer(bufs.lut, 0, lutBytes)

	bg, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "hqx_bind", Layout: a.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: bufs.params.NativeHandle(), Offset: 0, Size: uint64(len(paramsBytes))}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: bufs.src.NativeHandle(), Offset: 0, Size: uint64(len(srcBytes))}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: bufs.lut.NativeHandle(), Offset: 0, Size: uint64(len(lutBytes))}},
			{Binding: 3, Resource: gputypes.BufferBinding{Buffer: bufs.out.NativeHandle(), Offset: 0, Size: outSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer a.device.DestroyBindGroup(bg)

	readback, err := a.submit(bg, bufs.out, bufs.staging, uint32(outW), uint32(outH), outSize) //nolint:gosec // dimensions always fit uint32
	if err != nil {
		return err
	}
	unpackOutput(readback, dst)
	return nil
}

// submit encodes one compute pass plus the readback copy, waits for the
// fence and returns the output bytes.
func (a *HQxAccelerator) submit(bg hal.BindGroup, out, staging hal.Buffer, w, h uint32, size uint64) ([]byte, error) {
	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "hqx_encoder"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("hqx_pass"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "hqx_pass"})
	pass.SetPipeline(a.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch(dispatchSize(w), dispatchSize(h), 1)
	pass.End()

	encoder.CopyBufferToBuffer(out, staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: size},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)
	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, size)
	if err := a.queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}
	return readback, nil
}

func (a *HQxAccelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue
	if err := a.createPipeline(); err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	a.adapterName = selected.Info.Name
	a.gpuReady = true
	slogger().Info("gpu-hqx: GPU accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

func (a *HQxAccelerator) createPipeline() error {
	code, err := CompileHQxShader()
	if err != nil {
		return err
	}
	shader, err := createShaderModule(a.device, "hqx", code)
	if err != nil {
		return fmt.Errorf("create hqx shader module: %w", err)
	}
	a.shader = shader

	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "hqx_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 3, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "hqx_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "hqx_pipeline", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	a.pipeline = pipeline
	return nil
}

func (a *HQxAccelerator) destroyPipeline() {
	if a.device == nil {
		return
	}
	if a.pipeline != nil {
		a.device.DestroyComputePipeline(a.pipeline)
		a.pipeline = nil
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
		a.shader = nil
	}
}

// releaseLocked destroys the pipeline and, unless shared, the device.
// Callers must hold a.mu.
func (a *HQxAccelerator) releaseLocked() {
	a.destroyPipeline()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
		}
		if a.instance != nil {
			a.instance.Destroy()
		}
	}
	a.device = nil
	a.instance = nil
	a.queue = nil
	a.adapterName = ""
	a.gpuReady = false
	a.externalDevice = false
}
