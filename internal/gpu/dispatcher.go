//go:build !nogpu

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/texgen"
)

// fenceTimeout is the maximum time to wait for GPU work to complete.
const fenceTimeout = 5 * time.Second

// Dispatcher owns the HAL device and the compute pipeline for the kernel
// shader. One workgroup covers one 8x8 tile; the dispatch size in tiles
// comes straight from texgen.DispatchShape.
//
// Dispatcher is not safe for concurrent use; Accelerator serializes access.
type Dispatcher struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	ready          bool
	externalDevice bool // true when using a shared device (don't destroy on Close)
}

// Init brings up a standalone Vulkan device and builds the kernel pipeline.
func (d *Dispatcher) Init() error {
	if err := validateShaderSources(); err != nil {
		return err
	}

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	d.instance = instance

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
	d.device = openDev.Device
	d.queue = openDev.Queue

	if err := d.createPipeline(); err != nil {
		d.device.Destroy()
		d.device = nil
		d.queue = nil
		return fmt.Errorf("create pipeline: %w", err)
	}

	d.ready = true
	slogger().Info("texgen-gpu: dispatcher initialized", "adapter", selected.Info.Name)
	return nil
}

// SetDevice switches the dispatcher to a shared device and queue owned by
// an external provider. Existing owned resources are released first.
func (d *Dispatcher) SetDevice(device hal.Device, queue hal.Queue) error {
	d.destroyPipeline()
	if !d.externalDevice && d.device != nil {
		d.device.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}

	d.device = device
	d.queue = queue
	d.externalDevice = true

	if err := d.createPipeline(); err != nil {
		d.ready = false
		return fmt.Errorf("create pipeline with shared device: %w", err)
	}
	d.ready = true
	slogger().Debug("texgen-gpu: switched to shared GPU device")
	return nil
}

// Ready reports whether the dispatcher can accept work.
func (d *Dispatcher) Ready() bool { return d.ready }

// Close releases all GPU resources held by the dispatcher.
func (d *Dispatcher) Close() {
	d.destroyPipeline()
	if !d.externalDevice {
		if d.device != nil {
			d.device.Destroy()
			d.device = nil
		}
		if d.instance != nil {
			d.instance.Destroy()
			d.instance = nil
		}
	} else {
		// Shared resources are not ours to destroy.
		d.device = nil
		d.instance = nil
	}
	d.queue = nil
	d.ready = false
	d.externalDevice = false
}

// Dispatch executes the kernel over shape's grid and reads the result back
// into tex. The pixel buffer is bound at group 0, binding 0 — the kernel's
// single resource slot. No uniforms are uploaded: the shader derives the
// resolution from its workgroup count.
//
// The shape is taken at face value. A dispatch larger than the texture
// would write past the buffer the caller sized, so the buffer here is sized
// from the shape and only the texture's extent is copied back; a smaller
// dispatch leaves the remaining texels untouched.
func (d *Dispatcher) Dispatch(tex *texgen.Texture, shape texgen.DispatchShape) error {
	if !d.ready {
		return ErrNotInitialized
	}
	if tex == nil {
		return ErrNilTexture
	}
	if shape.TilesX == 0 || shape.TilesY == 0 {
		return ErrEmptyDispatch
	}

	start := time.Now()
	w, h := shape.Resolution()
	pixelBufSize := uint64(w) * uint64(h) * 4

	storageBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "texgen_pixels", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create storage buffer: %w", err)
	}
	defer d.device.DestroyBuffer(storageBuf)

	stagingBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "texgen_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(stagingBuf)

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "texgen_bind", Layout: d.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: storageBuf.NativeHandle(), Offset: 0, Size: pixelBufSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer d.device.DestroyBindGroup(bindGroup)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "texgen_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("texgen_dispatch"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "texgen_pass"})
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch(shape.TilesX, shape.TilesY, 1)
	pass.End()

	encoder.CopyBufferToBuffer(storageBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)
	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, pixelBufSize)
	if err := d.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}

	// Copy back only the extent the texture actually covers.
	copyW, copyH := tex.Width(), tex.Height()
	if copyW > w {
		copyW = w
	}
	if copyH > h {
		copyH = h
	}
	if copyW == w && copyW == tex.Width() && copyH == tex.Height() {
		unpackPixels(readback, tex.Pix(), copyW*copyH)
	} else {
		dst := tex.Pix()
		for y := 0; y < copyH; y++ {
			unpackPixels(readback[y*w*4:], dst[y*tex.Width()*4:], copyW)
		}
	}

	slogger().Debug("texgen-gpu: dispatch complete",
		"tiles_x", shape.TilesX, "tiles_y", shape.TilesY,
		"duration", time.Since(start))
	return nil
}

func (d *Dispatcher) createPipeline() error {
	shader, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "texgen_julia",
		Source: hal.ShaderSource{WGSL: juliaShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile julia shader: %w", err)
	}
	d.shader = shader

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "texgen_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	d.bindLayout = bindLayout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "texgen_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{d.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "texgen_julia_pipeline", Layout: d.pipeLayout,
		Compute: hal.ComputeState{Module: d.shader, EntryPoint: "julia"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	d.pipeline = pipeline

	return nil
}

func (d *Dispatcher) destroyPipeline() {
	if d.device == nil {
		return
	}
	if d.pipeline != nil {
		d.device.DestroyComputePipeline(d.pipeline)
		d.pipeline = nil
	}
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.bindLayout != nil {
		d.device.DestroyBindGroupLayout(d.bindLayout)
		d.bindLayout = nil
	}
	if d.shader != nil {
		d.device.DestroyShaderModule(d.shader)
		d.shader = nil
	}
}
