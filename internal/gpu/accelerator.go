//go:build !nogpu

package gpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/texgen"
)

// Accelerator dispatches built-in kernels on the GPU. It implements
// texgen.Accelerator and texgen.DeviceProviderAware.
//
// Device initialization is deferred until the first Render or until
// SetDeviceProvider supplies a shared device, so registering the
// accelerator never creates a Vulkan device that an external DX12/Metal
// provider would later have to coexist with.
type Accelerator struct {
	mu sync.Mutex

	dispatcher *Dispatcher
	initTried  bool
}

// Interface compliance checks.
var _ texgen.Accelerator = (*Accelerator)(nil)
var _ texgen.DeviceProviderAware = (*Accelerator)(nil)

// Name returns the accelerator identifier.
func (a *Accelerator) Name() string { return "wgpu-compute" }

// Init registers the accelerator. Device bring-up is lazy; see the type
// comment.
func (a *Accelerator) Init() error {
	return nil
}

// Close releases all GPU resources held by the accelerator.
func (a *Accelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dispatcher != nil {
		a.dispatcher.Close()
		a.dispatcher = nil
	}
	a.initTried = false
}

// SetLogger sets the logger for the GPU packages.
// Called by texgen.SetLogger to propagate logging configuration.
func (a *Accelerator) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// CanAccelerate reports whether a shader exists for the kernel.
func (a *Accelerator) CanAccelerate(id texgen.KernelID) bool {
	return id == texgen.KernelJulia
}

// Render dispatches the kernel on the GPU and reads the result into tex.
// Returns texgen.ErrFallbackToCPU when no usable GPU is available.
func (a *Accelerator) Render(tex *texgen.Texture, shape texgen.DispatchShape, id texgen.KernelID) error {
	if id != texgen.KernelJulia {
		return texgen.ErrFallbackToCPU
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureDispatcherLocked(); err != nil {
		return fmt.Errorf("%w: %v", texgen.ErrFallbackToCPU, err)
	}
	return a.dispatcher.Dispatch(tex, shape)
}

// SetDeviceProvider switches the accelerator to a shared GPU device from an
// external provider. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func (a *Accelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu-compute: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu-compute: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu-compute: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dispatcher == nil {
		a.dispatcher = &Dispatcher{}
	}
	a.initTried = true
	if err := a.dispatcher.SetDevice(device, queue); err != nil {
		slogger().Warn("wgpu-compute: shared device pipeline init failed", "error", err)
		return err
	}
	return nil
}

// ensureDispatcherLocked lazily brings up a standalone device. The first
// failure is remembered so every Render afterwards falls back immediately
// instead of re-probing the system.
func (a *Accelerator) ensureDispatcherLocked() error {
	if a.dispatcher != nil && a.dispatcher.Ready() {
		return nil
	}
	if a.initTried {
		return ErrNotInitialized
	}
	a.initTried = true

	d := &Dispatcher{}
	if err := d.Init(); err != nil {
		slogger().Warn("wgpu-compute: GPU init failed, CPU dispatch will be used", "error", err)
		return err
	}
	a.dispatcher = d
	return nil
}
