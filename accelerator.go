package texgen

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the accelerator cannot handle this dispatch.
// The caller should transparently fall back to the CPU worker pool.
var ErrFallbackToCPU = errors.New("texgen: falling back to CPU dispatch")

// Accelerator is an optional GPU execution provider for built-in kernels.
//
// When registered via RegisterAccelerator, Render tries the accelerator
// first. If it returns ErrFallbackToCPU or any error, the dispatch
// transparently falls back to the CPU pool.
//
// Implementations are provided by GPU backend packages. Users opt in via
// blank import:
//
//	import _ "github.com/gogpu/texgen/gpu" // enables GPU dispatch
type Accelerator interface {
	// Name returns the accelerator name (e.g., "wgpu-compute").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// CanAccelerate reports whether the accelerator has a shader for the
	// given kernel. This is a fast check used to skip the GPU entirely.
	CanAccelerate(id KernelID) bool

	// Render dispatches the kernel over the grid and writes the result
	// into tex. Returns ErrFallbackToCPU when the dispatch cannot run on
	// the GPU.
	Render(tex *Texture, shape DispatchShape, id KernelID) error
}

// DeviceProviderAware is an optional interface for accelerators that can
// share a GPU device with an external provider (e.g., a gogpu window)
// instead of creating their own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   Accelerator
)

// RegisterAccelerator registers a GPU accelerator for optional GPU dispatch.
//
// Only one accelerator can be registered; subsequent calls replace the
// previous one. Init() is called during registration and its error, if any,
// prevents registration.
func RegisterAccelerator(a Accelerator) error {
	if a == nil {
		return errors.New("texgen: nil accelerator")
	}
	if err := a.Init(); err != nil {
		return err
	}

	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()

	if old != nil {
		old.Close()
	}
	propagateLogger(a, Logger())
	return nil
}

// ActiveAccelerator returns the registered accelerator, or nil.
func ActiveAccelerator() Accelerator {
	accelMu.RLock()
	defer accelMu.RUnlock()
	return accel
}

// UnregisterAccelerator removes and closes the registered accelerator.
// Rendering reverts to CPU-only dispatch.
func UnregisterAccelerator() {
	accelMu.Lock()
	old := accel
	accel = nil
	accelMu.Unlock()

	if old != nil {
		old.Close()
	}
}

// SetAcceleratorDeviceProvider passes a shared GPU device provider to the
// registered accelerator, if it supports device sharing.
func SetAcceleratorDeviceProvider(provider any) error {
	a := ActiveAccelerator()
	if a == nil {
		return errors.New("texgen: no accelerator registered")
	}
	aware, ok := a.(DeviceProviderAware)
	if !ok {
		return errors.New("texgen: accelerator does not support device sharing")
	}
	return aware.SetDeviceProvider(provider)
}

// Render evaluates the built-in kernel over tex, using the registered
// accelerator when possible and the CPU worker pool otherwise.
//
// The texture dimensions must be a multiple of TileSize in both axes; the
// dispatch shape is derived with ShapeFor so the invocation grid exactly
// tiles the texture.
func Render(tex *Texture, id KernelID) error {
	if tex == nil {
		return ErrInvalidDimensions
	}
	shape, err := ShapeFor(tex.Width(), tex.Height())
	if err != nil {
		return err
	}

	if a := ActiveAccelerator(); a != nil && a.CanAccelerate(id) {
		err := a.Render(tex, shape, id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrFallbackToCPU) {
			Logger().Warn("texgen: accelerator failed, using CPU dispatch",
				"accelerator", a.Name(), "error", err)
		}
	}

	k, ok := KernelByID(id)
	if !ok {
		return ErrUnknownKernel
	}
	Dispatch(shape, k, tex)
	return nil
}
