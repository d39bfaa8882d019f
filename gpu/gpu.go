//go:build !nogpu

// Package gpu registers the wgpu compute accelerator for GPU kernel
// dispatch.
//
// Import this package to run built-in kernels as WGSL compute shaders.
// Device bring-up happens on first use; if no Vulkan device is available,
// rendering silently falls back to the CPU worker pool.
//
// Usage:
//
//	import _ "github.com/gogpu/texgen/gpu" // enable GPU dispatch
package gpu

import (
	"github.com/gogpu/texgen"
	gpuimpl "github.com/gogpu/texgen/internal/gpu"
)

func init() {
	accel := &gpuimpl.Accelerator{}
	if err := texgen.RegisterAccelerator(accel); err != nil {
		texgen.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider configures the accelerator to use a shared GPU device
// from an external provider (e.g., a gogpu window) instead of creating a
// standalone Vulkan device. The provider must expose HAL device and queue
// access.
func SetDeviceProvider(provider any) error {
	return texgen.SetAcceleratorDeviceProvider(provider)
}
