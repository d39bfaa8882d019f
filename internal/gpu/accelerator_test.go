//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/texgen"
)

func TestAcceleratorCanAccelerate(t *testing.T) {
	var a Accelerator
	if !a.CanAccelerate(texgen.KernelJulia) {
		t.Error("CanAccelerate(KernelJulia) = false")
	}
	if a.CanAccelerate(texgen.KernelID(99)) {
		t.Error("CanAccelerate(99) = true")
	}
}

func TestAcceleratorName(t *testing.T) {
	var a Accelerator
	if got := a.Name(); got != "wgpu-compute" {
		t.Errorf("Name() = %q, want %q", got, "wgpu-compute")
	}
}

func TestAcceleratorRenderUnknownKernel(t *testing.T) {
	var a Accelerator
	tex, _ := texgen.NewTexture(8, 8)
	err := a.Render(tex, texgen.DispatchShape{TilesX: 1, TilesY: 1}, texgen.KernelID(99))
	if !errors.Is(err, texgen.ErrFallbackToCPU) {
		t.Errorf("Render with unknown kernel = %v, want ErrFallbackToCPU", err)
	}
}

func TestAcceleratorRender(t *testing.T) {
	a := &Accelerator{}
	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer a.Close()

	tex, _ := texgen.NewTexture(16, 16)
	shape, _ := texgen.ShapeFor(16, 16)
	err := a.Render(tex, shape, texgen.KernelJulia)
	if errors.Is(err, texgen.ErrFallbackToCPU) {
		t.Skipf("GPU unavailable: %v", err)
	}
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got, want := tex.RGBA8At(8, 8), ([4]uint8{128, 128, 255, 255}); got != want {
		t.Errorf("pixel (8,8) = %v, want %v", got, want)
	}
}

// TestAcceleratorInitFailureRemembered verifies that after one failed device
// bring-up subsequent renders fall back immediately.
func TestAcceleratorInitFailureRemembered(t *testing.T) {
	a := &Accelerator{}
	defer a.Close()

	tex, _ := texgen.NewTexture(8, 8)
	shape := texgen.DispatchShape{TilesX: 1, TilesY: 1}

	first := a.Render(tex, shape, texgen.KernelJulia)
	if first == nil {
		t.Skip("GPU available; failure path not reachable")
	}
	if !errors.Is(first, texgen.ErrFallbackToCPU) {
		t.Fatalf("first Render = %v, want ErrFallbackToCPU", first)
	}

	second := a.Render(tex, shape, texgen.KernelJulia)
	if !errors.Is(second, texgen.ErrFallbackToCPU) {
		t.Errorf("second Render = %v, want ErrFallbackToCPU", second)
	}
}

func TestAcceleratorSetDeviceProviderRejectsForeign(t *testing.T) {
	var a Accelerator
	if err := a.SetDeviceProvider(struct{}{}); err == nil {
		t.Error("SetDeviceProvider accepted a provider without HAL access")
	}
}
