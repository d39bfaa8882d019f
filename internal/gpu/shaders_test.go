//go:build !nogpu

package gpu

import (
	"strings"
	"testing"
)

func TestEmbeddedShaderSource(t *testing.T) {
	if err := validateShaderSources(); err != nil {
		t.Fatalf("validateShaderSources: %v", err)
	}

	// The entry point name and workgroup size are part of the pipeline
	// contract; the dispatcher references both.
	if !strings.Contains(juliaShaderSource, "fn julia") {
		t.Error("julia shader is missing its entry point")
	}
	if !strings.Contains(juliaShaderSource, "@workgroup_size(8, 8, 1)") {
		t.Error("julia shader workgroup size is not 8x8x1")
	}
	if !strings.Contains(juliaShaderSource, "num_workgroups") {
		t.Error("julia shader no longer derives resolution from the workgroup count")
	}
}

// TestShaderQuantizationRule pins the unorm store to floor(c*255 + 0.5).
// WGSL round() is half-to-even and can diverge from the CPU path by one
// LSB when an f32 product lands exactly on a half.
func TestShaderQuantizationRule(t *testing.T) {
	if !strings.Contains(juliaShaderSource, "floor(color * 255.0 + 0.5)") {
		t.Error("julia shader does not quantize with floor(c*255 + 0.5)")
	}
	if strings.Contains(juliaShaderSource, "round(color") {
		t.Error("julia shader quantizes with round(), which is half-to-even in WGSL")
	}
}

func TestCompileSPIRV(t *testing.T) {
	words, err := CompileSPIRV(juliaShaderSource)
	if err != nil {
		t.Skipf("naga unavailable: %v", err)
	}
	if len(words) == 0 {
		t.Fatal("CompileSPIRV returned no code")
	}
	// SPIR-V magic number.
	if words[0] != 0x07230203 {
		t.Errorf("SPIR-V magic = %#x, want 0x07230203", words[0])
	}
}

func TestCompileSPIRVInvalid(t *testing.T) {
	if _, err := CompileSPIRV("not wgsl at all {"); err == nil {
		t.Error("CompileSPIRV accepted invalid source")
	}
}
