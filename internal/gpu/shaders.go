//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// Embedded WGSL shader sources, compiled into the binary via go:embed.

//go:embed shaders/julia.wgsl
var juliaShaderSource string

// validateShaderSources checks that the embedded sources are present.
func validateShaderSources() error {
	if juliaShaderSource == "" {
		return ErrShaderSourceEmpty
	}
	return nil
}

// CompileSPIRV compiles WGSL source to SPIR-V uint32 words. Some drivers
// take SPIR-V directly; it also serves as an ahead-of-time validation pass
// for the embedded kernel source.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
