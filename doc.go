// Package texgen generates procedural textures by evaluating a compute
// kernel once per output pixel.
//
// # Overview
//
// texgen models the execution environment of a GPU compute shader: work is
// partitioned into a 2D grid of 8x8 tiles, each invocation derives the pixel
// it owns from its position in the global grid, normalizes that position
// against the total resolution, and writes one color into a shared output
// texture. Because every invocation owns exactly one pixel, the whole
// dispatch runs without any locking.
//
// # Quick Start
//
//	import "github.com/gogpu/texgen"
//
//	tex, _ := texgen.NewTexture(1280, 720)
//	if err := texgen.Render(tex, texgen.KernelJulia); err != nil {
//	    log.Fatal(err)
//	}
//	tex.SavePNG("out.png")
//
// # Execution Backends
//
// By default kernels run on a CPU worker pool, one work item per tile.
// Importing the gpu subpackage registers a wgpu compute accelerator that
// dispatches the same kernel as a WGSL shader and reads the result back:
//
//	import _ "github.com/gogpu/texgen/gpu" // enable GPU dispatch
//
// If GPU initialization fails, rendering transparently falls back to the
// CPU pool. Both paths quantize colors identically, so output is
// bit-identical for a given resolution.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Normalized
// coordinates lie in [0,1) when the dispatch exactly covers the texture.
package texgen

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"
)
