// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

// Command texdemo renders the built-in texture kernel through both the CPU
// worker pool and the GPU compute path and compares the results.
//
// Output:
//
//	tmp/texdemo_cpu.png      — CPU dispatch output
//	tmp/texdemo_gpu.png      — GPU compute output (when a GPU is available)
//	tmp/texdemo_preview.png  — upscaled 64x64 probe for visual inspection
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/texgen"
	gpuimpl "github.com/gogpu/texgen/internal/gpu"
)

const (
	// probeSize is the resolution of the upscaled preview probe.
	probeSize = 64

	// previewScale enlarges the probe so individual texels are visible.
	previewScale = 8
)

func main() {
	width := flag.Int("width", 1280, "output width in pixels (multiple of 8)")
	height := flag.Int("height", 720, "output height in pixels (multiple of 8)")
	outDir := flag.String("out", "tmp", "output directory")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		texgen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	shape, err := texgen.ShapeFor(*width, *height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("texgen Kernel Demo")
	fmt.Println("==================")
	fmt.Printf("Resolution: %dx%d (%dx%d tiles)\n\n", *width, *height, shape.TilesX, shape.TilesY)

	// CPU dispatch.
	cpuTex, err := texgen.NewTexture(*width, *height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	cpuStart := time.Now()
	texgen.Dispatch(shape, texgen.Julia, cpuTex)
	fmt.Printf("CPU (worker pool)... %v ✓\n", time.Since(cpuStart).Round(100*time.Microsecond))

	// GPU dispatch.
	gpuTex, gpuDur, gpuErr := renderGPU(*width, *height, shape)
	if gpuErr != nil {
		fmt.Printf("GPU (wgpu compute)... SKIP (%v)\n", gpuErr)
	} else {
		fmt.Printf("GPU (wgpu compute)... %v ✓\n", gpuDur.Round(100*time.Microsecond))
	}
	fmt.Println()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: cannot create %s/: %v\n", *outDir, err)
		os.Exit(1)
	}

	cpuPath := filepath.Join(*outDir, "texdemo_cpu.png")
	if err := cpuTex.SavePNG(cpuPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: save CPU image: %v\n", err)
		os.Exit(1)
	}

	previewPath := filepath.Join(*outDir, "texdemo_preview.png")
	if err := savePreview(previewPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: save preview: %v\n", err)
		os.Exit(1)
	}

	if gpuTex == nil {
		fmt.Println("Output:")
		fmt.Printf("  CPU:     %s\n", cpuPath)
		fmt.Printf("  Preview: %s\n", previewPath)
		fmt.Println("  GPU:     (skipped - no GPU)")
		return
	}

	gpuPath := filepath.Join(*outDir, "texdemo_gpu.png")
	if err := gpuTex.SavePNG(gpuPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: save GPU image: %v\n", err)
		os.Exit(1)
	}

	diffCount := comparePixels(cpuTex, gpuTex)
	totalPixels := *width * *height
	fmt.Println("Comparison:")
	fmt.Printf("  Pixel diff: %d / %d\n", diffCount, totalPixels)

	// Diagnostic pixels along the diagonal and edges.
	probes := [][2]int{
		{0, 0},
		{*width / 2, *height / 2},
		{*width - 1, *height - 1},
		{0, *height - 1},
		{*width - 1, 0},
	}
	fmt.Println("  Diagnostic pixels:")
	for _, p := range probes {
		ca := cpuTex.RGBA8At(p[0], p[1])
		cb := gpuTex.RGBA8At(p[0], p[1])
		match := "OK"
		if ca != cb {
			match = "DIFF"
		}
		fmt.Printf("    (%4d,%4d) CPU=(%3d,%3d,%3d,%3d) GPU=(%3d,%3d,%3d,%3d) %s\n",
			p[0], p[1], ca[0], ca[1], ca[2], ca[3], cb[0], cb[1], cb[2], cb[3], match)
	}
	fmt.Println()

	fmt.Println("Output:")
	fmt.Printf("  CPU:     %s\n", cpuPath)
	fmt.Printf("  GPU:     %s\n", gpuPath)
	fmt.Printf("  Preview: %s\n", previewPath)

	if diffCount > 0 {
		os.Exit(1)
	}
}

// renderGPU dispatches the kernel through the wgpu compute accelerator.
// Returns a nil texture if no GPU is available.
func renderGPU(width, height int, shape texgen.DispatchShape) (*texgen.Texture, time.Duration, error) {
	tex, err := texgen.NewTexture(width, height)
	if err != nil {
		return nil, 0, err
	}

	accel := &gpuimpl.Accelerator{}
	if err := accel.Init(); err != nil {
		return nil, 0, fmt.Errorf("GPU init: %w", err)
	}
	defer accel.Close()

	start := time.Now()
	if err := accel.Render(tex, shape, texgen.KernelJulia); err != nil {
		return nil, 0, err
	}
	return tex, time.Since(start), nil
}

// comparePixels returns the number of differing pixels between two
// equally-sized textures.
func comparePixels(a, b *texgen.Texture) int {
	count := 0
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.RGBA8At(x, y) != b.RGBA8At(x, y) {
				count++
			}
		}
	}
	return count
}

// savePreview renders a small probe texture and upscales it with
// nearest-neighbor so each texel is a visible block.
func savePreview(path string) error {
	probe, err := texgen.NewTexture(probeSize, probeSize)
	if err != nil {
		return err
	}
	shape, err := texgen.ShapeFor(probeSize, probeSize)
	if err != nil {
		return err
	}
	texgen.DispatchSerial(shape, texgen.Julia, probe)

	src := probe.ToImage()
	dst := image.NewRGBA(image.Rect(0, 0, probeSize*previewScale, probeSize*previewScale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out, err := texgen.NewTexture(dst.Bounds().Dx(), dst.Bounds().Dy())
	if err != nil {
		return err
	}
	copy(out.Pix(), dst.Pix)
	return out.SavePNG(path)
}
