// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/texgen"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("texcanvas: canvas is closed")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("texcanvas: nil DeviceProvider")
)

// textureDestroyer is the interface for destroying uploaded textures.
type textureDestroyer interface {
	Destroy()
}

// Canvas pairs a texgen.Texture with its uploaded GPU counterpart.
// Generate refreshes the pixels; RenderTo uploads them when dirty and draws.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	tex      *texgen.Texture
	kernel   texgen.KernelID
	provider gpucontext.DeviceProvider
	texture  any // lazily created GPU texture
	dirty    bool
	closed   bool
}

// New creates a canvas whose texture is width x height pixels. Dimensions
// must be a multiple of texgen.TileSize in both axes so the kernel grid
// covers the texture exactly.
//
// The provider's GPU device is offered to the texgen accelerator so kernel
// dispatch and display can share one device; failure to share is non-fatal.
func New(provider gpucontext.DeviceProvider, width, height int) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if _, err := texgen.ShapeFor(width, height); err != nil {
		return nil, err
	}
	tex, err := texgen.NewTexture(width, height)
	if err != nil {
		return nil, err
	}

	// Accelerator may not be registered or may not support sharing.
	_ = texgen.SetAcceleratorDeviceProvider(provider)

	return &Canvas{
		tex:      tex,
		kernel:   texgen.KernelJulia,
		provider: provider,
	}, nil
}

// SetKernel selects the kernel used by Generate.
func (c *Canvas) SetKernel(id texgen.KernelID) {
	c.kernel = id
}

// Texture returns the CPU-side texture backing the canvas.
func (c *Canvas) Texture() *texgen.Texture {
	return c.tex
}

// Provider returns the device provider the canvas was created with.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	return c.provider
}

// Generate runs the selected kernel over the texture and marks the GPU
// copy stale so the next RenderTo uploads fresh pixels.
func (c *Canvas) Generate() error {
	if c.closed {
		return ErrCanvasClosed
	}
	if err := texgen.Render(c.tex, c.kernel); err != nil {
		return fmt.Errorf("texcanvas: generate: %w", err)
	}
	c.dirty = true
	return nil
}

// Close releases the uploaded texture. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.texture != nil {
		if destroyer, ok := c.texture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		c.texture = nil
	}
	return nil
}
