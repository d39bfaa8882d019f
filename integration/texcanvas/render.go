// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Rendering errors.
var (
	// ErrInvalidDrawContext is returned when the uploaded texture cannot be
	// drawn through gpucontext.TextureDrawer.
	ErrInvalidDrawContext = errors.New("texcanvas: texture is not a gpucontext.Texture")

	// ErrInvalidRenderer is returned when the draw context exposes no
	// gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("texcanvas: dc exposes no gpucontext.TextureCreator")
)

// RenderTo draws the canvas texture at the origin of the draw context,
// uploading pixels first if Generate ran since the last upload.
//
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer().
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToPosition(dc, 0, 0)
}

// RenderToPosition draws the canvas texture at (x, y).
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if c.closed {
		return ErrCanvasClosed
	}

	if c.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		tex, err := creator.NewTextureFromRGBA(c.tex.Width(), c.tex.Height(), c.tex.Pix())
		if err != nil {
			return fmt.Errorf("texcanvas: NewTextureFromRGBA failed: %w", err)
		}
		c.texture = tex
		c.dirty = false
	} else if c.dirty {
		updater, ok := c.texture.(gpucontext.TextureUpdater)
		if !ok {
			// No in-place update path: recreate on next frame.
			if destroyer, ok := c.texture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
			c.texture = nil
			return c.RenderToPosition(dc, x, y)
		}
		if err := updater.UpdateData(c.tex.Pix()); err != nil {
			return fmt.Errorf("texcanvas: texture update failed: %w", err)
		}
		c.dirty = false
	}

	gpuTex, ok := c.texture.(gpucontext.Texture)
	if !ok {
		return ErrInvalidDrawContext
	}
	return dc.DrawTexture(gpuTex, x, y)
}
