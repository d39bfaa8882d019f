// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texcanvas displays texgen textures through a gpucontext window.
//
// It owns the kernel-to-screen pipeline the library itself stays out of:
// generate into a texgen.Texture, upload the pixels as a GPU texture via
// gpucontext.TextureCreator, and draw it each frame through a
// gpucontext.TextureDrawer.
//
// Typical usage:
//
//	canvas, err := texcanvas.New(app.GPUContextProvider(), 1280, 720)
//	if err != nil { ... }
//	canvas.Generate()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
package texcanvas
