// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the render-target layer that captures are built on.
//
// # Key Principle
//
// render RECEIVES surfaces and devices from the host engine, it does NOT
// drive rendering itself. Cameras of the host draw into RenderTargets; this
// package only describes, creates, copies and reads those targets.
//
// # Core Types
//
//   - RenderTarget: where rendering output goes (PixmapTarget, TextureTarget)
//   - Display: the visible output, used to size offscreen surfaces
//   - SurfaceDescriptor: size, color format and depth precision of a surface
//   - Registry: named surface backends selected by priority
//   - DeviceHandle: GPU device access from the host application
//
// # Primitives
//
//   - Blit: copy one CPU target into another without scaling
//   - ReadPixels: copy a CPU target into a fresh *image.RGBA
//
// Example:
//
//	desc := render.NewSurfaceDescriptor(1920, 1080)
//	surface, err := render.DefaultRegistry().NewSurface(desc)
//	if err != nil {
//	    return err
//	}
//	// ... host renders into surface ...
//	img, err := render.ReadPixels(surface)
//
// # Thread Safety
//
// Targets are NOT thread-safe. The Registry is safe for concurrent use.
package render
