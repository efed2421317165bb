// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// RenderTarget defines where rendering output goes.
//
// A RenderTarget is an abstraction over different rendering destinations:
//   - PixmapTarget: CPU-backed *image.RGBA, readable without a GPU
//   - TextureTarget: GPU texture for offscreen rendering
//
// Targets may support CPU access (Pixels), GPU access (TextureView), or both.
// Readback (ReadPixels) requires CPU access.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// TextureView returns the GPU texture view for this target.
	// Returns nil for CPU-only targets.
	TextureView() TextureView

	// Pixels returns direct access to pixel data.
	// Returns nil for GPU-only targets.
	// For RGBA format, each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// Display reports the current dimensions of the visible output.
// Hosts implement it so that offscreen surfaces can be sized to match.
type Display interface {
	Width() int
	Height() int
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	target.Clear(color.White)
//	img := target.Image()
type PixmapTarget struct {
	img   *image.RGBA
	depth gputypes.TextureFormat
	label string
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// DepthFormat returns the depth attachment format the target was described
// with, or TextureFormatUndefined when it has none.
func (t *PixmapTarget) DepthFormat() gputypes.TextureFormat {
	return t.depth
}

// Label returns the debug label given at creation.
func (t *PixmapTarget) Label() string {
	return t.label
}

// TextureView returns nil as this is a CPU-only target.
func (t *PixmapTarget) TextureView() TextureView {
	return nil
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)

	pix := t.img.Pix
	if len(pix) == 0 {
		return
	}
	// Fill the first row, then double it across the rest of the buffer.
	w := t.Width()
	for x := 0; x < w; x++ {
		i := x * 4
		pix[i+0] = rgba.R
		pix[i+1] = rgba.G
		pix[i+2] = rgba.B
		pix[i+3] = rgba.A
	}
	row := pix[:w*4]
	for y := 1; y < t.Height(); y++ {
		copy(pix[y*t.img.Stride:], row)
	}
}

// SetPixel sets a single pixel at the given coordinates.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	t.img.Set(x, y, c)
}

// GetPixel returns the color at the given coordinates.
func (t *PixmapTarget) GetPixel(x, y int) color.Color {
	return t.img.At(x, y)
}

// Resize replaces the backing image with one of the given dimensions.
// The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Ensure PixmapTarget implements RenderTarget and Display.
var (
	_ RenderTarget = (*PixmapTarget)(nil)
	_ Display      = (*PixmapTarget)(nil)
)

// TextureTarget is a render target living on a host GPU device.
//
// It allocates nothing itself. A host that owns the texture attaches its
// view with AttachView, and Destroy releases that view. It has no
// CPU-visible pixels: Pixels returns nil and ReadPixels fails with
// ErrNotReadable. The texture backend is only present in a registry when a
// host registers it with TextureFactory and its own DeviceHandle.
type TextureTarget struct {
	width  int
	height int
	format gputypes.TextureFormat
	depth  gputypes.TextureFormat
	view   TextureView
	handle DeviceHandle
}

// NewTextureTarget creates a GPU texture render target on the device of handle.
func NewTextureTarget(handle DeviceHandle, desc SurfaceDescriptor) (*TextureTarget, error) {
	if handle == nil {
		return nil, ErrNilDevice
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &TextureTarget{
		width:  desc.Width,
		height: desc.Height,
		format: desc.Format,
		depth:  desc.DepthFormat,
		handle: handle,
	}, nil
}

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int {
	return t.width
}

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int {
	return t.height
}

// Format returns the pixel format.
func (t *TextureTarget) Format() gputypes.TextureFormat {
	return t.format
}

// DepthFormat returns the depth attachment format.
func (t *TextureTarget) DepthFormat() gputypes.TextureFormat {
	return t.depth
}

// Device returns the handle the texture was created on.
func (t *TextureTarget) Device() DeviceHandle {
	return t.handle
}

// TextureView returns the attached GPU texture view, or nil.
func (t *TextureTarget) TextureView() TextureView {
	return t.view
}

// AttachView sets the host texture view backing t. A previously attached
// view is destroyed.
func (t *TextureTarget) AttachView(v TextureView) {
	if t.view != nil && t.view != v {
		t.view.Destroy()
	}
	t.view = v
}

// Pixels returns nil as this is a GPU-only target.
func (t *TextureTarget) Pixels() []byte {
	return nil
}

// Stride returns 0 as this is a GPU-only target.
func (t *TextureTarget) Stride() int {
	return 0
}

// Destroy releases the attached view. It is safe to call more than once.
func (t *TextureTarget) Destroy() {
	if t.view != nil {
		t.view.Destroy()
		t.view = nil
	}
}

// Ensure TextureTarget implements RenderTarget.
var _ RenderTarget = (*TextureTarget)(nil)
