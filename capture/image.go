// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"image"
	"image/color"
)

// Image is a captured frame: 8-bit-per-channel RGBA pixels, not
// premultiplied by the capture path, plus the frame size.
//
// An Image is immutable. It owns its pixels and shares no memory with the
// surface it was read from, so later captures never change it.
type Image struct {
	width  int
	height int
	pix    []byte
}

// newImage takes ownership of rgba, which must not be used afterwards.
func newImage(rgba *image.RGBA) *Image {
	b := rgba.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := rgba.Pix
	if rgba.Stride != w*4 || b.Min != (image.Point{}) {
		pix = make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			copy(pix[y*w*4:(y+1)*w*4], rgba.Pix[rgba.PixOffset(b.Min.X, b.Min.Y+y):])
		}
	}
	return &Image{width: w, height: h, pix: pix}
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// Pix returns a copy of the pixel data, 4 bytes per pixel, rows packed.
func (m *Image) Pix() []byte {
	out := make([]byte, len(m.pix))
	copy(out, m.pix)
	return out
}

// RGBA returns a copy of the image as *image.RGBA.
func (m *Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    m.Pix(),
		Stride: m.width * 4,
		Rect:   image.Rect(0, 0, m.width, m.height),
	}
}

// RGBAAt returns the color of the pixel at (x, y).
// Out-of-bounds coordinates return transparent black.
func (m *Image) RGBAAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return color.RGBA{}
	}
	i := (y*m.width + x) * 4
	return color.RGBA{m.pix[i], m.pix[i+1], m.pix[i+2], m.pix[i+3]}
}

// At implements the image.Image interface.
func (m *Image) At(x, y int) color.Color {
	return m.RGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// ColorModel implements the image.Image interface.
func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}

var _ image.Image = (*Image)(nil)
