// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// Blit copies src into dst, anchored at the top-left corner.
//
// When the sizes differ only the overlapping region is copied; no scaling is
// done. Both targets must support CPU access.
func Blit(src, dst RenderTarget) error {
	if src == nil || dst == nil {
		return ErrNilTarget
	}
	s, err := AsRGBA(src)
	if err != nil {
		return err
	}
	d, err := AsRGBA(dst)
	if err != nil {
		return err
	}
	draw.Copy(d, image.Point{}, s, s.Bounds(), draw.Src, nil)
	return nil
}

// ReadPixels copies the contents of t into a newly allocated *image.RGBA.
//
// The result does not share memory with t. BGRA targets are swizzled so the
// result is always R, G, B, A byte order.
func ReadPixels(t RenderTarget) (*image.RGBA, error) {
	if t == nil {
		return nil, ErrNilTarget
	}
	src, err := AsRGBA(t)
	if err != nil {
		return nil, err
	}

	w, h := t.Width(), t.Height()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+w*4], src.Pix[y*src.Stride:])
	}
	if t.Format() == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i+3 < len(out.Pix); i += 4 {
			out.Pix[i], out.Pix[i+2] = out.Pix[i+2], out.Pix[i]
		}
	}
	return out, nil
}

// AsRGBA returns an *image.RGBA sharing memory with a CPU target.
// It fails with ErrNotReadable for GPU-only targets.
func AsRGBA(t RenderTarget) (*image.RGBA, error) {
	if p, ok := t.(*PixmapTarget); ok {
		return p.img, nil
	}
	pix := t.Pixels()
	if pix == nil {
		return nil, ErrNotReadable
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: t.Stride(),
		Rect:   image.Rect(0, 0, t.Width(), t.Height()),
	}, nil
}
