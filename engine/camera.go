// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"sync"

	"github.com/gogpu/ggshot/render"
)

// DrawFunc draws a camera's view of frame into target.
type DrawFunc func(target render.RenderTarget, frame uint64)

// Camera draws part of the scene every frame.
//
// A camera with no target texture draws into the engine's backbuffer, which
// ends up on the display. Camera implements capture.Camera.
type Camera struct {
	name string
	draw DrawFunc

	mu     sync.Mutex
	target render.RenderTarget
}

// NewCamera creates a camera. draw may be nil for a camera that renders
// nothing.
func NewCamera(name string, draw DrawFunc) *Camera {
	return &Camera{name: name, draw: draw}
}

// Name returns the camera name.
func (c *Camera) Name() string {
	return c.name
}

// TargetTexture returns the camera's render target, nil for the display.
func (c *Camera) TargetTexture() render.RenderTarget {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// SetTargetTexture points the camera at t; nil selects the display.
func (c *Camera) SetTargetTexture(t render.RenderTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = t
}

func (c *Camera) render(backbuffer render.RenderTarget, frame uint64) {
	if c.draw == nil {
		return
	}
	target := c.TargetTexture()
	if target == nil {
		target = backbuffer
	}
	c.draw(target, frame)
}
