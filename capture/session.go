// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"fmt"
	"image/color"
	"log/slog"
	"sync"

	"github.com/gogpu/ggshot"
	"github.com/gogpu/ggshot/render"
)

// Session captures the output of a set of cameras, one frame per request.
//
// A session moves between two states. Capture takes it from idle to
// pending: the cameras are redirected into the session's input surface.
// The next call to OnRenderImage reads that surface back, restores every
// camera and returns the session to idle before the result is delivered.
// A second Capture while one is pending is rejected, never queued.
//
// Session is safe for concurrent use. Its state changes are serialized by
// an internal mutex and, when configured, by the host's frame barrier.
type Session struct {
	display render.Display
	opts    options

	mu      sync.Mutex
	targets []Camera
	input   render.RenderTarget
	output  render.RenderTarget
	swap    *SwapTable
	pending *Future[*Image]
	closed  bool
	count   uint64
}

// NewSession creates a session that sizes its surfaces from display.
// Surfaces are created on the first Capture, not here.
func NewSession(display render.Display, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		display: display,
		opts:    o,
		targets: o.targets,
		swap:    NewSwapTable(),
	}
}

// SetTargets replaces the cameras captured when Capture gets no arguments.
func (s *Session) SetTargets(cams ...Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = append([]Camera(nil), cams...)
}

// Targets returns a copy of the default camera list.
func (s *Session) Targets() []Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Camera(nil), s.targets...)
}

// Pending reports whether a capture is waiting for its frame.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Capture redirects cams (or the default targets when cams is empty) into
// the session's capture surface and returns a future for the next frame.
//
// Errors matching ErrInvalidState are returned when there is nothing to
// capture, when a capture is already pending or after Close. A surface
// that cannot be created is also reported here. In every error case no
// camera is touched.
func (s *Session) Capture(cams ...Camera) (*Future[*Image], error) {
	var (
		f   *Future[*Image]
		err error
	)
	s.opts.barrier(func() {
		f, err = s.begin(cams)
	})
	return f, err
}

func (s *Session) begin(cams []Camera) (*Future[*Image], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	if len(cams) == 0 {
		cams = s.targets
	}
	cams = compactCameras(cams)
	if len(cams) == 0 {
		return nil, ErrNoTargets
	}
	if s.pending != nil {
		return nil, ErrCapturePending
	}
	if err := s.ensureSurfaces(); err != nil {
		return nil, err
	}

	if c, ok := s.input.(interface{ Clear(c color.Color) }); ok {
		c.Clear(s.opts.clearColor)
	}
	s.swap.Redirect(cams, s.input)
	s.pending = newFuture[*Image]()
	s.count++

	s.logger().Debug("capture: redirected cameras",
		"capture", s.count,
		"cameras", len(cams),
		"width", s.input.Width(),
		"height", s.input.Height())
	return s.pending, nil
}

// OnRenderImage is the render-completion handler. The host calls it once
// per frame after every camera has drawn and before the frame is presented,
// with the rendered frame src and its destination dst.
//
// src is always forwarded to dst, since dst may be shared with rendering
// that has nothing to do with the capture. When a capture is pending its
// surface is read back, every camera is restored and the session is idle
// again before the result is delivered. Nothing escapes this call: failures,
// including panics during readback, resolve the request with an error.
func (s *Session) OnRenderImage(src, dst render.RenderTarget) {
	if src != nil && dst != nil && src != dst {
		if err := render.Blit(src, dst); err != nil {
			s.logger().Debug("capture: pass-through blit skipped", "err", err)
		}
	}

	s.mu.Lock()
	f := s.pending
	if f == nil {
		s.mu.Unlock()
		return
	}
	n := s.count
	img, err := s.finish()
	s.mu.Unlock()

	if err != nil {
		s.logger().Warn("capture: readback failed", "capture", n, "err", err)
	} else {
		s.logger().Info("capture: frame captured", "capture", n,
			"width", img.Width(), "height", img.Height())
	}
	f.resolve(img, err)
}

// finish reads the capture back. Cameras are restored and the pending
// request cleared however it returns. Must be called with s.mu held.
func (s *Session) finish() (img *Image, err error) {
	defer func() {
		s.swap.Restore()
		s.pending = nil
	}()
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("capture: readback panicked: %v", r)
		}
	}()

	if err := render.Blit(s.input, s.output); err != nil {
		return nil, fmt.Errorf("capture: readback: %w", err)
	}
	rgba, err := render.ReadPixels(s.output)
	if err != nil {
		return nil, fmt.Errorf("capture: readback: %w", err)
	}
	return newImage(rgba), nil
}

// Close restores any redirected camera, fails a pending capture with
// ErrSessionClosed and releases the session's surfaces. Further captures
// fail with ErrSessionClosed.
func (s *Session) Close() error {
	var (
		f             *Future[*Image]
		input, output render.RenderTarget
	)
	s.opts.barrier(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.closed = true
		s.swap.Restore()
		f, s.pending = s.pending, nil
		input, output = s.input, s.output
		s.input, s.output = nil, nil
	})

	release(input)
	release(output)
	if f != nil {
		f.resolve(nil, ErrSessionClosed)
	}
	return nil
}

// ensureSurfaces creates the input and output surfaces on first use, sized
// to the display at that moment. Later display size changes are not
// followed; a new session picks them up. Must be called with s.mu held.
func (s *Session) ensureSurfaces() error {
	if s.input != nil && s.output != nil {
		return nil
	}

	desc := render.SurfaceDescriptor{
		Width:       s.display.Width(),
		Height:      s.display.Height(),
		Format:      render.DefaultFormat,
		DepthFormat: s.opts.depthFormat,
	}

	desc.Label = "capture-input"
	input, err := s.newSurface(desc)
	if err != nil {
		return fmt.Errorf("capture: create input surface: %w", err)
	}
	desc.Label = "capture-output"
	output, err := s.newSurface(desc)
	if err != nil {
		release(input)
		return fmt.Errorf("capture: create output surface: %w", err)
	}

	s.input, s.output = input, output
	s.logger().Debug("capture: surfaces created",
		"width", desc.Width,
		"height", desc.Height,
		"format", desc.Format,
		"depth", desc.DepthFormat)
	return nil
}

func (s *Session) newSurface(desc render.SurfaceDescriptor) (render.RenderTarget, error) {
	reg := s.opts.registry
	if reg == nil {
		reg = render.DefaultRegistry()
	}
	if s.opts.backend != "" {
		return reg.NewSurfaceByName(s.opts.backend, desc)
	}
	return reg.NewSurface(desc)
}

func (s *Session) logger() *slog.Logger {
	if s.opts.logger != nil {
		return s.opts.logger
	}
	return ggshot.Logger()
}

// release destroys t if it holds releasable resources.
func release(t render.RenderTarget) {
	if d, ok := t.(interface{ Destroy() }); ok {
		d.Destroy()
	}
}

// compactCameras returns cams without nil entries.
func compactCameras(cams []Camera) []Camera {
	out := make([]Camera, 0, len(cams))
	for _, c := range cams {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
