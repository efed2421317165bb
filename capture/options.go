// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"image/color"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggshot/render"
)

// Option configures a Session during creation.
//
// Example:
//
//	s := capture.NewSession(eng.Display(),
//	    capture.WithTargets(mainCam, uiCam),
//	    capture.WithFrameBarrier(eng.Exec),
//	)
type Option func(*options)

// options holds optional configuration for Session creation.
type options struct {
	targets     []Camera
	registry    *render.Registry
	backend     string
	depthFormat gputypes.TextureFormat
	clearColor  color.Color
	barrier     func(func())
	logger      *slog.Logger
}

// defaultOptions returns the default session options.
func defaultOptions() options {
	return options{
		registry:    nil, // render.DefaultRegistry() at provisioning time
		depthFormat: render.DefaultDepthFormat,
		clearColor:  color.White,
		barrier:     func(fn func()) { fn() },
	}
}

// WithTargets sets the cameras captured when Capture is called without
// arguments.
func WithTargets(cams ...Camera) Option {
	return func(o *options) {
		o.targets = append([]Camera(nil), cams...)
	}
}

// WithRegistry sets the registry offscreen surfaces are created from.
// The default is render.DefaultRegistry().
func WithRegistry(r *render.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithBackend forces a named surface backend instead of the best available
// one. An empty name selects automatically.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithDepthFormat sets the depth precision of the offscreen surfaces.
// The default is 24-bit depth with an 8-bit stencil.
func WithDepthFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.depthFormat = f
	}
}

// WithClearColor sets the color the capture surface is cleared to before
// the redirected cameras draw into it. The default is white.
func WithClearColor(c color.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithFrameBarrier runs every state change of the session inside barrier.
//
// Hosts that render on their own goroutine pass a function that runs its
// argument between two frames (engine.Engine.Exec does), so a redirection
// never lands in the middle of a frame. With such a barrier, Capture must
// not be called from code running inside a frame (for example from a
// goroutine the frame waits on), since the barrier is held for the frame.
func WithFrameBarrier(barrier func(func())) Option {
	return func(o *options) {
		if barrier != nil {
			o.barrier = barrier
		}
	}
}

// WithLogger sets a session-specific logger.
// The default is ggshot.Logger() at the time of each log call.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
