// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"context"
	"errors"
	"image/color"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/ggshot"
	"github.com/gogpu/ggshot/render"
)

// PostRenderFunc is called once per frame after every camera has drawn.
// src is the frame's backbuffer and dst the display it is presented to;
// the hook is responsible for forwarding src to dst.
type PostRenderFunc func(src, dst render.RenderTarget)

// Engine is a frame-synchronous host.
//
// Each frame clears the backbuffer, lets every camera draw (into its own
// target texture, or into the backbuffer when it has none) and then hands
// the backbuffer and the display to the post-render hooks. Frames never
// overlap; Exec runs a function between two frames.
type Engine struct {
	frameMu sync.Mutex

	mu      sync.Mutex
	cameras []*Camera
	hooks   []PostRenderFunc

	display    *render.PixmapTarget
	backbuffer *render.PixmapTarget
	clear      color.Color
	logger     *slog.Logger

	frame atomic.Uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClearColor sets the color the backbuffer is cleared to every frame.
// The default is opaque black.
func WithClearColor(c color.Color) Option {
	return func(e *Engine) {
		e.clear = c
	}
}

// WithLogger sets the engine's logger. The default is ggshot.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine with a display of the given size.
func New(width, height int, opts ...Option) *Engine {
	e := &Engine{
		display:    render.NewPixmapTarget(width, height),
		backbuffer: render.NewPixmapTarget(width, height),
		clear:      color.Black,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Display returns the presented output. It also reports the display size
// used to provision capture surfaces.
func (e *Engine) Display() *render.PixmapTarget {
	return e.display
}

// Resize changes the display size between frames.
func (e *Engine) Resize(width, height int) {
	e.Exec(func() {
		e.display.Resize(width, height)
		e.backbuffer.Resize(width, height)
	})
}

// AddCamera appends c to the draw order.
func (e *Engine) AddCamera(c *Camera) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cameras = append(e.cameras, c)
}

// RemoveCamera removes c and reports whether it was present.
func (e *Engine) RemoveCamera(c *Camera) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := slices.Index(e.cameras, c)
	if i < 0 {
		return false
	}
	e.cameras = slices.Delete(e.cameras, i, i+1)
	return true
}

// Cameras returns the cameras in draw order.
func (e *Engine) Cameras() []*Camera {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.cameras)
}

// OnPostRender registers fn to run after every frame's cameras have drawn.
// Hooks run in registration order. With no hook registered the backbuffer
// is copied to the display unchanged.
func (e *Engine) OnPostRender(fn PostRenderFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooks = append(e.hooks, fn)
}

// Frame returns the number of frames rendered so far.
func (e *Engine) Frame() uint64 {
	return e.frame.Load()
}

// Exec runs fn between two frames.
func (e *Engine) Exec(fn func()) {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	fn()
}

// RenderFrame renders one frame and returns its number, starting at 1.
func (e *Engine) RenderFrame() uint64 {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()

	n := e.frame.Add(1)

	e.mu.Lock()
	cams := slices.Clone(e.cameras)
	hooks := slices.Clone(e.hooks)
	e.mu.Unlock()

	e.backbuffer.Clear(e.clear)
	for _, c := range cams {
		c.render(e.backbuffer, n)
	}

	if len(hooks) == 0 {
		if err := render.Blit(e.backbuffer, e.display); err != nil {
			e.log().Warn("engine: present failed", "frame", n, "err", err)
		}
		return n
	}
	for _, h := range hooks {
		h(e.backbuffer, e.display)
	}
	return n
}

// Run renders a frame every interval until ctx is done.
// It returns nil when ctx is canceled or times out.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("engine: interval must be positive")
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log().Debug("engine: loop started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			e.log().Debug("engine: loop stopped", "frames", e.Frame())
			return nil
		case <-ticker.C:
			e.RenderFrame()
		}
	}
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return ggshot.Logger()
}
