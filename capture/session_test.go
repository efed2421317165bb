// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggshot/engine"
	"github.com/gogpu/ggshot/render"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// fill returns a draw func that paints the whole target c.
func fill(c color.RGBA) engine.DrawFunc {
	return func(t render.RenderTarget, _ uint64) {
		if p, ok := t.(*render.PixmapTarget); ok {
			p.Clear(c)
		}
	}
}

// panicTarget is a CPU surface whose pixels cannot be reached.
type panicTarget struct {
	*render.PixmapTarget
}

func (panicTarget) Pixels() []byte { panic("pixels unavailable") }

func TestCaptureFullHD(t *testing.T) {
	eng := engine.New(1920, 1080)
	camX := engine.NewCamera("camX", fill(red))
	eng.AddCamera(camX)

	s := NewSession(eng.Display())
	eng.OnPostRender(s.OnRenderImage)

	before := camX.TargetTexture()

	shot, err := s.Capture(camX)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if !s.Pending() {
		t.Error("Pending() = false after Capture")
	}
	if camX.TargetTexture() == nil {
		t.Error("camera was not redirected")
	}

	eng.RenderFrame()

	img, err := shot.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if img.Width() != 1920 || img.Height() != 1080 {
		t.Errorf("image size = %dx%d, want 1920x1080", img.Width(), img.Height())
	}
	if got := img.RGBAAt(960, 540); got != red {
		t.Errorf("center pixel = %v, want %v", got, red)
	}
	if camX.TargetTexture() != before {
		t.Errorf("camera target after capture = %v, want %v", camX.TargetTexture(), before)
	}
	if s.Pending() {
		t.Error("Pending() = true after the frame")
	}
}

func TestCaptureEmptyTargets(t *testing.T) {
	s := NewSession(render.NewPixmapTarget(8, 8))

	shot, err := s.Capture()
	if !errors.Is(err, ErrInvalidState) || !errors.Is(err, ErrNoTargets) {
		t.Fatalf("Capture() error = %v, want ErrNoTargets", err)
	}
	if shot != nil {
		t.Error("Capture() returned a future alongside an error")
	}
	if s.swap.Len() != 0 {
		t.Errorf("swap table has %d entries, want 0", s.swap.Len())
	}
	if s.input != nil || s.output != nil {
		t.Error("surfaces were created for a rejected capture")
	}
	if s.Pending() {
		t.Error("Pending() = true after rejected capture")
	}

	if _, err := s.Capture(nil); !errors.Is(err, ErrNoTargets) {
		t.Errorf("Capture(nil) error = %v, want ErrNoTargets", err)
	}
}

func TestCaptureWhilePending(t *testing.T) {
	eng := engine.New(16, 16)
	cam := engine.NewCamera("cam", fill(green))
	eng.AddCamera(cam)

	s := NewSession(eng.Display())
	eng.OnPostRender(s.OnRenderImage)

	first, err := s.Capture(cam)
	if err != nil {
		t.Fatalf("first Capture() error = %v", err)
	}
	redirected := cam.TargetTexture()

	second, err := s.Capture(cam)
	if !errors.Is(err, ErrInvalidState) || !errors.Is(err, ErrCapturePending) {
		t.Fatalf("second Capture() error = %v, want ErrCapturePending", err)
	}
	if second != nil {
		t.Error("second Capture() returned a future")
	}
	if cam.TargetTexture() != redirected {
		t.Error("rejected capture changed the camera target")
	}
	if s.swap.Len() != 1 {
		t.Errorf("swap table has %d entries, want 1", s.swap.Len())
	}

	eng.RenderFrame()

	img, err := first.Result()
	if err != nil {
		t.Fatalf("first Result() error = %v", err)
	}
	if got := img.RGBAAt(0, 0); got != green {
		t.Errorf("pixel = %v, want %v", got, green)
	}
	if cam.TargetTexture() != nil {
		t.Error("camera not restored to the display")
	}

	if _, err := s.Capture(cam); err != nil {
		t.Errorf("Capture() after completion error = %v", err)
	}
}

func TestCaptureRestoresPriorTargets(t *testing.T) {
	eng := engine.New(8, 8)
	own := render.NewPixmapTarget(4, 4)

	onDisplay := engine.NewCamera("display", fill(red))
	offscreen := engine.NewCamera("offscreen", fill(green))
	offscreen.SetTargetTexture(own)
	eng.AddCamera(onDisplay)
	eng.AddCamera(offscreen)

	s := NewSession(eng.Display())
	eng.OnPostRender(s.OnRenderImage)

	shot, err := s.Capture(onDisplay, offscreen)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if prior, ok := s.swap.Prior(offscreen); !ok || prior != own {
		t.Errorf("recorded prior = %v, %v; want own target", prior, ok)
	}

	eng.RenderFrame()

	if _, err := shot.Result(); err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if onDisplay.TargetTexture() != nil {
		t.Errorf("display camera target = %v, want nil", onDisplay.TargetTexture())
	}
	if offscreen.TargetTexture() != own {
		t.Errorf("offscreen camera target = %v, want its own target", offscreen.TargetTexture())
	}
	if s.swap.Len() != 0 {
		t.Errorf("swap table has %d entries after restore, want 0", s.swap.Len())
	}
}

func TestCaptureDefaultTargets(t *testing.T) {
	eng := engine.New(4, 4)
	cam := engine.NewCamera("cam", fill(red))
	eng.AddCamera(cam)

	s := NewSession(eng.Display(), WithTargets(cam))
	eng.OnPostRender(s.OnRenderImage)

	if got := s.Targets(); len(got) != 1 || got[0] != Camera(cam) {
		t.Fatalf("Targets() = %v, want [cam]", got)
	}

	shot, err := s.Capture()
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	eng.RenderFrame()
	if img, err := shot.Result(); err != nil || img.RGBAAt(1, 1) != red {
		t.Errorf("Result() = %v, %v; want red image", img, err)
	}

	s.SetTargets()
	if _, err := s.Capture(); !errors.Is(err, ErrNoTargets) {
		t.Errorf("Capture() after SetTargets() error = %v, want ErrNoTargets", err)
	}
}

func TestCaptureClearColor(t *testing.T) {
	eng := engine.New(4, 4)
	idle := engine.NewCamera("idle", nil)
	eng.AddCamera(idle)

	tests := []struct {
		name string
		opts []Option
		want color.RGBA
	}{
		{"default white", nil, white},
		{"custom", []Option{WithClearColor(green)}, green},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(eng.Display(), tt.opts...)
			shot, err := s.Capture(idle)
			if err != nil {
				t.Fatalf("Capture() error = %v", err)
			}
			s.OnRenderImage(nil, nil)
			img, err := shot.Result()
			if err != nil {
				t.Fatalf("Result() error = %v", err)
			}
			if got := img.RGBAAt(2, 2); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCaptureReadbackFailureRestores(t *testing.T) {
	reg := render.NewRegistry()
	reg.Register(render.BackendTexture, 100, render.TextureFactory(render.NullDeviceHandle{}), nil)

	eng := engine.New(8, 8)
	cam := engine.NewCamera("cam", nil)
	eng.AddCamera(cam)

	s := NewSession(eng.Display(), WithRegistry(reg), WithBackend(render.BackendTexture))
	eng.OnPostRender(s.OnRenderImage)

	shot, err := s.Capture(cam)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	eng.RenderFrame()

	img, err := shot.Result()
	if !errors.Is(err, render.ErrNotReadable) {
		t.Fatalf("Result() error = %v, want ErrNotReadable", err)
	}
	if img != nil {
		t.Error("failed capture returned an image")
	}
	if cam.TargetTexture() != nil {
		t.Error("camera not restored after failed readback")
	}
	if s.Pending() {
		t.Error("session still pending after failed readback")
	}
}

func TestCaptureReadbackPanicRecovered(t *testing.T) {
	reg := render.NewRegistry()
	reg.Register("broken", 100, func(desc render.SurfaceDescriptor) (render.RenderTarget, error) {
		return panicTarget{render.NewPixmapTarget(desc.Width, desc.Height)}, nil
	}, nil)

	cam := engine.NewCamera("cam", nil)
	s := NewSession(render.NewPixmapTarget(4, 4), WithRegistry(reg))

	shot, err := s.Capture(cam)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	s.OnRenderImage(nil, nil)

	if _, err := shot.Result(); err == nil || !strings.Contains(err.Error(), "panicked") {
		t.Errorf("Result() error = %v, want recovered panic", err)
	}
	if cam.TargetTexture() != nil {
		t.Error("camera not restored after panic")
	}
}

func TestCaptureSurfaceError(t *testing.T) {
	cam := engine.NewCamera("cam", nil)
	s := NewSession(render.NewPixmapTarget(4, 4), WithBackend("missing"))

	_, err := s.Capture(cam)
	var notFound *render.BackendNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Capture() error = %v, want BackendNotFoundError", err)
	}
	if cam.TargetTexture() != nil || s.Pending() {
		t.Error("failed provisioning touched session state")
	}
}

func TestSurfaceDescriptors(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		wantDepth gputypes.TextureFormat
	}{
		{"default depth", nil, render.DefaultDepthFormat},
		{"custom depth", []Option{WithDepthFormat(gputypes.TextureFormatDepth32Float)}, gputypes.TextureFormatDepth32Float},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var descs []render.SurfaceDescriptor
			reg := render.NewRegistry()
			reg.Register("recording", 50, func(desc render.SurfaceDescriptor) (render.RenderTarget, error) {
				descs = append(descs, desc)
				return render.PixmapFactory(desc)
			}, nil)

			cam := engine.NewCamera("cam", nil)
			opts := append([]Option{WithRegistry(reg)}, tt.opts...)
			s := NewSession(render.NewPixmapTarget(24, 12), opts...)

			if _, err := s.Capture(cam); err != nil {
				t.Fatalf("Capture() error = %v", err)
			}
			if len(descs) != 2 {
				t.Fatalf("created %d surfaces, want 2", len(descs))
			}
			for i, label := range []string{"capture-input", "capture-output"} {
				d := descs[i]
				if d.Label != label {
					t.Errorf("surface %d label = %q, want %q", i, d.Label, label)
				}
				if d.Width != 24 || d.Height != 12 {
					t.Errorf("surface %d size = %dx%d, want 24x12", i, d.Width, d.Height)
				}
				if d.Format != render.DefaultFormat {
					t.Errorf("surface %d format = %v, want %v", i, d.Format, render.DefaultFormat)
				}
				if d.DepthFormat != tt.wantDepth {
					t.Errorf("surface %d depth = %v, want %v", i, d.DepthFormat, tt.wantDepth)
				}
			}
			if got := s.input.(*render.PixmapTarget).DepthFormat(); got != tt.wantDepth {
				t.Errorf("input DepthFormat() = %v, want %v", got, tt.wantDepth)
			}
		})
	}
}

// bgraSurface is a CPU surface that stores pixels in B, G, R, A order.
type bgraSurface struct {
	*render.PixmapTarget
}

func (bgraSurface) Format() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

func TestCaptureBGRABackend(t *testing.T) {
	reg := render.NewRegistry()
	reg.Register("bgra", 50, func(desc render.SurfaceDescriptor) (render.RenderTarget, error) {
		return bgraSurface{render.NewPixmapTarget(desc.Width, desc.Height)}, nil
	}, nil)

	eng := engine.New(4, 4)
	cam := engine.NewCamera("cam", func(t render.RenderTarget, _ uint64) {
		pix := t.Pixels()
		for i := 0; i+3 < len(pix); i += 4 {
			pix[i], pix[i+1], pix[i+2], pix[i+3] = 30, 20, 10, 255
		}
	})
	eng.AddCamera(cam)

	s := NewSession(eng.Display(), WithRegistry(reg), WithBackend("bgra"))
	eng.OnPostRender(s.OnRenderImage)

	shot, err := s.Capture(cam)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	eng.RenderFrame()

	img, err := shot.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if got := img.RGBAAt(2, 2); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("pixel = %v, want RGBA order", got)
	}
}

func TestOnRenderImagePassThrough(t *testing.T) {
	s := NewSession(render.NewPixmapTarget(4, 4))
	src := render.NewPixmapTarget(4, 4)
	src.Clear(red)
	dst := render.NewPixmapTarget(4, 4)

	s.OnRenderImage(src, dst)

	if got := dst.GetPixel(3, 3).(color.RGBA); got != red {
		t.Errorf("dst pixel = %v, want forwarded %v", got, red)
	}
	if s.Pending() {
		t.Error("idle handler changed state")
	}
}

func TestSurfacesAreNotResized(t *testing.T) {
	eng := engine.New(32, 16)
	cam := engine.NewCamera("cam", fill(red))
	eng.AddCamera(cam)

	s := NewSession(eng.Display())
	eng.OnPostRender(s.OnRenderImage)

	shot, _ := s.Capture(cam)
	eng.RenderFrame()
	first, _ := shot.Result()
	input := s.input

	eng.Resize(64, 64)

	shot, err := s.Capture(cam)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	eng.RenderFrame()
	second, err := shot.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	if s.input != input {
		t.Error("input surface was recreated")
	}
	if second.Width() != first.Width() || second.Height() != first.Height() {
		t.Errorf("second capture = %dx%d, want stale %dx%d",
			second.Width(), second.Height(), first.Width(), first.Height())
	}
}

func TestImagesAreIndependent(t *testing.T) {
	paint := red
	eng := engine.New(4, 4)
	cam := engine.NewCamera("cam", func(target render.RenderTarget, _ uint64) {
		target.(*render.PixmapTarget).Clear(paint)
	})
	eng.AddCamera(cam)

	s := NewSession(eng.Display())
	eng.OnPostRender(s.OnRenderImage)

	shot, _ := s.Capture(cam)
	eng.RenderFrame()
	first, _ := shot.Result()

	paint = green
	shot, _ = s.Capture(cam)
	eng.RenderFrame()
	second, _ := shot.Result()

	if got := first.RGBAAt(0, 0); got != red {
		t.Errorf("first image changed to %v", got)
	}
	if got := second.RGBAAt(0, 0); got != green {
		t.Errorf("second image = %v, want %v", got, green)
	}
}

func TestClose(t *testing.T) {
	cam := engine.NewCamera("cam", nil)
	s := NewSession(render.NewPixmapTarget(4, 4))

	shot, err := s.Capture(cam)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := shot.Result(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("pending Result() error = %v, want ErrSessionClosed", err)
	}
	if cam.TargetTexture() != nil {
		t.Error("Close did not restore the camera")
	}
	if _, err := s.Capture(cam); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Capture() after Close error = %v, want ErrSessionClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestCaptureWithRunningEngine(t *testing.T) {
	eng := engine.New(64, 48)
	cam := engine.NewCamera("cam", fill(red))
	eng.AddCamera(cam)

	s := NewSession(eng.Display(), WithFrameBarrier(eng.Exec))
	eng.OnPostRender(s.OnRenderImage)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = eng.Run(ctx, time.Millisecond)
	}()

	for i := 0; i < 3; i++ {
		shot, err := s.Capture(cam)
		if err != nil {
			t.Fatalf("Capture() #%d error = %v", i, err)
		}
		img, err := shot.Wait(ctx)
		if err != nil {
			t.Fatalf("Wait() #%d error = %v", i, err)
		}
		if img.Width() != 64 || img.Height() != 48 {
			t.Errorf("image #%d = %dx%d, want 64x48", i, img.Width(), img.Height())
		}
		if got := img.RGBAAt(10, 10); got != red {
			t.Errorf("image #%d pixel = %v, want %v", i, got, red)
		}
	}

	cancel()
	<-done
	if cam.TargetTexture() != nil {
		t.Error("camera not restored")
	}
}

func TestSessionLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cam := engine.NewCamera("cam", nil)
	s := NewSession(render.NewPixmapTarget(4, 4), WithLogger(logger))
	shot, _ := s.Capture(cam)
	s.OnRenderImage(nil, nil)
	if _, err := shot.Result(); err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	for _, want := range []string{"surfaces created", "redirected cameras", "frame captured"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output missing %q:\n%s", want, buf.String())
		}
	}
}
