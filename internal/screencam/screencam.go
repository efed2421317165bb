// Package screencam provides a camera whose view is an OS display.
package screencam

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/kbinani/screenshot"

	"github.com/gogpu/ggshot"
	"github.com/gogpu/ggshot/render"
)

// Desktop grabs a display of the host OS every frame.
type Desktop struct {
	// Display is the index of the OS display, 0 for the primary one.
	Display int

	// Logger overrides ggshot.Logger().
	Logger *slog.Logger
}

// Displays returns the number of active OS displays.
func Displays() int {
	return screenshot.NumActiveDisplays()
}

// Bounds returns the bounds of display i.
func Bounds(i int) (image.Rectangle, error) {
	n := Displays()
	if i < 0 || i >= n {
		return image.Rectangle{}, fmt.Errorf("screencam: display %d out of range (%d active)", i, n)
	}
	return screenshot.GetDisplayBounds(i), nil
}

// Grab captures display d.Display into a new image.
func (d Desktop) Grab() (*image.RGBA, error) {
	bounds, err := Bounds(d.Display)
	if err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("screencam: capture display %d: %w", d.Display, err)
	}
	return img, nil
}

// Draw copies the desktop into target, anchored top-left and unscaled.
// It implements engine.DrawFunc. Failures are logged and leave target as is.
func (d Desktop) Draw(target render.RenderTarget, frame uint64) {
	img, err := d.Grab()
	if err != nil {
		d.log().Warn("screencam: grab failed", "frame", frame, "err", err)
		return
	}
	if err := render.Blit(render.NewPixmapTargetFromImage(img), target); err != nil {
		d.log().Warn("screencam: blit failed", "frame", frame, "err", err)
	}
}

func (d Desktop) log() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return ggshot.Logger()
}
