// Package testcard paints a deterministic test image for demo cameras.
package testcard

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggshot/render"
)

// bars are the classic color bars, left to right.
var bars = []color.RGBA{
	{192, 192, 192, 255},
	{192, 192, 0, 255},
	{0, 192, 192, 255},
	{0, 192, 0, 255},
	{192, 0, 192, 255},
	{192, 0, 0, 255},
	{0, 0, 192, 255},
}

// Card draws a vertical gradient, a row of color bars and a text label.
type Card struct {
	// Label is drawn in the lower-left corner, followed by the frame number.
	Label string
}

// Draw paints the card into target. It implements engine.DrawFunc.
// GPU-only targets are left untouched.
func (c Card) Draw(target render.RenderTarget, frame uint64) {
	img, err := render.AsRGBA(target)
	if err != nil {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	drawGradient(img, b)

	barTop := b.Min.Y + h/4
	barBottom := b.Min.Y + h*3/4
	for i, col := range bars {
		x0 := b.Min.X + w*i/len(bars)
		x1 := b.Min.X + w*(i+1)/len(bars)
		draw.Draw(img, image.Rect(x0, barTop, x1, barBottom), image.NewUniform(col), image.Point{}, draw.Src)
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(b.Min.X+8, b.Max.Y-8),
	}
	d.DrawString(fmt.Sprintf("%s #%d", c.Label, frame))
}

// drawGradient fills r with a dark-blue to teal vertical gradient.
func drawGradient(img *image.RGBA, r image.Rectangle) {
	h := r.Dy()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		t := float64(y-r.Min.Y) / float64(h)
		row := color.RGBA{
			R: uint8(25 + t*40),
			G: uint8(50 + t*80),
			B: uint8(100 + t*60),
			A: 255,
		}
		draw.Draw(img, image.Rect(r.Min.X, y, r.Max.X, y+1), image.NewUniform(row), image.Point{}, draw.Src)
	}
}

// BarColor returns the color of bar i, counting from the left. Indexes
// wrap around in both directions, so -1 is the rightmost bar.
func BarColor(i int) color.RGBA {
	n := len(bars)
	return bars[(i%n+n)%n]
}

// Bars returns the number of color bars.
func Bars() int {
	return len(bars)
}
