package render

import (
	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/registry"
)

// Pattern IDs.
const (
	PatternCheckerboard = "checkerboard"
	PatternRainbow      = "rainbow"
	PatternSolidRed     = "solid_red"
	PatternSolidGreen   = "solid_green"
	PatternSolidBlue    = "solid_blue"
	PatternBlack        = "black"
	PatternBorder       = "border"
)

// pattern is a test pattern defined by a draw function.
type pattern struct {
	id    string
	title string
	draw  func(dst *core.Frame)
}

func (p pattern) ID() string           { return p.id }
func (p pattern) Title() string        { return p.title }
func (p pattern) Draw(dst *core.Frame) { p.draw(dst) }

func solid(c core.RGB) func(*core.Frame) {
	return func(dst *core.Frame) { dst.Fill(c) }
}

func init() {
	for _, p := range []pattern{
		{PatternCheckerboard, "Alternating white and black pixels", drawCheckerboard},
		{PatternRainbow, "Seven-color diagonal stripes", drawRainbow},
		{PatternSolidRed, "Every pixel red", solid(core.Red)},
		{PatternSolidGreen, "Every pixel green", solid(core.Green)},
		{PatternSolidBlue, "Every pixel blue", solid(core.Blue)},
		{PatternBlack, "All pixels off", solid(core.Black)},
		{PatternBorder, "Frame outline, centre cross and corner markers", drawBorder},
	} {
		registry.Register(p.id, func() registry.Pattern { return p })
	}
}

func drawCheckerboard(dst *core.Frame) {
	for y := range dst.H {
		for x := range dst.W {
			if (x+y)%2 == 0 {
				dst.Set(x, y, core.White)
			} else {
				dst.Set(x, y, core.Black)
			}
		}
	}
}

func drawRainbow(dst *core.Frame) {
	for y := range dst.H {
		for x := range dst.W {
			dst.Set(x, y, rainbow[(x+y)%len(rainbow)])
		}
	}
}

// drawBorder outlines the matrix in white, puts a red cross in the centre and
// marks the corners red, green, yellow and blue clockwise from top-left.
func drawBorder(dst *core.Frame) {
	w, h := dst.W, dst.H
	dst.Fill(core.Black)
	dst.DrawHLine(0, 0, w, core.White)
	dst.DrawHLine(0, h-1, w, core.White)
	dst.DrawVLine(0, 0, h, core.White)
	dst.DrawVLine(w-1, 0, h, core.White)

	cx, cy := w/2, h/2
	dst.DrawHLine(cx-2, cy, 5, core.Red)
	dst.DrawVLine(cx, cy-2, 5, core.Red)

	dst.Set(1, 1, core.Red)
	dst.Set(w-2, 1, core.Green)
	dst.Set(w-2, h-2, core.Yellow)
	dst.Set(1, h-2, core.Blue)
}
