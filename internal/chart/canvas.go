// Package chart renders the panel views: the scrolling gradient bar graph
// of one variable and the colour-coded grid of all variables.
package chart

import (
	"image"
	"image/color"
	"image/draw"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/luki/enviro/internal/sensor"
)

var (
	colorBlack = color.RGBA{A: 255}
	colorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Canvas is an RGBA frame that bitmap fonts can draw into.
type Canvas struct {
	*image.RGBA
}

var _ drivers.Displayer = (*Canvas)(nil)

// NewCanvas allocates a w×h frame.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{RGBA: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (c *Canvas) Size() (x, y int16) {
	b := c.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	p := image.Pt(int(x), int(y))
	if !p.In(c.Bounds()) {
		return
	}
	c.SetRGBA(p.X, p.Y, col)
}

// Display is a no-op; frames are handed to a display.Sink by the caller.
func (c *Canvas) Display() error { return nil }

// Fill paints r with col.
func (c *Canvas) Fill(r image.Rectangle, col color.RGBA) {
	draw.Draw(c.RGBA, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// Text writes s with its baseline at y, folded to the font's glyph set.
func (c *Canvas) Text(f tinyfont.Fonter, x, y int, s string, col color.RGBA) {
	tinyfont.WriteLine(c, f, int16(x), int16(y), sensor.LCDText(s), col)
}
