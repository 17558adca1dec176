package chart

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"

	"github.com/luki/enviro/internal/sensor"
)

const (
	// HeaderHeight is the band at the top reserved for the reading text.
	HeaderHeight = 25

	// hueSpan covers blue (0.6) down to red (0) on the 0..1 hue wheel.
	hueSpan = 0.6

	headerBaseline = 17
)

// Gradient draws one variable's window as a row of coloured columns with a
// black line plot on top and the latest reading in the header.
type Gradient struct {
	Width  int
	Height int
	Top    int
	Font   tinyfont.Fonter
}

// NewGradient returns a renderer for a w×h panel.
func NewGradient(w, h int) *Gradient {
	return &Gradient{
		Width:  w,
		Height: h,
		Top:    HeaderHeight,
		Font:   &freesans.Regular9pt7b,
	}
}

// Render draws window, oldest sample on the left. The header shows the
// newest sample formatted for v.
func (g *Gradient) Render(v sensor.Variable, window []float64) *image.RGBA {
	c := NewCanvas(g.Width, g.Height)
	c.Fill(c.Bounds(), colorWhite)

	for i, f := range Fraction(window) {
		if i >= g.Width {
			break
		}
		c.Fill(image.Rect(i, g.Top, i+1, g.Height), HueColor(f))
		c.SetRGBA(i, g.markerY(f), colorBlack)
	}

	if len(window) > 0 {
		c.Text(g.Font, 0, headerBaseline, v.Format(window[len(window)-1]), colorBlack)
	}
	return c.RGBA
}

// markerY places f within the graph band, higher values nearer the top.
func (g *Gradient) markerY(f float64) int {
	span := float64(g.Height - g.Top)
	y := int(float64(g.Height) - (float64(g.Top) + f*span) + float64(g.Top))
	if y < g.Top {
		y = g.Top
	}
	if y > g.Height-1 {
		y = g.Height - 1
	}
	return y
}

// Fraction scales each sample to (0, 1] relative to the window's range as
// (v - min + 1) / (max - min + 1). A flat window sits at mid-scale.
func Fraction(window []float64) []float64 {
	if len(window) == 0 {
		return nil
	}
	lo, hi := window[0], window[0]
	for _, v := range window[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	out := make([]float64, len(window))
	if hi == lo {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	spread := hi - lo + 1
	for i, v := range window {
		out[i] = (v - lo + 1) / spread
	}
	return out
}

// HueColor maps a fraction to a fully saturated colour, 0 blue and 1 red.
func HueColor(f float64) color.RGBA {
	r, g, b := colorful.Hsv((1.0-f)*hueSpan*360, 1.0, 1.0).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
