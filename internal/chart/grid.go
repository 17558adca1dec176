package chart

import (
	"image"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/luki/enviro/internal/sensor"
)

const (
	gridColumns = 2
	gridMargin  = 2

	// cellBaseline moves from a cell's top-left corner to the font baseline.
	cellBaseline = 8
)

// Grid draws the latest value of every variable in a fixed number of
// columns, each coloured by its severity band.
type Grid struct {
	Width   int
	Height  int
	Columns int
	Margin  int
	Font    tinyfont.Fonter
}

// NewGrid returns a two-column renderer for a w×h panel.
func NewGrid(w, h int) *Grid {
	return &Grid{
		Width:   w,
		Height:  h,
		Columns: gridColumns,
		Margin:  gridMargin,
		Font:    &proggy.TinySZ8pt7b,
	}
}

// Rows returns how many rows n variables need.
func (g *Grid) Rows(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + g.Columns - 1) / g.Columns
}

// Cell returns the top-left corner of variable i out of n. Variables fill
// the first column top to bottom before moving to the next.
func (g *Grid) Cell(i, n int) image.Point {
	rows := g.Rows(n)
	col := i / rows
	row := i % rows
	x := g.Margin + (g.Width/g.Columns)*col
	y := g.Margin + int(float64(g.Height)/float64(rows)*float64(row))
	return image.Pt(x, y)
}

// Render draws vars with their latest values; latest is index-aligned.
func (g *Grid) Render(vars []sensor.Variable, latest []float64) *image.RGBA {
	c := NewCanvas(g.Width, g.Height)
	c.Fill(c.Bounds(), colorBlack)

	n := min(len(vars), len(latest))
	for i := 0; i < n; i++ {
		v := vars[i]
		p := g.Cell(i, n)
		band := Classify(latest[i], v.Limits)
		c.Text(g.Font, p.X, p.Y+cellBaseline, v.Format(latest[i]), band.Color())
	}
	return c.RGBA
}
