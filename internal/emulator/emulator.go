// Package emulator shows the LCD in a desktop window using ebiten, for
// working on layouts without the board.
package emulator

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/luki/enviro/internal/station"
)

// Scale is the window size relative to the panel.
const Scale = 4

// Tapper stands in for a finger on the proximity sensor.
type Tapper interface {
	Tap()
}

// Game drives the station from ebiten's update loop.
type Game struct {
	ctx    context.Context
	st     *station.Station
	tapper Tapper
	clock  pacer
	width  int
	height int
	frame  station.Frame
	img    *ebiten.Image
}

// New creates the emulator for a w×h panel. The window closes once ctx is
// done.
func New(ctx context.Context, st *station.Station, tapper Tapper, interval time.Duration, w, h int) *Game {
	return &Game{
		ctx:    ctx,
		st:     st,
		tapper: tapper,
		clock:  pacer{interval: interval},
		width:  w,
		height: h,
	}
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width*Scale, g.height*Scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.tapper.Tap()
	}

	now := time.Now()
	if !g.clock.due(now) {
		return nil
	}
	f, err := g.st.Tick(now)
	if err != nil {
		return fmt.Errorf("tick: %w", err)
	}
	g.frame = f
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame.Image == nil {
		return
	}
	if g.img == nil {
		g.img = ebiten.NewImage(g.width, g.height)
	}
	g.img.WritePixels(g.frame.Image.Pix)
	screen.DrawImage(g.img, nil)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// pacer spaces station ticks by interval inside a faster frame loop.
type pacer struct {
	interval time.Duration
	last     time.Time
}

func (p *pacer) due(now time.Time) bool {
	if !p.last.IsZero() && now.Sub(p.last) < p.interval {
		return false
	}
	p.last = now
	return true
}
