// Package display hands rendered frames to an output: the Enviro+ LCD
// through the Linux framebuffer, a PNG file, or nowhere.
package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont/proggy"

	"github.com/luki/enviro/internal/chart"
)

// Sink receives finished frames.
type Sink interface {
	Show(img image.Image) error
	Close() error
}

// Kinds of sink accepted by Open.
const (
	KindFramebuffer = "fbdev"
	KindPNG         = "png"
	KindDiscard     = "discard"
)

// ErrUnknownSink is returned by Open for a Kind it does not know.
var ErrUnknownSink = errors.New("unknown display sink")

// ErrGeometry is returned by Open when the panel is not the configured size.
var ErrGeometry = errors.New("display size mismatch")

// Config selects and configures a sink.
type Config struct {
	Kind         string
	Device       string // framebuffer device, e.g. /dev/fb1
	BacklightPin string // empty leaves the backlight alone
	Path         string // PNG output file
	Width        int
	Height       int
}

// Open creates the sink named by cfg.Kind.
func Open(cfg Config) (Sink, error) {
	switch strings.ToLower(cfg.Kind) {
	case KindFramebuffer, "":
		fb, err := OpenFramebuffer(cfg.Device, cfg.BacklightPin)
		if err != nil {
			return nil, err
		}
		w, h := fb.Size()
		if err := checkGeometry(w, h, cfg); err != nil {
			fb.Close()
			return nil, err
		}
		return fb, nil
	case KindPNG:
		return NewPNG(cfg.Path), nil
	case KindDiscard:
		return Discard{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownSink, cfg.Kind)
}

// checkGeometry rejects a panel whose size differs from cfg. A zero size in
// cfg accepts any panel.
func checkGeometry(w, h int, cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil
	}
	if w != cfg.Width || h != cfg.Height {
		return fmt.Errorf("%w: panel is %dx%d, configured %dx%d", ErrGeometry, w, h, cfg.Width, cfg.Height)
	}
	return nil
}

// Discard drops every frame.
type Discard struct{}

func (Discard) Show(image.Image) error { return nil }
func (Discard) Close() error           { return nil }

// TestPattern draws primary colour bars under a white frame with a label,
// enough to see that every channel and the geometry are right.
func TestPattern(w, h int) *image.RGBA {
	c := chart.NewCanvas(w, h)
	bars := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{A: 255},
	}
	bw := w / len(bars)
	for i, col := range bars {
		r := image.Rect(i*bw, 0, (i+1)*bw, h)
		if i == len(bars)-1 {
			r.Max.X = w
		}
		c.Fill(r, col)
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	c.Fill(image.Rect(0, 0, w, 1), white)
	c.Fill(image.Rect(0, h-1, w, h), white)
	c.Fill(image.Rect(0, 0, 1, h), white)
	c.Fill(image.Rect(w-1, 0, w, h), white)
	c.Text(&proggy.TinySZ8pt7b, 4, h/2+4, fmt.Sprintf("%dx%d", w, h), white)
	return c.RGBA
}

// Check shows the test pattern on sink.
func Check(sink Sink, w, h int) error {
	if err := sink.Show(TestPattern(w, h)); err != nil {
		return fmt.Errorf("display check: %w", err)
	}
	return nil
}
