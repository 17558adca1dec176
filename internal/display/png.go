package display

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNG writes each frame to a file, replacing it atomically so a reader
// never sees a partial image.
type PNG struct {
	path string
}

// NewPNG returns a sink writing to path.
func NewPNG(path string) *PNG {
	if path == "" {
		path = "enviro.png"
	}
	return &PNG{path: path}
}

func (p *PNG) Show(img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".frame-*.png")
	if err != nil {
		return fmt.Errorf("png sink: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", p.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("png sink: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("png sink: %w", err)
	}
	return nil
}

func (p *PNG) Close() error { return nil }
