//go:build !linux

package display

import (
	"errors"
	"image"
)

var errNoFramebuffer = errors.New("framebuffer sink needs linux")

// Framebuffer is only available on linux.
type Framebuffer struct{}

func OpenFramebuffer(device, backlightPin string) (*Framebuffer, error) {
	return nil, errNoFramebuffer
}

func (fb *Framebuffer) Size() (int, int)       { return 0, 0 }
func (fb *Framebuffer) Show(image.Image) error { return errNoFramebuffer }
func (fb *Framebuffer) Close() error           { return nil }
