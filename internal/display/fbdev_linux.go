package display

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Framebuffer drives a 16-bit Linux framebuffer such as the one the fbtft
// st7735r driver exposes for the Enviro+ LCD.
type Framebuffer struct {
	f         *os.File
	mem       []byte
	width     int
	height    int
	stride    int
	backlight gpio.PinIO
}

// OpenFramebuffer maps device and switches the backlight on.
func OpenFramebuffer(device, backlightPin string) (*Framebuffer, error) {
	if device == "" {
		device = "/dev/fb1"
	}
	info, err := readFBInfo(filepath.Join("/sys/class/graphics", filepath.Base(device)))
	if err != nil {
		return nil, err
	}
	if info.bpp != 16 {
		return nil, fmt.Errorf("%s: %d bits per pixel, want 16", device, info.bpp)
	}

	f, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer: %w", err)
	}
	mem, err := unix.Mmap(int(f.Fd()), 0, info.stride*info.height, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", device, err)
	}
	fb := &Framebuffer{f: f, mem: mem, width: info.width, height: info.height, stride: info.stride}

	if backlightPin != "" {
		if _, err := host.Init(); err != nil {
			fb.Close()
			return nil, fmt.Errorf("host init: %w", err)
		}
		pin := gpioreg.ByName(backlightPin)
		if pin == nil {
			fb.Close()
			return nil, fmt.Errorf("backlight pin %q not found", backlightPin)
		}
		if err := pin.Out(gpio.High); err != nil {
			fb.Close()
			return nil, fmt.Errorf("backlight on: %w", err)
		}
		fb.backlight = pin
	}
	return fb, nil
}

// Size returns the panel size in pixels.
func (fb *Framebuffer) Size() (int, int) { return fb.width, fb.height }

func (fb *Framebuffer) Show(img image.Image) error {
	encodeRGB565(fb.mem, fb.stride, img)
	return nil
}

// Close blanks the panel, switches the backlight off and unmaps it.
func (fb *Framebuffer) Close() error {
	if fb.backlight != nil {
		fb.backlight.Out(gpio.Low)
	}
	clear(fb.mem)
	err := unix.Munmap(fb.mem)
	if cerr := fb.f.Close(); err == nil {
		err = cerr
	}
	return err
}

type fbInfo struct {
	width, height, stride, bpp int
}

// readFBInfo reads the geometry the kernel publishes under sysfs.
func readFBInfo(dir string) (fbInfo, error) {
	var info fbInfo
	size, err := os.ReadFile(filepath.Join(dir, "virtual_size"))
	if err != nil {
		return info, fmt.Errorf("framebuffer geometry: %w", err)
	}
	w, h, ok := strings.Cut(strings.TrimSpace(string(size)), ",")
	if !ok {
		return info, fmt.Errorf("framebuffer geometry: bad virtual_size %q", size)
	}
	if info.width, err = strconv.Atoi(w); err != nil {
		return info, fmt.Errorf("framebuffer width: %w", err)
	}
	if info.height, err = strconv.Atoi(h); err != nil {
		return info, fmt.Errorf("framebuffer height: %w", err)
	}
	if info.bpp, err = readInt(filepath.Join(dir, "bits_per_pixel")); err != nil {
		return info, err
	}
	if info.stride, err = readInt(filepath.Join(dir, "stride")); err != nil {
		return info, err
	}
	return info, nil
}

func readInt(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("framebuffer geometry: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return n, nil
}
