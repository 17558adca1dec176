// Package station runs one poll-compute-render step of the monitor: read
// the proximity sensor, move between views on a tap, sample the variables
// the current view needs, and draw the frame.
package station

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/luki/enviro/internal/chart"
	"github.com/luki/enviro/internal/compensate"
	"github.com/luki/enviro/internal/history"
	"github.com/luki/enviro/internal/mode"
	"github.com/luki/enviro/internal/profile"
	"github.com/luki/enviro/internal/sensor"
)

const (
	// DefaultCPUFallback stands in for the CPU temperature when it cannot
	// be read.
	DefaultCPUFallback = 20.0

	// darkProximity is the proximity below which the light channel is
	// trusted; above it a finger is covering the sensor.
	darkProximity = 10
)

// Thermometer supplies the CPU reference temperature.
type Thermometer interface {
	CPUTemperature() (float64, error)
}

// Options configure a Station.
type Options struct {
	Width       int
	Height      int
	Factor      float64
	CPUFallback float64
	Tap         mode.Options
	Logger      *slog.Logger
}

// DefaultOptions returns settings for the 160×80 panel.
func DefaultOptions() Options {
	return Options{
		Width:       160,
		Height:      80,
		Factor:      compensate.DefaultFactor,
		CPUFallback: DefaultCPUFallback,
		Tap:         mode.DefaultOptions(),
	}
}

// Frame is the result of one tick.
type Frame struct {
	Image    *image.RGBA
	Time     time.Time
	Mode     int
	Combined bool
	Index    int // variable shown; -1 on the combined view
}

// Station owns all state of the monitor loop. It is not safe for
// concurrent use; one goroutine drives Tick.
type Station struct {
	vars     []sensor.Variable
	index    [sensor.NumKinds]int
	src      sensor.Source
	cpu      Thermometer
	windows  *history.Store
	comp     *compensate.Compensator
	mode     *mode.Controller
	gradient *chart.Gradient
	grid     *chart.Grid
	opts     Options
	log      *slog.Logger
}

// New builds a station for p. The CPU history is seeded with one reading.
func New(p *profile.Profile, src sensor.Source, cpu Thermometer, opts Options) *Station {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	s := &Station{
		vars:     p.Variables,
		src:      src,
		cpu:      cpu,
		windows:  history.NewStore(len(p.Variables), opts.Width),
		mode:     mode.New(len(p.Variables), opts.Tap),
		gradient: chart.NewGradient(opts.Width, opts.Height),
		grid:     chart.NewGrid(opts.Width, opts.Height),
		opts:     opts,
		log:      opts.Logger,
	}
	for i := range s.index {
		s.index[i] = -1
	}
	for i, v := range p.Variables {
		s.index[v.Kind] = i
	}
	s.comp = compensate.New(opts.Factor, s.cpuTemperature())
	return s
}

// Tick runs one loop iteration at now and returns the frame to show.
// Errors from sensors other than the particulate sensor are returned.
func (s *Station) Tick(now time.Time) (Frame, error) {
	prox, err := s.src.Proximity()
	if err != nil {
		return Frame{}, fmt.Errorf("read proximity: %w", err)
	}
	if s.mode.Observe(prox, now) {
		s.log.Info("view changed", "mode", s.mode.Mode(), "view", s.ViewName())
	}

	f := Frame{Time: now, Mode: s.mode.Mode(), Combined: s.mode.Combined(), Index: -1}
	if f.Combined {
		if err := s.sampleAll(prox); err != nil {
			return Frame{}, err
		}
		f.Image = s.grid.Render(s.vars, s.windows.Latest())
		return f, nil
	}

	f.Index = f.Mode
	v := s.vars[f.Index]
	if err := s.sampleOne(v.Kind, prox); err != nil {
		return Frame{}, err
	}
	f.Image = s.gradient.Render(v, s.windows.Get(f.Index).Values)
	return f, nil
}

// sampleOne reads the probe behind k and records only k.
func (s *Station) sampleOne(k sensor.Kind, prox int) error {
	p := dispatch[k]
	vals, err := p.read(s, prox)
	if err != nil {
		return fmt.Errorf("read %s: %w", p.name, err)
	}
	s.record(k, vals[k])
	return nil
}

// sampleAll reads every probe the profile uses once and records all of
// their values.
func (s *Station) sampleAll(prox int) error {
	for i := range probes {
		p := &probes[i]
		if !s.uses(p) {
			continue
		}
		vals, err := p.read(s, prox)
		if err != nil {
			return fmt.Errorf("read %s: %w", p.name, err)
		}
		for _, k := range p.kinds {
			if s.index[k] >= 0 {
				s.record(k, vals[k])
			}
		}
	}
	return nil
}

func (s *Station) uses(p *probe) bool {
	for _, k := range p.kinds {
		if s.index[k] >= 0 {
			return true
		}
	}
	return false
}

func (s *Station) record(k sensor.Kind, value float64) {
	i := s.index[k]
	s.windows.Record(i, value)
	s.log.Info("reading",
		"variable", k.Key(),
		"value", math.Round(value*10)/10,
		"unit", s.vars[i].Unit,
	)
}

// cpuTemperature applies the fallback policy for the CPU reference.
func (s *Station) cpuTemperature() float64 {
	if s.cpu == nil {
		return s.opts.CPUFallback
	}
	t, err := s.cpu.CPUTemperature()
	if err != nil {
		s.log.Warn("could not read cpu temperature, using fallback",
			"fallback", s.opts.CPUFallback,
			"err", err,
		)
		return s.opts.CPUFallback
	}
	return t
}

// ViewName describes the current view for logs and status lines.
func (s *Station) ViewName() string {
	if s.mode.Combined() {
		return "all"
	}
	return s.vars[s.mode.Mode()].Label
}

// Variables returns the tracked variables in display order.
func (s *Station) Variables() []sensor.Variable { return s.vars }

// Window returns variable i's rolling window.
func (s *Station) Window(i int) *history.Window { return s.windows.Get(i) }

// Mode returns the view controller.
func (s *Station) Mode() *mode.Controller { return s.mode }

// CPUAverage returns the averaged CPU reference temperature.
func (s *Station) CPUAverage() float64 { return s.comp.Average() }

// isTimeout reports whether err is the recoverable particulate timeout.
func isTimeout(err error) bool {
	return errors.Is(err, sensor.ErrReadTimeout)
}
