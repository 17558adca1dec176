// Package sim is a simulated Enviro+ board for previews and tests: every
// variable random-walks around a plausible indoor value.
package sim

import (
	"math/rand/v2"
	"sync"

	"github.com/luki/enviro/internal/sensor"
)

// TapProximity is what Proximity reports after Tap.
const TapProximity = 2000

type walk struct {
	value, step, lo, hi float64
}

func (w *walk) next(r *rand.Rand) float64 {
	w.value += r.NormFloat64() * w.step
	w.value = min(max(w.value, w.lo), w.hi)
	return w.value
}

// Board implements sensor.Source and the CPU thermometer. It is safe for
// concurrent use so a UI goroutine can call Tap while another polls.
type Board struct {
	mu        sync.Mutex
	rng       *rand.Rand
	walks     [sensor.NumKinds]walk
	cpu       walk
	tap       bool
	pmTimeout float64
}

var _ sensor.Source = (*Board)(nil)

// New creates a board seeded with seed. pmTimeout is the fraction of
// particulate reads that fail with sensor.ErrReadTimeout.
func New(seed uint64, pmTimeout float64) *Board {
	return &Board{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		walks: [sensor.NumKinds]walk{
			sensor.Temperature: {26, 0.15, 10, 40},
			sensor.Pressure:    {1013, 0.3, 950, 1050},
			sensor.Humidity:    {45, 0.5, 10, 95},
			sensor.Light:       {250, 15, 0, 2000},
			sensor.Oxidised:    {20000, 400, 1000, 100000},
			sensor.Reduced:     {400000, 5000, 50000, 1000000},
			sensor.NH3:         {100000, 2000, 10000, 500000},
			sensor.PM1:         {3, 0.5, 0, 200},
			sensor.PM25:        {5, 0.8, 0, 300},
			sensor.PM10:        {8, 1, 0, 400},
		},
		cpu:       walk{45, 0.3, 35, 70},
		pmTimeout: pmTimeout,
	}
}

func (b *Board) read(k sensor.Kind) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.walks[k].next(b.rng)
}

func (b *Board) Temperature() (float64, error) { return b.read(sensor.Temperature), nil }
func (b *Board) Pressure() (float64, error)    { return b.read(sensor.Pressure), nil }
func (b *Board) Humidity() (float64, error)    { return b.read(sensor.Humidity), nil }
func (b *Board) Lux() (float64, error)         { return b.read(sensor.Light), nil }

// Tap makes the next proximity read look like a finger on the sensor.
func (b *Board) Tap() {
	b.mu.Lock()
	b.tap = true
	b.mu.Unlock()
}

func (b *Board) Proximity() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tap {
		b.tap = false
		return TapProximity, nil
	}
	return b.rng.IntN(6), nil
}

func (b *Board) Gas() (sensor.GasReading, error) {
	return sensor.GasReading{
		Oxidising: b.read(sensor.Oxidised),
		Reducing:  b.read(sensor.Reduced),
		NH3:       b.read(sensor.NH3),
	}, nil
}

func (b *Board) Particulates() (sensor.PMReading, error) {
	b.mu.Lock()
	timeout := b.rng.Float64() < b.pmTimeout
	b.mu.Unlock()
	if timeout {
		return sensor.PMReading{}, sensor.ErrReadTimeout
	}
	return sensor.PMReading{
		PM1:  b.read(sensor.PM1),
		PM25: b.read(sensor.PM25),
		PM10: b.read(sensor.PM10),
	}, nil
}

// CPUTemperature returns a simulated SoC temperature.
func (b *Board) CPUTemperature() (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cpu.next(b.rng), nil
}
