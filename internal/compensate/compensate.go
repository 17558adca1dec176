// Package compensate corrects the BME280 temperature for heat coming off
// the Raspberry Pi CPU underneath the board.
package compensate

import "github.com/luki/enviro/internal/history"

const (
	// DefaultFactor is the tuning divisor. Decrease it to pull the
	// temperature further down, increase it for a smaller correction.
	DefaultFactor = 2.25

	// Samples is how many CPU readings are averaged.
	Samples = 5
)

// Compensator keeps a short rolling history of CPU temperatures.
type Compensator struct {
	factor float64
	cpu    *history.Window
}

// New seeds the CPU history with initial.
func New(factor, initial float64) *Compensator {
	if factor <= 0 {
		factor = DefaultFactor
	}
	return &Compensator{
		factor: factor,
		cpu:    history.NewWindow(Samples, initial),
	}
}

// Compensate records reference as the newest CPU temperature and returns
// raw adjusted by the scaled difference between the CPU average and raw.
func (c *Compensator) Compensate(raw, reference float64) float64 {
	c.cpu.Push(reference)
	return Adjust(raw, c.cpu.Avg(), c.factor)
}

// Average returns the current CPU temperature average.
func (c *Compensator) Average() float64 {
	return c.cpu.Avg()
}

// Factor returns the tuning divisor in use.
func (c *Compensator) Factor() float64 {
	return c.factor
}

// Adjust applies raw - (avgCPU - raw) / factor.
func Adjust(raw, avgCPU, factor float64) float64 {
	return raw - (avgCPU-raw)/factor
}
