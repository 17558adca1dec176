package chart

import (
	"errors"
	"fmt"
	"image/color"
)

// Band is a severity classification of a reading against its limits.
type Band int

const (
	DangerouslyLow Band = iota
	Low
	Normal
	High
	DangerouslyHigh

	numBands = int(DangerouslyHigh) + 1
)

var bandNames = [numBands]string{"dangerously low", "low", "normal", "high", "dangerously high"}

func (b Band) String() string {
	if b < 0 || int(b) >= numBands {
		return fmt.Sprintf("band(%d)", int(b))
	}
	return bandNames[b]
}

// Palette colours the combined view, index-aligned with Band.
var Palette = [numBands]color.RGBA{
	{R: 0, G: 0, B: 255, A: 255},   // dangerously low
	{R: 0, G: 255, B: 255, A: 255}, // low
	{R: 0, G: 255, B: 0, A: 255},   // normal
	{R: 255, G: 255, B: 0, A: 255}, // high
	{R: 255, G: 0, B: 0, A: 255},   // dangerously high
}

// Color returns the palette entry for b.
func (b Band) Color() color.RGBA {
	if b < 0 || int(b) >= numBands {
		return Palette[Normal]
	}
	return Palette[b]
}

// ErrNonMonotonic is returned by Validate for limits that go down.
var ErrNonMonotonic = errors.New("limits are not in ascending order")

// Validate checks that the four band boundaries never decrease.
func Validate(limits [4]float64) error {
	for i := 1; i < len(limits); i++ {
		if limits[i] < limits[i-1] {
			return fmt.Errorf("%w: %v > %v at position %d", ErrNonMonotonic, limits[i-1], limits[i], i+1)
		}
	}
	return nil
}

// Classify returns the band above the highest boundary v strictly exceeds,
// or DangerouslyLow when it exceeds none. Limits must pass Validate.
func Classify(v float64, limits [4]float64) Band {
	band := DangerouslyLow
	for i, limit := range limits {
		if v > limit {
			band = Band(i + 1)
		}
	}
	return band
}
