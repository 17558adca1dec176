// Package mode cycles the panel between single-variable views and the
// combined view when the proximity sensor is tapped.
package mode

import "time"

const (
	// DefaultThreshold is the proximity count a tap must exceed.
	DefaultThreshold = 1500

	// DefaultDebounce is the minimum time between accepted taps.
	DefaultDebounce = 500 * time.Millisecond
)

// Options tune tap detection.
type Options struct {
	Threshold int
	Debounce  time.Duration
}

// DefaultOptions returns the stock tap settings.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, Debounce: DefaultDebounce}
}

// Controller holds the current mode: 0..n-1 show one variable each, n
// shows every variable at once.
type Controller struct {
	n        int
	mode     int
	opts     Options
	lastTap  time.Time
	tapCount int
}

// New creates a controller for n variables, starting on the combined view.
func New(n int, opts Options) *Controller {
	return &Controller{n: n, mode: n, opts: opts}
}

// Observe feeds one proximity reading taken at now and reports whether it
// was accepted as a tap and changed the mode.
func (c *Controller) Observe(proximity int, now time.Time) bool {
	if proximity <= c.opts.Threshold {
		return false
	}
	if !c.lastTap.IsZero() && now.Sub(c.lastTap) <= c.opts.Debounce {
		return false
	}
	c.mode = (c.mode + 1) % (c.n + 1)
	c.lastTap = now
	c.tapCount++
	return true
}

// Mode returns the current mode number.
func (c *Controller) Mode() int { return c.mode }

// Combined reports whether every variable is shown at once.
func (c *Controller) Combined() bool { return c.mode == c.n }

// Views returns the number of modes, n+1.
func (c *Controller) Views() int { return c.n + 1 }

// Taps returns how many taps have been accepted.
func (c *Controller) Taps() int { return c.tapCount }
