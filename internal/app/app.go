// Package app is the headless monitor loop: tick the station on a fixed
// interval and hand each frame to the display.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luki/enviro/internal/config"
	"github.com/luki/enviro/internal/display"
	"github.com/luki/enviro/internal/station"
)

// Ticker produces one frame per call.
type Ticker interface {
	Tick(now time.Time) (station.Frame, error)
}

// Run ticks immediately and then every cfg.TickInterval until ctx is done.
// Cancellation is a clean exit; sensor and display errors end the loop.
func Run(ctx context.Context, cfg config.Config, st Ticker, sink display.Sink) error {
	interval := cfg.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	if err := step(st, sink, time.Now()); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("monitor loop stopped", "reason", ctx.Err())
			return nil
		case now := <-ticker.C:
			if err := step(st, sink, now); err != nil {
				return err
			}
		}
	}
}

func step(st Ticker, sink display.Sink, now time.Time) error {
	f, err := st.Tick(now)
	if err != nil {
		return fmt.Errorf("tick: %w", err)
	}
	if err := sink.Show(f.Image); err != nil {
		return fmt.Errorf("show frame: %w", err)
	}
	return nil
}
