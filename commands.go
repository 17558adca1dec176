package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luki/enviro/internal/app"
	"github.com/luki/enviro/internal/board"
	"github.com/luki/enviro/internal/config"
	"github.com/luki/enviro/internal/display"
	"github.com/luki/enviro/internal/emulator"
	"github.com/luki/enviro/internal/mode"
	"github.com/luki/enviro/internal/monitor"
	"github.com/luki/enviro/internal/profile"
	"github.com/luki/enviro/internal/sensor"
	"github.com/luki/enviro/internal/sim"
	"github.com/luki/enviro/internal/station"
)

type command struct {
	name string
	desc string
	run  func(ctx context.Context, cfg config.Config, prof *profile.Profile) error

	// ownsTerminal commands draw on the terminal or a window, so logs go
	// to LOG_FILE instead of stdout.
	ownsTerminal bool
}

// commands lists what the binary can do. The unnamed entry is the default.
var commands = []command{
	{name: "", desc: "Run the monitor on the Enviro+ board and LCD (default)", run: runBoard},
	{name: "preview", desc: "Terminal preview with simulated sensors", ownsTerminal: true, run: runPreview},
	{name: "window", desc: "Desktop window with simulated sensors", ownsTerminal: true, run: runWindow},
	{name: "lcdcheck", desc: "Draw a test pattern on the display", run: runLCDCheck},
	{name: "help", desc: "Show this help"},
}

func lookupCommand(name string) (command, bool) {
	if name == "-h" || name == "--help" {
		name = "help"
	}
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp() {
	fmt.Println("Usage: enviro [command]")
	fmt.Println()
	fmt.Println("Commands:")
	for _, c := range commands {
		name := c.name
		if name == "" {
			name = "(none)"
		}
		fmt.Printf("  %-9s  %s\n", name, c.desc)
	}
	fmt.Println()
	fmt.Println("Configuration is read from the environment, e.g.:")
	fmt.Println("  PROFILE=no-pm enviro")
	fmt.Println("  DISPLAY_SINK=png PNG_PATH=/tmp/lcd.png enviro")
	fmt.Println("  PROFILE=hu TICK_INTERVAL=5s enviro preview")
}

func stationOptions(cfg config.Config) station.Options {
	return station.Options{
		Width:       cfg.DisplayWidth,
		Height:      cfg.DisplayHeight,
		Factor:      cfg.CompensationFactor,
		CPUFallback: cfg.CPUTempFallback,
		Tap:         mode.Options{Threshold: cfg.TapThreshold, Debounce: cfg.TapDebounce},
		Logger:      slog.Default(),
	}
}

func displayConfig(cfg config.Config) display.Config {
	return display.Config{
		Kind:         cfg.DisplaySink,
		Device:       cfg.FBDevice,
		BacklightPin: cfg.BacklightPin,
		Path:         cfg.PNGPath,
		Width:        cfg.DisplayWidth,
		Height:       cfg.DisplayHeight,
	}
}

// ── Hardware ─────────────────────────────────────────────────────────

func runBoard(ctx context.Context, cfg config.Config, prof *profile.Profile) error {
	b, err := board.Open(board.Config{
		I2CBus:        cfg.I2CBus,
		BME280Address: cfg.BME280Address,
		GasAddress:    cfg.GasAddress,
		HeaterPin:     cfg.GasHeaterPin,
		Particulates:  prof.HasParticulates(),
		PMSPort:       cfg.PMSPort,
		PMSTimeout:    cfg.PMSReadTimeout,
		PMSEnablePin:  board.DefaultConfig().PMSEnablePin,
		PMSResetPin:   board.DefaultConfig().PMSResetPin,
	}, slog.Default())
	if err != nil {
		return err
	}
	defer b.Close()

	sink, err := display.Open(displayConfig(cfg))
	if err != nil {
		return err
	}
	defer sink.Close()

	st := station.New(prof, b, sensor.ThermalZone{Path: cfg.CPUTempPath}, stationOptions(cfg))
	return app.Run(ctx, cfg, st, sink)
}

func runLCDCheck(_ context.Context, cfg config.Config, _ *profile.Profile) error {
	sink, err := display.Open(displayConfig(cfg))
	if err != nil {
		return err
	}
	defer sink.Close()

	if err := display.Check(sink, cfg.DisplayWidth, cfg.DisplayHeight); err != nil {
		return err
	}
	slog.Info("display check passed", "sink", cfg.DisplaySink)
	return nil
}

// ── Simulated ────────────────────────────────────────────────────────

func runPreview(ctx context.Context, cfg config.Config, prof *profile.Profile) error {
	s := sim.New(cfg.SimSeed, cfg.SimPMTimeoutRate)
	st := station.New(prof, s, s, stationOptions(cfg))

	p := tea.NewProgram(
		monitor.New(st, s, cfg.TickInterval),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runWindow(ctx context.Context, cfg config.Config, prof *profile.Profile) error {
	s := sim.New(cfg.SimSeed, cfg.SimPMTimeoutRate)
	st := station.New(prof, s, s, stationOptions(cfg))
	g := emulator.New(ctx, st, s, cfg.TickInterval, cfg.DisplayWidth, cfg.DisplayHeight)
	return emulator.Run(g, fmt.Sprintf("Enviro+ (%s)", prof.Name))
}
