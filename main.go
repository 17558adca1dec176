package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/luki/enviro/internal/config"
	"github.com/luki/enviro/internal/logging"
	"github.com/luki/enviro/internal/profile"
)

var version = "dev"

const appName = "enviro"

func main() {
	name := ""
	if len(os.Args) > 1 {
		name = os.Args[1]
	}
	cmd, ok := lookupCommand(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printHelp()
		os.Exit(1)
	}
	if cmd.run == nil {
		printHelp()
		return
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logOut := os.Stdout
	if cmd.ownsTerminal {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config error: log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(cfg, version, appName, logOut)
	slog.SetDefault(logger)

	prof, err := loadProfile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	slog.Info("starting",
		"app", appName,
		"version", version,
		"env", cfg.AppEnv,
		"log_level", cfg.LogLevel.String(),
		"command", cmd.name,
		"profile", prof.Name,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, cfg, prof); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "err", err)
		stop()
		os.Exit(1)
	}

	slog.Info("shutting down")
}

func loadProfile(cfg config.Config) (*profile.Profile, error) {
	if cfg.ProfileFile != "" {
		return profile.LoadFile(cfg.ProfileFile)
	}
	return profile.Load(cfg.Profile)
}
