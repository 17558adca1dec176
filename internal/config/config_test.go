package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "LOG_LEVEL", "TICK_INTERVAL", "DISPLAY_SINK", "BME280_ADDRESS", "PROFILE", "PMS_READ_TIMEOUT"} {
		t.Setenv(k, "")
	}

	got, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want nil", err)
	}

	if got.AppEnv != "dev" {
		t.Errorf("AppEnv = %q, want %q", got.AppEnv, "dev")
	}
	if got.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", got.LogLevel, slog.LevelInfo)
	}
	if got.TickInterval != time.Second {
		t.Errorf("TickInterval = %v, want 1s", got.TickInterval)
	}
	if got.DisplaySink != "fbdev" {
		t.Errorf("DisplaySink = %q, want fbdev", got.DisplaySink)
	}
	if got.BME280Address != 0x76 || got.GasAddress != 0x49 {
		t.Errorf("addresses = %#x, %#x, want 0x76, 0x49", got.BME280Address, got.GasAddress)
	}
	if got.CompensationFactor != 2.25 || got.CPUTempFallback != 20 {
		t.Errorf("compensation = %v / %v, want 2.25 / 20", got.CompensationFactor, got.CPUTempFallback)
	}
	if got.TapThreshold != 1500 || got.TapDebounce != 500*time.Millisecond {
		t.Errorf("tap = %d / %v, want 1500 / 500ms", got.TapThreshold, got.TapDebounce)
	}
	if got.DisplayWidth != 160 || got.DisplayHeight != 80 {
		t.Errorf("display = %dx%d, want 160x80", got.DisplayWidth, got.DisplayHeight)
	}
	if got.Profile != "full" {
		t.Errorf("Profile = %q, want full", got.Profile)
	}
	if got.PMSReadTimeout != 5*time.Second {
		t.Errorf("PMSReadTimeout = %v, want 5s", got.PMSReadTimeout)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TICK_INTERVAL", "5s")
	t.Setenv("DISPLAY_SINK", "PNG")
	t.Setenv("GAS_ADDRESS", "0x48")
	t.Setenv("PROFILE", "hu")
	t.Setenv("SIM_SEED", "42")

	got, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want nil", err)
	}
	if got.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", got.LogLevel)
	}
	if got.TickInterval != 5*time.Second {
		t.Errorf("TickInterval = %v, want 5s", got.TickInterval)
	}
	if got.DisplaySink != "png" {
		t.Errorf("DisplaySink = %q, want png", got.DisplaySink)
	}
	if got.GasAddress != 0x48 {
		t.Errorf("GasAddress = %#x, want 0x48", got.GasAddress)
	}
	if got.Profile != "hu" || got.SimSeed != 42 {
		t.Errorf("Profile, SimSeed = %q, %d", got.Profile, got.SimSeed)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "app env", key: "APP_ENV", value: "staging"},
		{name: "log level", key: "LOG_LEVEL", value: "verbose"},
		{name: "tick interval", key: "TICK_INTERVAL", value: "soon"},
		{name: "zero tick interval", key: "TICK_INTERVAL", value: "0s"},
		{name: "factor", key: "COMPENSATION_FACTOR", value: "0"},
		{name: "sink", key: "DISPLAY_SINK", value: "hdmi"},
		{name: "address", key: "BME280_ADDRESS", value: "0x1ffff"},
		{name: "width", key: "DISPLAY_WIDTH", value: "-1"},
		{name: "timeout rate", key: "SIM_PM_TIMEOUT_RATE", value: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := LoadFromEnv(); err == nil {
				t.Fatalf("LoadFromEnv() with %s=%q: error = nil, want non-nil", tt.key, tt.value)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warning ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}
