package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	LogFile  string // log destination while the terminal or a window is in use

	Profile     string
	ProfileFile string

	TickInterval       time.Duration
	CompensationFactor float64
	TapThreshold       int
	TapDebounce        time.Duration
	CPUTempPath        string
	CPUTempFallback    float64

	DisplaySink   string
	FBDevice      string
	BacklightPin  string
	PNGPath       string
	DisplayWidth  int
	DisplayHeight int

	I2CBus         string
	BME280Address  uint16
	GasAddress     uint16
	GasHeaterPin   string
	PMSPort        string
	PMSReadTimeout time.Duration

	SimSeed          uint64
	SimPMTimeoutRate float64
}

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(envString("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:       appEnv,
		LogLevel:     level,
		LogFile:      envString("LOG_FILE", "enviro-preview.log"),
		Profile:      envString("PROFILE", "full"),
		ProfileFile:  envString("PROFILE_FILE", ""),
		CPUTempPath:  envString("CPU_TEMP_PATH", "/sys/class/thermal/thermal_zone0/temp"),
		DisplaySink:  strings.ToLower(envString("DISPLAY_SINK", "fbdev")),
		FBDevice:     envString("FB_DEVICE", "/dev/fb1"),
		BacklightPin: envString("BACKLIGHT_PIN", "GPIO12"),
		PNGPath:      envString("PNG_PATH", "enviro.png"),
		I2CBus:       envString("I2C_BUS", ""),
		GasHeaterPin: envString("GAS_HEATER_PIN", "GPIO24"),
		PMSPort:      envString("PMS_PORT", "/dev/ttyAMA0"),
	}

	if cfg.TickInterval, err = envDuration("TICK_INTERVAL", "1s"); err != nil {
		return Config{}, err
	}
	if cfg.TapDebounce, err = envDuration("TAP_DEBOUNCE", "500ms"); err != nil {
		return Config{}, err
	}
	if cfg.PMSReadTimeout, err = envDuration("PMS_READ_TIMEOUT", "5s"); err != nil {
		return Config{}, err
	}
	if cfg.CompensationFactor, err = envFloat("COMPENSATION_FACTOR", "2.25"); err != nil {
		return Config{}, err
	}
	if cfg.CompensationFactor <= 0 {
		return Config{}, fmt.Errorf("COMPENSATION_FACTOR must be positive, got %v", cfg.CompensationFactor)
	}
	if cfg.CPUTempFallback, err = envFloat("CPU_TEMP_FALLBACK", "20.0"); err != nil {
		return Config{}, err
	}
	if cfg.SimPMTimeoutRate, err = envFloat("SIM_PM_TIMEOUT_RATE", "0.05"); err != nil {
		return Config{}, err
	}
	if cfg.SimPMTimeoutRate < 0 || cfg.SimPMTimeoutRate > 1 {
		return Config{}, fmt.Errorf("SIM_PM_TIMEOUT_RATE must be within [0, 1], got %v", cfg.SimPMTimeoutRate)
	}
	if cfg.TapThreshold, err = envInt("TAP_THRESHOLD", "1500"); err != nil {
		return Config{}, err
	}
	if cfg.DisplayWidth, err = envInt("DISPLAY_WIDTH", "160"); err != nil {
		return Config{}, err
	}
	if cfg.DisplayHeight, err = envInt("DISPLAY_HEIGHT", "80"); err != nil {
		return Config{}, err
	}
	if cfg.DisplayWidth <= 0 || cfg.DisplayHeight <= 0 {
		return Config{}, fmt.Errorf("display size must be positive, got %dx%d", cfg.DisplayWidth, cfg.DisplayHeight)
	}
	if cfg.BME280Address, err = envAddress("BME280_ADDRESS", "0x76"); err != nil {
		return Config{}, err
	}
	if cfg.GasAddress, err = envAddress("GAS_ADDRESS", "0x49"); err != nil {
		return Config{}, err
	}

	seed := envString("SIM_SEED", "1")
	if cfg.SimSeed, err = strconv.ParseUint(seed, 0, 64); err != nil {
		return Config{}, fmt.Errorf("invalid SIM_SEED %q: %w", seed, err)
	}

	switch cfg.DisplaySink {
	case "fbdev", "png", "discard":
	default:
		return Config{}, fmt.Errorf("invalid DISPLAY_SINK %q (allowed: fbdev, png, discard)", cfg.DisplaySink)
	}

	return cfg, nil
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envDuration(key, def string) (time.Duration, error) {
	s := envString(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}

func envFloat(key, def string) (float64, error) {
	s := envString(key, def)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return f, nil
}

func envInt(key, def string) (int, error) {
	s := envString(key, def)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return n, nil
}

func envAddress(key, def string) (uint16, error) {
	s := envString(key, def)
	a, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return uint16(a), nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
