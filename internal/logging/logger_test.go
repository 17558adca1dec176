package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/luki/enviro/internal/config"
)

func TestNew_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Config{AppEnv: "prod", LogLevel: slog.LevelInfo}, "1.2.0", "enviro", &buf)

	log.Info("reading", "variable", "temperature", "value", 21.5)
	log.Debug("hidden")

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("output is not one JSON record: %v\n%s", err, buf.String())
	}
	for k, want := range map[string]any{"msg": "reading", "app": "enviro", "version": "1.2.0", "variable": "temperature"} {
		if rec[k] != want {
			t.Errorf("%s = %v, want %v", k, rec[k], want)
		}
	}
}

func TestNew_DevWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Config{AppEnv: "dev", LogLevel: slog.LevelDebug}, "dev", "enviro", &buf)

	log.Debug("temperature compensated", "adjusted", 18.4)

	out := buf.String()
	if !strings.Contains(out, "temperature compensated") || !strings.Contains(out, "enviro") {
		t.Errorf("dev output missing fields: %q", out)
	}
}
