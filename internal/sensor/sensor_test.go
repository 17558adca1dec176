package sensor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseKind(t *testing.T) {
	for i := 0; i < NumKinds; i++ {
		k := Kind(i)
		got, err := ParseKind(k.Key())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.Key(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.Key(), got, k)
		}
	}

	if got, err := ParseKind("  PM25 "); err != nil || got != PM25 {
		t.Errorf("ParseKind with whitespace = %v, %v", got, err)
	}

	_, err := ParseKind("co2")
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(co2) error = %v, want ErrUnknownKind", err)
	}
}

func TestParticulate(t *testing.T) {
	for i := 0; i < NumKinds; i++ {
		k := Kind(i)
		want := k == PM1 || k == PM25 || k == PM10
		if k.Particulate() != want {
			t.Errorf("%v.Particulate() = %v, want %v", k, k.Particulate(), want)
		}
	}
}

func TestVariableFormat(t *testing.T) {
	tests := []struct {
		v     Variable
		value float64
		want  string
	}{
		{Variable{Kind: Temperature, Label: "temperature", Unit: "C"}, 21.46, "temp: 21.5 C"},
		{Variable{Kind: NH3, Label: "nh3", Unit: "kO"}, 120, "nh3: 120.0 kO"},
		{Variable{Kind: Temperature, Label: "Hőmérséklet", Unit: "°C"}, 19.94, "Hőmé: 19.9 °C"},
		// decomposed ő must stay one character
		{Variable{Kind: Temperature, Label: "Ho\u030bme\u0301rse\u0301klet", Unit: "°C"}, 0, "H\u0151m\u00e9: 0.0 °C"},
	}
	for _, tt := range tests {
		if got := tt.v.Format(tt.value); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestLCDText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"temp: 21.5 C", "temp: 21.5 C"},
		{"Hőmé: 19.9 °C", "Home: 19.9 C"},
		{"Légn: 1013.2 hPa", "Legn: 1013.2 hPa"},
		{"Pára: 40.0 %", "Para: 40.0 %"},
	}
	for _, tt := range tests {
		if got := LCDText(tt.in); got != tt.want {
			t.Errorf("LCDText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMeasureTemp(t *testing.T) {
	got, err := ParseMeasureTemp("temp=48.3'C\n")
	if err != nil {
		t.Fatalf("ParseMeasureTemp: %v", err)
	}
	if got != 48.3 {
		t.Errorf("got %f, want 48.3", got)
	}

	if _, err := ParseMeasureTemp("error=1 error_msg=\"Command not registered\""); err == nil {
		t.Error("expected error for unexpected output")
	}
}

func TestThermalZone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp")
	if err := os.WriteFile(path, []byte("51540\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ThermalZone{Path: path}.CPUTemperature()
	if err != nil {
		t.Fatalf("CPUTemperature: %v", err)
	}
	if got != 51.54 {
		t.Errorf("got %f, want 51.54", got)
	}
}
