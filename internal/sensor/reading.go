// Package sensor defines the variables tracked by the monitor and the
// boundary to the hardware that produces their readings.
package sensor

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one tracked variable.
type Kind int

const (
	Temperature Kind = iota
	Pressure
	Humidity
	Light
	Oxidised
	Reduced
	NH3
	PM1
	PM25
	PM10

	NumKinds = int(PM10) + 1
)

var kindKeys = [NumKinds]string{
	"temperature",
	"pressure",
	"humidity",
	"light",
	"oxidised",
	"reduced",
	"nh3",
	"pm1",
	"pm25",
	"pm10",
}

// Key returns the stable English identifier used in logs and profiles.
func (k Kind) Key() string {
	if k < 0 || int(k) >= NumKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindKeys[k]
}

func (k Kind) String() string { return k.Key() }

// Particulate reports whether the kind is read from the PMS5003.
func (k Kind) Particulate() bool {
	return k == PM1 || k == PM25 || k == PM10
}

// ErrUnknownKind is returned by ParseKind for keys it does not recognise.
var ErrUnknownKind = errors.New("unknown variable")

// ParseKind maps a key such as "pm25" back to its Kind.
func ParseKind(key string) (Kind, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range kindKeys {
		if k == key {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, key)
}

// Variable is one row of the display: what is measured, how it is labelled
// and where its severity bands start. Defined once at start-up.
type Variable struct {
	Kind   Kind
	Label  string     // e.g. "temperature" or "Hőmérséklet"
	Unit   string     // e.g. "°C"
	Limits [4]float64 // ascending band boundaries
}

// Abbrev returns the first four characters of the label.
func (v Variable) Abbrev() string {
	return abbrev(v.Label, 4)
}

// Format renders a value the way both views print it.
func (v Variable) Format(value float64) string {
	return fmt.Sprintf("%s: %.1f %s", v.Abbrev(), value, v.Unit)
}

// GasReading holds the three MICS6814 channel resistances in ohms.
type GasReading struct {
	Oxidising float64
	Reducing  float64
	NH3       float64
}

// PMReading holds PMS5003 mass concentrations in µg/m³ (standard particle).
type PMReading struct {
	PM1  float64
	PM25 float64
	PM10 float64
}

// ErrReadTimeout is returned by Particulates when no valid frame arrives in
// time. It is the one sensor failure callers are expected to recover from.
var ErrReadTimeout = errors.New("particulate sensor read timeout")

// Source is the board. Every call blocks until the device answers.
type Source interface {
	Temperature() (float64, error) // °C, uncompensated
	Pressure() (float64, error)    // hPa
	Humidity() (float64, error)    // %RH
	Lux() (float64, error)
	Proximity() (int, error) // raw counts
	Gas() (GasReading, error)
	Particulates() (PMReading, error)
}
