// Package profile loads the variable tables that decide what the panel
// shows: which sensors, their labels and units, and their warning limits.
// Tables are CSV files with the columns
//
//	key,label,unit,limit1,limit2,limit3,limit4
//
// Built-in tables are embedded; others can be loaded from disk.
package profile

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/luki/enviro/internal/chart"
	"github.com/luki/enviro/internal/sensor"
)

//go:embed profiles/*.csv
var builtin embed.FS

// Default is the profile used when none is configured.
const Default = "full"

// ErrUnknownProfile is returned by Load for names with no built-in table.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile is an ordered set of variables. Order is display order.
type Profile struct {
	Name      string
	Variables []sensor.Variable
}

// HasParticulates reports whether any variable needs the PMS5003.
func (p *Profile) HasParticulates() bool {
	for _, v := range p.Variables {
		if v.Kind.Particulate() {
			return true
		}
	}
	return false
}

// Index returns the position of kind in the profile, or -1.
func (p *Profile) Index(k sensor.Kind) int {
	for i, v := range p.Variables {
		if v.Kind == k {
			return i
		}
	}
	return -1
}

// Names lists the built-in profiles.
func Names() []string {
	entries, _ := builtin.ReadDir("profiles")
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".csv"))
	}
	sort.Strings(names)
	return names
}

// Load returns a built-in profile by name.
func Load(name string) (*Profile, error) {
	if name == "" {
		name = Default
	}
	f, err := builtin.Open("profiles/" + name + ".csv")
	if err != nil {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownProfile, name, strings.Join(Names(), ", "))
	}
	defer f.Close()
	return Parse(name, f)
}

// LoadFile reads a profile from a CSV file on disk.
func LoadFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, f)
}

// Parse reads and validates a profile table.
func Parse(name string, r io.Reader) (*Profile, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	p := &Profile{Name: name}
	seen := make(map[sensor.Kind]bool)
	for first := true; ; first = false {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		line, _ := reader.FieldPos(0)
		if first && len(row) > 0 && row[0] == "key" {
			continue
		}
		v, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("profile %s line %d: %w", name, line, err)
		}
		if seen[v.Kind] {
			return nil, fmt.Errorf("profile %s line %d: duplicate variable %s", name, line, v.Kind)
		}
		seen[v.Kind] = true
		p.Variables = append(p.Variables, v)
	}

	if len(p.Variables) == 0 {
		return nil, fmt.Errorf("profile %s: no variables", name)
	}
	return p, nil
}

func parseRow(row []string) (sensor.Variable, error) {
	if len(row) != 7 {
		return sensor.Variable{}, fmt.Errorf("want 7 columns, got %d", len(row))
	}

	kind, err := sensor.ParseKind(row[0])
	if err != nil {
		return sensor.Variable{}, err
	}

	v := sensor.Variable{
		Kind:  kind,
		Label: strings.TrimSpace(row[1]),
		Unit:  strings.TrimSpace(row[2]),
	}
	if v.Label == "" {
		v.Label = kind.Key()
	}

	for j := range v.Limits {
		s := strings.TrimSpace(row[3+j])
		limit, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return sensor.Variable{}, fmt.Errorf("%s limit%d %q: %w", kind, j+1, s, err)
		}
		v.Limits[j] = limit
	}
	if err := chart.Validate(v.Limits); err != nil {
		return sensor.Variable{}, fmt.Errorf("%s: %w", kind, err)
	}
	return v, nil
}
