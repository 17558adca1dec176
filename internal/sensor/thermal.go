package sensor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// DefaultThermalPath is the SoC thermal zone on a Raspberry Pi.
const DefaultThermalPath = "/sys/class/thermal/thermal_zone0/temp"

// ThermalZone reads the CPU temperature used to estimate how much the board
// heats the BME280. The sysfs zone is tried first, then vcgencmd.
type ThermalZone struct {
	Path string
}

// CPUTemperature returns the CPU temperature in °C.
func (z ThermalZone) CPUTemperature() (float64, error) {
	path := z.Path
	if path == "" {
		path = DefaultThermalPath
	}
	t, sysErr := readThermalZone(path)
	if sysErr == nil {
		return t, nil
	}
	t, cmdErr := readVcgencmd()
	if cmdErr == nil {
		return t, nil
	}
	return 0, fmt.Errorf("cpu temperature: %w", errors.Join(sysErr, cmdErr))
}

func readThermalZone(path string) (float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	milliC, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return milliC / 1000.0, nil
}

func readVcgencmd() (float64, error) {
	if _, err := exec.LookPath("vcgencmd"); err != nil {
		return 0, err
	}
	out, err := exec.Command("vcgencmd", "measure_temp").Output()
	if err != nil {
		return 0, fmt.Errorf("vcgencmd: %w", err)
	}
	return ParseMeasureTemp(string(out))
}

var measureTempRe = regexp.MustCompile(`temp=([+-]?\d+(?:\.\d+)?)'C`)

// ParseMeasureTemp extracts the value from `vcgencmd measure_temp` output,
// e.g. "temp=48.3'C".
func ParseMeasureTemp(output string) (float64, error) {
	m := measureTempRe.FindStringSubmatch(output)
	if m == nil {
		return 0, fmt.Errorf("unexpected vcgencmd output %q", strings.TrimSpace(output))
	}
	return strconv.ParseFloat(m[1], 64)
}
