// Package board talks to the Enviro+ hardware: the BME280 weather sensor,
// the LTR559 light and proximity sensor, the MICS6814 gas sensor behind an
// ADS1015 converter, and the optional PMS5003 particulate sensor.
package board

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rubiojr/go-enviroplus/ltr559"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"

	"github.com/luki/enviro/internal/sensor"
)

const (
	// gasLoad is the load resistor in series with each MICS6814 channel.
	gasLoad = 56000.0
	// gasSupply is the divider supply voltage.
	gasSupply = 3.3
)

// Config selects buses, addresses and pins.
type Config struct {
	I2CBus        string // "" picks the first bus
	BME280Address uint16
	GasAddress    uint16
	HeaterPin     string
	Particulates  bool
	PMSPort       string
	PMSTimeout    time.Duration
	PMSEnablePin  string
	PMSResetPin   string
}

// DefaultConfig matches the stock Enviro+ wiring.
func DefaultConfig() Config {
	return Config{
		BME280Address: 0x76,
		GasAddress:    0x49,
		HeaterPin:     "GPIO24",
		Particulates:  true,
		PMSPort:       "/dev/ttyAMA0",
		PMSTimeout:    DefaultPMSTimeout,
		PMSEnablePin:  "GPIO22",
		PMSResetPin:   "GPIO27",
	}
}

// ErrNoParticulateSensor is returned by Particulates on boards opened
// without the PMS5003.
var ErrNoParticulateSensor = errors.New("particulate sensor not enabled")

// Board implements sensor.Source on real hardware.
type Board struct {
	bus       i2c.BusCloser
	env       *bmxx80.Dev
	proximity func() (int, error)
	lux       func() (float64, error)
	gas       [3]analog.PinADC
	heater    gpio.PinIO
	pms       *PMS5003
	log       *slog.Logger
}

var _ sensor.Source = (*Board)(nil)

// Open initialises the host drivers and every sensor on the board.
func Open(cfg Config, log *slog.Logger) (*Board, error) {
	if log == nil {
		log = slog.Default()
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.I2CBus, err)
	}
	b := &Board{bus: bus, log: log}

	if err := b.openEnvironment(cfg); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.openLight(); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.openGas(cfg); err != nil {
		b.Close()
		return nil, err
	}
	if cfg.Particulates {
		pms, err := OpenPMS5003(cfg.PMSPort, cfg.PMSTimeout, cfg.PMSEnablePin, cfg.PMSResetPin)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.pms = pms
	}

	log.Info("board ready",
		"bus", bus.String(),
		"bme280", fmt.Sprintf("%#x", cfg.BME280Address),
		"ads1015", fmt.Sprintf("%#x", cfg.GasAddress),
		"particulates", cfg.Particulates,
	)
	return b, nil
}

func (b *Board) openEnvironment(cfg Config) error {
	dev, err := bmxx80.NewI2C(b.bus, cfg.BME280Address, &bmxx80.DefaultOpts)
	if err != nil {
		return fmt.Errorf("open bme280: %w", err)
	}
	b.env = dev
	return nil
}

func (b *Board) openLight() error {
	d, err := ltr559.New()
	if err != nil {
		return fmt.Errorf("open ltr559: %w", err)
	}
	b.proximity = func() (int, error) {
		p, err := d.Proximity()
		return int(p), err
	}
	b.lux = func() (float64, error) {
		l, err := d.Lux()
		return float64(l), err
	}
	return nil
}

func (b *Board) openGas(cfg Config) error {
	opts := ads1x15.DefaultOpts
	opts.I2cAddress = cfg.GasAddress
	adc, err := ads1x15.NewADS1015(b.bus, &opts)
	if err != nil {
		return fmt.Errorf("open ads1015: %w", err)
	}

	channels := [3]ads1x15.Channel{ads1x15.Channel0, ads1x15.Channel1, ads1x15.Channel2}
	for i, ch := range channels {
		pin, err := adc.PinForChannel(ch, 6144*physic.MilliVolt, 1600*physic.Hertz, ads1x15.SaveEnergy)
		if err != nil {
			return fmt.Errorf("ads1015 channel %d: %w", i, err)
		}
		b.gas[i] = pin
	}

	heater := gpioreg.ByName(cfg.HeaterPin)
	if heater == nil {
		return fmt.Errorf("gas heater pin %q not found", cfg.HeaterPin)
	}
	if err := heater.Out(gpio.High); err != nil {
		return fmt.Errorf("gas heater on: %w", err)
	}
	b.heater = heater
	return nil
}

func (b *Board) sense() (physic.Env, error) {
	var env physic.Env
	if err := b.env.Sense(&env); err != nil {
		return env, fmt.Errorf("bme280 sense: %w", err)
	}
	return env, nil
}

// Temperature returns the uncompensated BME280 temperature in °C.
func (b *Board) Temperature() (float64, error) {
	env, err := b.sense()
	if err != nil {
		return 0, err
	}
	return env.Temperature.Celsius(), nil
}

// Pressure returns hPa.
func (b *Board) Pressure() (float64, error) {
	env, err := b.sense()
	if err != nil {
		return 0, err
	}
	return float64(env.Pressure) / float64(100*physic.Pascal), nil
}

// Humidity returns %RH.
func (b *Board) Humidity() (float64, error) {
	env, err := b.sense()
	if err != nil {
		return 0, err
	}
	return float64(env.Humidity) / float64(physic.PercentRH), nil
}

func (b *Board) Lux() (float64, error)   { return b.lux() }
func (b *Board) Proximity() (int, error) { return b.proximity() }

// Gas returns the three sensing resistances in ohms.
func (b *Board) Gas() (sensor.GasReading, error) {
	var r [3]float64
	for i, pin := range b.gas {
		s, err := pin.Read()
		if err != nil {
			return sensor.GasReading{}, fmt.Errorf("ads1015 channel %d: %w", i, err)
		}
		r[i] = GasResistance(float64(s.V) / float64(physic.Volt))
	}
	return sensor.GasReading{Oxidising: r[0], Reducing: r[1], NH3: r[2]}, nil
}

// GasResistance converts a divider voltage to the sensing resistance.
func GasResistance(volts float64) float64 {
	if volts >= gasSupply {
		volts = gasSupply - 1e-6
	}
	return volts * gasLoad / (gasSupply - volts)
}

// Particulates reads one PMS5003 frame.
func (b *Board) Particulates() (sensor.PMReading, error) {
	if b.pms == nil {
		return sensor.PMReading{}, ErrNoParticulateSensor
	}
	return b.pms.Read()
}

// Close switches the heater off and releases every device.
func (b *Board) Close() error {
	var errs []error
	if b.pms != nil {
		errs = append(errs, b.pms.Close())
	}
	for _, pin := range b.gas {
		if pin != nil {
			errs = append(errs, pin.Halt())
		}
	}
	if b.heater != nil {
		errs = append(errs, b.heater.Out(gpio.Low))
	}
	if b.env != nil {
		errs = append(errs, b.env.Halt())
	}
	if b.bus != nil {
		errs = append(errs, b.bus.Close())
	}
	return errors.Join(errs...)
}
