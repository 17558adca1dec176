package station

import "github.com/luki/enviro/internal/sensor"

// probe is one device access that yields one or more variables.
type probe struct {
	name  string
	kinds []sensor.Kind
	read  func(s *Station, prox int) (map[sensor.Kind]float64, error)
}

var probes = []probe{
	{name: "temperature", kinds: []sensor.Kind{sensor.Temperature}, read: readTemperature},
	{name: "pressure", kinds: []sensor.Kind{sensor.Pressure}, read: readPressure},
	{name: "humidity", kinds: []sensor.Kind{sensor.Humidity}, read: readHumidity},
	{name: "light", kinds: []sensor.Kind{sensor.Light}, read: readLight},
	{name: "gas", kinds: []sensor.Kind{sensor.Oxidised, sensor.Reduced, sensor.NH3}, read: readGas},
	{name: "particulates", kinds: []sensor.Kind{sensor.PM1, sensor.PM25, sensor.PM10}, read: readParticulates},
}

// dispatch maps every kind to the probe that reads it.
var dispatch [sensor.NumKinds]*probe

func init() {
	for i := range probes {
		for _, k := range probes[i].kinds {
			dispatch[k] = &probes[i]
		}
	}
}

func readTemperature(s *Station, _ int) (map[sensor.Kind]float64, error) {
	cpu := s.cpuTemperature()
	raw, err := s.src.Temperature()
	if err != nil {
		return nil, err
	}
	adjusted := s.comp.Compensate(raw, cpu)
	s.log.Debug("temperature compensated", "raw", raw, "cpu_avg", s.comp.Average(), "adjusted", adjusted)
	return map[sensor.Kind]float64{sensor.Temperature: adjusted}, nil
}

func readPressure(s *Station, _ int) (map[sensor.Kind]float64, error) {
	v, err := s.src.Pressure()
	if err != nil {
		return nil, err
	}
	return map[sensor.Kind]float64{sensor.Pressure: v}, nil
}

func readHumidity(s *Station, _ int) (map[sensor.Kind]float64, error) {
	v, err := s.src.Humidity()
	if err != nil {
		return nil, err
	}
	return map[sensor.Kind]float64{sensor.Humidity: v}, nil
}

func readLight(s *Station, prox int) (map[sensor.Kind]float64, error) {
	if prox >= darkProximity {
		return map[sensor.Kind]float64{sensor.Light: 1}, nil
	}
	v, err := s.src.Lux()
	if err != nil {
		return nil, err
	}
	return map[sensor.Kind]float64{sensor.Light: v}, nil
}

// readGas reports kilo-ohms.
func readGas(s *Station, _ int) (map[sensor.Kind]float64, error) {
	g, err := s.src.Gas()
	if err != nil {
		return nil, err
	}
	return map[sensor.Kind]float64{
		sensor.Oxidised: g.Oxidising / 1000,
		sensor.Reduced:  g.Reducing / 1000,
		sensor.NH3:      g.NH3 / 1000,
	}, nil
}

// readParticulates substitutes zeros when the sensor times out.
func readParticulates(s *Station, _ int) (map[sensor.Kind]float64, error) {
	pm, err := s.src.Particulates()
	if isTimeout(err) {
		s.log.Warn("failed to read PMS5003, recording zero", "err", err)
		pm = sensor.PMReading{}
	} else if err != nil {
		return nil, err
	}
	return map[sensor.Kind]float64{
		sensor.PM1:  pm.PM1,
		sensor.PM25: pm.PM25,
		sensor.PM10: pm.PM10,
	}, nil
}
