package board

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/luki/enviro/internal/sensor"
)

const (
	frameLen     = 32
	frameDataLen = frameLen - 4 // length field counts data words and checksum
	frameStart1  = 0x42
	frameStart2  = 0x4D

	// DefaultPMSTimeout covers the 2.3 s frame interval of stable mode plus
	// a frame in flight.
	DefaultPMSTimeout = 5 * time.Second
)

// ErrFrameLength is returned for frames that are truncated or carry a
// length field other than 28.
var ErrFrameLength = errors.New("pms5003: bad frame length")

// ErrFrameChecksum is returned when the additive checksum does not match.
var ErrFrameChecksum = errors.New("pms5003: checksum mismatch")

// PMS5003 reads the particulate sensor over a serial port.
type PMS5003 struct {
	port    serial.Port
	timeout time.Duration
	enable  gpio.PinIO
}

// OpenPMS5003 powers the sensor up through its enable and reset pins and
// opens port at 9600 baud. Empty pin names skip the pin.
func OpenPMS5003(port string, timeout time.Duration, enablePin, resetPin string) (*PMS5003, error) {
	if timeout <= 0 {
		timeout = DefaultPMSTimeout
	}
	p := &PMS5003{timeout: timeout}
	if enablePin != "" {
		if p.enable = gpioreg.ByName(enablePin); p.enable == nil {
			return nil, fmt.Errorf("pms5003 enable pin %q not found", enablePin)
		}
		if err := p.enable.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("pms5003 enable: %w", err)
		}
	}
	if resetPin != "" {
		if err := pulseReset(resetPin); err != nil {
			return nil, err
		}
	}

	sp, err := serial.Open(port, &serial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", port, err)
	}
	if err := sp.SetReadTimeout(100 * time.Millisecond); err != nil {
		sp.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	p.port = sp
	return p, nil
}

func pulseReset(name string) error {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return fmt.Errorf("pms5003 reset pin %q not found", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("pms5003 reset: %w", err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := pin.Out(gpio.High); err != nil {
		return fmt.Errorf("pms5003 reset: %w", err)
	}
	return nil
}

// Read returns the next valid frame, or sensor.ErrReadTimeout when none
// arrives within the configured timeout. A frame already waiting in the
// port buffer is used.
func (p *PMS5003) Read() (sensor.PMReading, error) {
	return readFrame(p.port, time.Now().Add(p.timeout))
}

// Close powers the sensor down and closes the port.
func (p *PMS5003) Close() error {
	var errs []error
	if p.enable != nil {
		errs = append(errs, p.enable.Out(gpio.Low))
	}
	if p.port != nil {
		errs = append(errs, p.port.Close())
	}
	return errors.Join(errs...)
}

// readFrame scans r for a start sequence and decodes the frame behind it.
// Corrupt frames are skipped. A reader that returns no data counts against
// the deadline; end of input is reported as a timeout.
func readFrame(r io.Reader, deadline time.Time) (sensor.PMReading, error) {
	buf := make([]byte, 0, frameLen)
	var b [1]byte
	for time.Now().Before(deadline) {
		n, err := r.Read(b[:])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sensor.PMReading{}, fmt.Errorf("pms5003 read: %w", err)
		}
		if n == 0 {
			continue
		}

		switch {
		case len(buf) == 0 && b[0] != frameStart1:
			continue
		case len(buf) == 1 && b[0] != frameStart2:
			buf = buf[:0]
			if b[0] == frameStart1 {
				buf = append(buf, b[0])
			}
			continue
		}
		buf = append(buf, b[0])
		if len(buf) < frameLen {
			continue
		}

		pm, err := decodeFrame(buf)
		if err == nil {
			return pm, nil
		}
		buf = buf[:0]
	}
	return sensor.PMReading{}, sensor.ErrReadTimeout
}

// decodeFrame validates a complete frame and extracts the standard
// particle concentrations.
func decodeFrame(f []byte) (sensor.PMReading, error) {
	if len(f) != frameLen || f[0] != frameStart1 || f[1] != frameStart2 {
		return sensor.PMReading{}, ErrFrameLength
	}
	if n := binary.BigEndian.Uint16(f[2:4]); n != frameDataLen {
		return sensor.PMReading{}, fmt.Errorf("%w: %d", ErrFrameLength, n)
	}

	var sum uint16
	for _, c := range f[:frameLen-2] {
		sum += uint16(c)
	}
	if want := binary.BigEndian.Uint16(f[frameLen-2:]); sum != want {
		return sensor.PMReading{}, fmt.Errorf("%w: got %#04x, want %#04x", ErrFrameChecksum, sum, want)
	}

	word := func(i int) float64 {
		return float64(binary.BigEndian.Uint16(f[4+2*i:]))
	}
	return sensor.PMReading{PM1: word(0), PM25: word(1), PM10: word(2)}, nil
}
