package sim

import (
	"errors"
	"testing"

	"github.com/luki/enviro/internal/sensor"
)

func TestDeterministic(t *testing.T) {
	a, b := New(7, 0), New(7, 0)
	for i := 0; i < 50; i++ {
		ta, _ := a.Temperature()
		tb, _ := b.Temperature()
		if ta != tb {
			t.Fatalf("read %d: %v != %v with the same seed", i, ta, tb)
		}
	}
}

func TestWalkStaysInRange(t *testing.T) {
	b := New(1, 0)
	for i := 0; i < 5000; i++ {
		h, _ := b.Humidity()
		if h < 10 || h > 95 {
			t.Fatalf("humidity out of range after %d reads: %v", i, h)
		}
	}
}

func TestTap(t *testing.T) {
	b := New(1, 0)
	if p, _ := b.Proximity(); p >= TapProximity {
		t.Fatalf("untapped proximity: %d", p)
	}
	b.Tap()
	if p, _ := b.Proximity(); p != TapProximity {
		t.Errorf("tapped proximity: got %d, want %d", p, TapProximity)
	}
	if p, _ := b.Proximity(); p >= TapProximity {
		t.Errorf("tap not cleared: %d", p)
	}
}

func TestParticulateTimeouts(t *testing.T) {
	always := New(1, 1)
	if _, err := always.Particulates(); !errors.Is(err, sensor.ErrReadTimeout) {
		t.Errorf("rate 1: got %v, want timeout", err)
	}

	never := New(1, 0)
	for i := 0; i < 100; i++ {
		if _, err := never.Particulates(); err != nil {
			t.Fatalf("rate 0: %v", err)
		}
	}
}
