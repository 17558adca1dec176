package mode

import (
	"testing"
	"time"
)

func TestStartsCombined(t *testing.T) {
	c := New(7, DefaultOptions())
	if !c.Combined() || c.Mode() != 7 {
		t.Errorf("initial mode: got %d (combined=%v), want 7", c.Mode(), c.Combined())
	}
	if c.Views() != 8 {
		t.Errorf("Views(): got %d, want 8", c.Views())
	}
}

func TestCycleReturnsToStart(t *testing.T) {
	for _, n := range []int{7, 10} {
		c := New(n, DefaultOptions())
		start := c.Mode()
		now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

		for i := 0; i < n+1; i++ {
			now = now.Add(600 * time.Millisecond)
			if !c.Observe(2000, now) {
				t.Fatalf("n=%d tap %d rejected", n, i)
			}
			if i == 0 && c.Mode() != 0 {
				t.Errorf("n=%d first tap: got mode %d, want 0", n, c.Mode())
			}
		}
		if c.Mode() != start {
			t.Errorf("n=%d after %d taps: got mode %d, want %d", n, n+1, c.Mode(), start)
		}
	}
}

func TestDebounce(t *testing.T) {
	c := New(3, DefaultOptions())
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	if !c.Observe(1600, now) {
		t.Fatal("first tap should be accepted")
	}
	if c.Observe(1600, now.Add(200*time.Millisecond)) {
		t.Error("tap inside debounce interval accepted")
	}
	if c.Observe(1600, now.Add(500*time.Millisecond)) {
		t.Error("tap exactly at debounce interval accepted")
	}
	if !c.Observe(1600, now.Add(501*time.Millisecond)) {
		t.Error("tap after debounce interval rejected")
	}
	if c.Taps() != 2 || c.Mode() != 1 {
		t.Errorf("got %d taps, mode %d; want 2 taps, mode 1", c.Taps(), c.Mode())
	}
}

func TestThreshold(t *testing.T) {
	c := New(3, DefaultOptions())
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	for _, prox := range []int{0, 9, 1500} {
		if c.Observe(prox, now) {
			t.Errorf("proximity %d treated as a tap", prox)
		}
		now = now.Add(time.Second)
	}
	if !c.Observe(1501, now) {
		t.Error("proximity 1501 should be a tap")
	}
}
