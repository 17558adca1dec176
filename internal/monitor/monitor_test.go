package monitor

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luki/enviro/internal/profile"
	"github.com/luki/enviro/internal/sim"
	"github.com/luki/enviro/internal/station"
)

func newModel(t *testing.T) (Model, *sim.Board) {
	t.Helper()
	p, err := profile.Load("no-pm")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	board := sim.New(3, 0)
	opts := station.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(station.New(p, board, board, opts), board, time.Second), board
}

func TestHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 5))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	out := halfBlocks(img, 80)
	if lines := strings.Count(out, "\n") + 1; lines != 3 {
		t.Errorf("5 pixel rows: got %d lines, want 3", lines)
	}
	if n := strings.Count(out, "▀"); n != 12 {
		t.Errorf("cells: got %d, want 12", n)
	}

	wide := image.NewRGBA(image.Rect(0, 0, 160, 80))
	first := strings.Split(halfBlocks(wide, 60), "\n")[0]
	if n := strings.Count(first, "▀"); n > 60 {
		t.Errorf("downsampled row has %d cells, want at most 60", n)
	}
}

func TestTickAndTap(t *testing.T) {
	m, _ := newModel(t)
	at := time.Unix(1000, 0)

	next, _ := m.Update(tickMsg(at))
	m = next.(Model)
	if m.frame.Image == nil || !m.frame.Combined {
		t.Fatalf("first tick: got %+v, want combined frame", m.frame)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	next, _ = m.Update(tickMsg(at.Add(time.Second)))
	m = next.(Model)
	if m.frame.Combined || m.frame.Index != 0 {
		t.Errorf("after tap: combined=%v index=%d, want index 0", m.frame.Combined, m.frame.Index)
	}

	m.width, m.height = 120, 60
	if view := m.View(); !strings.Contains(view, "ENVIRO+ PREVIEW") {
		t.Errorf("View() missing title bar")
	}
}

func TestPause(t *testing.T) {
	m, _ := newModel(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(Model)
	next, _ = m.Update(tickMsg(time.Unix(0, 0)))
	m = next.(Model)
	if m.frame.Image != nil {
		t.Errorf("paused model rendered a frame")
	}
}

func TestFmtDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{90 * time.Second, "1m30s"},
		{3*time.Hour + 5*time.Second, "3h00m05s"},
	}
	for _, tt := range tests {
		if got := fmtDuration(tt.in); got != tt.want {
			t.Errorf("fmtDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
