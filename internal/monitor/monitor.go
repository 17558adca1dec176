// Package monitor is a terminal preview of the LCD using BubbleTea: the
// rendered frame drawn with half-block cells, a sparkline of the shown
// variable, and keys to tap the proximity sensor.
package monitor

import (
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/luki/enviro/internal/chart"
	"github.com/luki/enviro/internal/station"
)

// Tapper stands in for a finger on the proximity sensor.
type Tapper interface {
	Tap()
}

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the preview.
type Model struct {
	st        *station.Station
	tapper    Tapper
	interval  time.Duration
	frame     station.Frame
	err       error
	width     int
	height    int
	startTime time.Time
	paused    bool
}

// New creates the preview for st. Taps are forwarded to tapper.
func New(st *station.Station, tapper Tapper, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}
	return Model{
		st:        st,
		tapper:    tapper,
		interval:  interval,
		startTime: time.Now(),
	}
}

// ── Commands ─────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "t":
			if m.tapper != nil {
				m.tapper.Tap()
			}
		case "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.paused {
			return m, m.tickCmd()
		}
		f, err := m.st.Tick(time.Time(msg))
		if err != nil {
			m.err = err
		} else {
			m.frame, m.err = f, nil
		}
		return m, m.tickCmd()
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorCrit     = lipgloss.Color("196")
	colorPaused   = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections := []string{m.renderTitleBar(contentWidth)}

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err))
		sections = append(sections, errBox)
	}

	if m.frame.Image == nil {
		waiting := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("Waiting for sensor data...")
		sections = append(sections, waiting)
	} else {
		sections = append(sections, halfBlocks(m.frame.Image, contentWidth))
		sections = append(sections, m.renderReadings(contentWidth)...)
	}

	sections = append(sections, m.renderFooter(contentWidth))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("ENVIRO+ PREVIEW")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	ctl := m.st.Mode()
	statusParts := []string{
		lipgloss.NewStyle().Foreground(colorLabel).Render(runewidth.Truncate(m.st.ViewName(), 16, "…")),
		dimS.Render(fmt.Sprintf("mode %d/%d", ctl.Mode()+1, ctl.Views())),
		dimS.Render(fmt.Sprintf("up %s", fmtDuration(time.Since(m.startTime)))),
	}
	if !m.frame.Time.IsZero() {
		statusParts = append(statusParts, dimS.Render(m.frame.Time.Format("15:04:05")))
	}
	if m.paused {
		p := lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true).
			Render("PAUSED")
		statusParts = append(statusParts, p)
	}

	sep := dimS.Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + right)
}

// renderReadings lists the shown variable with its sparkline, or every
// variable's latest value on the combined view.
func (m Model) renderReadings(width int) []string {
	vars := m.st.Variables()
	labelW := 14
	dimS := lipgloss.NewStyle().Foreground(colorDim)

	if !m.frame.Combined {
		v := vars[m.frame.Index]
		w := m.st.Window(m.frame.Index)
		label := lipgloss.NewStyle().
			Foreground(colorLabel).
			Width(labelW).
			Render(runewidth.Truncate(v.Label, labelW, "…"))
		sparkW := min(width-labelW-24, w.Len())
		lo, hi := w.Bounds()
		stats := dimS.Render(fmt.Sprintf(" avg %.1f lo %.1f hi %.1f", w.Avg(), lo, hi))
		return []string{
			label + chart.Sparkline(w.Values, sparkW, v.Limits) + stats,
			lipgloss.NewStyle().Width(labelW).Render("") + chart.BandLabel(v.Format(w.Last()), w.Last(), v.Limits),
		}
	}

	var rows []string
	for i, v := range vars {
		last := m.st.Window(i).Last()
		label := lipgloss.NewStyle().
			Foreground(colorLabel).
			Width(labelW).
			Render(runewidth.Truncate(v.Label, labelW, "…"))
		rows = append(rows, label+chart.BandLabel(fmt.Sprintf("%.1f %s", last, v.Unit), last, v.Limits))
	}
	return rows
}

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	var legend string
	for b := chart.DangerouslyLow; b <= chart.DangerouslyHigh; b++ {
		legend += lipgloss.NewStyle().Foreground(chart.TermColor(b.Color())).Render("██") +
			dimS.Render(" "+b.String()+" ")
	}

	labelS := lipgloss.NewStyle().Foreground(colorLabel)
	keys := dimS.Render("q") + labelS.Render(":quit") +
		dimS.Render("  space/t") + labelS.Render(":tap") +
		dimS.Render("  p") + labelS.Render(":pause")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + strings.Repeat(" ", gap) + keys)
}

// halfBlocks draws img with one terminal cell per two pixel rows, skipping
// pixels evenly when the image is wider than maxCols.
func halfBlocks(img *image.RGBA, maxCols int) string {
	b := img.Bounds()
	step := 1
	for maxCols > 0 && b.Dx()/step > maxCols {
		step++
	}

	var lines []string
	for y := b.Min.Y; y < b.Max.Y; y += 2 * step {
		var sb strings.Builder
		for x := b.Min.X; x < b.Max.X; x += step {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+step < b.Max.Y {
				bottom = img.RGBAAt(x, y+step)
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(chart.TermColor(top)).
				Background(chart.TermColor(bottom)).
				Render("▀"))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
