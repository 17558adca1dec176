package chart

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// TermColor converts a panel colour to a lipgloss colour.
func TermColor(c color.RGBA) lipgloss.Color {
	cf, _ := colorful.MakeColor(c)
	return lipgloss.Color(cf.Hex())
}

// Sparkline renders the last width values as block characters scaled to the
// window's range, each coloured by its severity band.
func Sparkline(values []float64, width int, limits [4]float64) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
		return dim.Render(strings.Repeat("╌", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	for i := len(values); i < width; i++ {
		sb.WriteString(dim.Render("╌"))
	}

	for _, v := range values {
		idx := int((v - lo) / span * 7)
		idx = max(0, min(7, idx))
		band := Classify(v, limits)
		style := lipgloss.NewStyle().Foreground(TermColor(band.Color()))
		if band == DangerouslyHigh {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}
	return sb.String()
}

// BandLabel renders a value with its band colour for status lines.
func BandLabel(text string, v float64, limits [4]float64) string {
	band := Classify(v, limits)
	return lipgloss.NewStyle().Foreground(TermColor(band.Color())).Render(fmt.Sprintf("%s (%s)", text, band))
}
