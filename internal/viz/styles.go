package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	StatusFlying = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusGround = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	AlertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

// Gauge renders a horizontal bar for a value in [lo, hi].
func Gauge(value, lo, hi float64, width int) string {
	frac := 0.0
	if hi > lo {
		frac = (value - lo) / (hi - lo)
	}
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if frac > 0.8 {
		return AlertStyle.Render(bar)
	}
	return ValueStyle.Render(bar)
}

// Horizon renders a crude attitude ladder: a bank line shifted by pitch.
func Horizon(rollDeg, pitchDeg float64, width int) string {
	mid := width / 2
	shift := int(rollDeg / 10)
	if shift > mid-1 {
		shift = mid - 1
	}
	if shift < -(mid - 1) {
		shift = -(mid - 1)
	}

	line := make([]rune, width)
	for i := range line {
		line[i] = '─'
	}
	marker := mid + shift
	line[marker] = '▲'
	if pitchDeg > 5 {
		line[marker] = '△'
	}
	return string(line)
}
