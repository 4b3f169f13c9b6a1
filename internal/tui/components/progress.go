package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

// ProgressBar renders a progress bar with percentage. pct is in 0..1.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clampUnit(pct)
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	barColor := lipgloss.Color(ColorForProgress(pct))

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForProgress returns a color that warms toward green as a debt is paid down.
func ColorForProgress(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.75:
		return string(t.GreenBright)
	case pct >= 0.5:
		return string(t.Green)
	case pct >= 0.25:
		return string(t.Yellow)
	default:
		return string(t.Orange)
	}
}

// PayoffBar renders a labeled paid-off bar for one loan using the bubbles
// progress widget.
func PayoffBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active
	pct = clampUnit(pct)

	bar := progress.New(
		progress.WithSolidFill(ColorForProgress(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForProgress(pct))).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

// Slider renders the extra-payment slider: a track with a knob at value/max.
func Slider(value, max float64, width int) string {
	t := theme.Active
	if width < 3 {
		width = 3
	}
	pct := 0.0
	if max > 0 {
		pct = clampUnit(value / max)
	}
	pos := int(pct*float64(width-1) + 0.5)

	filledStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	trackStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	knobStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	return filledStyle.Render(strings.Repeat("━", pos)) +
		knobStyle.Render("●") +
		trackStyle.Render(strings.Repeat("─", width-pos-1))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
