package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the latest notification (toast) on the right.
func RenderStatusBar(width int, hints, toast string) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	toastStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	fill := lipgloss.NewStyle().Background(t.Surface)

	left := " " + hints
	right := ""
	if toast != "" {
		right = "● " + toast + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Not enough room: the toast wins.
		if right != "" {
			return toastStyle.MaxWidth(width).Render(right)
		}
		padding = 0
	}

	return hintStyle.Render(left) + fill.Render(strings.Repeat(" ", padding)) + toastStyle.Render(right)
}
