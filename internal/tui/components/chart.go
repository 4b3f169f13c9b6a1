package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

// formatChartLabel abbreviates an axis value as $N, $Nk or $NM.
func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("$%.0fM", v/1e6)
		}
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("$%.0fk", v/1e3)
		}
		return fmt.Sprintf("$%.1fk", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// Series is one line of a CurveChart.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
	Marker rune
}

// CurveChart plots one or more series against a shared month axis. Each
// column samples every series at the same relative position; a later series
// overdraws an earlier one where they meet. A legend line follows the plot.
func CurveChart(series []Series, width, height int) string {
	t := theme.Active
	if len(series) == 0 || width < 15 || height < 3 {
		return ""
	}

	longest, peak := 0, 0.0
	for _, s := range series {
		if len(s.Values) > longest {
			longest = len(s.Values)
		}
		for _, v := range s.Values {
			if v > peak {
				peak = v
			}
		}
	}
	if longest == 0 {
		return ""
	}
	if peak <= 0 {
		peak = 1
	}

	yLabelW := len(formatChartLabel(peak)) + 1
	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// grid[row][col] holds the index+1 of the series drawn there.
	grid := make([][]int, height)
	for r := range grid {
		grid[r] = make([]int, chartW)
	}
	for si, s := range series {
		n := len(s.Values)
		if n == 0 {
			continue
		}
		// Shorter series end early on the shared axis.
		cols := chartW * n / longest
		if cols < 1 {
			cols = 1
		}
		for c := 0; c < cols; c++ {
			idx := 0
			if cols > 1 {
				idx = c * (n - 1) / (cols - 1)
			}
			row := int(math.Round(s.Values[idx] / peak * float64(height-1)))
			grid[height-1-row][c] = si + 1
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for r := 0; r < height; r++ {
		label := ""
		switch r {
		case 0:
			label = formatChartLabel(peak)
		case height - 1:
			label = "$0"
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))
		for c := 0; c < chartW; c++ {
			si := grid[r][c]
			if si == 0 {
				b.WriteString(blank.Render(" "))
				continue
			}
			s := series[si-1]
			marker := s.Marker
			if marker == 0 {
				marker = '•'
			}
			b.WriteString(lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render(string(marker)))
		}
		b.WriteString("\n")
	}
	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW) + "└" + strings.Repeat("─", chartW)))
	b.WriteString("\n")

	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	for i, s := range series {
		if i > 0 {
			b.WriteString(blank.Render("   "))
		}
		marker := s.Marker
		if marker == 0 {
			marker = '•'
		}
		b.WriteString(lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render(string(marker)))
		b.WriteString(axisStyle.Render(fmt.Sprintf(" %s (%d mo)", s.Name, len(s.Values))))
	}
	return b.String()
}
