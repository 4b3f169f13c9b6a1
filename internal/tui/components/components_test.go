package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToWidth(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{100, 3}, {81, 4}, {7, 7}, {120, 2}} {
		widths := LayoutRow(tc.total, tc.n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
		if widths[0] < widths[len(widths)-1] {
			t.Errorf("LayoutRow(%d, %d) = %v, first item should absorb remainder", tc.total, tc.n, widths)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow(10, 0) should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	joined := CardRow([]string{shortCard, tallCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	want := lipgloss.Width(shortCard) + lipgloss.Width(tallCard)
	for i, line := range lines {
		if got := lipgloss.Width(line); got != want {
			t.Errorf("line %d width = %d, want %d", i, got, want)
		}
		// The short card's padding comes first on these lines, so it must be styled.
		if i >= shortLines && !strings.HasPrefix(line, "\x1b[") {
			t.Errorf("line %d padding is unstyled: %q", i, line)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Total Debt", Value: "$42,500", Delta: "35.3% paid off"},
		{Label: "Monthly", Value: "$2,275"},
		{Label: "Avg Rate", Value: "7.85%"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestTabBarWidthMatchesTabVisualWidth(t *testing.T) {
	for active := range Tabs {
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
			if i > 0 {
				want++ // separator
			}
		}
		if got := lipgloss.Width(RenderTabBar(active, 0)); got != want {
			t.Errorf("active=%d: tab bar width = %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	tests := map[rune]int{'o': TabOverview, 'l': TabLoans, 'b': TabBills, 's': TabStrategies, 'x': TabSettings, 'z': -1}
	for key, want := range tests {
		if got := TabIdxByKey(key); got != want {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", key, got, want)
		}
	}
}

func TestStatusBar(t *testing.T) {
	bar := RenderStatusBar(80, "[q]uit", "Loan Added")
	if w := lipgloss.Width(bar); w != 80 {
		t.Errorf("status bar width = %d, want 80", w)
	}
	if !strings.Contains(bar, "Loan Added") {
		t.Error("status bar missing toast")
	}

	narrow := RenderStatusBar(12, "[q]uit  [?]help", "Chase Freedom Card has been updated.")
	if w := lipgloss.Width(narrow); w > 12 {
		t.Errorf("narrow status bar width = %d, want <= 12", w)
	}
}

func TestSliderWidth(t *testing.T) {
	for _, v := range []float64{0, 50, 100, 150} {
		if w := lipgloss.Width(Slider(v, 100, 21)); w != 21 {
			t.Errorf("Slider(%v) width = %d, want 21", v, w)
		}
	}
}

func TestProgressBarClamps(t *testing.T) {
	if got := ProgressBar(1.5, 10); !strings.Contains(got, "100%") {
		t.Errorf("ProgressBar(1.5) = %q, want 100%%", got)
	}
	if got := ProgressBar(-1, 10); !strings.Contains(got, "0%") {
		t.Errorf("ProgressBar(-1) = %q, want 0%%", got)
	}
}

func TestCurveChart(t *testing.T) {
	theme.SetActive("flexoki-dark")
	a := []float64{1000, 750, 500, 250, 0}
	s := []float64{1000, 800, 600, 400, 200, 0}
	out := CurveChart([]Series{
		{Name: "Avalanche", Values: a, Color: theme.Active.Green, Marker: '●'},
		{Name: "Snowball", Values: s, Color: theme.Active.Blue},
	}, 40, 6)

	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("chart has %d lines, want 8 (6 rows + axis + legend)", len(lines))
	}
	if !strings.Contains(lines[7], "Avalanche (5 mo)") || !strings.Contains(lines[7], "Snowball (6 mo)") {
		t.Errorf("legend = %q", lines[7])
	}
	if !strings.Contains(lines[0], "$1k") {
		t.Errorf("top row should carry the peak label: %q", lines[0])
	}
	if CurveChart(nil, 40, 6) != "" {
		t.Error("CurveChart(nil) should be empty")
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{500: "$500", 1000: "$1k", 2500: "$2.5k", 2_000_000: "$2M"}
	for in, want := range tests {
		if got := formatChartLabel(in); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", in, got, want)
		}
	}
}
