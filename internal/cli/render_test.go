package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Loans",
		Headers: []string{"Name", "Balance"},
		Rows: [][]string{
			{"Chase Freedom Card", "$5,500"},
			{"---"},
			{"Total", "$42,500"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("table has %d lines, want 8:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "Name") || !strings.Contains(lines[2], "Balance") {
		t.Errorf("header line = %q", lines[2])
	}
	if !strings.Contains(lines[4], "Chase Freedom Card │  $5,500") {
		t.Errorf("data line = %q, want right-aligned amount", lines[4])
	}
	if !strings.HasPrefix(lines[5], "├") {
		t.Errorf("separator line = %q", lines[5])
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	got := RenderProgressBar(50, 10)
	if !strings.Contains(got, "█████░░░░░") || !strings.HasSuffix(got, "50.0%") {
		t.Errorf("RenderProgressBar(50) = %q", got)
	}
	if got := RenderProgressBar(150, 4); !strings.Contains(got, "████") {
		t.Errorf("RenderProgressBar(150) = %q, want full bar", got)
	}
}

func TestRenderTableAlignsProgressBars(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Name", "Paid Off"},
		Rows: [][]string{
			{"Chase Freedom Card", RenderProgressBar(31.25, 10)},
			{"Student Loan", RenderProgressBar(100, 10)},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if got := lipgloss.Width(line); got != want {
			t.Errorf("line %d width = %d, want %d: %q", i, got, want, line)
		}
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{0, 50, 100})
	if got != "▁▄█" {
		t.Errorf("RenderSparkline = %q, want ▁▄█", got)
	}
}

func TestDownsample(t *testing.T) {
	values := make([]float64, 101)
	for i := range values {
		values[i] = float64(i)
	}
	got := Downsample(values, 5)
	want := []float64{0, 25, 50, 75, 100}
	if len(got) != len(want) {
		t.Fatalf("Downsample len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Downsample[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	short := []float64{1, 2}
	if got := Downsample(short, 5); len(got) != 2 {
		t.Errorf("Downsample(short) len = %d, want 2", len(got))
	}
}
