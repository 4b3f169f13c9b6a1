package cli

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{15.99, "$15.99"},
		{12.5, "$12.50"},
		{1200, "$1,200"},
		{10575.14, "$10,575.14"},
		{42500, "$42,500"},
		{1234567.891, "$1,234,567.89"},
		{-50, "-$50"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoneyShort(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{9999, "$9,999"},
		{42500, "$42.5K"},
		{1_260_000, "$1.3M"},
	}
	for _, tt := range tests {
		if got := FormatMoneyShort(tt.in); got != tt.want {
			t.Errorf("FormatMoneyShort(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMonths(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0y 0m"},
		{11, "0y 11m"},
		{70, "5y 10m"},
		{600, "50y 0m"},
		{999, "Never"},
	}
	for _, tt := range tests {
		if got := FormatMonths(tt.in); got != tt.want {
			t.Errorf("FormatMonths(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDebtFreeDate(t *testing.T) {
	if got := FormatDebtFreeDate(time.Time{}); got != "Never" {
		t.Errorf("FormatDebtFreeDate(zero) = %q, want Never", got)
	}
	d := time.Date(2031, 11, 3, 0, 0, 0, 0, time.UTC)
	if got := FormatDebtFreeDate(d); got != "Nov 2031" {
		t.Errorf("FormatDebtFreeDate = %q, want Nov 2031", got)
	}
}

func TestFormatRateAndPercent(t *testing.T) {
	if got := FormatRate(22.99); got != "22.99%" {
		t.Errorf("FormatRate = %q", got)
	}
	if got := FormatRate(8.5); got != "8.50%" {
		t.Errorf("FormatRate = %q", got)
	}
	if got := FormatPercent(35.294); got != "35.3%" {
		t.Errorf("FormatPercent = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(269.1); got != "-$269.10" {
		t.Errorf("FormatDelta(269.1) = %q", got)
	}
	if got := FormatDelta(-40); got != "+$40" {
		t.Errorf("FormatDelta(-40) = %q", got)
	}
	if got := FormatMonthsDelta(17); got != "17 months sooner" {
		t.Errorf("FormatMonthsDelta(17) = %q", got)
	}
	if got := FormatMonthsDelta(0); got != "no change" {
		t.Errorf("FormatMonthsDelta(0) = %q", got)
	}
}
