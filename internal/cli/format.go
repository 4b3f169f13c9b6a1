// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// neverMonths mirrors the projector's "never paid off" month count.
const neverMonths = 999

// FormatMoney formats a currency amount with comma separators. Whole amounts
// drop the cents: 1200 -> "$1,200", 10575.14 -> "$10,575.14".
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	cents := int64(math.Round(v * 100))
	whole := FormatNumber(cents / 100)
	if frac := cents % 100; frac != 0 {
		return fmt.Sprintf("$%s.%02d", whole, frac)
	}
	return "$" + whole
}

// FormatMoneyShort abbreviates large amounts for narrow cards.
// e.g., 42500 -> "$42.5K", 1260000 -> "$1.3M"
func FormatMoneyShort(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	default:
		return FormatMoney(v)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a value already expressed in percent, e.g. 35.29 -> "35.3%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatRate formats an annual interest rate with two decimals, e.g. "22.99%".
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}

// FormatMonths formats a month count as years and months, e.g. 70 -> "5y 10m".
// The never-paid-off sentinel renders as "Never".
func FormatMonths(months int) string {
	if months >= neverMonths {
		return "Never"
	}
	return fmt.Sprintf("%dy %dm", months/12, months%12)
}

// FormatDebtFreeDate formats a payoff date as "Jan 2032". A zero date means
// the debt is never repaid.
func FormatDebtFreeDate(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	return t.Format("Jan 2006")
}

// FormatDelta formats a saving as a signed amount: a positive saving shows as
// "-$X" (less paid), a negative one as "+$X".
func FormatDelta(saved float64) string {
	if saved >= 0 {
		return "-" + FormatMoney(saved)
	}
	return "+" + FormatMoney(-saved)
}

// FormatMonthsDelta formats months saved, e.g. 17 -> "17 months sooner".
func FormatMonthsDelta(saved int) string {
	switch {
	case saved == 0:
		return "no change"
	case saved == 1:
		return "1 month sooner"
	case saved > 0:
		return fmt.Sprintf("%d months sooner", saved)
	case saved == -1:
		return "1 month later"
	default:
		return fmt.Sprintf("%d months later", -saved)
	}
}
