package pipeline

import (
	"math"
	"time"

	"github.com/theirongolddev/debtburn/internal/model"
)

const (
	// ExtraPaymentStep is the granularity of the extra-payment slider.
	ExtraPaymentStep = 50

	// ExtraPaymentCap is the absolute ceiling of the slider.
	ExtraPaymentCap = 5000

	daysPerMonth = 30
)

// MaxExtraPayment returns the slider ceiling for a pool: three times the total
// minimum payment, capped at ExtraPaymentCap.
func MaxExtraPayment(loans []model.Loan) float64 {
	return math.Min(ExtraPaymentCap, TotalMinimumPayment(loans)*3)
}

// ClampExtra snaps extra to the slider step and bounds it to [0, limit].
func ClampExtra(extra, limit float64) float64 {
	if extra <= 0 || limit <= 0 {
		return 0
	}
	snapped := math.Round(extra/ExtraPaymentStep) * ExtraPaymentStep
	if snapped > limit {
		snapped = math.Floor(limit/ExtraPaymentStep) * ExtraPaymentStep
	}
	return snapped
}

// Simulate projects payoff with and without extra and reports the difference.
// The debt-free date counts 30-day months from now.
func Simulate(loans []model.Loan, bills []model.Bill, extra float64, now time.Time) model.SimulatorResult {
	minimums := TotalMinimumPayment(loans)

	r := model.SimulatorResult{
		Extra:          extra,
		MaxExtra:       MaxExtraPayment(loans),
		Current:        ProjectPayoff(loans, extra),
		Baseline:       ProjectPayoff(loans, 0),
		MonthlyPayment: minimums + extra,
		WithBills:      minimums + extra + TotalBillAmount(bills),
	}
	r.MonthsSaved = r.Baseline.Months - r.Current.Months
	r.InterestSaved = r.Baseline.TotalInterest - r.Current.TotalInterest
	r.Never = IsNever(r.Current)
	if !r.Never {
		r.DebtFreeDate = DebtFreeDate(now, r.Current.Months)
	}
	return r
}

// DebtFreeDate returns now advanced by months of 30 days each.
func DebtFreeDate(now time.Time, months int) time.Time {
	return now.AddDate(0, 0, months*daysPerMonth)
}
