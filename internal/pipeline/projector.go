package pipeline

import "github.com/theirongolddev/debtburn/internal/model"

const (
	// MaxMonths bounds every simulation loop (50 years).
	MaxMonths = 600

	// NeverMonths and NeverInterest form the sentinel projection returned when
	// the payment cannot cover the first month of interest.
	NeverMonths   = 999
	NeverInterest = 999999
)

// NeverProjection is the "never pays off" sentinel.
var NeverProjection = model.Projection{Months: NeverMonths, TotalInterest: NeverInterest}

// IsNever reports whether p is the non-convergence sentinel.
func IsNever(p model.Projection) bool {
	return p.Months >= NeverMonths
}

// ProjectPayoff runs the single-track projection: the whole pool is treated as
// one balance at the balance-weighted average rate, paid down by the sum of the
// minimums plus extra each month.
//
// This deliberately differs from SimulateStrategy, which amortizes each loan at
// its own rate. The two can disagree on months and interest for the same pool.
//
// The "never" guard compares the payment with the first month of interest on
// the blended pool. With widely spread rates it can report "never" for a
// schedule that would in fact amortize loan by loan.
func ProjectPayoff(loans []model.Loan, extra float64) model.Projection {
	if len(loans) == 0 {
		return model.Projection{}
	}

	totalDebt := TotalBalance(loans)
	avgRate := WeightedAverageInterestRate(loans)
	payment := TotalMinimumPayment(loans) + extra

	if payment <= totalDebt*avgRate/100/12 {
		return NeverProjection
	}

	var p model.Projection
	remaining := totalDebt
	for remaining > 0 && p.Months < MaxMonths {
		interest := remaining * avgRate / 100 / 12
		p.TotalInterest += interest
		principal := min(payment-interest, remaining)
		remaining -= principal
		p.Months++
	}
	return p
}
