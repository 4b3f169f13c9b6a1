// Package pipeline holds the debt engine: portfolio rollups, the single-track
// payoff projector, and the avalanche/snowball strategy comparator.
//
// Every function here is pure. Callers pass a snapshot and get a freshly
// allocated result; nothing is retained between calls.
package pipeline

import "github.com/theirongolddev/debtburn/internal/model"

// Aggregate computes the summary metrics for a portfolio of loans and bills.
func Aggregate(loans []model.Loan, bills []model.Bill) model.SummaryMetrics {
	var m model.SummaryMetrics

	m.LoanCount = len(loans)
	m.BillCount = len(bills)

	m.TotalBalance = TotalBalance(loans)
	m.TotalOriginalBalance = TotalOriginalBalance(loans)
	m.TotalMinimumPayment = TotalMinimumPayment(loans)
	m.TotalBillAmount = TotalBillAmount(bills)
	m.TotalPaidOff = m.TotalOriginalBalance - m.TotalBalance
	if m.TotalOriginalBalance > 0 {
		m.ProgressPercent = m.TotalPaidOff / m.TotalOriginalBalance * 100
	}
	m.MonthlyExpenses = m.TotalMinimumPayment + m.TotalBillAmount

	m.WeightedAverageRate = WeightedAverageInterestRate(loans)
	m.MonthlyInterest = MonthlyInterestAccrual(loans)
	m.YearlyInterest = m.MonthlyInterest * 12

	m.HighestInterest, m.HasHighestInterest = HighestInterestLoan(loans)
	m.SmallestBalance, m.HasSmallestBalance = SmallestBalanceLoan(loans)

	return m
}

// TotalBalance sums the current balance of every loan.
func TotalBalance(loans []model.Loan) float64 {
	var total float64
	for _, l := range loans {
		total += l.Balance
	}
	return total
}

// TotalOriginalBalance sums the principal at origination of every loan.
func TotalOriginalBalance(loans []model.Loan) float64 {
	var total float64
	for _, l := range loans {
		total += l.OriginalBalance
	}
	return total
}

// TotalMinimumPayment sums the required monthly payment of every loan.
func TotalMinimumPayment(loans []model.Loan) float64 {
	var total float64
	for _, l := range loans {
		total += l.MinimumPayment
	}
	return total
}

// TotalBillAmount sums the amount of every bill.
func TotalBillAmount(bills []model.Bill) float64 {
	var total float64
	for _, b := range bills {
		total += b.Amount
	}
	return total
}

// WeightedAverageInterestRate returns the balance-weighted mean annual rate.
// It is 0 when the pool has no balance.
func WeightedAverageInterestRate(loans []model.Loan) float64 {
	var weighted, balance float64
	for _, l := range loans {
		weighted += l.InterestRate * l.Balance
		balance += l.Balance
	}
	if balance == 0 {
		return 0
	}
	return weighted / balance
}

// MonthlyInterestAccrual returns one month of simple interest across all loans.
func MonthlyInterestAccrual(loans []model.Loan) float64 {
	var total float64
	for _, l := range loans {
		total += l.MonthlyInterest()
	}
	return total
}

// HighestInterestLoan returns the loan with the highest rate. The first loan
// wins ties. ok is false when loans is empty.
func HighestInterestLoan(loans []model.Loan) (model.Loan, bool) {
	if len(loans) == 0 {
		return model.Loan{}, false
	}
	best := loans[0]
	for _, l := range loans[1:] {
		if l.InterestRate > best.InterestRate {
			best = l
		}
	}
	return best, true
}

// SmallestBalanceLoan returns the loan with the lowest balance. The first loan
// wins ties. ok is false when loans is empty.
func SmallestBalanceLoan(loans []model.Loan) (model.Loan, bool) {
	if len(loans) == 0 {
		return model.Loan{}, false
	}
	best := loans[0]
	for _, l := range loans[1:] {
		if l.Balance < best.Balance {
			best = l
		}
	}
	return best, true
}

// PayoffProgressPercent returns how much of the original balance has been
// repaid, as 0-100. Loans with no original balance report 0.
func PayoffProgressPercent(l model.Loan) float64 {
	if l.OriginalBalance == 0 {
		return 0
	}
	return (l.OriginalBalance - l.Balance) / l.OriginalBalance * 100
}
