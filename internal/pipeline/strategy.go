package pipeline

import (
	"math"
	"sort"

	"github.com/theirongolddev/debtburn/internal/model"
)

// PriorityOrder returns a stably sorted copy of loans in the order a strategy
// targets them: avalanche by descending rate, snowball by ascending balance.
// Unknown strategies keep input order.
func PriorityOrder(loans []model.Loan, strategy model.Strategy) []model.Loan {
	order := model.CloneLoans(loans)
	switch strategy {
	case model.Avalanche:
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].InterestRate > order[j].InterestRate
		})
	case model.Snowball:
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].Balance < order[j].Balance
		})
	}
	return order
}

// SimulateStrategy amortizes every loan month by month. Each loan pays its own
// minimum; the full extra amount then goes to the first unpaid loan in
// priority order.
func SimulateStrategy(loans []model.Loan, extra float64, strategy model.Strategy) model.StrategyResult {
	res, _ := simulate(loans, extra, strategy, false)
	return res
}

// StrategyBalanceCurve returns the total remaining balance after each simulated
// month under the given strategy.
func StrategyBalanceCurve(loans []model.Loan, extra float64, strategy model.Strategy) []float64 {
	_, curve := simulate(loans, extra, strategy, true)
	return curve
}

// CompareStrategies simulates avalanche and snowball and recommends the one
// with less total interest. Equal interest recommends snowball.
func CompareStrategies(loans []model.Loan, extra float64) model.Comparison {
	c := model.Comparison{
		Avalanche: SimulateStrategy(loans, extra, model.Avalanche),
		Snowball:  SimulateStrategy(loans, extra, model.Snowball),
	}

	c.Recommended = model.Snowball
	if c.Avalanche.TotalInterest < c.Snowball.TotalInterest {
		c.Recommended = model.Avalanche
	}
	c.Savings = math.Abs(c.Avalanche.TotalInterest - c.Snowball.TotalInterest)

	return c
}

func simulate(loans []model.Loan, extra float64, strategy model.Strategy, trace bool) (model.StrategyResult, []float64) {
	order := PriorityOrder(loans, strategy)
	work := model.CloneLoans(order)

	res := model.StrategyResult{
		Strategy:       strategy,
		MonthlyPayment: TotalMinimumPayment(loans) + extra,
		Order:          order,
	}

	var curve []float64
	for hasBalance(work) {
		res.TimeToPayoff++

		for i := range work {
			l := &work[i]
			if l.Balance <= 0 {
				continue
			}
			interest := l.MonthlyInterest()
			res.TotalInterest += interest
			// Negative when the minimum does not cover interest; the balance grows.
			principal := min(l.MinimumPayment-interest, l.Balance)
			l.Balance = max(0, l.Balance-principal)
		}

		if extra > 0 {
			for i := range work {
				if work[i].Balance > 0 {
					work[i].Balance -= min(extra, work[i].Balance)
					break
				}
			}
		}

		if trace {
			curve = append(curve, TotalBalance(work))
		}

		if res.TimeToPayoff > MaxMonths {
			break
		}
	}

	return res, curve
}

func hasBalance(loans []model.Loan) bool {
	for _, l := range loans {
		if l.Balance > 0 {
			return true
		}
	}
	return false
}
