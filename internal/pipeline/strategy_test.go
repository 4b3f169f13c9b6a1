package pipeline

import (
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/theirongolddev/debtburn/internal/model"
)

func TestCompareStrategiesSamplePool(t *testing.T) {
	c := CompareStrategies(samplePool(), 0)

	if c.Avalanche.Order[0].InterestRate != 22.99 {
		t.Fatalf("avalanche starts with %+v, want the 22.99%% loan", c.Avalanche.Order[0])
	}
	if c.Snowball.Order[0].Balance != 5500 {
		t.Fatalf("snowball starts with %+v, want the 5500 loan", c.Snowball.Order[0])
	}
	if c.Avalanche.TimeToPayoff >= MaxMonths || c.Snowball.TimeToPayoff >= MaxMonths {
		t.Fatalf("months = %d / %d, want both < %d", c.Avalanche.TimeToPayoff, c.Snowball.TimeToPayoff, MaxMonths)
	}
	if c.Avalanche.TotalInterest > c.Snowball.TotalInterest {
		t.Fatalf("avalanche interest %.2f > snowball %.2f", c.Avalanche.TotalInterest, c.Snowball.TotalInterest)
	}
	if c.Avalanche.TimeToPayoff != 92 {
		t.Fatalf("avalanche months = %d, want 92", c.Avalanche.TimeToPayoff)
	}
	if math.Abs(c.Avalanche.TotalInterest-10012.02) > 0.01 {
		t.Fatalf("avalanche interest = %.4f, want ~10012.02", c.Avalanche.TotalInterest)
	}
	if c.Avalanche.MonthlyPayment != 760 || c.Snowball.MonthlyPayment != 760 {
		t.Fatalf("monthly payment = %.2f / %.2f, want 760", c.Avalanche.MonthlyPayment, c.Snowball.MonthlyPayment)
	}

	// Both orders coincide for this pool, so interest ties and snowball wins the tie.
	if c.Recommended != model.Snowball {
		t.Fatalf("Recommended = %q, want snowball on a tie", c.Recommended)
	}
	if c.Savings != 0 {
		t.Fatalf("Savings = %.4f, want 0", c.Savings)
	}
}

func TestCompareStrategiesDivergingOrders(t *testing.T) {
	loans := []model.Loan{
		{ID: "small", Balance: 1000, InterestRate: 5, MinimumPayment: 50},
		{ID: "costly", Balance: 5000, InterestRate: 20, MinimumPayment: 100},
	}
	c := CompareStrategies(loans, 200)

	if c.Avalanche.Order[0].ID != "costly" || c.Snowball.Order[0].ID != "small" {
		t.Fatalf("orders = %s / %s, want costly / small", c.Avalanche.Order[0].ID, c.Snowball.Order[0].ID)
	}
	if c.Avalanche.TimeToPayoff != 21 || c.Snowball.TimeToPayoff != 24 {
		t.Fatalf("months = %d / %d, want 21 / 24", c.Avalanche.TimeToPayoff, c.Snowball.TimeToPayoff)
	}
	if c.Recommended != model.Avalanche {
		t.Fatalf("Recommended = %q, want avalanche", c.Recommended)
	}
	want := c.Snowball.TotalInterest - c.Avalanche.TotalInterest
	if math.Abs(c.Savings-want) > 1e-9 || math.Abs(c.Savings-269.10) > 0.01 {
		t.Fatalf("Savings = %.4f, want %.4f (~269.10)", c.Savings, want)
	}
	if c.Avalanche.MonthlyPayment != 350 {
		t.Fatalf("MonthlyPayment = %.2f, want 350", c.Avalanche.MonthlyPayment)
	}
}

func TestPriorityOrderIsSortedPermutation(t *testing.T) {
	loans := []model.Loan{
		{ID: "a", Balance: 900, InterestRate: 7},
		{ID: "b", Balance: 100, InterestRate: 7},
		{ID: "c", Balance: 100, InterestRate: 29},
		{ID: "d", Balance: 5000, InterestRate: 3},
		{ID: "e", Balance: 2500, InterestRate: 12},
	}

	for _, extra := range []float64{0, 75, 1000} {
		c := CompareStrategies(loans, extra)

		if got, want := ids(c.Avalanche.Order), []string{"c", "e", "a", "b", "d"}; !reflect.DeepEqual(got, want) {
			t.Fatalf("avalanche order = %v, want %v", got, want)
		}
		if got, want := ids(c.Snowball.Order), []string{"b", "c", "a", "e", "d"}; !reflect.DeepEqual(got, want) {
			t.Fatalf("snowball order = %v, want %v", got, want)
		}

		for i := 1; i < len(loans); i++ {
			if c.Avalanche.Order[i].InterestRate > c.Avalanche.Order[i-1].InterestRate {
				t.Fatalf("avalanche order not non-increasing at %d", i)
			}
			if c.Snowball.Order[i].Balance < c.Snowball.Order[i-1].Balance {
				t.Fatalf("snowball order not non-decreasing at %d", i)
			}
		}

		in := ids(loans)
		sort.Strings(in)
		for _, order := range [][]model.Loan{c.Avalanche.Order, c.Snowball.Order} {
			got := ids(order)
			sort.Strings(got)
			if !reflect.DeepEqual(got, in) {
				t.Fatalf("order %v is not a permutation of %v", got, in)
			}
		}
	}
}

func TestSimulateStrategyNegativeAmortization(t *testing.T) {
	loans := []model.Loan{{ID: "x", Balance: 1000, InterestRate: 24, MinimumPayment: 10}}

	curve := StrategyBalanceCurve(loans, 0, model.Avalanche)
	if len(curve) == 0 {
		t.Fatal("empty balance curve")
	}
	if !approx(curve[0], 1010) {
		t.Fatalf("balance after one month = %.4f, want 1010", curve[0])
	}
	if curve[0] <= loans[0].Balance {
		t.Fatalf("balance did not grow: %.4f", curve[0])
	}

	res := SimulateStrategy(loans, 0, model.Avalanche)
	if res.TimeToPayoff != MaxMonths+1 {
		t.Fatalf("TimeToPayoff = %d, want %d (cap)", res.TimeToPayoff, MaxMonths+1)
	}
	if loans[0].Balance != 1000 {
		t.Fatalf("input mutated: balance = %.2f", loans[0].Balance)
	}
}

func TestSimulateStrategyExtraGoesToTarget(t *testing.T) {
	loans := []model.Loan{
		{ID: "low", Balance: 1000, InterestRate: 0, MinimumPayment: 100},
		{ID: "high", Balance: 1000, InterestRate: 0, MinimumPayment: 100},
	}
	// Equal rates keep input order for avalanche, so "low" is the target.
	curve := StrategyBalanceCurve(loans, 300, model.Avalanche)
	if !approx(curve[0], 2000-200-300) {
		t.Fatalf("balance after month 1 = %.2f, want 1500", curve[0])
	}
	res := SimulateStrategy(loans, 300, model.Avalanche)
	// Month 3 finishes "low" (1000-100*3-300*2 = 100 left before extra) and
	// the leftover extra is not carried to "high".
	if res.TimeToPayoff != 5 {
		t.Fatalf("TimeToPayoff = %d, want 5", res.TimeToPayoff)
	}
	if res.TotalInterest != 0 {
		t.Fatalf("TotalInterest = %.2f, want 0", res.TotalInterest)
	}
}

func TestSimulateStrategyEmptyAndPaid(t *testing.T) {
	res := SimulateStrategy(nil, 100, model.Snowball)
	if res.TimeToPayoff != 0 || res.TotalInterest != 0 || len(res.Order) != 0 {
		t.Fatalf("SimulateStrategy(nil) = %+v, want zero months and interest", res)
	}
	if res.MonthlyPayment != 100 {
		t.Fatalf("MonthlyPayment = %.2f, want 100", res.MonthlyPayment)
	}

	paid := []model.Loan{{ID: "done", Balance: 0, InterestRate: 10, MinimumPayment: 50}}
	res = SimulateStrategy(paid, 0, model.Avalanche)
	if res.TimeToPayoff != 0 {
		t.Fatalf("TimeToPayoff = %d, want 0 for a paid pool", res.TimeToPayoff)
	}
}

func TestCompareStrategiesIdempotentAndIsolated(t *testing.T) {
	loans := samplePool()
	a := CompareStrategies(loans, 150)
	b := CompareStrategies(loans, 150)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeat CompareStrategies call differs")
	}

	a.Avalanche.Order[0].Balance = -1
	if loans[0].Balance != 5500 {
		t.Fatal("result order aliases caller loans")
	}
	if a.Snowball.Order[0].Balance == -1 {
		t.Fatal("avalanche and snowball orders alias each other")
	}
}

func ids(loans []model.Loan) []string {
	out := make([]string, len(loans))
	for i, l := range loans {
		out[i] = l.ID
	}
	return out
}
