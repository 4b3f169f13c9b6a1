package model

import "time"

// SummaryMetrics holds the portfolio-level rollup across all loans and bills.
type SummaryMetrics struct {
	LoanCount int `json:"loan_count"`
	BillCount int `json:"bill_count"`

	TotalBalance         float64 `json:"total_balance"`
	TotalOriginalBalance float64 `json:"total_original_balance"`
	TotalMinimumPayment  float64 `json:"total_minimum_payment"`
	TotalBillAmount      float64 `json:"total_bill_amount"`
	TotalPaidOff         float64 `json:"total_paid_off"`
	ProgressPercent      float64 `json:"progress_percent"`
	MonthlyExpenses      float64 `json:"monthly_expenses"` // minimums + bills

	WeightedAverageRate float64 `json:"weighted_average_rate"`
	MonthlyInterest     float64 `json:"monthly_interest"`
	YearlyInterest      float64 `json:"yearly_interest"`

	HighestInterest    Loan `json:"highest_interest"`
	HasHighestInterest bool `json:"has_highest_interest"`
	SmallestBalance    Loan `json:"smallest_balance"`
	HasSmallestBalance bool `json:"has_smallest_balance"`
}

// Projection is the outcome of the single-track payoff projector.
type Projection struct {
	Months        int     `json:"months"`
	TotalInterest float64 `json:"total_interest"`
}

// Strategy names a payoff ordering.
type Strategy string

const (
	Avalanche Strategy = "avalanche"
	Snowball  Strategy = "snowball"
)

// Title returns the display name of the strategy.
func (s Strategy) Title() string {
	switch s {
	case Avalanche:
		return "Avalanche"
	case Snowball:
		return "Snowball"
	default:
		return string(s)
	}
}

// StrategyResult is the outcome of simulating one payoff ordering.
type StrategyResult struct {
	Strategy       Strategy `json:"strategy"`
	TotalInterest  float64  `json:"total_interest"`
	TimeToPayoff   int      `json:"time_to_payoff"` // months
	MonthlyPayment float64  `json:"monthly_payment"`
	Order          []Loan   `json:"order"` // pre-simulation priority order
}

// Comparison holds both strategies and which one costs less interest.
type Comparison struct {
	Avalanche   StrategyResult `json:"avalanche"`
	Snowball    StrategyResult `json:"snowball"`
	Recommended Strategy       `json:"recommended"`
	Savings     float64        `json:"savings"`
}

// SimulatorResult holds the payment simulator view of one extra-payment choice.
type SimulatorResult struct {
	Extra          float64    `json:"extra"`
	MaxExtra       float64    `json:"max_extra"`
	Current        Projection `json:"current"`
	Baseline       Projection `json:"baseline"`
	MonthsSaved    int        `json:"months_saved"`
	InterestSaved  float64    `json:"interest_saved"`
	MonthlyPayment float64    `json:"monthly_payment"`
	WithBills      float64    `json:"with_bills"`
	DebtFreeDate   time.Time  `json:"debt_free_date"`
	Never          bool       `json:"never"`
}

// DueStatus classifies a bill by how close its due day is.
type DueStatus string

const (
	DueOverdue  DueStatus = "overdue"
	DueSoon     DueStatus = "due-soon"
	DueUpcoming DueStatus = "upcoming"
)

// BillSchedule describes when a bill is next due relative to a reference day.
type BillSchedule struct {
	DaysUntilDue int       `json:"days_until_due"`
	Status       DueStatus `json:"status"`
	Label        string    `json:"label"`
}
