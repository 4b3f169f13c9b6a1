// Package model defines the loan, bill, and derived metric types shared across debtburn.
package model

import "strings"

// LoanType tags a loan for display. It has no effect on simulation.
type LoanType string

const (
	LoanCreditCard LoanType = "credit-card"
	LoanPersonal   LoanType = "personal"
	LoanAuto       LoanType = "auto"
	LoanStudent    LoanType = "student"
	LoanMortgage   LoanType = "mortgage"
)

// LoanTypes lists every known loan type in display order.
var LoanTypes = []LoanType{LoanCreditCard, LoanPersonal, LoanAuto, LoanStudent, LoanMortgage}

// Valid reports whether t is one of the known loan types.
func (t LoanType) Valid() bool {
	for _, known := range LoanTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns the upper-case display label, e.g. "CREDIT CARD".
func (t LoanType) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(t), "-", " "))
}

// Loan is a single debt. Monetary fields are in the user's currency units.
type Loan struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Balance         float64  `json:"balance"`
	OriginalBalance float64  `json:"original_balance"`
	InterestRate    float64  `json:"interest_rate"` // nominal annual percent, 22.99 = 22.99%
	MinimumPayment  float64  `json:"minimum_payment"`
	Type            LoanType `json:"type"`
}

// PaidOff returns how much principal has been repaid since origination.
func (l Loan) PaidOff() float64 {
	return l.OriginalBalance - l.Balance
}

// MonthlyInterest returns the simple-interest accrual for one month at the current balance.
func (l Loan) MonthlyInterest() float64 {
	return l.Balance * l.InterestRate / 100 / 12
}

// CloneLoans returns an independent copy of loans.
func CloneLoans(loans []Loan) []Loan {
	if loans == nil {
		return nil
	}
	out := make([]Loan, len(loans))
	copy(out, loans)
	return out
}
