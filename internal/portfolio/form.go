// Package portfolio manages the user's loans and bills: it validates form
// input, persists records, and announces every change.
package portfolio

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/model"
)

// ValidationError reports one invalid form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// LoanForm holds loan fields as typed by the user.
type LoanForm struct {
	Name            string
	Balance         string
	OriginalBalance string // blank means "same as balance"
	InterestRate    string
	MinimumPayment  string
	Type            string
}

// BillForm holds bill fields as typed by the user.
type BillForm struct {
	Name        string
	Amount      string
	DueDate     string
	Category    string
	IsRecurring bool
}

// Parse validates the form and returns a loan without an id. All field
// errors are joined into the returned error.
func (f LoanForm) Parse() (model.Loan, error) {
	var errs []error
	l := model.Loan{Name: strings.TrimSpace(f.Name)}
	if l.Name == "" {
		errs = append(errs, &ValidationError{Field: "name", Message: "is required"})
	}

	l.Balance = parseAmount("balance", f.Balance, &errs)
	if strings.TrimSpace(f.OriginalBalance) == "" {
		l.OriginalBalance = l.Balance
	} else {
		l.OriginalBalance = parseAmount("original balance", f.OriginalBalance, &errs)
	}
	l.InterestRate = parseRate("interest rate", f.InterestRate, &errs)
	l.MinimumPayment = parseAmount("minimum payment", f.MinimumPayment, &errs)

	l.Type = model.LoanType(strings.TrimSpace(f.Type))
	if l.Type == "" {
		l.Type = model.LoanPersonal
	}
	if !l.Type.Valid() {
		errs = append(errs, &ValidationError{Field: "type", Message: fmt.Sprintf("unknown loan type %q", f.Type)})
	}

	return l, errors.Join(errs...)
}

// Parse validates the form and returns a bill without an id.
func (f BillForm) Parse() (model.Bill, error) {
	var errs []error
	b := model.Bill{Name: strings.TrimSpace(f.Name), IsRecurring: f.IsRecurring}
	if b.Name == "" {
		errs = append(errs, &ValidationError{Field: "name", Message: "is required"})
	}

	b.Amount = parseAmount("amount", f.Amount, &errs)

	day, err := strconv.Atoi(strings.TrimSpace(f.DueDate))
	switch {
	case err != nil:
		errs = append(errs, &ValidationError{Field: "due date", Message: "must be a whole number"})
	case day < 1 || day > 31:
		errs = append(errs, &ValidationError{Field: "due date", Message: "must be between 1 and 31"})
	default:
		b.DueDate = day
	}

	b.Category = model.BillCategory(strings.TrimSpace(f.Category))
	if b.Category == "" {
		b.Category = model.BillOther
	}
	if !b.Category.Valid() {
		errs = append(errs, &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", f.Category)})
	}

	return b, errors.Join(errs...)
}

// FormFromLoan fills a form with a loan's current values.
func FormFromLoan(l model.Loan) LoanForm {
	return LoanForm{
		Name:            l.Name,
		Balance:         formatAmount(l.Balance),
		OriginalBalance: formatAmount(l.OriginalBalance),
		InterestRate:    formatAmount(l.InterestRate),
		MinimumPayment:  formatAmount(l.MinimumPayment),
		Type:            string(l.Type),
	}
}

// FormFromBill fills a form with a bill's current values.
func FormFromBill(b model.Bill) BillForm {
	return BillForm{
		Name:        b.Name,
		Amount:      formatAmount(b.Amount),
		DueDate:     strconv.Itoa(b.DueDate),
		Category:    string(b.Category),
		IsRecurring: b.IsRecurring,
	}
}

// ValidateAmount checks a single money field. It is used by interactive
// forms to validate as the user types.
func ValidateAmount(s string) error {
	var errs []error
	parseAmount("value", s, &errs)
	return errors.Join(errs...)
}

// ValidateRate checks a single annual rate field.
func ValidateRate(s string) error {
	var errs []error
	parseRate("value", s, &errs)
	return errors.Join(errs...)
}

// ValidateDueDate checks a day-of-month field.
func ValidateDueDate(s string) error {
	_, err := BillForm{Name: "x", Amount: "0", DueDate: s}.Parse()
	return err
}

var hundred = decimal.NewFromInt(100)

func parseDecimal(field, s string, errs *[]error) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		*errs = append(*errs, &ValidationError{Field: field, Message: "is required"})
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		*errs = append(*errs, &ValidationError{Field: field, Message: "must be a number"})
		return decimal.Zero, false
	}
	if d.IsNegative() {
		*errs = append(*errs, &ValidationError{Field: field, Message: "must not be negative"})
		return decimal.Zero, false
	}
	if math.IsInf(d.InexactFloat64(), 0) {
		*errs = append(*errs, &ValidationError{Field: field, Message: "is too large"})
		return decimal.Zero, false
	}
	return d, true
}

// parseAmount rounds to cents.
func parseAmount(field, s string, errs *[]error) float64 {
	d, ok := parseDecimal(field, s, errs)
	if !ok {
		return 0
	}
	return d.Round(2).InexactFloat64()
}

func parseRate(field, s string, errs *[]error) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	d, ok := parseDecimal(field, s, errs)
	if !ok {
		return 0
	}
	if d.GreaterThan(hundred) {
		*errs = append(*errs, &ValidationError{Field: field, Message: "must be at most 100"})
		return 0
	}
	return d.InexactFloat64()
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).String()
}
