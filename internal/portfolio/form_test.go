package portfolio

import (
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/debtburn/internal/model"
)

func TestLoanFormParse(t *testing.T) {
	l, err := LoanForm{
		Name:            "  Car Loan ",
		Balance:         "$9,000.505",
		OriginalBalance: "12000",
		InterestRate:    "6.9%",
		MinimumPayment:  "250",
		Type:            "auto",
	}.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if l.Name != "Car Loan" {
		t.Errorf("Name = %q, want Car Loan", l.Name)
	}
	if l.Balance != 9000.51 {
		t.Errorf("Balance = %v, want 9000.51", l.Balance)
	}
	if l.OriginalBalance != 12000 || l.InterestRate != 6.9 || l.MinimumPayment != 250 {
		t.Errorf("Parse = %+v", l)
	}
	if l.Type != model.LoanAuto {
		t.Errorf("Type = %q, want auto", l.Type)
	}
}

func TestLoanFormDefaults(t *testing.T) {
	l, err := LoanForm{Name: "x", Balance: "100", InterestRate: "0", MinimumPayment: "0"}.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if l.OriginalBalance != 100 {
		t.Errorf("OriginalBalance = %v, want balance 100", l.OriginalBalance)
	}
	if l.Type != model.LoanPersonal {
		t.Errorf("Type = %q, want personal", l.Type)
	}
}

func TestLoanFormErrors(t *testing.T) {
	tests := []struct {
		name  string
		form  LoanForm
		field string
	}{
		{"missing name", LoanForm{Balance: "1", InterestRate: "1", MinimumPayment: "1"}, "name"},
		{"negative balance", LoanForm{Name: "x", Balance: "-5", InterestRate: "1", MinimumPayment: "1"}, "balance"},
		{"not a number", LoanForm{Name: "x", Balance: "abc", InterestRate: "1", MinimumPayment: "1"}, "balance"},
		{"rate above 100", LoanForm{Name: "x", Balance: "1", InterestRate: "101", MinimumPayment: "1"}, "interest rate"},
		{"missing minimum", LoanForm{Name: "x", Balance: "1", InterestRate: "1"}, "minimum payment"},
		{"NaN balance", LoanForm{Name: "x", Balance: "NaN", InterestRate: "1", MinimumPayment: "1"}, "balance"},
		{"Inf balance", LoanForm{Name: "x", Balance: "Inf", InterestRate: "1", MinimumPayment: "1"}, "balance"},
		{"overflowing balance", LoanForm{Name: "x", Balance: "1e400", InterestRate: "1", MinimumPayment: "1"}, "balance"},
		{"overflowing minimum", LoanForm{Name: "x", Balance: "1", InterestRate: "1", MinimumPayment: "1e400"}, "minimum payment"},
		{"bad type", LoanForm{Name: "x", Balance: "1", InterestRate: "1", MinimumPayment: "1", Type: "boat"}, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Parse()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Parse err = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestLoanFormJoinsAllErrors(t *testing.T) {
	_, err := LoanForm{}.Parse()
	if err == nil {
		t.Fatal("Parse of empty form succeeded")
	}
	for _, want := range []string{"name", "balance", "interest rate", "minimum payment"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing field %q", err, want)
		}
	}
}

func TestBillFormParse(t *testing.T) {
	b, err := BillForm{Name: "Water", Amount: "45.5", DueDate: " 12 ", Category: "utilities", IsRecurring: true}.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := model.Bill{Name: "Water", Amount: 45.5, DueDate: 12, Category: model.BillUtilities, IsRecurring: true}
	if b != want {
		t.Errorf("Parse = %+v, want %+v", b, want)
	}
}

func TestBillFormDueDateBounds(t *testing.T) {
	for _, day := range []string{"0", "32", "x", ""} {
		_, err := BillForm{Name: "x", Amount: "1", DueDate: day}.Parse()
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "due date" {
			t.Errorf("due date %q: err = %v, want due date error", day, err)
		}
	}
	for _, day := range []string{"1", "31"} {
		if err := ValidateDueDate(day); err != nil {
			t.Errorf("ValidateDueDate(%q) = %v, want nil", day, err)
		}
	}
}

func TestFormRoundTrip(t *testing.T) {
	l := model.Loan{Name: "Card", Balance: 5500, OriginalBalance: 8000, InterestRate: 22.99, MinimumPayment: 165, Type: model.LoanCreditCard}
	got, err := FormFromLoan(l).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != l {
		t.Errorf("loan round trip = %+v, want %+v", got, l)
	}

	b := model.Bill{Name: "Netflix", Amount: 15.99, DueDate: 8, Category: model.BillSubscriptions, IsRecurring: true}
	gotBill, err := FormFromBill(b).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if gotBill != b {
		t.Errorf("bill round trip = %+v, want %+v", gotBill, b)
	}
}

func TestValidateHelpers(t *testing.T) {
	if err := ValidateAmount("12.50"); err != nil {
		t.Errorf("ValidateAmount(12.50) = %v", err)
	}
	if err := ValidateAmount("-1"); err == nil {
		t.Error("ValidateAmount(-1) = nil, want error")
	}
	if err := ValidateRate("100"); err != nil {
		t.Errorf("ValidateRate(100) = %v", err)
	}
	if err := ValidateRate("100.01"); err == nil {
		t.Error("ValidateRate(100.01) = nil, want error")
	}
}
