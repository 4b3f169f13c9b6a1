package portfolio

import (
	"context"
	"fmt"

	"github.com/theirongolddev/debtburn/internal/model"
)

// SampleLoans is the demonstration loan set offered on first run.
var SampleLoans = []LoanForm{
	{Name: "Chase Freedom Card", Balance: "5500", OriginalBalance: "8000", InterestRate: "22.99", MinimumPayment: "165", Type: string(model.LoanCreditCard)},
	{Name: "Personal Loan", Balance: "12000", OriginalBalance: "15000", InterestRate: "8.5", MinimumPayment: "275", Type: string(model.LoanPersonal)},
	{Name: "Student Loan", Balance: "25000", OriginalBalance: "30000", InterestRate: "4.2", MinimumPayment: "320", Type: string(model.LoanStudent)},
}

// SampleBills is the demonstration bill set offered on first run.
var SampleBills = []BillForm{
	{Name: "Rent", Amount: "1200", DueDate: "1", Category: string(model.BillHousing), IsRecurring: true},
	{Name: "Electric Bill", Amount: "120", DueDate: "15", Category: string(model.BillUtilities), IsRecurring: true},
	{Name: "Netflix", Amount: "15.99", DueDate: "8", Category: string(model.BillSubscriptions), IsRecurring: true},
	{Name: "Car Insurance", Amount: "180", DueDate: "20", Category: string(model.BillInsurance), IsRecurring: true},
}

// SeedSample adds the sample loans and bills. It returns how many records
// were added.
func (s *Service) SeedSample(ctx context.Context) (int, error) {
	n := 0
	for _, f := range SampleLoans {
		if _, err := s.AddLoan(ctx, f); err != nil {
			return n, fmt.Errorf("seeding %s: %w", f.Name, err)
		}
		n++
	}
	for _, f := range SampleBills {
		if _, err := s.AddBill(ctx, f); err != nil {
			return n, fmt.Errorf("seeding %s: %w", f.Name, err)
		}
		n++
	}
	s.logger.WithField("records", n).Info("seeded sample portfolio")
	return n, nil
}

// SeedIfEmpty seeds the sample data only when the store holds nothing.
func (s *Service) SeedIfEmpty(ctx context.Context) (bool, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	if !snap.Empty() {
		return false, nil
	}
	if _, err := s.SeedSample(ctx); err != nil {
		return false, err
	}
	return true, nil
}
