package pipeline

import "github.com/theirongolddev/debtburn/internal/model"

func samplePool() []model.Loan {
	return []model.Loan{
		{ID: "1", Name: "Chase Freedom Card", Balance: 5500, OriginalBalance: 8000, InterestRate: 22.99, MinimumPayment: 165, Type: model.LoanCreditCard},
		{ID: "2", Name: "Personal Loan", Balance: 12000, OriginalBalance: 15000, InterestRate: 8.5, MinimumPayment: 275, Type: model.LoanPersonal},
		{ID: "3", Name: "Student Loan", Balance: 25000, OriginalBalance: 30000, InterestRate: 4.2, MinimumPayment: 320, Type: model.LoanStudent},
	}
}

func sampleBills() []model.Bill {
	return []model.Bill{
		{ID: "1", Name: "Rent", Amount: 1200, DueDate: 1, Category: model.BillHousing, IsRecurring: true},
		{ID: "2", Name: "Electric Bill", Amount: 120, DueDate: 15, Category: model.BillUtilities, IsRecurring: true},
		{ID: "3", Name: "Netflix", Amount: 15.99, DueDate: 8, Category: model.BillSubscriptions, IsRecurring: true},
		{ID: "4", Name: "Car Insurance", Amount: 180, DueDate: 20, Category: model.BillInsurance, IsRecurring: true},
	}
}

func approx(got, want float64) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= 1e-6
}
