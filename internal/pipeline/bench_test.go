package pipeline

import (
	"fmt"
	"testing"

	"github.com/theirongolddev/debtburn/internal/model"
)

func benchPool(n int) []model.Loan {
	loans := make([]model.Loan, n)
	for i := range loans {
		loans[i] = model.Loan{
			ID:             fmt.Sprintf("loan-%d", i),
			Balance:        float64(1000 + i*750),
			InterestRate:   float64(3 + (i*7)%25),
			MinimumPayment: float64(40 + i*15),
		}
	}
	return loans
}

func BenchmarkProjectPayoff(b *testing.B) {
	loans := benchPool(20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ProjectPayoff(loans, 250)
	}
}

func BenchmarkCompareStrategies(b *testing.B) {
	for _, n := range []int{3, 20, 100} {
		loans := benchPool(n)
		b.Run(fmt.Sprintf("loans=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = CompareStrategies(loans, 250)
			}
		})
	}
}
