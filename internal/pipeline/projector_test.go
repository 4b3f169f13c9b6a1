package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/debtburn/internal/model"
)

func TestProjectPayoffEmpty(t *testing.T) {
	if got := ProjectPayoff(nil, 500); got != (model.Projection{}) {
		t.Fatalf("ProjectPayoff(nil) = %+v, want zero", got)
	}
}

func TestProjectPayoffSamplePool(t *testing.T) {
	p := ProjectPayoff(samplePool(), 0)
	if p.Months != 70 {
		t.Fatalf("Months = %d, want 70", p.Months)
	}
	if math.Abs(p.TotalInterest-10575.14) > 0.01 {
		t.Fatalf("TotalInterest = %.4f, want ~10575.14", p.TotalInterest)
	}
	if p.Months >= MaxMonths {
		t.Fatalf("Months = %d, want < %d", p.Months, MaxMonths)
	}
}

func TestProjectPayoffZeroRate(t *testing.T) {
	p := ProjectPayoff([]model.Loan{{Balance: 1200, MinimumPayment: 100}}, 0)
	if p.Months != 12 || p.TotalInterest != 0 {
		t.Fatalf("ProjectPayoff = %+v, want {12 0}", p)
	}
}

func TestProjectPayoffNeverSentinel(t *testing.T) {
	loans := []model.Loan{{Balance: 1000, InterestRate: 24, MinimumPayment: 10}}
	p := ProjectPayoff(loans, 0)
	if p != NeverProjection {
		t.Fatalf("ProjectPayoff = %+v, want sentinel %+v", p, NeverProjection)
	}
	if !IsNever(p) {
		t.Fatal("IsNever(sentinel) = false")
	}

	// Exactly covering the first month's interest is still "never".
	p = ProjectPayoff(loans, 10)
	if p != NeverProjection {
		t.Fatalf("payment == interest: ProjectPayoff = %+v, want sentinel", p)
	}

	p = ProjectPayoff(loans, 11)
	if IsNever(p) {
		t.Fatalf("payment > interest: ProjectPayoff = %+v, want convergent", p)
	}
}

func TestProjectPayoffCapsAtMaxMonths(t *testing.T) {
	// Barely above interest: amortizes far slower than 50 years.
	loans := []model.Loan{{Balance: 100000, InterestRate: 12, MinimumPayment: 1000.01}}
	p := ProjectPayoff(loans, 0)
	if p.Months != MaxMonths {
		t.Fatalf("Months = %d, want cap %d", p.Months, MaxMonths)
	}
}

func TestProjectPayoffMonotoneInExtra(t *testing.T) {
	loans := samplePool()
	prev := ProjectPayoff(loans, 0)
	for extra := 50.0; extra <= 3000; extra += 50 {
		cur := ProjectPayoff(loans, extra)
		if cur.Months > prev.Months {
			t.Fatalf("extra=%.0f: Months = %d, more than %d at lower extra", extra, cur.Months, prev.Months)
		}
		if cur.TotalInterest > prev.TotalInterest+1e-9 {
			t.Fatalf("extra=%.0f: TotalInterest = %.2f, more than %.2f at lower extra", extra, cur.TotalInterest, prev.TotalInterest)
		}
		prev = cur
	}
}

func TestProjectPayoffIdempotent(t *testing.T) {
	loans := samplePool()
	a := ProjectPayoff(loans, 250)
	b := ProjectPayoff(loans, 250)
	if a != b {
		t.Fatalf("repeat call differs: %+v vs %+v", a, b)
	}
}

func TestProjectPayoffDoesNotMutate(t *testing.T) {
	loans := samplePool()
	want := samplePool()
	_ = ProjectPayoff(loans, 100)
	for i := range loans {
		if loans[i] != want[i] {
			t.Fatalf("loan %d mutated: %+v", i, loans[i])
		}
	}
}
