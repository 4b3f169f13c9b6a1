package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/debtburn/internal/model"
)

func TestDaysUntilDue(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		due  int
		want int
	}{
		{"later this month", time.Date(2026, 4, 10, 15, 30, 0, 0, time.UTC), 15, 5},
		{"today", time.Date(2026, 4, 10, 23, 0, 0, 0, time.UTC), 10, 0},
		{"rolls to next month", time.Date(2026, 4, 20, 8, 0, 0, 0, time.UTC), 1, 11},
		{"year boundary", time.Date(2026, 12, 28, 0, 0, 0, 0, time.UTC), 3, 6},
		{"short month overflow", time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC), 31, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysUntilDue(model.Bill{DueDate: tt.due}, tt.now)
			if got != tt.want {
				t.Errorf("DaysUntilDue = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassifyDue(t *testing.T) {
	tests := []struct {
		days   int
		status model.DueStatus
		label  string
	}{
		{-2, model.DueOverdue, "Overdue"},
		{0, model.DueSoon, "Due in 0 days"},
		{1, model.DueSoon, "Due in 1 day"},
		{3, model.DueSoon, "Due in 3 days"},
		{4, model.DueUpcoming, "4 days remaining"},
	}
	for _, tt := range tests {
		got := ClassifyDue(tt.days)
		if got.Status != tt.status || got.Label != tt.label || got.DaysUntilDue != tt.days {
			t.Errorf("ClassifyDue(%d) = %+v, want %s %q", tt.days, got, tt.status, tt.label)
		}
	}
}
