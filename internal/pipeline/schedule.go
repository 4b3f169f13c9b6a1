package pipeline

import (
	"fmt"
	"time"

	"github.com/theirongolddev/debtburn/internal/model"
)

// DueSoonDays is the window in which a bill is flagged as due soon.
const DueSoonDays = 3

// DaysUntilDue returns the whole days from now's calendar day to the bill's
// next due day. A due day already past this month rolls to next month. Days
// beyond the end of a short month overflow into the following month.
func DaysUntilDue(b model.Bill, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := time.Date(now.Year(), now.Month(), b.DueDate, 0, 0, 0, 0, now.Location())
	if due.Before(today) {
		due = time.Date(now.Year(), now.Month()+1, b.DueDate, 0, 0, 0, 0, now.Location())
	}
	// Round to absorb DST shifts between the two midnights.
	return int(due.Sub(today).Hours()/24 + 0.5)
}

// ClassifyDue maps a day count to a status and display label.
func ClassifyDue(days int) model.BillSchedule {
	s := model.BillSchedule{DaysUntilDue: days}
	switch {
	case days < 0:
		s.Status = model.DueOverdue
		s.Label = "Overdue"
	case days <= DueSoonDays:
		s.Status = model.DueSoon
		s.Label = fmt.Sprintf("Due in %d day%s", days, plural(days))
	default:
		s.Status = model.DueUpcoming
		s.Label = fmt.Sprintf("%d days remaining", days)
	}
	return s
}

// BillDueStatus combines DaysUntilDue and ClassifyDue.
func BillDueStatus(b model.Bill, now time.Time) model.BillSchedule {
	return ClassifyDue(DaysUntilDue(b, now))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
