package model

import "strings"

// BillCategory tags a bill for display.
type BillCategory string

const (
	BillHousing       BillCategory = "housing"
	BillUtilities     BillCategory = "utilities"
	BillInsurance     BillCategory = "insurance"
	BillSubscriptions BillCategory = "subscriptions"
	BillOther         BillCategory = "other"
)

// BillCategories lists every known category in display order.
var BillCategories = []BillCategory{BillHousing, BillUtilities, BillInsurance, BillSubscriptions, BillOther}

// Valid reports whether c is one of the known categories.
func (c BillCategory) Valid() bool {
	for _, known := range BillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the upper-case display label.
func (c BillCategory) Label() string {
	return strings.ToUpper(string(c))
}

// Bill is a recurring expense. DueDate is a day of month in 1..31.
type Bill struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Amount      float64      `json:"amount"`
	DueDate     int          `json:"due_date"`
	Category    BillCategory `json:"category"`
	IsRecurring bool         `json:"is_recurring"`
}
