package invoice

import (
	"fmt"
	"time"
)

// issueHour keeps dates away from midnight so time zone conversions never
// move them to another day.
const issueHour = 12

// Dates are the issue and due dates of an invoice.
type Dates struct {
	Issue time.Time
	Due   time.Time
}

// CalculateDates returns the last day of month in year as the issue date and
// the issue date plus dueDays as the due date.
func CalculateDates(year, month, dueDays int) (Dates, error) {
	if month < 1 || month > 12 {
		return Dates{}, NewConfigurationError("CalculateDates", "month", ErrInvalidMonth, fmt.Sprintf("got %d", month))
	}

	// Day 0 of the following month; time.Date normalizes month 13.
	issue := time.Date(year, time.Month(month+1), 0, issueHour, 0, 0, 0, time.UTC)
	return Dates{
		Issue: issue,
		Due:   issue.AddDate(0, 0, dueDays),
	}, nil
}
