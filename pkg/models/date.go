package models

import "time"

// DateOnly truncates a timestamp to its calendar date (midnight UTC). Loan
// due dates are calendar dates, so all due-date comparisons go through this
// to avoid time-of-day skew.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
