package loans

import (
	"time"

	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/models"
)

const (
	// MaxRenewalWeeks is the furthest ahead of today a renewal date may land.
	MaxRenewalWeeks = 4
	// DefaultRenewalWeeks is used to pre-populate a renewal proposal.
	DefaultRenewalWeeks = 3
)

// ProposedRenewalDate returns the default due date offered when a renewal
// form is first displayed: three weeks from today.
func ProposedRenewalDate(today time.Time) time.Time {
	return models.DateOnly(today).AddDate(0, 0, DefaultRenewalWeeks*7)
}

// ValidateRenewalDate checks a proposed due date against the renewal window.
// Both sides are compared as calendar dates. A date on or before today fails
// with RenewalDateInPast (renewing to the current day would not extend the
// loan), and a date more than MaxRenewalWeeks ahead fails with
// RenewalDateTooFarInFuture. On success the truncated date is returned and
// nothing is mutated.
func ValidateRenewalDate(candidate, today time.Time) (time.Time, error) {
	d := models.DateOnly(candidate)
	t := models.DateOnly(today)

	if !d.After(t) {
		return time.Time{}, errcodes.RenewalDateInPast()
	}
	if d.After(t.AddDate(0, 0, MaxRenewalWeeks*7)) {
		return time.Time{}, errcodes.RenewalDateTooFarInFuture()
	}
	return d, nil
}
