package loans

import (
	"testing"
	"time"

	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposedRenewalDate(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	proposed := ProposedRenewalDate(today)

	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), proposed)
}

func TestValidateRenewalDate(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		candidate time.Time
		wantCode  string
	}{
		{
			name:      "yesterday is rejected",
			candidate: today.AddDate(0, 0, -1),
			wantCode:  "renewal_date_in_past",
		},
		{
			name:      "today is rejected",
			candidate: today,
			wantCode:  "renewal_date_in_past",
		},
		{
			name:      "tomorrow is accepted",
			candidate: today.AddDate(0, 0, 1),
		},
		{
			name:      "exactly four weeks out is accepted",
			candidate: today.AddDate(0, 0, 28),
		},
		{
			name:      "four weeks and a day is rejected",
			candidate: today.AddDate(0, 0, 29),
			wantCode:  "renewal_date_too_far_in_future",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ValidateRenewalDate(tt.candidate, today)

			if tt.wantCode != "" {
				require.Error(t, err)
				var codeErr *errcodes.Error
				require.ErrorAs(t, err, &codeErr)
				assert.Equal(t, tt.wantCode, codeErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, models.DateOnly(tt.candidate), got)
		})
	}
}

func TestValidateRenewalDate_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	// Late in the evening today, a candidate early tomorrow morning is still a
	// full calendar day ahead.
	today := time.Date(2026, 3, 10, 23, 55, 0, 0, time.UTC)
	candidate := time.Date(2026, 3, 11, 0, 5, 0, 0, time.UTC)

	got, err := ValidateRenewalDate(candidate, today)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), got)
}
