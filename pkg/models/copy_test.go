package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookCopyIsOverdue(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

	due := func(days int) *time.Time {
		d := today.AddDate(0, 0, days)
		return &d
	}

	tests := []struct {
		name    string
		dueBack *time.Time
		want    bool
	}{
		{name: "no due date", dueBack: nil, want: false},
		{name: "due yesterday", dueBack: due(-1), want: true},
		{name: "due today", dueBack: due(0), want: false},
		{name: "due tomorrow", dueBack: due(1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bc := &BookCopy{DueBack: tt.dueBack}
			assert.Equal(t, tt.want, bc.IsOverdue(today))
		})
	}
}

func TestBookCopyIsOverdue_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	// Due earlier in the day than "now", but on the same calendar date.
	dueBack := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 5, 20, 23, 59, 0, 0, time.UTC)

	bc := &BookCopy{DueBack: &dueBack}
	assert.False(t, bc.IsOverdue(now))
}

func TestValidCopyStatus(t *testing.T) {
	t.Parallel()

	for _, status := range CopyStatuses {
		assert.True(t, ValidCopyStatus(status))
	}
	assert.False(t, ValidCopyStatus("lost"))
	assert.False(t, ValidCopyStatus(""))
}

func TestDateOnly(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 5, 20, 18, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}
