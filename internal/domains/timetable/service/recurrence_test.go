package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aula/internal/domains/timetable/service"
	"aula/shared/timezone"
)

func TestFirstOccurrence(t *testing.T) {
	// 2026-01-05 is a Monday.
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, timezone.GetLocation())

	tests := []struct {
		name    string
		from    time.Time
		weekday string
		want    time.Time
	}{
		{
			name:    "later in the same week",
			from:    monday,
			weekday: "Wednesday",
			want:    monday.AddDate(0, 0, 2),
		},
		{
			name:    "same day returns the input date",
			from:    monday,
			weekday: "Monday",
			want:    monday,
		},
		{
			name:    "wraps into the next week",
			from:    monday.AddDate(0, 0, 4), // Friday
			weekday: "Tuesday",
			want:    monday.AddDate(0, 0, 8),
		},
		{
			name:    "case insensitive",
			from:    monday,
			weekday: "friday",
			want:    monday.AddDate(0, 0, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.FirstOccurrence(tt.from, tt.weekday)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstOccurrenceUnknownWeekday(t *testing.T) {
	_, err := service.FirstOccurrence(time.Now(), "Funday")
	assert.Error(t, err)
}

func TestBuildRecurrenceRule(t *testing.T) {
	until := time.Date(2026, 4, 10, 0, 0, 0, 0, timezone.GetLocation())

	rule := service.BuildRecurrenceRule(time.Wednesday, until)
	assert.Equal(t, "RRULE:FREQ=WEEKLY;BYDAY=WE;UNTIL=20260410T235959Z", rule)

	rule = service.BuildRecurrenceRule(time.Monday, until)
	assert.Equal(t, "RRULE:FREQ=WEEKLY;BYDAY=MO;UNTIL=20260410T235959Z", rule)
}
