package service

import (
	"fmt"
	"time"

	"aula/shared/constant"
	"aula/shared/timezone"
)

var rruleWeekdayCodes = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// FirstOccurrence returns the first date on or after from that falls on the
// named weekday. If from already falls on it, from is returned unchanged.
func FirstOccurrence(from time.Time, weekdayName string) (time.Time, error) {
	day, err := timezone.ParseWeekday(weekdayName)
	if err != nil {
		return time.Time{}, err
	}

	offset := (int(day) - int(from.Weekday()) + 7) % 7

	return from.AddDate(0, 0, offset), nil
}

// BuildRecurrenceRule renders the weekly-until rule for a synced class. The
// until bound is pinned to end of day UTC so the final week is included
// regardless of the class's local start time.
func BuildRecurrenceRule(day time.Weekday, until time.Time) string {
	bound := time.Date(until.Year(), until.Month(), until.Day(), 23, 59, 59, 0, time.UTC)

	return fmt.Sprintf("RRULE:FREQ=WEEKLY;BYDAY=%s;UNTIL=%s",
		rruleWeekdayCodes[day], bound.Format(constant.RecurrenceUntil))
}
