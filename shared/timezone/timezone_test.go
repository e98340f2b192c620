package timezone_test

import (
	"testing"
	"time"

	"aula/shared/timezone"
)

func TestTimezoneInit(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestToAppTimeKeepsInstant(t *testing.T) {
	utcTime := time.Date(2026, 1, 5, 4, 30, 0, 0, time.UTC)
	appTime := timezone.ToAppTime(utcTime)

	if !appTime.Equal(utcTime) {
		t.Error("expected the converted time to represent the same instant")
	}

	if appTime.Location() == nil {
		t.Error("expected converted time to have a location")
	}
}

func TestTimezoneFormatAndParse(t *testing.T) {
	testTime := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2026-01-05")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed.Location() != timezone.GetLocation() {
		t.Error("Parse() should interpret values in the application timezone")
	}
}
