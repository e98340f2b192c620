package model

import (
	"slices"
	"time"

	"aula/shared/constant"
	"aula/shared/failure"
)

const (
	EntityName = "reservation"
)

// Partition selects which logical calendar a reservation lives in. The two
// partitions carry different audience-matching semantics: transient bookings
// block everyone, recurring timetable entries only block matching cohorts.
type Partition string

const (
	PartitionRecurring Partition = "recurring"
	PartitionTransient Partition = "transient"
)

func (p Partition) Valid() bool {
	return p == PartitionRecurring || p == PartitionTransient
}

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow validates the start < end invariant.
func NewWindow(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, failure.BadRequestFromString("window start must be before window end") //nolint:wrapcheck
	}

	return Window{Start: start, End: end}, nil
}

// Overlaps reports strict half-open interval intersection. Touching windows
// (a.End == b.Start) do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Reservation is the central entity. It is never mutated after creation;
// edits are delete-and-recreate.
type Reservation struct {
	ID          string
	Summary     string
	Window      Window
	Partition   Partition
	AudienceTag string
	Branch      string
	Creator     string
	CreatedAt   time.Time
	// Recurrence is the weekly-repeat-until rule token, present only on
	// recurring entries synced from a timetable.
	Recurrence string
}

// AudienceFilter is the audience side of a conflict query: empty means the
// sentinel All, otherwise a set of cohort tags.
type AudienceFilter []string

// IsAll reports whether the filter matches every cohort.
func (f AudienceFilter) IsAll() bool {
	return len(f) == 0 || slices.Contains(f, constant.AudienceAll)
}

// Matches decides whether a recurring reservation tagged with tag is relevant
// to this filter. A reservation tagged All blocks every filter. Reservations
// carry a single tag only; multi-tag reservations are a future extension.
func (f AudienceFilter) Matches(tag string) bool {
	if tag == constant.AudienceAll || tag == constant.Empty {
		return true
	}

	if f.IsAll() {
		return true
	}

	return slices.Contains([]string(f), tag)
}

// Primary returns the tag a transient booking is displayed under.
func (f AudienceFilter) Primary() string {
	if f.IsAll() {
		return constant.AudienceAll
	}

	return f[0]
}
