package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"aula/infras/otel"
	"aula/internal/domains/reservation/model"
	"aula/internal/domains/reservation/repository"
	"aula/internal/domains/schedule/model/dto"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/timezone"
)

// Schedule answers the two read-side questions of the system: what blocks a
// given window, and where could this booking go instead.
type Schedule interface {
	FindConflicts(ctx context.Context, window model.Window, filter model.AudienceFilter) ([]dto.ConflictReport, error)
	SuggestSlots(ctx context.Context, reference time.Time, durationMinutes int, filter model.AudienceFilter, weekdays []time.Weekday) ([]dto.Slot, error)
}

type scheduleImpl struct {
	store repository.Store
	otel  otel.Otel
}

func NewSchedule(store repository.Store, ot otel.Otel) Schedule {
	return &scheduleImpl{
		store: store,
		otel:  ot,
	}
}

// FindConflicts reports every reservation blocking the window for the given
// audience. Transient bookings block everyone; recurring entries block only
// audiences their tag matches. A store failure propagates as an error so an
// outage is never mistaken for a free slot.
func (s *scheduleImpl) FindConflicts(ctx context.Context, window model.Window, filter model.AudienceFilter) (reports []dto.ConflictReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Schedule.FindConflicts")
	defer scope.End()
	defer scope.TraceIfError(err)

	transient, err := s.store.ListInRange(ctx, model.PartitionTransient, window)
	if err != nil {
		return nil, err
	}

	recurring, err := s.store.ListInRange(ctx, model.PartitionRecurring, window)
	if err != nil {
		return nil, err
	}

	blocking := transient

	for _, res := range recurring {
		if filter.Matches(res.AudienceTag) {
			blocking = append(blocking, res)
		}
	}

	slices.SortStableFunc(blocking, func(a, b model.Reservation) int {
		return a.Window.Start.Compare(b.Window.Start)
	})

	for _, res := range blocking {
		reports = append(reports, conflictReport(res))
	}

	return reports, nil
}

// SuggestSlots walks forward from the reference time looking for openings for
// the given duration and audience. Preferred hours are exhausted before the
// buffer hour each day, and the scan stops after the configured maximum.
func (s *scheduleImpl) SuggestSlots(ctx context.Context, reference time.Time, durationMinutes int, filter model.AudienceFilter, weekdays []time.Weekday) (slots []dto.Slot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Schedule.SuggestSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	if durationMinutes <= 0 {
		return nil, failure.BadRequestFromString("slot duration must be positive") //nolint:wrapcheck
	}

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(constant.SlotStepMinutes) * time.Minute
	reference = timezone.ToAppTime(reference)

	subWindows := [][2]int{
		{constant.OperatingHourStart, constant.PreferredWindowEnd},
		{constant.PreferredWindowEnd, constant.BufferWindowEnd},
	}

	for offset := 0; offset < constant.SuggestionHorizonDays; offset++ {
		day := reference.AddDate(0, 0, offset)

		if len(weekdays) > 0 && !slices.Contains(weekdays, day.Weekday()) {
			continue
		}

		for _, bounds := range subWindows {
			open := time.Date(day.Year(), day.Month(), day.Day(), bounds[0], 0, 0, 0, timezone.GetLocation())
			closing := time.Date(day.Year(), day.Month(), day.Day(), bounds[1], 0, 0, 0, timezone.GetLocation())

			// On the reference day, never offer a slot in the past.
			if offset == 0 && reference.After(open) {
				open = reference
			}

			for candidate := open; !candidate.Add(duration).After(closing); candidate = candidate.Add(step) {
				window := model.Window{Start: candidate, End: candidate.Add(duration)}

				conflicts, err := s.FindConflicts(ctx, window, filter)
				if err != nil {
					return nil, err
				}

				if len(conflicts) > 0 {
					continue
				}

				slots = append(slots, dto.NewSlot(window))
				if len(slots) == constant.MaxSuggestions {
					return slots, nil
				}
			}
		}
	}

	return slots, nil
}

func conflictReport(res model.Reservation) dto.ConflictReport {
	kind := "event"
	if res.Partition == model.PartitionRecurring {
		kind = "class"
	}

	label := fmt.Sprintf("Clash with %s %q", kind, res.Summary)
	if res.Partition == model.PartitionRecurring && res.AudienceTag != constant.AudienceAll {
		label = fmt.Sprintf("Clash with %s %q (%s)", kind, res.Summary, res.AudienceTag)
	}

	return dto.ConflictReport{
		Label:       label,
		Partition:   string(res.Partition),
		AudienceTag: res.AudienceTag,
		TimeRange: fmt.Sprintf("%s - %s",
			timezone.Format(res.Window.Start, constant.DisplaySlot),
			timezone.Format(res.Window.End, constant.DisplayClock)),
	}
}
