package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"aula/config"
	calendarInfra "aula/infras/calendar"
	"aula/infras/otel"
	"aula/internal/domains/reservation/model"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/timezone"
)

const (
	creatorPropertyKey = "creator_email"

	otelAttrPartition = "partition"
	otelAttrEventID   = "event_id"
	otelAttrTag       = "audience_tag"
)

type calendarStore struct {
	svc       *calendar.Service
	otel      otel.Otel
	recurring string
	transient string
}

// NewCalendarStore resolves the two partition calendars by display name and
// refuses to start against the account's primary calendar. Bulk rollback
// deletes by query, so pointing a partition at a calendar with unrelated
// events would be destructive.
func NewCalendarStore(cfg *config.Config, svc *calendar.Service, ot otel.Otel) Store {
	tz := timezone.Name()

	recurringID := mustPartitionCalendar(svc, cfg.External.Calendar.RecurringName, tz)
	transientID := mustPartitionCalendar(svc, cfg.External.Calendar.TransientName, tz)

	return &calendarStore{
		svc:       svc,
		otel:      ot,
		recurring: recurringID,
		transient: transientID,
	}
}

func mustPartitionCalendar(svc *calendar.Service, name, tz string) string {
	id, err := calendarInfra.EnsureCalendar(svc, name, tz)
	if err != nil {
		log.Fatal().Err(err).Str("calendar", name).Msg("Failed to resolve partition calendar")
	}

	if id == constant.Empty || id == "primary" {
		log.Fatal().Str("calendar", name).Msg("Refusing to operate on the primary calendar")
	}

	return id
}

func (s *calendarStore) calendarID(partition model.Partition) (string, error) {
	switch partition {
	case model.PartitionRecurring:
		return s.recurring, nil
	case model.PartitionTransient:
		return s.transient, nil
	default:
		return constant.Empty, failure.InvariantViolation("unknown reservation partition") //nolint:wrapcheck
	}
}

func (s *calendarStore) Create(ctx context.Context, res model.Reservation) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "calendarStore.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	calendarID, err := s.calendarID(res.Partition)
	if err != nil {
		return constant.Empty, err
	}

	scope.SetAttribute(otelAttrPartition, string(res.Partition))

	event := &calendar.Event{
		Summary:     res.Summary,
		Description: model.EncodeDescription(res.AudienceTag, res.Branch),
		Start: &calendar.EventDateTime{
			DateTime: res.Window.Start.Format(constant.DateFormat),
			TimeZone: timezone.Name(),
		},
		End: &calendar.EventDateTime{
			DateTime: res.Window.End.Format(constant.DateFormat),
			TimeZone: timezone.Name(),
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Shared: map[string]string{creatorPropertyKey: res.Creator},
		},
	}

	if res.Recurrence != constant.Empty {
		event.Recurrence = []string{res.Recurrence}
	}

	created, err := s.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return constant.Empty, mapCalendarError(err)
	}

	return created.Id, nil
}

func (s *calendarStore) Get(ctx context.Context, partition model.Partition, id string) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "calendarStore.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrEventID, id)

	calendarID, err := s.calendarID(partition)
	if err != nil {
		return model.Reservation{}, err
	}

	event, err := s.svc.Events.Get(calendarID, id).Context(ctx).Do()
	if err != nil {
		return model.Reservation{}, mapCalendarError(err)
	}

	if event.Status == "cancelled" {
		return model.Reservation{}, ErrNotFound
	}

	res, ok := eventToReservation(event, partition)
	if !ok {
		return model.Reservation{}, failure.InvariantViolation("stored event has no usable time window") //nolint:wrapcheck
	}

	return res, nil
}

func (s *calendarStore) Delete(ctx context.Context, partition model.Partition, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "calendarStore.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrEventID, id)

	calendarID, err := s.calendarID(partition)
	if err != nil {
		return err
	}

	if err := s.svc.Events.Delete(calendarID, id).Context(ctx).Do(); err != nil {
		return mapCalendarError(err)
	}

	return nil
}

func (s *calendarStore) ListInRange(ctx context.Context, partition model.Partition, window model.Window) (out []model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "calendarStore.ListInRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrPartition, string(partition))

	calendarID, err := s.calendarID(partition)
	if err != nil {
		return nil, err
	}

	pageToken := constant.Empty

	for {
		call := s.svc.Events.List(calendarID).
			TimeMin(window.Start.Format(constant.DateFormat)).
			TimeMax(window.End.Format(constant.DateFormat)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)

		if pageToken != constant.Empty {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return nil, mapCalendarError(err)
		}

		for _, event := range page.Items {
			res, ok := eventToReservation(event, partition)
			if !ok {
				continue
			}

			if res.Window.Overlaps(window) {
				out = append(out, res)
			}
		}

		pageToken = page.NextPageToken
		if pageToken == constant.Empty {
			break
		}
	}

	return out, nil
}

// DeleteByAudienceTag removes every recurring series whose description
// carries the exact tag. The free-text query is a prefilter only; each hit is
// re-verified against the decoded description before deletion.
func (s *calendarStore) DeleteByAudienceTag(ctx context.Context, tag string) (removed int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "calendarStore.DeleteByAudienceTag")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrTag, tag)

	pageToken := constant.Empty

	for {
		call := s.svc.Events.List(s.recurring).
			Q("Semester: " + tag).
			SingleEvents(false).
			Context(ctx)

		if pageToken != constant.Empty {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return removed, mapCalendarError(err)
		}

		for _, event := range page.Items {
			decoded, _ := model.DecodeDescription(event.Description)
			if decoded != tag {
				continue
			}

			if err := s.svc.Events.Delete(s.recurring, event.Id).Context(ctx).Do(); err != nil {
				if isGone(err) {
					continue
				}

				return removed, mapCalendarError(err)
			}

			removed++
		}

		pageToken = page.NextPageToken
		if pageToken == constant.Empty {
			break
		}
	}

	return removed, nil
}

func (s *calendarStore) DeleteExpiredTransient(ctx context.Context) (removed int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "calendarStore.DeleteExpiredTransient")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()
	pageToken := constant.Empty

	for {
		call := s.svc.Events.List(s.transient).
			TimeMax(now.Format(constant.DateFormat)).
			SingleEvents(true).
			Context(ctx)

		if pageToken != constant.Empty {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return removed, mapCalendarError(err)
		}

		for _, event := range page.Items {
			res, ok := eventToReservation(event, model.PartitionTransient)
			if !ok || !res.Window.End.Before(now) {
				continue
			}

			if err := s.svc.Events.Delete(s.transient, event.Id).Context(ctx).Do(); err != nil {
				if isGone(err) {
					continue
				}

				return removed, mapCalendarError(err)
			}

			removed++
		}

		pageToken = page.NextPageToken
		if pageToken == constant.Empty {
			break
		}
	}

	return removed, nil
}

func eventToReservation(event *calendar.Event, partition model.Partition) (model.Reservation, bool) {
	if event.Start == nil || event.End == nil ||
		event.Start.DateTime == constant.Empty || event.End.DateTime == constant.Empty {
		// All-day entries carry no clock window and cannot collide with
		// timed bookings.
		return model.Reservation{}, false
	}

	start, err := time.Parse(time.RFC3339, event.Start.DateTime)
	if err != nil {
		return model.Reservation{}, false
	}

	end, err := time.Parse(time.RFC3339, event.End.DateTime)
	if err != nil {
		return model.Reservation{}, false
	}

	tag, branch := model.DecodeDescription(event.Description)

	creator := constant.SystemCreator
	if event.ExtendedProperties != nil && event.ExtendedProperties.Shared[creatorPropertyKey] != constant.Empty {
		creator = event.ExtendedProperties.Shared[creatorPropertyKey]
	}

	createdAt := start
	if parsed, err := time.Parse(time.RFC3339, event.Created); err == nil {
		createdAt = parsed
	}

	recurrence := constant.Empty
	if len(event.Recurrence) > 0 {
		recurrence = event.Recurrence[0]
	}

	return model.Reservation{
		ID:          event.Id,
		Summary:     event.Summary,
		Window:      model.Window{Start: timezone.ToAppTime(start), End: timezone.ToAppTime(end)},
		Partition:   partition,
		AudienceTag: tag,
		Branch:      branch,
		Creator:     creator,
		CreatedAt:   createdAt,
		Recurrence:  recurrence,
	}, true
}

func mapCalendarError(err error) error {
	if isGone(err) {
		return ErrNotFound
	}

	return failure.StoreUnavailable(err) //nolint:wrapcheck
}

func isGone(err error) bool {
	var apiErr *googleapi.Error

	return errors.As(err, &apiErr) && (apiErr.Code == 404 || apiErr.Code == 410)
}
