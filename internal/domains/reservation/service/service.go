package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"aula/infras/otel"
	"aula/internal/domains/reservation/model"
	"aula/internal/domains/reservation/model/dto"
	"aula/internal/domains/reservation/repository"
	scheduleService "aula/internal/domains/schedule/service"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/timezone"
)

// Reservation is the transient booking lifecycle: create with a final
// authoritative conflict check, read, self-cancel within the retention
// window, and housekeeping of past events.
type Reservation interface {
	Book(ctx context.Context, req dto.CreateReservationRequest) (dto.BookResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) error
	CleanupExpired(ctx context.Context) (int, error)
}

type reservationImpl struct {
	store    repository.Store
	schedule scheduleService.Schedule
	otel     otel.Otel
}

func NewReservation(store repository.Store, schedule scheduleService.Schedule, ot otel.Otel) Reservation {
	return &reservationImpl{
		store:    store,
		schedule: schedule,
		otel:     ot,
	}
}

// Book runs the conflict check immediately before writing, so the decision is
// as fresh as the store allows. Two writers racing the same window can still
// both pass the check; the calendar backend has no transactional reserve, and
// the near-zero gap is accepted over a distributed lock.
func (s *reservationImpl) Book(ctx context.Context, req dto.CreateReservationRequest) (out dto.BookResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Reservation.Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	window, err := parseWindow(req.Start, req.End)
	if err != nil {
		return dto.BookResponse{}, err
	}

	filter := model.AudienceFilter(req.TargetAudience)

	conflicts, err := s.schedule.FindConflicts(ctx, window, filter)
	if err != nil {
		return dto.BookResponse{}, err
	}

	if len(conflicts) > 0 {
		suggestions, suggestErr := s.schedule.SuggestSlots(
			ctx, window.Start, int(window.Duration().Minutes()), filter, nil)
		if suggestErr != nil {
			// The rejection stands on its own; alternatives are best effort.
			log.Warn().Err(suggestErr).Msg("Failed to compute alternative slots for rejected booking")
		}

		return dto.BookResponse{
			Status:      dto.StatusConflict,
			Conflicts:   conflicts,
			Suggestions: suggestions,
		}, nil
	}

	res := model.Reservation{
		Summary:     req.Summary,
		Window:      window,
		Partition:   model.PartitionTransient,
		AudienceTag: filter.Primary(),
		Creator:     creatorFromContext(ctx),
		CreatedAt:   timezone.Now(),
	}

	id, err := s.store.Create(ctx, res)
	if err != nil {
		return dto.BookResponse{}, err
	}

	res.ID = id
	response := dto.NewReservationResponse(res)

	return dto.BookResponse{
		Status:      dto.StatusBooked,
		Reservation: &response,
	}, nil
}

func (s *reservationImpl) Get(ctx context.Context, id string) (out dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Reservation.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err := s.store.Get(ctx, model.PartitionTransient, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ReservationResponse{}, failure.NotFound(model.EntityName) //nolint:wrapcheck
		}

		return dto.ReservationResponse{}, err
	}

	return dto.NewReservationResponse(res), nil
}

// Cancel enforces ownership and the retention window. Admins may cancel any
// booking at any time.
func (s *reservationImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Reservation.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err := s.store.Get(ctx, model.PartitionTransient, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure.NotFound(model.EntityName) //nolint:wrapcheck
		}

		return err
	}

	requester := creatorFromContext(ctx)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin {
		if requester != res.Creator {
			return failure.PermissionDenied(res.Creator) //nolint:wrapcheck
		}

		if timezone.Now().Sub(res.CreatedAt) > constant.RetentionWindow {
			return failure.RetentionExpired("the 48-hour cancellation window for this booking has passed") //nolint:wrapcheck
		}
	}

	if err := s.store.Delete(ctx, model.PartitionTransient, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure.NotFound(model.EntityName) //nolint:wrapcheck
		}

		return err
	}

	return nil
}

// CleanupExpired removes transient events that already ended. Recurring
// entries are never touched; their lifecycle ends with the semester rollback.
func (s *reservationImpl) CleanupExpired(ctx context.Context) (removed int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Reservation.CleanupExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	removed, err = s.store.DeleteExpiredTransient(ctx)
	if err != nil {
		return 0, err
	}

	log.Info().Int("removed", removed).Msg("Cleaned up expired transient reservations")

	return removed, nil
}

func parseWindow(start, end string) (model.Window, error) {
	startAt, err := time.Parse(constant.DateFormat, start)
	if err != nil {
		return model.Window{}, failure.BadRequestFromString("start must be an RFC 3339 timestamp") //nolint:wrapcheck
	}

	endAt, err := time.Parse(constant.DateFormat, end)
	if err != nil {
		return model.Window{}, failure.BadRequestFromString("end must be an RFC 3339 timestamp") //nolint:wrapcheck
	}

	return model.NewWindow(timezone.ToAppTime(startAt), timezone.ToAppTime(endAt))
}

func creatorFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(constant.ContextKeyUserEmail).(string); ok && email != constant.Empty {
		return email
	}

	return constant.SystemCreator
}
