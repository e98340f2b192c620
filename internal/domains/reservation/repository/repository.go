package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"aula/config"
	calendarInfra "aula/infras/calendar"
	"aula/infras/otel"
	"aula/internal/domains/reservation/model"
)

//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/store_mock.go -package=repository_mocks

var (
	// ErrNotFound is returned when a reservation id does not exist in its
	// partition. Callers translate it to the appropriate failure.
	ErrNotFound = errors.New("reservation not found")
)

const (
	storeDriverCalendar = "calendar"
	storeDriverMemory   = "memory"
)

// Store is the persistence port for reservations. Implementations back it
// with Google Calendar in production and an in-memory map in tests and local
// runs. Any backend outage must surface as an error; an unreachable store
// never reads as an empty schedule.
type Store interface {
	// Create persists a reservation and returns its assigned id.
	Create(ctx context.Context, res model.Reservation) (string, error)
	// Get fetches a single reservation by partition and id.
	Get(ctx context.Context, partition model.Partition, id string) (model.Reservation, error)
	// Delete removes a single reservation. Deleting an unknown id returns
	// ErrNotFound.
	Delete(ctx context.Context, partition model.Partition, id string) error
	// ListInRange returns all reservations of a partition overlapping the
	// half-open window, with recurring entries expanded to their concrete
	// occurrences inside it.
	ListInRange(ctx context.Context, partition model.Partition, window model.Window) ([]model.Reservation, error)
	// DeleteByAudienceTag bulk-removes every recurring entry tagged with the
	// given audience and reports how many were removed. Removing a tag with
	// no entries is a no-op, not an error.
	DeleteByAudienceTag(ctx context.Context, tag string) (int, error)
	// DeleteExpiredTransient removes transient reservations that ended in
	// the past and reports how many were removed.
	DeleteExpiredTransient(ctx context.Context) (int, error)
}

// New selects the store backend from configuration.
func New(cfg *config.Config, ot otel.Otel) Store {
	switch cfg.External.Calendar.Driver {
	case storeDriverCalendar:
		svc := calendarInfra.NewService(cfg)

		return NewCalendarStore(cfg, svc, ot)
	case storeDriverMemory:
		return NewMemoryStore()
	default:
		log.Fatal().Str("driver", cfg.External.Calendar.Driver).Msg("Unknown reservation store driver")

		return nil
	}
}
