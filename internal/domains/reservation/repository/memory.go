package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"aula/internal/domains/reservation/model"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/timezone"
)

// memoryStore keeps reservations in process memory. It backs local runs and
// tests, and mirrors the calendar store's contract including recurrence
// expansion in ListInRange.
type memoryStore struct {
	mu    sync.RWMutex
	items map[model.Partition]map[string]model.Reservation
}

func NewMemoryStore() Store {
	return &memoryStore{
		items: map[model.Partition]map[string]model.Reservation{
			model.PartitionRecurring: {},
			model.PartitionTransient: {},
		},
	}
}

func (s *memoryStore) Create(_ context.Context, res model.Reservation) (string, error) {
	if !res.Partition.Valid() {
		return constant.Empty, failure.InvariantViolation("unknown reservation partition") //nolint:wrapcheck
	}

	res.ID = uuid.New().String()
	if res.CreatedAt.IsZero() {
		res.CreatedAt = timezone.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[res.Partition][res.ID] = res

	return res.ID, nil
}

func (s *memoryStore) Get(_ context.Context, partition model.Partition, id string) (model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.items[partition][id]
	if !ok {
		return model.Reservation{}, ErrNotFound
	}

	return res, nil
}

func (s *memoryStore) Delete(_ context.Context, partition model.Partition, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[partition][id]; !ok {
		return ErrNotFound
	}

	delete(s.items[partition], id)

	return nil
}

func (s *memoryStore) ListInRange(_ context.Context, partition model.Partition, window model.Window) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Reservation

	for _, res := range s.items[partition] {
		if res.Recurrence == constant.Empty {
			if res.Window.Overlaps(window) {
				out = append(out, res)
			}

			continue
		}

		occurrences, err := expandOccurrences(res, window)
		if err != nil {
			return nil, failure.StoreUnavailable(err) //nolint:wrapcheck
		}

		out = append(out, occurrences...)
	}

	return out, nil
}

func (s *memoryStore) DeleteByAudienceTag(_ context.Context, tag string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0

	for id, res := range s.items[model.PartitionRecurring] {
		if res.AudienceTag == tag {
			delete(s.items[model.PartitionRecurring], id)
			removed++
		}
	}

	return removed, nil
}

func (s *memoryStore) DeleteExpiredTransient(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := timezone.Now()
	removed := 0

	for id, res := range s.items[model.PartitionTransient] {
		if res.Window.End.Before(now) {
			delete(s.items[model.PartitionTransient], id)
			removed++
		}
	}

	return removed, nil
}

// expandOccurrences materializes the occurrences of a recurring reservation
// that overlap the query window, each carrying the series' duration.
func expandOccurrences(res model.Reservation, window model.Window) ([]model.Reservation, error) {
	rule, err := rrule.StrToRRule(strings.TrimPrefix(res.Recurrence, "RRULE:"))
	if err != nil {
		return nil, err
	}

	rule.DTStart(res.Window.Start)

	duration := res.Window.Duration()

	// Widen the lower bound so an occurrence already in progress at
	// window.Start is still reported.
	starts := rule.Between(window.Start.Add(-duration), window.End, true)

	var out []model.Reservation

	for _, start := range starts {
		occurrence := model.Window{Start: start, End: start.Add(duration)}
		if !occurrence.Overlaps(window) {
			continue
		}

		expanded := res
		expanded.Window = occurrence
		out = append(out, expanded)
	}

	return out, nil
}
