package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aula/internal/domains/reservation/model"
	"aula/internal/domains/reservation/repository"
	"aula/shared/timezone"
)

func mustWindow(t *testing.T, start time.Time, duration time.Duration) model.Window {
	t.Helper()

	w, err := model.NewWindow(start, start.Add(duration))
	require.NoError(t, err)

	return w
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, timezone.GetLocation())

	id, err := store.Create(ctx, model.Reservation{
		Summary:     "Robotics club meet",
		Window:      mustWindow(t, start, time.Hour),
		Partition:   model.PartitionTransient,
		AudienceTag: "All",
		Creator:     "club@campus.edu",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.Get(ctx, model.PartitionTransient, id)
	require.NoError(t, err)
	assert.Equal(t, "Robotics club meet", got.Summary)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = store.Get(ctx, model.PartitionTransient, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Delete(ctx, model.PartitionTransient, id))
	assert.ErrorIs(t, store.Delete(ctx, model.PartitionTransient, id), repository.ErrNotFound)
}

func TestMemoryStoreRejectsUnknownPartition(t *testing.T) {
	store := repository.NewMemoryStore()

	_, err := store.Create(context.Background(), model.Reservation{
		Summary:   "bad",
		Partition: model.Partition("primary"),
	})
	assert.Error(t, err)
}

func TestMemoryStoreListInRangeExpandsRecurrence(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	// Weekly Monday lecture, first occurrence 2026-01-05 10:00.
	seriesStart := time.Date(2026, 1, 5, 10, 0, 0, 0, timezone.GetLocation())
	_, err := store.Create(ctx, model.Reservation{
		Summary:     "Algorithms",
		Window:      mustWindow(t, seriesStart, time.Hour),
		Partition:   model.PartitionRecurring,
		AudienceTag: "Sem 4",
		Recurrence:  "RRULE:FREQ=WEEKLY;BYDAY=MO;UNTIL=20260410T235959Z",
	})
	require.NoError(t, err)

	// Third week: the expanded occurrence must appear.
	queryStart := time.Date(2026, 1, 19, 9, 0, 0, 0, timezone.GetLocation())
	listed, err := store.ListInRange(ctx, model.PartitionRecurring, mustWindow(t, queryStart, 4*time.Hour))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, time.Date(2026, 1, 19, 10, 0, 0, 0, timezone.GetLocation()), listed[0].Window.Start)
	assert.Equal(t, time.Hour, listed[0].Window.Duration())

	// Tuesday of the same week: no occurrence.
	tuesday := time.Date(2026, 1, 20, 9, 0, 0, 0, timezone.GetLocation())
	listed, err = store.ListInRange(ctx, model.PartitionRecurring, mustWindow(t, tuesday, 8*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, listed)

	// Past the until date: series has ended.
	after := time.Date(2026, 4, 13, 9, 0, 0, 0, timezone.GetLocation())
	listed, err = store.ListInRange(ctx, model.PartitionRecurring, mustWindow(t, after, 8*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestMemoryStoreListInRangeHalfOpen(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, timezone.GetLocation())

	_, err := store.Create(ctx, model.Reservation{
		Summary:   "Seminar",
		Window:    mustWindow(t, start, time.Hour),
		Partition: model.PartitionTransient,
	})
	require.NoError(t, err)

	// Query starting exactly at the reservation's end must not match.
	listed, err := store.ListInRange(ctx, model.PartitionTransient, mustWindow(t, start.Add(time.Hour), time.Hour))
	require.NoError(t, err)
	assert.Empty(t, listed)

	listed, err = store.ListInRange(ctx, model.PartitionTransient, mustWindow(t, start.Add(30*time.Minute), time.Hour))
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestMemoryStoreDeleteByAudienceTag(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, timezone.GetLocation())

	for i, tag := range []string{"Sem 4", "Sem 4", "Sem 6"} {
		_, err := store.Create(ctx, model.Reservation{
			Summary:     "Lecture",
			Window:      mustWindow(t, start.Add(time.Duration(i)*2*time.Hour), time.Hour),
			Partition:   model.PartitionRecurring,
			AudienceTag: tag,
		})
		require.NoError(t, err)
	}

	removed, err := store.DeleteByAudienceTag(ctx, "Sem 4")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	// Idempotent: a second rollback removes nothing and does not fail.
	removed, err = store.DeleteByAudienceTag(ctx, "Sem 4")
	require.NoError(t, err)
	assert.Zero(t, removed)

	day := time.Date(2026, 1, 5, 0, 0, 0, 0, timezone.GetLocation())
	listed, err := store.ListInRange(ctx, model.PartitionRecurring, mustWindow(t, day, 24*time.Hour))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Sem 6", listed[0].AudienceTag)
}

func TestMemoryStoreDeleteExpiredTransient(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	now := timezone.Now()

	_, err := store.Create(ctx, model.Reservation{
		Summary:   "old event",
		Window:    mustWindow(t, now.Add(-48*time.Hour), time.Hour),
		Partition: model.PartitionTransient,
	})
	require.NoError(t, err)

	keepID, err := store.Create(ctx, model.Reservation{
		Summary:   "upcoming event",
		Window:    mustWindow(t, now.Add(24*time.Hour), time.Hour),
		Partition: model.PartitionTransient,
	})
	require.NoError(t, err)

	removed, err := store.DeleteExpiredTransient(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get(ctx, model.PartitionTransient, keepID)
	assert.NoError(t, err)
}
