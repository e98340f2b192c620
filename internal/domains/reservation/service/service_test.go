package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMock "aula/infras/otel/mocks"
	"aula/internal/domains/reservation/model"
	"aula/internal/domains/reservation/model/dto"
	"aula/internal/domains/reservation/repository"
	repoMock "aula/internal/domains/reservation/repository/mocks"
	"aula/internal/domains/reservation/service"
	scheduleService "aula/internal/domains/schedule/service"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/timezone"
)

func asUser(email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleOrganiser)
}

func asAdmin(email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func newService(store repository.Store) service.Reservation {
	ot := otelMock.NewOtel()

	return service.NewReservation(store, scheduleService.NewSchedule(store, ot), ot)
}

func futureWindow(t *testing.T, daysAhead, hour int) (string, string) {
	t.Helper()

	day := timezone.Now().AddDate(0, 0, daysAhead)
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, timezone.GetLocation())

	return start.Format(constant.DateFormat), start.Add(time.Hour).Format(constant.DateFormat)
}

func TestBookCreatesWhenFree(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newService(store)

	start, end := futureWindow(t, 2, 10)

	out, err := svc.Book(asUser("alice@campus.edu"), dto.CreateReservationRequest{
		Summary:        "Chess finals",
		Start:          start,
		End:            end,
		TargetAudience: []string{"All"},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.StatusBooked, out.Status)
	require.NotNil(t, out.Reservation)
	assert.Equal(t, "alice@campus.edu", out.Reservation.Creator)
	assert.Equal(t, string(model.PartitionTransient), out.Reservation.Partition)
	assert.NotEmpty(t, out.Reservation.ID)
}

func TestBookRejectsConflictWithSuggestions(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newService(store)

	start, end := futureWindow(t, 2, 10)

	first, err := svc.Book(asUser("alice@campus.edu"), dto.CreateReservationRequest{
		Summary: "Chess finals",
		Start:   start,
		End:     end,
	})
	require.NoError(t, err)
	require.Equal(t, dto.StatusBooked, first.Status)

	second, err := svc.Book(asUser("bob@campus.edu"), dto.CreateReservationRequest{
		Summary: "Debate society",
		Start:   start,
		End:     end,
	})
	require.NoError(t, err)
	assert.Equal(t, dto.StatusConflict, second.Status)
	assert.Nil(t, second.Reservation)
	require.NotEmpty(t, second.Conflicts)
	assert.Contains(t, second.Conflicts[0].Label, "Chess finals")
	assert.NotEmpty(t, second.Suggestions)
	assert.LessOrEqual(t, len(second.Suggestions), constant.MaxSuggestions)
}

func TestBookInvalidWindow(t *testing.T) {
	svc := newService(repository.NewMemoryStore())

	start, end := futureWindow(t, 2, 10)

	_, err := svc.Book(asUser("alice@campus.edu"), dto.CreateReservationRequest{
		Summary: "Backwards",
		Start:   end,
		End:     start,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = svc.Book(asUser("alice@campus.edu"), dto.CreateReservationRequest{
		Summary: "Garbled",
		Start:   "tomorrow at ten",
		End:     end,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookStoreFailureIsSurfaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := repoMock.NewMockStore(ctrl)

	store.EXPECT().
		ListInRange(gomock.Any(), model.PartitionTransient, gomock.Any()).
		Return(nil, failure.StoreUnavailable(assert.AnError))

	ot := otelMock.NewOtel()
	svc := service.NewReservation(store, scheduleService.NewSchedule(store, ot), ot)

	start, end := futureWindow(t, 2, 10)

	_, err := svc.Book(asUser("alice@campus.edu"), dto.CreateReservationRequest{
		Summary: "Anything",
		Start:   start,
		End:     end,
	})
	require.Error(t, err)
	assert.True(t, failure.IsStoreUnavailable(err))
}

func TestGetNotFound(t *testing.T) {
	svc := newService(repository.NewMemoryStore())

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCancelByCreator(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newService(store)

	start, end := futureWindow(t, 2, 10)

	out, err := svc.Book(asUser("alice@campus.edu"), dto.CreateReservationRequest{
		Summary: "Chess finals",
		Start:   start,
		End:     end,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(asUser("alice@campus.edu"), out.Reservation.ID))

	_, err = svc.Get(context.Background(), out.Reservation.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCancelByStrangerDenied(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newService(store)

	start, end := futureWindow(t, 2, 10)

	out, err := svc.Book(asUser("alice@campus.edu"), dto.CreateReservationRequest{
		Summary: "Chess finals",
		Start:   start,
		End:     end,
	})
	require.NoError(t, err)

	err = svc.Cancel(asUser("mallory@campus.edu"), out.Reservation.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	assert.Contains(t, err.Error(), "alice@campus.edu")
}

func TestCancelAfterRetentionWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := repoMock.NewMockStore(ctrl)

	stale := model.Reservation{
		ID:        "abc",
		Summary:   "Old booking",
		Partition: model.PartitionTransient,
		Creator:   "alice@campus.edu",
		CreatedAt: timezone.Now().Add(-constant.RetentionWindow - time.Hour),
	}

	store.EXPECT().
		Get(gomock.Any(), model.PartitionTransient, "abc").
		Return(stale, nil).
		Times(2)

	// An admin bypasses the window.
	store.EXPECT().
		Delete(gomock.Any(), model.PartitionTransient, "abc").
		Return(nil)

	ot := otelMock.NewOtel()
	svc := service.NewReservation(store, scheduleService.NewSchedule(store, ot), ot)

	err := svc.Cancel(asUser("alice@campus.edu"), "abc")
	require.Error(t, err)
	assert.Equal(t, http.StatusGone, failure.GetCode(err))

	assert.NoError(t, svc.Cancel(asAdmin("root@campus.edu"), "abc"))
}

func TestCleanupExpired(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	_, err := store.Create(ctx, model.Reservation{
		Summary:   "finished",
		Window:    model.Window{Start: timezone.Now().Add(-3 * time.Hour), End: timezone.Now().Add(-2 * time.Hour)},
		Partition: model.PartitionTransient,
	})
	require.NoError(t, err)

	svc := newService(store)

	removed, err := svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}
