package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"aula/config"
	otelMock "aula/infras/otel/mocks"
	s3Mock "aula/infras/s3/mocks"
	reservationModel "aula/internal/domains/reservation/model"
	reservationRepo "aula/internal/domains/reservation/repository"
	synclogModel "aula/internal/domains/synclog/model"
	synclogMock "aula/internal/domains/synclog/repository/mocks"
	timetableModel "aula/internal/domains/timetable/model"
	"aula/internal/domains/timetable/model/dto"
	oracleMock "aula/internal/domains/timetable/oracle/mocks"
	"aula/internal/domains/timetable/service"
	cacheMock "aula/shared/cache/mocks"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/timezone"
)

type timetableFixture struct {
	extractor *oracleMock.MockExtractor
	store     reservationRepo.Store
	batches   *synclogMock.MockBatchRepository
	cache     *cacheMock.MockRedisCache
	archive   *s3Mock.MockS3
	svc       service.Timetable
}

func newFixture(t *testing.T) *timetableFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &timetableFixture{
		extractor: oracleMock.NewMockExtractor(ctrl),
		store:     reservationRepo.NewMemoryStore(),
		batches:   synclogMock.NewMockBatchRepository(ctrl),
		cache:     cacheMock.NewMockRedisCache(ctrl),
		archive:   s3Mock.NewMockS3(ctrl),
	}

	f.svc = service.NewTimetable(
		f.extractor, f.store, f.batches, f.cache, f.archive, config.Get(), otelMock.NewOtel())

	return f
}

func TestPreviewExtractsAndNormalizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	document := []byte("%PDF-1.7 fake timetable")

	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	f.extractor.EXPECT().
		ExtractTimetable(gomock.Any(), document, constant.ContentTypePDF).
		Return(timetableModel.Timetable{
			Metadata: timetableModel.Metadata{Semester: "4th Semester", Branch: "CSE"},
			Events: []timetableModel.Event{
				{Summary: "Algorithms", Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
				{Summary: "Physics", Day: "Wednesday", StartTime: "10:00", EndTime: "11:00", Description: "Lab 3"},
			},
		}, nil)

	f.archive.EXPECT().
		UploadBytes(gomock.Any(), "timetables", gomock.Any(), constant.ContentTypePDF, document).
		Return("s3://archive/timetables/abc_tt.pdf", nil)

	f.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	out, err := f.svc.Preview(ctx, dto.PreviewRequest{FileName: "tt.pdf", Document: document})
	require.NoError(t, err)
	assert.Equal(t, "Sem 4", out.AudienceTag)
	assert.Equal(t, "CSE", out.Branch)
	assert.Equal(t, "s3://archive/timetables/abc_tt.pdf", out.ArchiveURL)
	require.Len(t, out.Events, 2)

	for _, event := range out.Events {
		assert.Equal(t, "Semester: Sem 4 | Branch: CSE", event.Description)
	}
}

func TestPreviewServedFromCache(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			cached, ok := value.(*dto.PreviewResponse)
			require.True(t, ok)
			cached.AudienceTag = "Sem 6"

			return nil
		})

	out, err := f.svc.Preview(context.Background(), dto.PreviewRequest{Document: []byte("same bytes")})
	require.NoError(t, err)
	assert.Equal(t, "Sem 6", out.AudienceTag)
}

func TestPreviewRejectsOversizedDocument(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Preview(context.Background(), dto.PreviewRequest{
		Document: make([]byte, constant.MaxDocumentBytes+1),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = f.svc.Preview(context.Background(), dto.PreviewRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestSyncAnchorsEventsAndRecordsBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var recorded synclogModel.Batch

	f.batches.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch synclogModel.Batch) error {
			recorded = batch

			return nil
		})

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)

	out, err := f.svc.Sync(ctx, dto.SyncRequest{
		AudienceTag:   "Sem 4",
		Branch:        "CSE",
		SemesterStart: "2026-01-05",
		SemesterEnd:   "2026-04-10",
		SourceFile:    "tt.pdf",
		Events: []dto.SyncEvent{
			{Summary: "Algorithms", Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
			{Summary: "Physics", Day: "Wednesday", StartTime: "10:00", EndTime: "11:00"},
			{Summary: "Broken", Day: "Funday", StartTime: "09:00", EndTime: "10:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Created)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Results, 3)
	assert.Equal(t, dto.EventStatusCreated, out.Results[0].Status)
	assert.NotEmpty(t, out.Results[0].EventID)
	assert.Equal(t, dto.EventStatusFailed, out.Results[2].Status)

	assert.Equal(t, "Sem 4", recorded.AudienceTag)
	assert.Equal(t, 2, recorded.EventCount)
	assert.Equal(t, synclogModel.StatusActive, recorded.Status)
	assert.NotEmpty(t, recorded.ID)

	// Wednesday 2026-01-07 is the anchored first occurrence of Physics.
	wednesday := time.Date(2026, 1, 7, 9, 0, 0, 0, timezone.GetLocation())
	window, err := reservationModel.NewWindow(wednesday, wednesday.Add(4*time.Hour))
	require.NoError(t, err)

	listed, listErr := f.store.ListInRange(ctx, reservationModel.PartitionRecurring, window)
	require.NoError(t, listErr)
	require.Len(t, listed, 1)
	assert.Equal(t, "Physics", listed[0].Summary)
	assert.Equal(t, "RRULE:FREQ=WEEKLY;BYDAY=WE;UNTIL=20260410T235959Z", listed[0].Recurrence)
}

func TestSyncRejectsBadDates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Sync(context.Background(), dto.SyncRequest{
		AudienceTag:   "Sem 4",
		SemesterStart: "05-01-2026",
		SemesterEnd:   "2026-04-10",
		Events:        []dto.SyncEvent{{Summary: "X", Day: "Monday", StartTime: "09:00", EndTime: "10:00"}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = f.svc.Sync(context.Background(), dto.SyncRequest{
		AudienceTag:   "Sem 4",
		SemesterStart: "2026-04-10",
		SemesterEnd:   "2026-01-05",
		Events:        []dto.SyncEvent{{Summary: "X", Day: "Monday", StartTime: "09:00", EndTime: "10:00"}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestRollbackRemovesCohortOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, timezone.GetLocation())

	for i, tag := range []string{"Sem 4", "Sem 4", "Sem 6"} {
		_, err := f.store.Create(ctx, reservationModel.Reservation{
			Summary:     "Lecture",
			Window:      reservationModel.Window{Start: start.Add(time.Duration(i) * 2 * time.Hour), End: start.Add(time.Duration(i)*2*time.Hour + time.Hour)},
			Partition:   reservationModel.PartitionRecurring,
			AudienceTag: tag,
		})
		require.NoError(t, err)
	}

	f.batches.EXPECT().MarkRolledBack(gomock.Any(), "Sem 4").Return(nil).Times(2)
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	out, err := f.svc.Rollback(ctx, "Sem 4")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Removed)

	// Second rollback of the same tag is a harmless no-op.
	out, err = f.svc.Rollback(ctx, "Sem 4")
	require.NoError(t, err)
	assert.Zero(t, out.Removed)

	_, err = f.svc.Rollback(ctx, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestHistory(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	f.batches.EXPECT().
		List(gomock.Any()).
		Return([]synclogModel.Batch{
			{ID: "b1", AudienceTag: "Sem 4", EventCount: 12, Status: synclogModel.StatusActive, CreatedBy: "admin@campus.edu", CreatedAt: timezone.Now()},
		}, nil)

	f.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	out, err := f.svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Sem 4", out[0].AudienceTag)
	assert.Equal(t, 12, out[0].EventCount)
}
