package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"aula/config"
	"aula/infras/otel"
	"aula/infras/s3"
	reservationModel "aula/internal/domains/reservation/model"
	reservationRepo "aula/internal/domains/reservation/repository"
	synclogModel "aula/internal/domains/synclog/model"
	synclogRepo "aula/internal/domains/synclog/repository"
	"aula/internal/domains/timetable/model/dto"
	"aula/internal/domains/timetable/oracle"
	"aula/shared"
	"aula/shared/cache"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/timezone"
)

const (
	extractCachePrefix = "timetable:extract"
	historyCachePrefix = "timetable:history"
	archiveDirectory   = "timetables"

	defaultCacheTTLSeconds = 3600
)

// Timetable is the admin-side batch pipeline: extract a document into a
// reviewable draft, sync a confirmed draft into recurring reservations, and
// roll a cohort's entries back as one unit.
type Timetable interface {
	Preview(ctx context.Context, req dto.PreviewRequest) (dto.PreviewResponse, error)
	Sync(ctx context.Context, req dto.SyncRequest) (dto.SyncResponse, error)
	Rollback(ctx context.Context, tag string) (dto.RollbackResponse, error)
	History(ctx context.Context) ([]dto.BatchResponse, error)
}

type timetableImpl struct {
	extractor oracle.Extractor
	store     reservationRepo.Store
	batches   synclogRepo.BatchRepository
	cache     cache.RedisCache
	archive   s3.S3
	cfg       *config.Config
	otel      otel.Otel
}

func NewTimetable(
	extractor oracle.Extractor,
	store reservationRepo.Store,
	batches synclogRepo.BatchRepository,
	redisCache cache.RedisCache,
	archive s3.S3,
	cfg *config.Config,
	ot otel.Otel,
) Timetable {
	return &timetableImpl{
		extractor: extractor,
		store:     store,
		batches:   batches,
		cache:     redisCache,
		archive:   archive,
		cfg:       cfg,
		otel:      ot,
	}
}

// Preview runs the extraction oracle over an uploaded document and returns
// the normalized draft. Repeat uploads of the same bytes are served from
// cache so a reviewing admin does not burn oracle quota.
func (s *timetableImpl) Preview(ctx context.Context, req dto.PreviewRequest) (out dto.PreviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Timetable.Preview")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(req.Document) == 0 {
		return dto.PreviewResponse{}, failure.BadRequestFromString("timetable document is empty") //nolint:wrapcheck
	}

	if len(req.Document) > constant.MaxDocumentBytes {
		return dto.PreviewResponse{}, failure.BadRequestFromString("timetable document exceeds the 5 MB limit") //nolint:wrapcheck
	}

	contentType := req.ContentType
	if contentType == constant.Empty {
		contentType = constant.ContentTypePDF
	}

	cacheKey := shared.BuildCacheKey(extractCachePrefix, shared.ContentHash(req.Document))

	var cached dto.PreviewResponse
	if cacheErr := s.cache.Get(ctx, cacheKey, &cached); cacheErr == nil {
		return cached, nil
	}

	extracted, err := s.extractor.ExtractTimetable(ctx, req.Document, contentType)
	if err != nil {
		return dto.PreviewResponse{}, err
	}

	tag := reservationModel.NormalizeSemester(extracted.Metadata.Semester)
	branch := extracted.Metadata.Branch

	for i := range extracted.Events {
		extracted.Events[i].Description = reservationModel.EncodeDescription(tag, branch)
	}

	out = dto.PreviewResponse{
		AudienceTag: tag,
		Branch:      branch,
		SourceFile:  req.FileName,
		Events:      extracted.Events,
	}

	out.ArchiveURL = s.archiveDocument(ctx, req, contentType)

	if cacheErr := s.cache.Save(ctx, cacheKey, out, s.cacheTTL()); cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("Failed to cache extracted timetable")
	}

	return out, nil
}

// archiveDocument stores the raw upload for audit. Archival failure does not
// block the preview.
func (s *timetableImpl) archiveDocument(ctx context.Context, req dto.PreviewRequest, contentType string) string {
	name := req.FileName
	if name == constant.Empty {
		name = "timetable"
	}

	objectName := fmt.Sprintf("%s_%s", shared.ContentHash(req.Document)[:12], name)

	url, err := s.archive.UploadBytes(ctx, archiveDirectory, objectName, contentType, req.Document)
	if err != nil {
		log.Warn().Err(err).Str("file", name).Msg("Failed to archive timetable document")

		return constant.Empty
	}

	return url
}

// Sync anchors each confirmed event to its first occurrence on or after the
// semester start and writes it as a weekly recurring reservation ending with
// the semester. Events fail individually; one unparseable row does not void
// the batch.
func (s *timetableImpl) Sync(ctx context.Context, req dto.SyncRequest) (out dto.SyncResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Timetable.Sync")
	defer scope.End()
	defer scope.TraceIfError(err)

	semesterStart, err := timezone.Parse(constant.DayFormat, req.SemesterStart)
	if err != nil {
		return dto.SyncResponse{}, failure.BadRequestFromString("semesterStart must be a YYYY-MM-DD date") //nolint:wrapcheck
	}

	semesterEnd, err := timezone.Parse(constant.DayFormat, req.SemesterEnd)
	if err != nil {
		return dto.SyncResponse{}, failure.BadRequestFromString("semesterEnd must be a YYYY-MM-DD date") //nolint:wrapcheck
	}

	if semesterEnd.Before(semesterStart) {
		return dto.SyncResponse{}, failure.BadRequestFromString("semesterEnd must not be before semesterStart") //nolint:wrapcheck
	}

	creator := creatorFromContext(ctx)
	results := make([]dto.EventResult, 0, len(req.Events))
	created := 0

	for _, event := range req.Events {
		result := s.syncEvent(ctx, event, req, semesterStart, semesterEnd, creator)
		if result.Status == dto.EventStatusCreated {
			created++
		}

		results = append(results, result)
	}

	batch := synclogModel.Batch{
		ID:          uuid.New().String(),
		AudienceTag: req.AudienceTag,
		Branch:      req.Branch,
		SourceFile:  req.SourceFile,
		ArchiveURL:  req.ArchiveURL,
		EventCount:  created,
		Status:      synclogModel.StatusActive,
		CreatedBy:   creator,
		CreatedAt:   timezone.Now(),
	}

	if insertErr := s.batches.Insert(ctx, batch); insertErr != nil {
		log.Warn().Err(insertErr).Str("batch_id", batch.ID).Msg("Failed to record sync batch")
	}

	shared.InvalidateCaches(ctx, s.cache, historyCachePrefix)

	return dto.SyncResponse{
		BatchID:     batch.ID,
		AudienceTag: req.AudienceTag,
		Created:     created,
		Failed:      len(results) - created,
		Results:     results,
	}, nil
}

func (s *timetableImpl) syncEvent(
	ctx context.Context,
	event dto.SyncEvent,
	req dto.SyncRequest,
	semesterStart, semesterEnd time.Time,
	creator string,
) dto.EventResult {
	result := dto.EventResult{
		Summary: event.Summary,
		Day:     event.Day,
		Status:  dto.EventStatusFailed,
	}

	firstDay, err := FirstOccurrence(semesterStart, event.Day)
	if err != nil {
		result.Error = err.Error()

		return result
	}

	startClock, err := time.Parse(constant.ClockFormat, event.StartTime)
	if err != nil {
		result.Error = fmt.Sprintf("invalid start time %q", event.StartTime)

		return result
	}

	endClock, err := time.Parse(constant.ClockFormat, event.EndTime)
	if err != nil {
		result.Error = fmt.Sprintf("invalid end time %q", event.EndTime)

		return result
	}

	window, err := reservationModel.NewWindow(
		combine(firstDay, startClock),
		combine(firstDay, endClock),
	)
	if err != nil {
		result.Error = err.Error()

		return result
	}

	id, err := s.store.Create(ctx, reservationModel.Reservation{
		Summary:     event.Summary,
		Window:      window,
		Partition:   reservationModel.PartitionRecurring,
		AudienceTag: req.AudienceTag,
		Branch:      req.Branch,
		Creator:     creator,
		Recurrence:  BuildRecurrenceRule(firstDay.Weekday(), semesterEnd),
	})
	if err != nil {
		result.Error = err.Error()

		return result
	}

	result.Status = dto.EventStatusCreated
	result.EventID = id

	return result
}

// Rollback removes every recurring entry of a cohort and marks its batches.
// Transient bookings are untouched and repeating a rollback removes nothing.
func (s *timetableImpl) Rollback(ctx context.Context, tag string) (out dto.RollbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Timetable.Rollback")
	defer scope.End()
	defer scope.TraceIfError(err)

	if tag == constant.Empty {
		return dto.RollbackResponse{}, failure.BadRequestFromString("audience tag is required") //nolint:wrapcheck
	}

	removed, err := s.store.DeleteByAudienceTag(ctx, tag)
	if err != nil {
		return dto.RollbackResponse{}, err
	}

	if markErr := s.batches.MarkRolledBack(ctx, tag); markErr != nil {
		log.Warn().Err(markErr).Str("tag", tag).Msg("Failed to mark sync batches rolled back")
	}

	shared.InvalidateCaches(ctx, s.cache, historyCachePrefix)

	log.Info().Str("tag", tag).Int("removed", removed).Msg("Rolled back timetable batch")

	return dto.RollbackResponse{
		AudienceTag: tag,
		Removed:     removed,
	}, nil
}

func (s *timetableImpl) History(ctx context.Context) (out []dto.BatchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, "Timetable.History")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(historyCachePrefix, "all")

	if cacheErr := s.cache.Get(ctx, cacheKey, &out); cacheErr == nil {
		return out, nil
	}

	batches, err := s.batches.List(ctx)
	if err != nil {
		return nil, err
	}

	out = make([]dto.BatchResponse, 0, len(batches))
	for _, batch := range batches {
		out = append(out, dto.NewBatchResponse(batch))
	}

	if cacheErr := s.cache.Save(ctx, cacheKey, out, s.cacheTTL()); cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("Failed to cache sync history")
	}

	return out, nil
}

func (s *timetableImpl) cacheTTL() int {
	if s.cfg.Cache.TTL > 0 {
		return s.cfg.Cache.TTL
	}

	return defaultCacheTTLSeconds
}

func combine(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, timezone.GetLocation())
}

func creatorFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(constant.ContextKeyUserEmail).(string); ok && email != constant.Empty {
		return email
	}

	return constant.SystemCreator
}
