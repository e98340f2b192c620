package repository

import (
	"context"

	"github.com/pkg/errors"

	"aula/infras/otel"
	"aula/infras/postgres"
	"aula/internal/domains/synclog/model"
	"aula/shared/constant"
	"aula/shared/logger"
)

//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/repository_mock.go -package=repository_mocks

var (
	queryInsertBatch = `
		INSERT INTO sync_batches (
			id,
			audience_tag,
			branch,
			source_file,
			archive_url,
			event_count,
			status,
			created_by,
			created_at
		) VALUES (
			:id,
			:audience_tag,
			:branch,
			:source_file,
			:archive_url,
			:event_count,
			:status,
			:created_by,
			:created_at
		)`

	queryListBatches = `
		SELECT
			id,
			audience_tag,
			branch,
			source_file,
			archive_url,
			event_count,
			status,
			created_by,
			created_at,
			rolled_back_at
		FROM sync_batches
		ORDER BY created_at DESC`

	queryMarkRolledBack = `
		UPDATE sync_batches
		SET status = $1, rolled_back_at = NOW()
		WHERE audience_tag = $2 AND status = $3`
)

// BatchRepository records timetable sync batches so rollbacks can be audited
// long after the calendar entries are gone.
type BatchRepository interface {
	Insert(ctx context.Context, batch model.Batch) error
	List(ctx context.Context) ([]model.Batch, error)
	MarkRolledBack(ctx context.Context, tag string) error
}

type batchRepositoryPostgres struct {
	db   *postgres.Connection
	otel otel.Otel
}

func NewBatchRepository(db *postgres.Connection, ot otel.Otel) BatchRepository {
	return &batchRepositoryPostgres{
		db:   db,
		otel: ot,
	}
}

func (r *batchRepositoryPostgres) Insert(ctx context.Context, batch model.Batch) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "BatchRepository.Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = r.db.DB.NamedExecContext(ctx, queryInsertBatch, batch); err != nil {
		logger.ErrorWithStack(err)

		return errors.Wrap(err, "failed to insert sync batch")
	}

	return nil
}

func (r *batchRepositoryPostgres) List(ctx context.Context) (batches []model.Batch, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "BatchRepository.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.db.DB.SelectContext(ctx, &batches, queryListBatches); err != nil {
		logger.ErrorWithStack(err)

		return nil, errors.Wrap(err, "failed to list sync batches")
	}

	return batches, nil
}

// MarkRolledBack flips every active batch of the tag. Repeating a rollback is
// a no-op here as well.
func (r *batchRepositoryPostgres) MarkRolledBack(ctx context.Context, tag string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "BatchRepository.MarkRolledBack")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = r.db.DB.ExecContext(ctx, queryMarkRolledBack, model.StatusRolledBack, tag, model.StatusActive); err != nil {
		logger.ErrorWithStack(err)

		return errors.Wrap(err, "failed to mark sync batches rolled back")
	}

	return nil
}
