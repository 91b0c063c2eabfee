package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agrischeme/backend/internal/core/domain"
)

type ImportJobRepository struct {
	db *sql.DB
}

func NewImportJobRepository(db *sql.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

func (r *ImportJobRepository) Create(ctx context.Context, job *domain.ImportJob) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO import_jobs (
	id, filename, mime_type, storage_path, status, schemes_inserted, schemes_skipped, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		job.ID, job.Filename, job.MimeType, job.StoragePath, string(job.Status),
		job.Inserted, job.Skipped, job.Error, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert import job: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) GetByID(ctx context.Context, id string) (*domain.ImportJob, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, storage_path, status, schemes_inserted, schemes_skipped, error_message, created_at, updated_at
FROM import_jobs
WHERE id = $1
`, id)

	var job domain.ImportJob
	var status string
	var errMessage sql.NullString

	err := row.Scan(
		&job.ID, &job.Filename, &job.MimeType, &job.StoragePath, &status,
		&job.Inserted, &job.Skipped, &errMessage, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrImportNotFound, "get import job", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan import job: %w", err)
	}

	job.Status = domain.ImportStatus(status)
	job.Error = errMessage.String
	return &job, nil
}

func (r *ImportJobRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.ImportStatus,
	errMessage string,
) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE import_jobs
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update import job status: %w", err)
	}
	return requireRowAffected(result, id)
}

func (r *ImportJobRepository) SaveResult(ctx context.Context, id string, inserted, skipped int) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE import_jobs
SET schemes_inserted = $2, schemes_skipped = $3, updated_at = $4
WHERE id = $1
`, id, inserted, skipped, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save import result: %w", err)
	}
	return requireRowAffected(result, id)
}

func requireRowAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrImportNotFound, "update import job", fmt.Errorf("id %s", id))
	}
	return nil
}
