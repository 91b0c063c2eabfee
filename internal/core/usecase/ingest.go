package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agrischeme/backend/internal/core/domain"
	"github.com/agrischeme/backend/internal/core/normalize"
	"github.com/agrischeme/backend/internal/core/ports"
)

// SchemeIngestUseCase handles both ingestion entry points: direct admin
// inserts and bulk file uploads handed off to the worker through the queue.
type SchemeIngestUseCase struct {
	store      ports.SchemeStore
	jobs       ports.ImportJobRepository
	storage    ports.ObjectStorage
	queue      ports.MessageQueue
	normalizer *normalize.Normalizer
}

func NewSchemeIngestUseCase(
	store ports.SchemeStore,
	jobs ports.ImportJobRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	normalizer *normalize.Normalizer,
) *SchemeIngestUseCase {
	return &SchemeIngestUseCase{
		store:      store,
		jobs:       jobs,
		storage:    storage,
		queue:      queue,
		normalizer: normalizer,
	}
}

// AddScheme normalizes and inserts a single scheme. Scheme names are the
// deduplication key; inserting an existing name is a client error.
func (uc *SchemeIngestUseCase) AddScheme(
	ctx context.Context,
	draft domain.SchemeDraft,
) (domain.SchemeRecord, error) {
	record, err := uc.normalizer.Scheme(draft)
	if err != nil {
		return domain.SchemeRecord{}, err
	}

	exists, err := uc.store.ExistsByName(ctx, record.Name)
	if err != nil {
		return domain.SchemeRecord{}, fmt.Errorf("check scheme name: %w", err)
	}
	if exists {
		return domain.SchemeRecord{}, domain.WrapError(
			domain.ErrDuplicateName, "add scheme", fmt.Errorf("%q", record.Name))
	}

	if err := uc.store.Insert(ctx, record); err != nil {
		return domain.SchemeRecord{}, fmt.Errorf("insert scheme: %w", err)
	}
	return record, nil
}

// SubmitImport stores the uploaded file, records the job and publishes its
// ID for the worker.
func (uc *SchemeIngestUseCase) SubmitImport(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.ImportJob, error) {
	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save upload to object storage: %w", err)
	}

	job := &domain.ImportJob{
		ID:          id,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		Status:      domain.ImportUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create import job: %w", err)
	}

	if err := uc.queue.PublishImportSubmitted(ctx, job.ID); err != nil {
		return nil, fmt.Errorf("publish import event: %w", err)
	}

	return job, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == ".." {
		return "schemes.bin"
	}
	return base
}
