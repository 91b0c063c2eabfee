package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agrischeme/backend/internal/core/domain"
	"github.com/agrischeme/backend/internal/core/normalize"
	"github.com/agrischeme/backend/internal/core/ports"
)

// ImportSchemesUseCase is the worker side of bulk ingestion: extract scheme
// drafts from the stored file, normalize each, insert the new ones.
type ImportSchemesUseCase struct {
	jobs       ports.ImportJobRepository
	store      ports.SchemeStore
	extractor  ports.SchemeFileExtractor
	normalizer *normalize.Normalizer
}

func NewImportSchemesUseCase(
	jobs ports.ImportJobRepository,
	store ports.SchemeStore,
	extractor ports.SchemeFileExtractor,
	normalizer *normalize.Normalizer,
) *ImportSchemesUseCase {
	return &ImportSchemesUseCase{
		jobs:       jobs,
		store:      store,
		extractor:  extractor,
		normalizer: normalizer,
	}
}

func (uc *ImportSchemesUseCase) ProcessByID(ctx context.Context, jobID string) error {
	if err := uc.jobs.UpdateStatus(ctx, jobID, domain.ImportProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	inserted, skipped, err := uc.runImport(ctx, jobID)
	if err != nil {
		if failErr := uc.jobs.UpdateStatus(ctx, jobID, domain.ImportFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.jobs.SaveResult(ctx, jobID, inserted, skipped); err != nil {
		return fmt.Errorf("save import result: %w", err)
	}
	if err := uc.jobs.UpdateStatus(ctx, jobID, domain.ImportCompleted, ""); err != nil {
		return fmt.Errorf("set status=completed: %w", err)
	}
	return nil
}

func (uc *ImportSchemesUseCase) runImport(ctx context.Context, jobID string) (int, int, error) {
	job, err := uc.jobs.GetByID(ctx, jobID)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch import job: %w", err)
	}

	drafts, err := uc.extractor.Extract(ctx, job)
	if err != nil {
		return 0, 0, fmt.Errorf("extract schemes: %w", err)
	}
	if len(drafts) == 0 {
		return 0, 0, domain.WrapError(domain.ErrInvalidInput, "extract schemes",
			errors.New("file contained no scheme rows"))
	}

	inserted, skipped := 0, 0
	for _, draft := range drafts {
		record, err := uc.normalizer.Scheme(draft)
		if err != nil {
			slog.Warn("import_row_skipped", "job_id", jobID, "scheme", draft.Name, "error", err)
			skipped++
			continue
		}

		exists, err := uc.store.ExistsByName(ctx, record.Name)
		if err != nil {
			return inserted, skipped, fmt.Errorf("check scheme name: %w", err)
		}
		if exists {
			skipped++
			continue
		}

		if err := uc.store.Insert(ctx, record); err != nil {
			return inserted, skipped, fmt.Errorf("insert scheme %q: %w", record.Name, err)
		}
		inserted++
	}
	return inserted, skipped, nil
}
