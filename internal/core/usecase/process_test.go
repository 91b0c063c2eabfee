package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agrischeme/backend/internal/core/domain"
	"github.com/agrischeme/backend/internal/core/normalize"
)

func newProcessFixture(drafts []domain.SchemeDraft) (*ImportSchemesUseCase, *stubSchemeStore, *stubJobRepository, *stubExtractor) {
	store := &stubSchemeStore{existing: map[string]bool{}}
	jobs := newStubJobRepository()
	extractor := &stubExtractor{drafts: drafts}
	uc := NewImportSchemesUseCase(jobs, store, extractor, normalize.New(normalize.DefaultRules()))
	return uc, store, jobs, extractor
}

func seedJob(t *testing.T, jobs *stubJobRepository, id string) {
	t.Helper()
	err := jobs.Create(context.Background(), &domain.ImportJob{
		ID:          id,
		Filename:    "schemes.json",
		MimeType:    "application/json",
		StoragePath: id + "_schemes.json",
		Status:      domain.ImportUploaded,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
}

func TestProcessByIDCompletesAndCounts(t *testing.T) {
	drafts := []domain.SchemeDraft{
		{Name: "Scheme One", Category: "Subsidy"},
		{Name: "Scheme Two", Category: "Insurance"},
		{Name: "Already There", Category: "Subsidy"},
		{Category: "Subsidy"}, // nameless, normalizer rejects it
	}
	uc, store, jobs, _ := newProcessFixture(drafts)
	store.existing["Already There"] = true
	seedJob(t, jobs, "job-1")

	if err := uc.ProcessByID(context.Background(), "job-1"); err != nil {
		t.Fatalf("ProcessByID: %v", err)
	}

	wantStatuses := []domain.ImportStatus{domain.ImportProcessing, domain.ImportCompleted}
	if len(jobs.statuses) != 2 || jobs.statuses[0] != wantStatuses[0] || jobs.statuses[1] != wantStatuses[1] {
		t.Fatalf("status transitions = %v, want %v", jobs.statuses, wantStatuses)
	}
	if jobs.inserted != 2 || jobs.skipped != 2 {
		t.Fatalf("saved result = %d/%d, want inserted 2 skipped 2", jobs.inserted, jobs.skipped)
	}
	if len(store.inserted) != 2 {
		t.Fatalf("store inserts = %d, want 2", len(store.inserted))
	}
}

func TestProcessByIDEmptyFileFails(t *testing.T) {
	uc, _, jobs, _ := newProcessFixture(nil)
	seedJob(t, jobs, "job-2")

	err := uc.ProcessByID(context.Background(), "job-2")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("empty file error = %v, want ErrInvalidInput", err)
	}
	if got := jobs.jobs["job-2"].Status; got != domain.ImportFailed {
		t.Fatalf("job status = %q, want %q", got, domain.ImportFailed)
	}
	if jobs.lastErr == "" {
		t.Fatal("failed job carries no error message")
	}
}

func TestProcessByIDExtractFailureMarksFailed(t *testing.T) {
	uc, _, jobs, extractor := newProcessFixture(nil)
	extractor.err = errors.New("corrupt workbook")
	seedJob(t, jobs, "job-3")

	err := uc.ProcessByID(context.Background(), "job-3")
	if err == nil || !errors.Is(err, extractor.err) {
		t.Fatalf("err = %v, want wrapped extractor failure", err)
	}
	if got := jobs.jobs["job-3"].Status; got != domain.ImportFailed {
		t.Fatalf("job status = %q, want %q", got, domain.ImportFailed)
	}
}

func TestProcessByIDUnknownJobMarksFailed(t *testing.T) {
	uc, _, jobs, _ := newProcessFixture([]domain.SchemeDraft{{Name: "X", Category: "Y"}})

	err := uc.ProcessByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrImportNotFound) {
		t.Fatalf("unknown job error = %v, want ErrImportNotFound", err)
	}
	// The failure transition is still recorded even though the job row is
	// absent from the stub's map.
	if len(jobs.statuses) != 2 || jobs.statuses[1] != domain.ImportFailed {
		t.Fatalf("status transitions = %v, want processing then failed", jobs.statuses)
	}
}

func TestProcessByIDInsertFailureStops(t *testing.T) {
	uc, store, jobs, _ := newProcessFixture([]domain.SchemeDraft{
		{Name: "First", Category: "Subsidy"},
		{Name: "Second", Category: "Subsidy"},
	})
	store.insertErr = errors.New("deadlock detected")
	seedJob(t, jobs, "job-4")

	err := uc.ProcessByID(context.Background(), "job-4")
	if err == nil || !errors.Is(err, store.insertErr) {
		t.Fatalf("err = %v, want wrapped insert failure", err)
	}
	if got := jobs.jobs["job-4"].Status; got != domain.ImportFailed {
		t.Fatalf("job status = %q, want %q", got, domain.ImportFailed)
	}
}
