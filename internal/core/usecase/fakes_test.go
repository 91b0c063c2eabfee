package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/agrischeme/backend/internal/core/domain"
)

// stubSchemeStore answers from canned data and records inserts.
type stubSchemeStore struct {
	eligible []domain.SchemeRecord
	listed   []domain.SchemeRecord
	existing map[string]bool
	inserted []domain.SchemeRecord

	queryErr  error
	countErr  error
	existsErr error
	insertErr error

	lastOffset int
	lastLimit  int
}

func (s *stubSchemeStore) QueryEligible(_ context.Context, _ domain.FarmerProfile, offset, limit int) ([]domain.SchemeRecord, error) {
	s.lastOffset, s.lastLimit = offset, limit
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return clipSchemes(s.eligible, offset, limit), nil
}

func (s *stubSchemeStore) CountEligible(context.Context, domain.FarmerProfile) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return len(s.eligible), nil
}

func (s *stubSchemeStore) List(_ context.Context, _ string, offset, limit int) ([]domain.SchemeRecord, error) {
	s.lastOffset, s.lastLimit = offset, limit
	return clipSchemes(s.listed, offset, limit), nil
}

func (s *stubSchemeStore) Count(context.Context, string) (int, error) {
	return len(s.listed), nil
}

func (s *stubSchemeStore) Insert(_ context.Context, record domain.SchemeRecord) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, record)
	return nil
}

func (s *stubSchemeStore) ExistsByName(_ context.Context, name string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.existing[name], nil
}

func clipSchemes(in []domain.SchemeRecord, offset, limit int) []domain.SchemeRecord {
	if offset >= len(in) {
		return nil
	}
	end := offset + limit
	if end > len(in) {
		end = len(in)
	}
	out := make([]domain.SchemeRecord, end-offset)
	copy(out, in[offset:end])
	return out
}

// stubJobRepository keeps jobs in memory and records lifecycle transitions.
type stubJobRepository struct {
	jobs     map[string]*domain.ImportJob
	statuses []domain.ImportStatus
	lastErr  string
	inserted int
	skipped  int

	createErr error
	statusErr error
}

func newStubJobRepository() *stubJobRepository {
	return &stubJobRepository{jobs: map[string]*domain.ImportJob{}}
}

func (r *stubJobRepository) Create(_ context.Context, job *domain.ImportJob) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *stubJobRepository) GetByID(_ context.Context, id string) (*domain.ImportJob, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrImportNotFound, "get import job", errors.New(id))
	}
	copied := *job
	return &copied, nil
}

func (r *stubJobRepository) UpdateStatus(_ context.Context, id string, status domain.ImportStatus, errMessage string) error {
	if r.statusErr != nil {
		return r.statusErr
	}
	r.statuses = append(r.statuses, status)
	r.lastErr = errMessage
	if job, ok := r.jobs[id]; ok {
		job.Status = status
		job.Error = errMessage
	}
	return nil
}

func (r *stubJobRepository) SaveResult(_ context.Context, id string, inserted, skipped int) error {
	r.inserted, r.skipped = inserted, skipped
	if job, ok := r.jobs[id]; ok {
		job.Inserted = inserted
		job.Skipped = skipped
	}
	return nil
}

// stubObjectStorage keeps uploads in a map keyed by storage key.
type stubObjectStorage struct {
	files   map[string][]byte
	saveErr error
}

func newStubObjectStorage() *stubObjectStorage {
	return &stubObjectStorage{files: map[string][]byte{}}
}

func (s *stubObjectStorage) Save(_ context.Context, key string, data io.Reader) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.files[key] = raw
	return nil
}

func (s *stubObjectStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := s.files[key]
	if !ok {
		return nil, domain.WrapError(domain.ErrImportNotFound, "open upload", errors.New(key))
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

// stubQueue records published job IDs.
type stubQueue struct {
	published  []string
	publishErr error
}

func (q *stubQueue) PublishImportSubmitted(_ context.Context, jobID string) error {
	if q.publishErr != nil {
		return q.publishErr
	}
	q.published = append(q.published, jobID)
	return nil
}

func (q *stubQueue) SubscribeImportSubmitted(context.Context, func(context.Context, string) error) error {
	return nil
}

// stubExtractor returns canned drafts.
type stubExtractor struct {
	drafts []domain.SchemeDraft
	err    error
}

func (e *stubExtractor) Extract(context.Context, *domain.ImportJob) ([]domain.SchemeDraft, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.drafts, nil
}
