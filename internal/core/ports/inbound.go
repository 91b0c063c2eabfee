package ports

import (
	"context"
	"io"

	"github.com/agrischeme/backend/internal/core/domain"
)

// EligibilityService is the inbound contract for scheme matching: filter,
// rank, paginate. The returned int is the total eligible count before
// pagination.
type EligibilityService interface {
	FindEligible(ctx context.Context, profile domain.FarmerProfile, page, limit int) ([]domain.SchemeRecord, int, error)
	ListSchemes(ctx context.Context, category string, page, limit int) ([]domain.SchemeRecord, int, error)
}

// SchemeAdmin is the inbound contract for single-scheme inserts.
type SchemeAdmin interface {
	AddScheme(ctx context.Context, draft domain.SchemeDraft) (domain.SchemeRecord, error)
}

// ImportSubmitter accepts bulk scheme files for asynchronous ingestion.
type ImportSubmitter interface {
	SubmitImport(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.ImportJob, error)
}

// ImportProcessor is the worker-side contract for consuming submitted jobs.
type ImportProcessor interface {
	ProcessByID(ctx context.Context, jobID string) error
}

// Advisor answers a farmer's question about a specific scheme.
type Advisor interface {
	Ask(ctx context.Context, question domain.AdvisoryQuestion) (domain.AdvisoryAnswer, error)
}
