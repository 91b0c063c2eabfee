package ports

import (
	"context"
	"io"

	"github.com/agrischeme/backend/internal/core/domain"
)

// SchemeStore is the persistence contract for scheme records. Eligibility
// queries return records sorted by benefit amount descending; that order is
// the fallback when ranking degrades.
type SchemeStore interface {
	QueryEligible(ctx context.Context, profile domain.FarmerProfile, offset, limit int) ([]domain.SchemeRecord, error)
	CountEligible(ctx context.Context, profile domain.FarmerProfile) (int, error)
	List(ctx context.Context, category string, offset, limit int) ([]domain.SchemeRecord, error)
	Count(ctx context.Context, category string) (int, error)
	Insert(ctx context.Context, record domain.SchemeRecord) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// ImportJobRepository persists bulk-import lifecycle state.
type ImportJobRepository interface {
	Create(ctx context.Context, job *domain.ImportJob) error
	GetByID(ctx context.Context, id string) (*domain.ImportJob, error)
	UpdateStatus(ctx context.Context, id string, status domain.ImportStatus, errMessage string) error
	SaveResult(ctx context.Context, id string, inserted, skipped int) error
}

// ObjectStorage stores uploaded scheme files until the worker consumes them.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue carries import job IDs from the API to the worker.
type MessageQueue interface {
	PublishImportSubmitted(ctx context.Context, jobID string) error
	SubscribeImportSubmitted(ctx context.Context, handler func(context.Context, string) error) error
}

// SchemeFileExtractor parses an uploaded file into raw scheme drafts.
type SchemeFileExtractor interface {
	Extract(ctx context.Context, job *domain.ImportJob) ([]domain.SchemeDraft, error)
}

// AdvisoryGenerator answers scheme questions through the external AI model.
type AdvisoryGenerator interface {
	Answer(ctx context.Context, question domain.AdvisoryQuestion) (domain.AdvisoryAnswer, error)
}

// WeatherProvider fetches current conditions and the short-range forecast.
type WeatherProvider interface {
	Forecast(ctx context.Context, lat, lon float64) (*domain.WeatherReport, error)
}

// MarketDataProvider produces mandi price reports. Implementations are pure
// in-memory simulators, hence no context.
type MarketDataProvider interface {
	Prices(state, crop string) domain.MarketReport
}
