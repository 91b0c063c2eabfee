package domain

import "time"

type ImportStatus string

const (
	ImportUploaded   ImportStatus = "uploaded"
	ImportProcessing ImportStatus = "processing"
	ImportCompleted  ImportStatus = "completed"
	ImportFailed     ImportStatus = "failed"
)

// ImportJob tracks one bulk scheme upload (JSON, XLSX or PDF) through the
// asynchronous ingestion pipeline.
type ImportJob struct {
	ID          string       `json:"id"`
	Filename    string       `json:"filename"`
	MimeType    string       `json:"mime_type"`
	StoragePath string       `json:"storage_path"`
	Status      ImportStatus `json:"status"`
	Inserted    int          `json:"schemes_inserted"`
	Skipped     int          `json:"schemes_skipped"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// SchemeDraft is the loosely-typed shape schemes arrive in from upload files
// and the admin insert endpoint. Optional fields stay nullable until the
// normalizer fills defaults and folds sentinel aliases; only then does a
// draft become a canonical SchemeRecord.
type SchemeDraft struct {
	Name              string            `json:"scheme_name"`
	Category          string            `json:"type"`
	BenefitText       string            `json:"benefit"`
	BenefitAmount     *float64          `json:"benefit_amount,omitempty"`
	EligibleStates    []string          `json:"states"`
	EligibleCrops     []string          `json:"crops"`
	MinLandHectares   *float64          `json:"min_land,omitempty"`
	MaxLandHectares   *float64          `json:"max_land,omitempty"`
	Season            *string           `json:"season,omitempty"`
	DocumentsRequired []string          `json:"documents_required,omitempty"`
	OfficialLink      string            `json:"official_link,omitempty"`
	Description       map[string]string `json:"description,omitempty"`
}
