package domain

import "math"

// Sentinel values meaning "unrestricted" rather than a literal match target.
// Legacy aliases survive in older records that were never re-normalized, so
// the eligibility predicate tolerates them alongside the canonical form.
const (
	SentinelAll         = "All"
	LegacyAllIndiaState = "All India"
	LegacyAllCropsAlias = "All Crops"
)

// SchemeRecord is one government assistance program. Records are created by
// the ingestion pipeline, which normalizes state/crop/season aliases before
// they reach storage; display fields keep the original wire names.
type SchemeRecord struct {
	Name              string            `json:"scheme_name"`
	Category          string            `json:"type"`
	BenefitText       string            `json:"benefit"`
	BenefitAmount     float64           `json:"benefit_amount"`
	EligibleStates    []string          `json:"states"`
	EligibleCrops     []string          `json:"crops"`
	MinLandHectares   float64           `json:"min_land"`
	MaxLandHectares   float64           `json:"max_land"`
	Season            string            `json:"season,omitempty"`
	DocumentsRequired []string          `json:"documents_required,omitempty"`
	OfficialLink      string            `json:"official_link,omitempty"`
	Description       map[string]string `json:"description,omitempty"`

	// RelevanceScore is attached by the ranker per request; it is never
	// persisted. Nil means the record has not been ranked.
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// DefaultLanguage selects which localized description feeds the ranking
// corpus.
const DefaultLanguage = "en"

// FarmerProfile is the ephemeral, request-scoped input to eligibility
// matching. Season is optional; empty means "do not filter on season".
type FarmerProfile struct {
	State            string  `json:"state"`
	Crop             string  `json:"crop"`
	LandSizeHectares float64 `json:"land_size"`
	Season           string  `json:"season,omitempty"`
}

// Validate reports whether the profile carries the required fields. Empty
// results are a valid outcome of filtering; a malformed profile is not.
func (p FarmerProfile) Validate() error {
	if p.State == "" {
		return WrapError(ErrInvalidInput, "validate profile", errFieldRequired("state"))
	}
	if p.Crop == "" {
		return WrapError(ErrInvalidInput, "validate profile", errFieldRequired("crop"))
	}
	if p.LandSizeHectares < 0 || math.IsNaN(p.LandSizeHectares) || math.IsInf(p.LandSizeHectares, 0) {
		return WrapError(ErrInvalidInput, "validate profile", errFieldInvalid("land_size"))
	}
	return nil
}

// EligibleFor is the canonical eligibility predicate: state, crop and land
// range are always checked, season only when the profile provides one. The
// store's SQL query implements the same conditions; this form backs the
// in-memory store and the tests.
func (s SchemeRecord) EligibleFor(p FarmerProfile) bool {
	if p.Validate() != nil {
		return false
	}
	if !containsAny(s.EligibleStates, p.State, SentinelAll, LegacyAllIndiaState) {
		return false
	}
	if !containsAny(s.EligibleCrops, p.Crop, SentinelAll, LegacyAllCropsAlias) {
		return false
	}
	if p.LandSizeHectares < s.MinLandHectares || p.LandSizeHectares > s.MaxLandHectares {
		return false
	}
	if p.Season != "" {
		if s.Season != p.Season && s.Season != SentinelAll && s.Season != "" {
			return false
		}
	}
	return true
}

// LandBucket maps a land holding to the coarse size class used by the
// ranking text corpus.
func LandBucket(hectares float64) string {
	switch {
	case hectares > 4:
		return "large"
	case hectares > 2:
		return "medium"
	default:
		return "small"
	}
}

func containsAny(haystack []string, needles ...string) bool {
	for _, value := range haystack {
		for _, needle := range needles {
			if value == needle {
				return true
			}
		}
	}
	return false
}
