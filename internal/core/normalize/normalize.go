package normalize

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/agrischeme/backend/internal/core/domain"
)

// Normalizer turns loosely-typed scheme drafts into canonical records.
type Normalizer struct {
	rules Rules
}

func New(rules Rules) *Normalizer {
	return &Normalizer{rules: rules}
}

// Scheme validates a draft and produces the canonical record: aliases folded,
// nullable fields defaulted, benefit amount derived from the benefit text
// when not supplied.
func (n *Normalizer) Scheme(draft domain.SchemeDraft) (domain.SchemeRecord, error) {
	if err := n.validateDraft(draft); err != nil {
		return domain.SchemeRecord{}, domain.WrapError(domain.ErrInvalidInput, "normalize scheme", err)
	}

	record := domain.SchemeRecord{
		Name:              strings.TrimSpace(draft.Name),
		Category:          strings.TrimSpace(draft.Category),
		BenefitText:       strings.TrimSpace(draft.BenefitText),
		EligibleStates:    n.States(draft.EligibleStates),
		EligibleCrops:     n.Crops(draft.EligibleCrops),
		MinLandHectares:   n.rules.DefaultMinLandHectares,
		MaxLandHectares:   n.rules.DefaultMaxLandHectares,
		DocumentsRequired: draft.DocumentsRequired,
		OfficialLink:      draft.OfficialLink,
		Description:       draft.Description,
	}

	if draft.MinLandHectares != nil {
		record.MinLandHectares = *draft.MinLandHectares
	}
	if draft.MaxLandHectares != nil {
		record.MaxLandHectares = *draft.MaxLandHectares
	}

	season := ""
	if draft.Season != nil {
		season = *draft.Season
	}
	record.Season = n.Season(season)

	if draft.BenefitAmount != nil {
		record.BenefitAmount = *draft.BenefitAmount
	} else {
		record.BenefitAmount = ParseBenefitAmount(record.BenefitText)
	}

	return record, nil
}

// States folds legacy state aliases onto the canonical sentinel. Order is
// preserved; specific states coexist with "All" (a state list containing the
// sentinel matches everything regardless).
func (n *Normalizer) States(states []string) []string {
	if len(states) == 0 {
		return []string{domain.SentinelAll}
	}
	out := make([]string, 0, len(states))
	for _, state := range states {
		if canonical, ok := n.rules.StateAliases[state]; ok {
			out = append(out, canonical)
			continue
		}
		out = append(out, state)
	}
	return out
}

// Crops folds crop wildcard aliases onto "All". When the wildcard is present
// it absorbs every specific crop: the result is exactly ["All"]. That
// discards curator-listed specifics next to a wildcard, which is preserved
// deliberately for compatibility with the existing corpus.
func (n *Normalizer) Crops(crops []string) []string {
	if len(crops) == 0 {
		return []string{domain.SentinelAll}
	}
	seen := make(map[string]struct{}, len(crops))
	for _, crop := range crops {
		if canonical, ok := n.rules.CropAliases[crop]; ok {
			crop = canonical
		}
		seen[crop] = struct{}{}
	}
	if _, ok := seen[domain.SentinelAll]; ok {
		return []string{domain.SentinelAll}
	}
	out := make([]string, 0, len(seen))
	for crop := range seen {
		out = append(out, crop)
	}
	sort.Strings(out)
	return out
}

// Season maps empty, wildcard and composite season values to "All"; anything
// else passes through unchanged.
func (n *Normalizer) Season(season string) string {
	season = strings.TrimSpace(season)
	if season == "" || season == domain.SentinelAll {
		return domain.SentinelAll
	}
	if canonical, ok := n.rules.SeasonAliases[season]; ok {
		return canonical
	}
	return season
}

func (n *Normalizer) validateDraft(draft domain.SchemeDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return errors.New("scheme_name is required")
	}
	if strings.TrimSpace(draft.Category) == "" {
		return errors.New("type is required")
	}
	if draft.MinLandHectares != nil && draft.MaxLandHectares != nil &&
		*draft.MinLandHectares > *draft.MaxLandHectares {
		return errors.New("min_land exceeds max_land")
	}
	return nil
}

var benefitNumberPattern = regexp.MustCompile(`[\d,]+`)

// ParseBenefitAmount extracts the first numeric token from a benefit string
// so text-only benefits still sort. "₹6,000 per year" parses as 6000; prose
// without numbers parses as 0.
func ParseBenefitAmount(benefitText string) float64 {
	if benefitText == "" {
		return 0
	}
	cleaned := strings.ReplaceAll(benefitText, ",", "")
	match := benefitNumberPattern.FindString(cleaned)
	if match == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return amount
}
