package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agrischeme/backend/internal/core/domain"
)

// Rules holds the alias-folding tables applied at the ingestion boundary.
// A Rules value is built once at startup and never mutated afterwards; the
// matching core can then assume canonical sentinel values while the filter
// still tolerates legacy aliases defensively.
type Rules struct {
	StateAliases  map[string]string `yaml:"state_aliases"`
	CropAliases   map[string]string `yaml:"crop_aliases"`
	SeasonAliases map[string]string `yaml:"season_aliases"`

	DefaultMinLandHectares float64 `yaml:"default_min_land_hectares"`
	DefaultMaxLandHectares float64 `yaml:"default_max_land_hectares"`
}

// DefaultRules reproduces the alias tables the original scheme corpus was
// ingested with. Source files say "All India" where the engine matches on
// "All", and a handful of crop wildcard spellings all mean "no restriction".
func DefaultRules() Rules {
	return Rules{
		StateAliases: map[string]string{
			"All India":            domain.SentinelAll,
			"Participating States": domain.SentinelAll,
		},
		CropAliases: map[string]string{
			"All":                domain.SentinelAll,
			"All Crops":          domain.SentinelAll,
			"All Notified Crops": domain.SentinelAll,
			"Food Crops":         domain.SentinelAll,
			"Agriculture":        domain.SentinelAll,
		},
		SeasonAliases: map[string]string{
			"all":         domain.SentinelAll,
			"Kharif/Rabi": domain.SentinelAll,
			"kharif/rabi": domain.SentinelAll,
		},
		DefaultMinLandHectares: 0,
		DefaultMaxLandHectares: 100,
	}
}

// LoadRules reads alias overrides from a YAML file and merges them over the
// defaults. An empty path returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read normalization rules: %w", err)
	}

	var overrides Rules
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return Rules{}, fmt.Errorf("parse normalization rules: %w", err)
	}

	for alias, canonical := range overrides.StateAliases {
		rules.StateAliases[alias] = canonical
	}
	for alias, canonical := range overrides.CropAliases {
		rules.CropAliases[alias] = canonical
	}
	for alias, canonical := range overrides.SeasonAliases {
		rules.SeasonAliases[alias] = canonical
	}
	if overrides.DefaultMinLandHectares != 0 {
		rules.DefaultMinLandHectares = overrides.DefaultMinLandHectares
	}
	if overrides.DefaultMaxLandHectares != 0 {
		rules.DefaultMaxLandHectares = overrides.DefaultMaxLandHectares
	}
	return rules, nil
}
