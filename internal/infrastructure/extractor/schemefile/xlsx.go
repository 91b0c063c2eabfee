package schemefile

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agrischeme/backend/internal/core/domain"
)

// extractXLSX reads the first sheet of a workbook. The header row names the
// columns; unknown columns are ignored so ministry spreadsheets with extra
// bookkeeping columns still import.
func extractXLSX(raw []byte) ([]domain.SchemeDraft, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract schemes",
			fmt.Errorf("open workbook: %w", err))
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract schemes",
			fmt.Errorf("workbook has no sheets"))
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract schemes",
			fmt.Errorf("read sheet %q: %w", sheets[0], err))
	}
	if len(rows) < 2 {
		return nil, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		key := normalizeHeader(header)
		if key != "" {
			columns[key] = i
		}
	}

	drafts := make([]domain.SchemeDraft, 0, len(rows)-1)
	for _, row := range rows[1:] {
		draft := draftFromRow(columns, row)
		if draft.Name == "" {
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func draftFromRow(columns map[string]int, row []string) domain.SchemeDraft {
	cell := func(keys ...string) string {
		for _, key := range keys {
			if i, ok := columns[key]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	draft := domain.SchemeDraft{
		Name:              cell("scheme_name", "name"),
		Category:          cell("type", "category"),
		BenefitText:       cell("benefit"),
		EligibleStates:    splitList(cell("states", "eligible_states")),
		EligibleCrops:     splitList(cell("crops", "eligible_crops")),
		DocumentsRequired: splitList(cell("documents_required", "documents")),
		OfficialLink:      cell("official_link", "link"),
	}
	if v := cell("benefit_amount"); v != "" {
		if amount, err := parseCellNumber(v); err == nil {
			draft.BenefitAmount = &amount
		}
	}
	if v := cell("min_land", "min_land_hectares"); v != "" {
		if hectares, err := parseCellNumber(v); err == nil {
			draft.MinLandHectares = &hectares
		}
	}
	if v := cell("max_land", "max_land_hectares"); v != "" {
		if hectares, err := parseCellNumber(v); err == nil {
			draft.MaxLandHectares = &hectares
		}
	}
	if v := cell("season"); v != "" {
		draft.Season = &v
	}
	if v := cell("description"); v != "" {
		draft.Description = map[string]string{domain.DefaultLanguage: v}
	}
	return draft
}

func normalizeHeader(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	header = strings.ReplaceAll(header, " ", "_")
	return header
}

func parseCellNumber(value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	return strconv.ParseFloat(value, 64)
}
