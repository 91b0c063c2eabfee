package schemefile

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/agrischeme/backend/internal/core/domain"
)

type fakeStorage struct {
	content []byte
}

func (f *fakeStorage) Save(context.Context, string, io.Reader) error {
	return nil
}

func (f *fakeStorage) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

func TestExtractJSONDrafts(t *testing.T) {
	payload := `[
		{
			"scheme_name": "PM-KISAN",
			"type": "Income Support",
			"benefit": "Rs. 6000 per year",
			"benefit_amount": 6000,
			"states": ["All"],
			"crops": ["All"],
			"min_land": 0,
			"max_land": 2,
			"season": "All"
		}
	]`
	extractor := NewExtractor(&fakeStorage{content: []byte(payload)})

	drafts, err := extractor.Extract(context.Background(), &domain.ImportJob{
		Filename:    "schemes.json",
		MimeType:    "application/json",
		StoragePath: "abc_schemes.json",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("len(drafts) = %d, want 1", len(drafts))
	}
	if drafts[0].Name != "PM-KISAN" {
		t.Fatalf("Name = %q, want PM-KISAN", drafts[0].Name)
	}
	if drafts[0].BenefitAmount == nil || *drafts[0].BenefitAmount != 6000 {
		t.Fatalf("BenefitAmount = %v, want 6000", drafts[0].BenefitAmount)
	}
}

func TestExtractRejectsMalformedJSON(t *testing.T) {
	extractor := NewExtractor(&fakeStorage{content: []byte(`{"not":"an array"`)})

	_, err := extractor.Extract(context.Background(), &domain.ImportJob{
		Filename: "schemes.json",
		MimeType: "application/json",
	})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("Extract() error = %v, want invalid input kind", err)
	}
}

func TestExtractXLSXMapsHeaderColumns(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	rows := [][]any{
		{"Scheme Name", "Type", "Benefit", "Benefit Amount", "States", "Crops", "Min Land", "Max Land", "Season"},
		{"Crop Insurance", "Insurance", "Premium subsidy", "25000", "Punjab, Haryana", "Wheat; Rice", "0.5", "10", "Rabi"},
		{"", "Ignored", "row without a name", "", "", "", "", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		t.Fatalf("Write workbook: %v", err)
	}

	extractor := NewExtractor(&fakeStorage{content: buf.Bytes()})
	drafts, err := extractor.Extract(context.Background(), &domain.ImportJob{
		Filename: "schemes.xlsx",
		MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("len(drafts) = %d, want 1", len(drafts))
	}

	draft := drafts[0]
	if draft.Name != "Crop Insurance" || draft.Category != "Insurance" {
		t.Fatalf("unexpected draft header fields: %+v", draft)
	}
	if want := []string{"Punjab", "Haryana"}; !equalStrings(draft.EligibleStates, want) {
		t.Fatalf("States = %v, want %v", draft.EligibleStates, want)
	}
	if want := []string{"Wheat", "Rice"}; !equalStrings(draft.EligibleCrops, want) {
		t.Fatalf("Crops = %v, want %v", draft.EligibleCrops, want)
	}
	if draft.MinLandHectares == nil || *draft.MinLandHectares != 0.5 {
		t.Fatalf("MinLandHectares = %v, want 0.5", draft.MinLandHectares)
	}
	if draft.Season == nil || *draft.Season != "Rabi" {
		t.Fatalf("Season = %v, want Rabi", draft.Season)
	}
}

func TestParseSchemeTextSplitsLabelledBlocks(t *testing.T) {
	text := strings.Join([]string{
		"Ministry of Agriculture Circular 14/2026",
		"Scheme Name: Soil Health Card",
		"Type: Advisory",
		"Benefit: Free soil testing",
		"States: All India",
		"Crops: All Crops",
		"Season: Kharif",
		"Farmers receive a soil nutrient report every two years.",
		"Scheme Name: Drip Irrigation Subsidy",
		"Type: Subsidy",
		"Benefit Amount: 45,000",
		"Max Land: 4",
	}, "\n")

	drafts := parseSchemeText(text)
	if len(drafts) != 2 {
		t.Fatalf("len(drafts) = %d, want 2", len(drafts))
	}
	if drafts[0].Name != "Soil Health Card" {
		t.Fatalf("Name = %q", drafts[0].Name)
	}
	if got := drafts[0].Description[domain.DefaultLanguage]; !strings.Contains(got, "soil nutrient report") {
		t.Fatalf("Description = %q, want prose line folded in", got)
	}
	if drafts[1].BenefitAmount == nil || *drafts[1].BenefitAmount != 45000 {
		t.Fatalf("BenefitAmount = %v, want 45000", drafts[1].BenefitAmount)
	}
	if drafts[1].MaxLandHectares == nil || *drafts[1].MaxLandHectares != 4 {
		t.Fatalf("MaxLandHectares = %v, want 4", drafts[1].MaxLandHectares)
	}
}

func TestDetectFormatFallsBackToExtension(t *testing.T) {
	if got := detectFormat("application/octet-stream", "upload.PDF"); got != formatPDF {
		t.Fatalf("detectFormat = %v, want pdf", got)
	}
	if got := detectFormat("", "schemes.xlsx"); got != formatXLSX {
		t.Fatalf("detectFormat = %v, want xlsx", got)
	}
	if got := detectFormat("text/csv", "schemes.csv"); got != formatUnknown {
		t.Fatalf("detectFormat = %v, want unknown", got)
	}
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
