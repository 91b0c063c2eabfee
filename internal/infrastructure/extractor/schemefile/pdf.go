package schemefile

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/agrischeme/backend/internal/core/domain"
)

// extractPDF reads scheme circulars published as labelled "Field: value"
// lines. Every "Scheme Name:" line starts a new scheme; lines without a
// recognized label extend the running description.
func extractPDF(raw []byte) ([]domain.SchemeDraft, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract schemes",
			fmt.Errorf("open pdf: %w", err))
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract schemes",
			fmt.Errorf("extract pdf text: %w", err))
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}

	return parseSchemeText(string(text)), nil
}

func parseSchemeText(text string) []domain.SchemeDraft {
	var (
		drafts      []domain.SchemeDraft
		current     *domain.SchemeDraft
		description []string
	)

	flush := func() {
		if current == nil {
			return
		}
		if desc := strings.TrimSpace(strings.Join(description, " ")); desc != "" {
			current.Description = map[string]string{domain.DefaultLanguage: desc}
		}
		drafts = append(drafts, *current)
		current = nil
		description = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		label, value, ok := splitLabel(line)
		if !ok {
			if current != nil {
				description = append(description, line)
			}
			continue
		}

		if label == "scheme name" || label == "name" {
			flush()
			current = &domain.SchemeDraft{Name: value}
			continue
		}
		if current == nil {
			continue
		}

		switch label {
		case "type", "category":
			current.Category = value
		case "benefit":
			current.BenefitText = value
		case "benefit amount":
			if amount, err := parseCellNumber(value); err == nil {
				current.BenefitAmount = &amount
			}
		case "states", "eligible states":
			current.EligibleStates = splitList(value)
		case "crops", "eligible crops":
			current.EligibleCrops = splitList(value)
		case "min land":
			if hectares, err := parseCellNumber(value); err == nil {
				current.MinLandHectares = &hectares
			}
		case "max land":
			if hectares, err := parseCellNumber(value); err == nil {
				current.MaxLandHectares = &hectares
			}
		case "season":
			season := value
			current.Season = &season
		case "documents", "documents required":
			current.DocumentsRequired = splitList(value)
		case "official link", "link":
			current.OfficialLink = value
		case "description":
			description = append(description, value)
		default:
			description = append(description, line)
		}
	}
	flush()

	return drafts
}

func splitLabel(line string) (label, value string, ok bool) {
	i := strings.Index(line, ":")
	if i <= 0 {
		return "", "", false
	}
	label = strings.ToLower(strings.TrimSpace(line[:i]))
	if label == "" || strings.ContainsAny(label, "0123456789") {
		return "", "", false
	}
	return label, strings.TrimSpace(line[i+1:]), true
}
