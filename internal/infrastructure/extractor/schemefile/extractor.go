package schemefile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/agrischeme/backend/internal/core/domain"
	"github.com/agrischeme/backend/internal/core/ports"
)

// Extractor turns an uploaded scheme file into draft rows. JSON, XLSX and
// PDF uploads are supported; the format is picked by MIME type first and
// file extension second.
type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, job *domain.ImportJob) ([]domain.SchemeDraft, error) {
	reader, err := e.storage.Open(ctx, job.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	switch detectFormat(job.MimeType, job.Filename) {
	case formatJSON:
		return extractJSON(raw)
	case formatXLSX:
		return extractXLSX(raw)
	case formatPDF:
		return extractPDF(raw)
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract schemes",
			fmt.Errorf("unsupported file format: %s", job.Filename))
	}
}

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatJSON
	formatXLSX
	formatPDF
)

func detectFormat(mimeType, filename string) fileFormat {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])) {
	case "application/json", "text/json":
		return formatJSON
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return formatXLSX
	case "application/pdf":
		return formatPDF
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return formatJSON
	case ".xlsx":
		return formatXLSX
	case ".pdf":
		return formatPDF
	}
	return formatUnknown
}

func extractJSON(raw []byte) ([]domain.SchemeDraft, error) {
	var drafts []domain.SchemeDraft
	if err := json.Unmarshal(raw, &drafts); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract schemes",
			fmt.Errorf("parse json: %w", err))
	}
	return drafts, nil
}

// splitList breaks a cell like "Punjab, Haryana; Kerala" into its items.
func splitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	items := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			items = append(items, f)
		}
	}
	return items
}
