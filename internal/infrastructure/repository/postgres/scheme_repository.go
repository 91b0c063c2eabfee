package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agrischeme/backend/internal/core/domain"
)

type SchemeRepository struct {
	db *sql.DB
}

func NewSchemeRepository(db *sql.DB) *SchemeRepository {
	return &SchemeRepository{db: db}
}

const schemeColumns = `name, category, benefit_text, benefit_amount, eligible_states, eligible_crops,
min_land_hectares, max_land_hectares, season, documents_required, official_link, description`

// eligibilityWhere mirrors the canonical domain predicate in SQL: JSONB
// array membership with sentinel tolerance, inclusive land bounds, and a
// null-tolerant season clause appended only when the profile has a season.
// Records with the "All" sentinel match any state/crop value, including
// unrecognized ones.
const eligibilityWhere = `
(jsonb_exists(eligible_states, $1) OR jsonb_exists(eligible_states, 'All') OR jsonb_exists(eligible_states, 'All India'))
AND (jsonb_exists(eligible_crops, $2) OR jsonb_exists(eligible_crops, 'All') OR jsonb_exists(eligible_crops, 'All Crops'))
AND min_land_hectares <= $3
AND max_land_hectares >= $3`

const seasonClause = `
AND (season = $4 OR season = 'All' OR season = '' OR season IS NULL)`

func (r *SchemeRepository) QueryEligible(
	ctx context.Context,
	profile domain.FarmerProfile,
	offset, limit int,
) ([]domain.SchemeRecord, error) {
	query := `SELECT ` + schemeColumns + ` FROM schemes WHERE ` + eligibilityWhere
	args := []any{profile.State, profile.Crop, profile.LandSizeHectares}
	if profile.Season != "" {
		query += seasonClause
		args = append(args, profile.Season)
	}
	query += fmt.Sprintf(`
ORDER BY benefit_amount DESC, name ASC
LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query eligible schemes: %w", err)
	}
	defer rows.Close()

	return scanSchemes(rows)
}

func (r *SchemeRepository) CountEligible(ctx context.Context, profile domain.FarmerProfile) (int, error) {
	query := `SELECT COUNT(*) FROM schemes WHERE ` + eligibilityWhere
	args := []any{profile.State, profile.Crop, profile.LandSizeHectares}
	if profile.Season != "" {
		query += seasonClause
		args = append(args, profile.Season)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count eligible schemes: %w", err)
	}
	return total, nil
}

func (r *SchemeRepository) List(
	ctx context.Context,
	category string,
	offset, limit int,
) ([]domain.SchemeRecord, error) {
	query := `SELECT ` + schemeColumns + ` FROM schemes`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += fmt.Sprintf(`
ORDER BY benefit_amount DESC, name ASC
LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()

	return scanSchemes(rows)
}

func (r *SchemeRepository) Count(ctx context.Context, category string) (int, error) {
	query := `SELECT COUNT(*) FROM schemes`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count schemes: %w", err)
	}
	return total, nil
}

func (r *SchemeRepository) Insert(ctx context.Context, record domain.SchemeRecord) error {
	statesJSON, err := json.Marshal(record.EligibleStates)
	if err != nil {
		return fmt.Errorf("marshal states: %w", err)
	}
	cropsJSON, err := json.Marshal(record.EligibleCrops)
	if err != nil {
		return fmt.Errorf("marshal crops: %w", err)
	}
	docsJSON, err := json.Marshal(sliceOrEmpty(record.DocumentsRequired))
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}
	descJSON, err := json.Marshal(mapOrEmpty(record.Description))
	if err != nil {
		return fmt.Errorf("marshal description: %w", err)
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
INSERT INTO schemes (
	name, category, benefit_text, benefit_amount, eligible_states, eligible_crops,
	min_land_hectares, max_land_hectares, season, documents_required, official_link, description,
	created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
`,
		record.Name, record.Category, record.BenefitText, record.BenefitAmount,
		statesJSON, cropsJSON, record.MinLandHectares, record.MaxLandHectares,
		record.Season, docsJSON, record.OfficialLink, descJSON, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert scheme: %w", err)
	}
	return nil
}

func (r *SchemeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM schemes WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check scheme exists: %w", err)
	}
	return exists, nil
}

func scanSchemes(rows *sql.Rows) ([]domain.SchemeRecord, error) {
	out := make([]domain.SchemeRecord, 0, 16)
	for rows.Next() {
		var (
			record    domain.SchemeRecord
			statesRaw []byte
			cropsRaw  []byte
			docsRaw   []byte
			descRaw   []byte
			season    sql.NullString
			link      sql.NullString
		)
		err := rows.Scan(
			&record.Name, &record.Category, &record.BenefitText, &record.BenefitAmount,
			&statesRaw, &cropsRaw, &record.MinLandHectares, &record.MaxLandHectares,
			&season, &docsRaw, &link, &descRaw,
		)
		if err != nil {
			return nil, fmt.Errorf("scan scheme: %w", err)
		}

		if err := json.Unmarshal(statesRaw, &record.EligibleStates); err != nil {
			return nil, fmt.Errorf("unmarshal states: %w", err)
		}
		if err := json.Unmarshal(cropsRaw, &record.EligibleCrops); err != nil {
			return nil, fmt.Errorf("unmarshal crops: %w", err)
		}
		if err := json.Unmarshal(docsRaw, &record.DocumentsRequired); err != nil {
			return nil, fmt.Errorf("unmarshal documents: %w", err)
		}
		if err := json.Unmarshal(descRaw, &record.Description); err != nil {
			return nil, fmt.Errorf("unmarshal description: %w", err)
		}
		record.Season = season.String
		record.OfficialLink = link.String

		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schemes: %w", err)
	}
	return out, nil
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func mapOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
