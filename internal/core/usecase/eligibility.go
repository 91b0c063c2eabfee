package usecase

import (
	"context"
	"fmt"

	"github.com/agrischeme/backend/internal/core/domain"
	"github.com/agrischeme/backend/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// EligibilityUseCase runs the matching pipeline: validate the profile, query
// the benefit-sorted eligible set, rank the requested page.
type EligibilityUseCase struct {
	store ports.SchemeStore
}

func NewEligibilityUseCase(store ports.SchemeStore) *EligibilityUseCase {
	return &EligibilityUseCase{store: store}
}

func (uc *EligibilityUseCase) FindEligible(
	ctx context.Context,
	profile domain.FarmerProfile,
	page, limit int,
) ([]domain.SchemeRecord, int, error) {
	if err := profile.Validate(); err != nil {
		return nil, 0, err
	}
	page, limit = clampPagination(page, limit)

	total, err := uc.store.CountEligible(ctx, profile)
	if err != nil {
		return nil, 0, fmt.Errorf("count eligible schemes: %w", err)
	}

	schemes, err := uc.store.QueryEligible(ctx, profile, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("query eligible schemes: %w", err)
	}

	return RankSchemes(schemes, profile), total, nil
}

func (uc *EligibilityUseCase) ListSchemes(
	ctx context.Context,
	category string,
	page, limit int,
) ([]domain.SchemeRecord, int, error) {
	page, limit = clampPagination(page, limit)

	total, err := uc.store.Count(ctx, category)
	if err != nil {
		return nil, 0, fmt.Errorf("count schemes: %w", err)
	}

	schemes, err := uc.store.List(ctx, category, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list schemes: %w", err)
	}
	return schemes, total, nil
}

func clampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
