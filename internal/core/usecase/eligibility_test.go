package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/agrischeme/backend/internal/core/domain"
)

func eligibleFixture(n int) []domain.SchemeRecord {
	out := make([]domain.SchemeRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.SchemeRecord{
			Name:          "Scheme " + string(rune('A'+i)),
			Category:      "Subsidy",
			BenefitText:   "wheat support punjab",
			BenefitAmount: float64(1000 * (n - i)),
		})
	}
	return out
}

func TestFindEligibleRejectsInvalidProfile(t *testing.T) {
	uc := NewEligibilityUseCase(&stubSchemeStore{})

	_, _, err := uc.FindEligible(context.Background(), domain.FarmerProfile{Crop: "Wheat", LandSizeHectares: 1}, 1, 20)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("missing state error = %v, want ErrInvalidInput", err)
	}

	_, _, err = uc.FindEligible(context.Background(), domain.FarmerProfile{State: "Punjab", Crop: "Wheat", LandSizeHectares: -1}, 1, 20)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("negative land error = %v, want ErrInvalidInput", err)
	}
}

func TestFindEligibleReturnsTotalAndRankedPage(t *testing.T) {
	store := &stubSchemeStore{eligible: eligibleFixture(3)}
	uc := NewEligibilityUseCase(store)

	profile := domain.FarmerProfile{State: "Punjab", Crop: "Wheat", LandSizeHectares: 2}
	schemes, total, err := uc.FindEligible(context.Background(), profile, 1, 20)
	if err != nil {
		t.Fatalf("FindEligible: %v", err)
	}
	if total != 3 || len(schemes) != 3 {
		t.Fatalf("total = %d, page size = %d, want 3 and 3", total, len(schemes))
	}
	for _, s := range schemes {
		if s.RelevanceScore == nil {
			t.Fatalf("scheme %q missing relevance score", s.Name)
		}
	}
}

func TestFindEligiblePaginationClamps(t *testing.T) {
	store := &stubSchemeStore{eligible: eligibleFixture(5)}
	uc := NewEligibilityUseCase(store)
	profile := domain.FarmerProfile{State: "Punjab", Crop: "Wheat", LandSizeHectares: 2}

	// Zero values fall back to page 1 with the default size.
	if _, _, err := uc.FindEligible(context.Background(), profile, 0, 0); err != nil {
		t.Fatalf("FindEligible: %v", err)
	}
	if store.lastOffset != 0 || store.lastLimit != defaultPageSize {
		t.Fatalf("offset/limit = %d/%d, want 0/%d", store.lastOffset, store.lastLimit, defaultPageSize)
	}

	// Oversized limits clamp to the maximum.
	if _, _, err := uc.FindEligible(context.Background(), profile, 2, 500); err != nil {
		t.Fatalf("FindEligible: %v", err)
	}
	if store.lastLimit != maxPageSize || store.lastOffset != maxPageSize {
		t.Fatalf("offset/limit = %d/%d, want %d/%d", store.lastOffset, store.lastLimit, maxPageSize, maxPageSize)
	}
}

func TestFindEligibleOffsetMath(t *testing.T) {
	store := &stubSchemeStore{eligible: eligibleFixture(7)}
	uc := NewEligibilityUseCase(store)
	profile := domain.FarmerProfile{State: "Punjab", Crop: "Wheat", LandSizeHectares: 2}

	schemes, total, err := uc.FindEligible(context.Background(), profile, 3, 3)
	if err != nil {
		t.Fatalf("FindEligible: %v", err)
	}
	if store.lastOffset != 6 || store.lastLimit != 3 {
		t.Fatalf("offset/limit = %d/%d, want 6/3", store.lastOffset, store.lastLimit)
	}
	if total != 7 || len(schemes) != 1 {
		t.Fatalf("total = %d, last page size = %d, want 7 and 1", total, len(schemes))
	}
}

func TestFindEligiblePropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	profile := domain.FarmerProfile{State: "Punjab", Crop: "Wheat", LandSizeHectares: 2}

	uc := NewEligibilityUseCase(&stubSchemeStore{countErr: boom})
	if _, _, err := uc.FindEligible(context.Background(), profile, 1, 20); !errors.Is(err, boom) {
		t.Fatalf("count failure = %v, want wrapped %v", err, boom)
	}

	uc = NewEligibilityUseCase(&stubSchemeStore{queryErr: boom})
	if _, _, err := uc.FindEligible(context.Background(), profile, 1, 20); !errors.Is(err, boom) {
		t.Fatalf("query failure = %v, want wrapped %v", err, boom)
	}
}

func TestListSchemesPaginates(t *testing.T) {
	store := &stubSchemeStore{listed: eligibleFixture(4)}
	uc := NewEligibilityUseCase(store)

	schemes, total, err := uc.ListSchemes(context.Background(), "Subsidy", 2, 2)
	if err != nil {
		t.Fatalf("ListSchemes: %v", err)
	}
	if total != 4 || len(schemes) != 2 {
		t.Fatalf("total = %d, page size = %d, want 4 and 2", total, len(schemes))
	}
	if store.lastOffset != 2 || store.lastLimit != 2 {
		t.Fatalf("offset/limit = %d/%d, want 2/2", store.lastOffset, store.lastLimit)
	}
	// Listing does not rank.
	if schemes[0].RelevanceScore != nil {
		t.Fatalf("listed scheme carries relevance score %v", *schemes[0].RelevanceScore)
	}
}
