package httpadapter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agrischeme/backend/internal/core/domain"
)

const (
	maxTextFieldChars = 100
	maxLandHectares   = 10000

	defaultPageLimit = 20
	maxPageLimit     = 100
)

// normalizePageLimit mirrors the use case clamp so responses echo the
// pagination values that were actually applied.
func normalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// safeTextPattern admits names as they appear in government scheme data:
// letters, digits, spaces and common punctuation. Anything else, and any
// value starting with '$', is rejected before it reaches a query.
var safeTextPattern = regexp.MustCompile(`^[\w\s\-\.,()/&']+$`)

func isSafeText(value string) bool {
	if value == "" || len(value) > maxTextFieldChars {
		return false
	}
	if strings.HasPrefix(value, "$") {
		return false
	}
	return safeTextPattern.MatchString(value)
}

func sanitizeProfile(profile *domain.FarmerProfile) error {
	profile.State = strings.TrimSpace(profile.State)
	profile.Crop = strings.TrimSpace(profile.Crop)
	profile.Season = strings.TrimSpace(profile.Season)

	if profile.State == "" {
		return fmt.Errorf("state is required")
	}
	if profile.Crop == "" {
		return fmt.Errorf("crop is required")
	}
	if !isSafeText(profile.State) {
		return fmt.Errorf("state contains invalid characters")
	}
	if !isSafeText(profile.Crop) {
		return fmt.Errorf("crop contains invalid characters")
	}
	if profile.Season != "" && !isSafeText(profile.Season) {
		return fmt.Errorf("season contains invalid characters")
	}
	if profile.LandSizeHectares < 0 || profile.LandSizeHectares > maxLandHectares {
		return fmt.Errorf("land_size must be between 0 and %d hectares", maxLandHectares)
	}
	return nil
}
