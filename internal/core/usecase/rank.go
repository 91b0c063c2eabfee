package usecase

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/agrischeme/backend/internal/core/domain"
)

// Blend weights for the combined relevance score. Textual relevance
// dominates, but a large benefit amount can still surface a scheme with only
// moderate textual overlap.
const (
	similarityWeight = 0.6
	benefitWeight    = 0.4

	// fallbackScore is assigned to every candidate when vectorization
	// fails; candidates then keep their benefit-sorted order.
	fallbackScore = 0.5
)

// RankSchemes annotates the candidates with a relevance score against the
// farmer profile and returns them sorted by that score descending. It is a
// total function: empty input passes through, a singleton gets score 1.0,
// and any vectorization failure degrades to a neutral constant score rather
// than surfacing an error. Ranking is an enhancement, never a reason to lose
// eligibility results.
func RankSchemes(schemes []domain.SchemeRecord, profile domain.FarmerProfile) []domain.SchemeRecord {
	if len(schemes) == 0 {
		return schemes
	}
	if len(schemes) == 1 {
		schemes[0].RelevanceScore = scorePtr(1.0)
		return schemes
	}

	similarities, err := profileSimilarities(schemes, profile)
	if err != nil {
		slog.Warn("ranking_fallback", "error", err, "candidates", len(schemes))
		for i := range schemes {
			schemes[i].RelevanceScore = scorePtr(fallbackScore)
		}
		return schemes
	}

	maxBenefit := 0.0
	for _, scheme := range schemes {
		if scheme.BenefitAmount > maxBenefit {
			maxBenefit = scheme.BenefitAmount
		}
	}
	// Guard against an all-zero-benefit corpus; the benefit term then
	// contributes nothing and ordering is purely textual.
	if maxBenefit == 0 {
		maxBenefit = 1
	}

	for i := range schemes {
		benefitNorm := schemes[i].BenefitAmount / maxBenefit
		combined := similarityWeight*similarities[i] + benefitWeight*benefitNorm
		schemes[i].RelevanceScore = scorePtr(math.Round(combined*10000) / 10000)
	}

	sort.SliceStable(schemes, func(i, j int) bool {
		return *schemes[i].RelevanceScore > *schemes[j].RelevanceScore
	})
	return schemes
}

// profileSimilarities computes the cosine similarity between the synthesized
// farmer document and each scheme document over a shared TF-IDF space.
func profileSimilarities(schemes []domain.SchemeRecord, profile domain.FarmerProfile) ([]float64, error) {
	docs := make([]string, 0, len(schemes)+1)
	docs = append(docs, buildFarmerDocument(profile))
	for _, scheme := range schemes {
		docs = append(docs, buildSchemeDocument(scheme))
	}

	model, err := fitTFIDF(docs)
	if err != nil {
		return nil, fmt.Errorf("fit tfidf corpus: %w", err)
	}

	farmerVec := model.transform(docs[0])
	similarities := make([]float64, len(schemes))
	for i := range schemes {
		similarities[i] = cosineSimilarity(farmerVec, model.transform(docs[i+1]))
	}
	return similarities, nil
}

// buildFarmerDocument encodes the farmer's situation as a short text. The
// trailing phrase repeats crop, state and season to up-weight those terms in
// the vector space.
func buildFarmerDocument(profile domain.FarmerProfile) string {
	bucket := domain.LandBucket(profile.LandSizeHectares)
	return fmt.Sprintf(
		"Farmer in %s growing %s crop during %s season with %g hectares of %s land holding. %s cultivation in %s %s.",
		profile.State, profile.Crop, profile.Season, profile.LandSizeHectares, bucket,
		profile.Crop, profile.State, profile.Season,
	)
}

// buildSchemeDocument concatenates the scheme's matchable text into one blob.
// The constant "medium farmer" token is a smoothing term that keeps scheme
// vectors from collapsing to zero when every other field is empty.
func buildSchemeDocument(scheme domain.SchemeRecord) string {
	parts := make([]string, 0, 10)
	appendPart := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	appendPart(scheme.Name)
	appendPart(scheme.Category)
	appendPart(scheme.BenefitText)
	appendPart(scheme.Description[domain.DefaultLanguage])
	appendPart(strings.Join(scheme.EligibleStates, " "))
	appendPart(strings.Join(scheme.EligibleCrops, " "))
	appendPart(scheme.Season)

	if scheme.MinLandHectares <= 2 {
		parts = append(parts, "small farmer marginal")
	}
	if scheme.MaxLandHectares >= 10 {
		parts = append(parts, "large farmer")
	}
	parts = append(parts, "medium farmer")

	return strings.Join(parts, " ")
}

func scorePtr(v float64) *float64 {
	return &v
}
