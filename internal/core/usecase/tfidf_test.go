package usecase

import (
	"math"
	"testing"
)

func TestFitTFIDFEmptyVocabulary(t *testing.T) {
	cases := [][]string{
		{},
		{"", ""},
		{"the and of", "to in for"},
		{"!!!", "???"},
	}
	for _, docs := range cases {
		if _, err := fitTFIDF(docs); err == nil {
			t.Fatalf("fitTFIDF(%q) = nil error, want empty vocabulary error", docs)
		}
	}
}

func TestTransformVectorsAreUnitLength(t *testing.T) {
	model, err := fitTFIDF([]string{
		"wheat subsidy punjab",
		"rice support kerala",
		"wheat insurance punjab rabi",
	})
	if err != nil {
		t.Fatalf("fitTFIDF: %v", err)
	}

	vec := model.transform("wheat subsidy punjab")
	if len(vec) == 0 {
		t.Fatal("transform produced empty vector for in-vocabulary document")
	}
	norm := 0.0
	for _, w := range vec {
		norm += w * w
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Fatalf("squared norm = %v, want 1.0", norm)
	}
}

func TestTransformUnknownTermsYieldEmptyVector(t *testing.T) {
	model, err := fitTFIDF([]string{"wheat punjab", "rice kerala"})
	if err != nil {
		t.Fatalf("fitTFIDF: %v", err)
	}
	if vec := model.transform("coconut tamil nadu"); len(vec) != 0 {
		t.Fatalf("transform of out-of-vocabulary document = %v, want empty", vec)
	}
}

func TestCosineSimilarityBounds(t *testing.T) {
	model, err := fitTFIDF([]string{
		"wheat subsidy punjab farmers",
		"wheat subsidy punjab farmers",
		"coconut coir kerala mission",
	})
	if err != nil {
		t.Fatalf("fitTFIDF: %v", err)
	}

	a := model.transform("wheat subsidy punjab farmers")
	b := model.transform("wheat subsidy punjab farmers")
	c := model.transform("coconut coir kerala mission")

	if sim := cosineSimilarity(a, b); math.Abs(sim-1.0) > 1e-9 {
		t.Fatalf("identical documents similarity = %v, want 1.0", sim)
	}
	if sim := cosineSimilarity(a, c); sim != 0 {
		t.Fatalf("disjoint documents similarity = %v, want 0", sim)
	}
	if sim := cosineSimilarity(a, map[int]float64{}); sim != 0 {
		t.Fatalf("similarity against empty vector = %v, want 0", sim)
	}
}

func TestCosineSimilarityOrdersByOverlap(t *testing.T) {
	model, err := fitTFIDF([]string{
		"wheat punjab rabi irrigation",
		"wheat punjab kharif",
		"cotton gujarat kharif",
	})
	if err != nil {
		t.Fatalf("fitTFIDF: %v", err)
	}

	query := model.transform("wheat punjab rabi")
	close := cosineSimilarity(query, model.transform("wheat punjab rabi irrigation"))
	far := cosineSimilarity(query, model.transform("cotton gujarat kharif"))
	if close <= far {
		t.Fatalf("overlap ordering broken: close %v <= far %v", close, far)
	}
}

func TestExtractTermsDropsStopWordsAndEmitsBigrams(t *testing.T) {
	terms := extractTerms("Subsidy for the Wheat Farmers")
	want := map[string]bool{
		"subsidy":       true,
		"wheat":         true,
		"farmers":       true,
		"subsidy wheat": true,
		"wheat farmers": true,
	}
	if len(terms) != len(want) {
		t.Fatalf("extractTerms = %q, want %d terms", terms, len(want))
	}
	for _, term := range terms {
		if !want[term] {
			t.Fatalf("unexpected term %q in %q", term, terms)
		}
	}
}

func TestExtractTermsLowercasesAndSplitsPunctuation(t *testing.T) {
	terms := extractTerms("PM-KISAN (2024): ₹6,000/year")
	got := map[string]bool{}
	for _, term := range terms {
		got[term] = true
	}
	for _, want := range []string{"pm", "kisan", "2024", "6", "000", "year", "pm kisan"} {
		if !got[want] {
			t.Fatalf("extractTerms missing %q, got %q", want, terms)
		}
	}
}

func TestFitTFIDFRarerTermsWeighHeavier(t *testing.T) {
	model, err := fitTFIDF([]string{
		"wheat punjab",
		"wheat haryana",
		"wheat rajasthan",
	})
	if err != nil {
		t.Fatalf("fitTFIDF: %v", err)
	}

	common, ok := model.vocabulary["wheat"]
	if !ok {
		t.Fatal("vocabulary missing common term")
	}
	rare, ok := model.vocabulary["punjab"]
	if !ok {
		t.Fatal("vocabulary missing rare term")
	}
	if model.idf[rare] <= model.idf[common] {
		t.Fatalf("idf(rare) = %v <= idf(common) = %v", model.idf[rare], model.idf[common])
	}
}
