package usecase

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// maxVocabularyTerms caps the vector space. Request corpora are tens of
// documents, so the cap only matters for pathological inputs.
const maxVocabularyTerms = 5000

// tfidfModel is a per-request term-frequency/inverse-document-frequency
// space over unigrams and bigrams with English stop words removed. Nothing
// is shared across requests; every call builds a fresh model.
type tfidfModel struct {
	vocabulary map[string]int
	idf        []float64
}

// fitTFIDF learns vocabulary and document frequencies from the corpus. It
// fails when the corpus yields no terms at all (every document empty or all
// stop words); callers treat that as a ranking failure and fall back.
func fitTFIDF(docs []string) (*tfidfModel, error) {
	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)
	for _, doc := range docs {
		terms := extractTerms(doc)
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			corpusFreq[term]++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			docFreq[term]++
		}
	}
	if len(docFreq) == 0 {
		return nil, errors.New("empty vocabulary")
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	// Keep the most frequent terms when over the cap; lexical order breaks
	// ties so the space is deterministic.
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabularyTerms {
		terms = terms[:maxVocabularyTerms]
	}

	model := &tfidfModel{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	total := float64(len(docs))
	for i, term := range terms {
		model.vocabulary[term] = i
		model.idf[i] = math.Log((1+total)/(1+float64(docFreq[term]))) + 1
	}
	return model, nil
}

// transform produces the L2-normalized sparse TF-IDF vector of one document.
func (m *tfidfModel) transform(doc string) map[int]float64 {
	vec := make(map[int]float64)
	for _, term := range extractTerms(doc) {
		index, ok := m.vocabulary[term]
		if !ok {
			continue
		}
		vec[index] += m.idf[index]
	}

	norm := 0.0
	for _, weight := range vec {
		norm += weight * weight
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for index, weight := range vec {
		vec[index] = weight / norm
	}
	return vec
}

// cosineSimilarity of two L2-normalized sparse vectors. All weights are
// non-negative, so the result lies in [0, 1].
func cosineSimilarity(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	dot := 0.0
	for index, weight := range a {
		dot += weight * b[index]
	}
	if math.IsNaN(dot) {
		return 0
	}
	return dot
}

// extractTerms tokenizes lowercase alphanumeric runs, drops English stop
// words and emits unigrams plus adjacent bigrams.
func extractTerms(doc string) []string {
	tokens := splitAlphaNumLower(doc)
	kept := tokens[:0]
	for _, token := range tokens {
		if _, stop := englishStopWords[token]; stop {
			continue
		}
		kept = append(kept, token)
	}

	terms := make([]string, 0, len(kept)*2)
	for i, token := range kept {
		terms = append(terms, token)
		if i+1 < len(kept) {
			terms = append(terms, token+" "+kept[i+1])
		}
	}
	return terms
}

func splitAlphaNumLower(s string) []string {
	if s == "" {
		return nil
	}

	tokens := make([]string, 0, 16)
	var b strings.Builder
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

var englishStopWords = func() map[string]struct{} {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am",
		"an", "and", "any", "are", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can",
		"did", "do", "does", "doing", "down", "during", "each", "few",
		"for", "from", "further", "had", "has", "have", "having", "he",
		"her", "here", "hers", "him", "his", "how", "i", "if", "in",
		"into", "is", "it", "its", "itself", "just", "me", "more", "most",
		"my", "no", "nor", "not", "now", "of", "off", "on", "once",
		"only", "or", "other", "our", "ours", "out", "over", "own",
		"per", "same", "she", "should", "so", "some", "such", "than",
		"that", "the", "their", "theirs", "them", "then", "there",
		"these", "they", "this", "those", "through", "to", "too", "under",
		"until", "up", "upon", "very", "was", "we", "were", "what",
		"when", "where", "which", "while", "who", "whom", "why", "will",
		"with", "you", "your", "yours",
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}()
