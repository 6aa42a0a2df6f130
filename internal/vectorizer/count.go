package vectorizer

import (
	"sort"
	"strings"
)

// CountVectorizer converts normalized text to token count vectors. Input is
// expected to be the normalizer's output, so analysis is a plain
// whitespace split.
type CountVectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	Binary     bool           `json:"binary"`
	MinDF      int            `json:"min_df"`
}

// NewCountVectorizer creates a CountVectorizer. minDF below 1 is clamped.
func NewCountVectorizer(binary bool, minDF int) *CountVectorizer {
	if minDF < 1 {
		minDF = 1
	}
	return &CountVectorizer{Binary: binary, MinDF: minDF}
}

// Fit builds the term vocabulary from a corpus, keeping terms that appear in
// at least MinDF documents. Terms are ordered alphabetically so repeated
// fits are identical.
func (cv *CountVectorizer) Fit(corpus []string) {
	dfCounts := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range strings.Fields(doc) {
			if !seen[tok] {
				dfCounts[tok]++
				seen[tok] = true
			}
		}
	}

	terms := make([]string, 0, len(dfCounts))
	for term, count := range dfCounts {
		if count >= cv.MinDF {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)

	cv.Vocabulary = make(map[string]int, len(terms))
	for i, term := range terms {
		cv.Vocabulary[term] = i
	}
}

// FitTransform fits the vocabulary and transforms the corpus.
func (cv *CountVectorizer) FitTransform(corpus []string) []SparseVector {
	cv.Fit(corpus)
	result := make([]SparseVector, len(corpus))
	for i, doc := range corpus {
		result[i] = cv.Transform(doc)
	}
	return result
}

// Transform converts a single document to a sparse count vector. Terms
// outside the fitted vocabulary are ignored.
func (cv *CountVectorizer) Transform(text string) SparseVector {
	sv := NewSparseVector(len(cv.Vocabulary))

	counts := make(map[int]float64)
	for _, tok := range strings.Fields(text) {
		if idx, ok := cv.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	for idx, count := range counts {
		if cv.Binary {
			sv.Set(idx, 1.0)
		} else {
			sv.Set(idx, count)
		}
	}
	return sv
}

// VocabSize returns the number of fitted terms.
func (cv *CountVectorizer) VocabSize() int { return len(cv.Vocabulary) }
