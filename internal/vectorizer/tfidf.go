package vectorizer

import "math"

// TfidfVectorizer converts normalized text to TF-IDF weighted vectors with
// smooth IDF and L2 normalization.
type TfidfVectorizer struct {
	CountVec *CountVectorizer `json:"count_vec"`
	IDF      []float64        `json:"idf"`
}

// NewTfidfVectorizer creates a TfidfVectorizer.
func NewTfidfVectorizer(minDF int) *TfidfVectorizer {
	return &TfidfVectorizer{CountVec: NewCountVectorizer(false, minDF)}
}

// Fit learns the vocabulary and IDF weights from a corpus.
func (tv *TfidfVectorizer) Fit(corpus []string) {
	tv.CountVec.Fit(corpus)

	nDocs := float64(len(corpus))
	vocabSize := tv.CountVec.VocabSize()

	df := make([]float64, vocabSize)
	for _, doc := range corpus {
		sv := tv.CountVec.Transform(doc)
		for _, idx := range sv.Indices {
			df[idx]++
		}
	}

	// Smooth IDF: log((1 + n) / (1 + df)) + 1.
	tv.IDF = make([]float64, vocabSize)
	for i := 0; i < vocabSize; i++ {
		tv.IDF[i] = math.Log((1+nDocs)/(1+df[i])) + 1
	}
}

// FitTransform fits and transforms the corpus.
func (tv *TfidfVectorizer) FitTransform(corpus []string) []SparseVector {
	tv.Fit(corpus)
	result := make([]SparseVector, len(corpus))
	for i, doc := range corpus {
		result[i] = tv.Transform(doc)
	}
	return result
}

// Transform converts a single document to an L2-normalized TF-IDF vector.
func (tv *TfidfVectorizer) Transform(text string) SparseVector {
	sv := tv.CountVec.Transform(text)

	for i, idx := range sv.Indices {
		if idx < len(tv.IDF) {
			sv.Values[i] *= tv.IDF[idx]
		}
	}

	norm := sv.L2Norm()
	if norm > 0 {
		for i := range sv.Values {
			sv.Values[i] /= norm
		}
	}
	return sv
}

// VocabSize returns the number of fitted terms.
func (tv *TfidfVectorizer) VocabSize() int { return tv.CountVec.VocabSize() }
