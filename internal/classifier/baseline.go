package classifier

import (
	"fmt"
	"math/rand"

	"github.com/happyhackingspace/sentivec/internal/vectorizer"
)

// Baseline is a sigmoid linear model over TF-IDF document vectors, trained
// the same way as the embedding model. It anchors the report so the
// embedding configurations have a bag-of-words reference point.
type Baseline struct {
	Vectorizer *vectorizer.TfidfVectorizer
	Weights    []float64
	Bias       float64
}

// TrainBaseline fits the TF-IDF vectorizer on the normalized training
// documents and trains the linear model with mini-batch gradient descent.
func TrainBaseline(docs []string, labels []int, minDF int, cfg Config) (*Baseline, error) {
	if len(docs) != len(labels) {
		return nil, fmt.Errorf("classifier: %d documents but %d labels", len(docs), len(labels))
	}

	tv := vectorizer.NewTfidfVectorizer(minDF)
	vecs := tv.FitTransform(docs)

	b := &Baseline{
		Vectorizer: tv,
		Weights:    make([]float64, tv.VocabSize()),
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	order := rng.Perm(len(vecs))
	lr := cfg.LearningRate

	for e := 0; e < cfg.Epochs; e++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for start := 0; start < len(order); start += cfg.BatchSize {
			end := min(start+cfg.BatchSize, len(order))
			batch := order[start:end]
			scale := lr / float64(len(batch))

			var gb float64
			gw := make(map[int]float64)
			for _, idx := range batch {
				sv := vecs[idx]
				p := sigmoid(sv.Dot(b.Weights) + b.Bias)
				diff := p - float64(labels[idx])

				for i, col := range sv.Indices {
					gw[col] += diff * sv.Values[i]
				}
				gb += diff
			}

			for col, g := range gw {
				b.Weights[col] -= scale * g
			}
			b.Bias -= scale * gb
		}
	}
	return b, nil
}

// Proba returns the positive-class probability for a normalized document.
func (b *Baseline) Proba(normalized string) float64 {
	sv := b.Vectorizer.Transform(normalized)
	return sigmoid(sv.Dot(b.Weights) + b.Bias)
}

// Classify applies the decision threshold, positive at or above it.
func (b *Baseline) Classify(normalized string, threshold float64) int {
	if b.Proba(normalized) >= threshold {
		return 1
	}
	return 0
}
