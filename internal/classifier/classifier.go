// Package classifier trains binary sentiment models: a sigmoid linear model
// over mean-pooled embedding lookups, and a TF-IDF bag-of-words baseline.
package classifier

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Config holds classifier training settings.
type Config struct {
	Epochs       int
	BatchSize    int
	LearningRate float64
	// TrainEmbeddings lets gradients flow into the looked-up embedding
	// rows instead of keeping the table frozen.
	TrainEmbeddings bool
	Seed            int64
	Verbose         bool
}

// DefaultConfig returns the standard training settings.
func DefaultConfig() Config {
	return Config{
		Epochs:       10,
		BatchSize:    32,
		LearningRate: 0.5,
		Seed:         42,
	}
}

// Model is a sigmoid linear classifier over mean-pooled rows of an
// embedding lookup table.
type Model struct {
	Table   *mat.Dense
	Weights []float64
	Bias    float64
	SeqLen  int

	dim int
}

// New validates the embedding table against the expected vocabulary size and
// dimensionality. A shape mismatch is a configuration error and is rejected
// here, before any training starts.
func New(table *mat.Dense, vocabSize, dim, seqLen int) (*Model, error) {
	rows, cols := table.Dims()
	if rows != vocabSize || cols != dim {
		return nil, fmt.Errorf("classifier: embedding table is %dx%d, want %dx%d", rows, cols, vocabSize, dim)
	}
	if seqLen <= 0 {
		return nil, fmt.Errorf("classifier: sequence length must be positive, got %d", seqLen)
	}
	return &Model{
		Table:   table,
		Weights: make([]float64, dim),
		SeqLen:  seqLen,
		dim:     dim,
	}, nil
}

// pool averages the embedding rows of every position in the sequence,
// padding rows included.
func (m *Model) pool(seq []int) []float64 {
	x := make([]float64, m.dim)
	for _, id := range seq {
		row := m.Table.RawRowView(id)
		for d, v := range row {
			x[d] += v
		}
	}
	inv := 1.0 / float64(len(seq))
	for d := range x {
		x[d] *= inv
	}
	return x
}

// Proba returns the positive-class probability for one id sequence.
func (m *Model) Proba(seq []int) float64 {
	x := m.pool(seq)
	return sigmoid(dot(m.Weights, x) + m.Bias)
}

// Classify applies the decision threshold: probabilities at or above it are
// positive (1), everything below is negative (0).
func (m *Model) Classify(seq []int, threshold float64) int {
	if m.Proba(seq) >= threshold {
		return 1
	}
	return 0
}

// Fit trains the model with mini-batch gradient descent. Every sequence must
// be exactly SeqLen ids long and labels must be 0 or 1.
func (m *Model) Fit(seqs [][]int, labels []int, cfg Config) error {
	if len(seqs) != len(labels) {
		return fmt.Errorf("classifier: %d sequences but %d labels", len(seqs), len(labels))
	}
	for i, seq := range seqs {
		if len(seq) != m.SeqLen {
			return fmt.Errorf("classifier: sequence %d has length %d, want %d", i, len(seq), m.SeqLen)
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	order := rng.Perm(len(seqs))
	lr := cfg.LearningRate

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		var epochLoss float64
		for start := 0; start < len(order); start += cfg.BatchSize {
			end := min(start+cfg.BatchSize, len(order))
			batch := order[start:end]
			scale := lr / float64(len(batch))

			gw := make([]float64, m.dim)
			var gb float64
			for _, idx := range batch {
				x := m.pool(seqs[idx])
				p := sigmoid(dot(m.Weights, x) + m.Bias)
				y := float64(labels[idx])
				diff := p - y
				epochLoss += logLoss(p, y)

				for d := range gw {
					gw[d] += diff * x[d]
				}
				gb += diff

				if cfg.TrainEmbeddings {
					// d(pool)/d(row) contributes 1/SeqLen per occurrence.
					coef := scale * diff / float64(m.SeqLen)
					for _, id := range seqs[idx] {
						row := m.Table.RawRowView(id)
						for d := range row {
							row[d] -= coef * m.Weights[d]
						}
					}
				}
			}

			for d := range m.Weights {
				m.Weights[d] -= scale * gw[d]
			}
			m.Bias -= scale * gb
		}

		if cfg.Verbose {
			slog.Debug("classifier epoch",
				"epoch", epoch+1,
				"loss", epochLoss/float64(len(seqs)),
				"trainable", cfg.TrainEmbeddings)
		}
	}
	return nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// logLoss is the binary cross entropy with clamped probabilities.
func logLoss(p, y float64) float64 {
	const eps = 1e-12
	p = math.Min(math.Max(p, eps), 1-eps)
	if y > 0.5 {
		return -math.Log(p)
	}
	return -math.Log(1 - p)
}
