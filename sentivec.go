// Package sentivec classifies movie review sentiment with word-embedding
// models trained from the reviews themselves.
//
//	a, _ := sentivec.New()
//	label, p, _ := a.Classify("a warm, funny and quietly moving picture")
//	fmt.Println(label, p) // "positive" 0.93
package sentivec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/happyhackingspace/sentivec/internal/classifier"
	"github.com/happyhackingspace/sentivec/internal/textnorm"
	"github.com/happyhackingspace/sentivec/internal/vocab"
)

// DefaultThreshold is the decision threshold: probabilities at or above it
// classify as positive.
const DefaultThreshold = 0.5

// Analyzer wraps a trained sentiment model together with the normalizer and
// vocabulary it was trained with.
type Analyzer struct {
	norm      *textnorm.Normalizer
	vocab     *vocab.Vocabulary
	model     *classifier.Model
	threshold float64
	variant   string
	trainable bool
}

// modelFile is the JSON layout of model.json. The threshold is a pointer so
// an absent field is distinguishable from a stored zero.
type modelFile struct {
	Variant   string      `json:"variant"`
	Trainable bool        `json:"trainable"`
	Threshold *float64    `json:"threshold"`
	SeqLen    int         `json:"seq_len"`
	Dim       int         `json:"dim"`
	Tokens    []string    `json:"tokens"`
	Table     [][]float64 `json:"table"`
	Weights   []float64   `json:"weights"`
	Bias      float64     `json:"bias"`
}

// New loads the analyzer from "model.json", searching the current directory
// and parent directories up to the module root (where go.mod lives).
func New() (*Analyzer, error) {
	path, err := findModel("model.json")
	if err != nil {
		return nil, fmt.Errorf("sentivec: %w", err)
	}
	return Load(path)
}

func findModel(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		// Stop at module root
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("model.json not found")
}

// ModelDir returns the per-user cache directory for downloaded models.
func ModelDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "sentivec")
}

// Load loads a trained analyzer from a model file.
func Load(path string) (*Analyzer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sentivec: %w", err)
	}
	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("sentivec: parse %s: %w", path, err)
	}

	voc, err := vocab.FromTokens(mf.Tokens, mf.SeqLen)
	if err != nil {
		return nil, fmt.Errorf("sentivec: %w", err)
	}
	if len(mf.Table) != voc.Size() {
		return nil, fmt.Errorf("sentivec: table has %d rows for %d tokens", len(mf.Table), voc.Size())
	}
	table := mat.NewDense(voc.Size(), mf.Dim, nil)
	for i, row := range mf.Table {
		if len(row) != mf.Dim {
			return nil, fmt.Errorf("sentivec: table row %d has %d columns, want %d", i, len(row), mf.Dim)
		}
		table.SetRow(i, row)
	}

	if len(mf.Weights) != mf.Dim {
		return nil, fmt.Errorf("sentivec: model has %d weights for dimension %d", len(mf.Weights), mf.Dim)
	}

	model, err := classifier.New(table, voc.Size(), mf.Dim, mf.SeqLen)
	if err != nil {
		return nil, fmt.Errorf("sentivec: %w", err)
	}
	model.Weights = mf.Weights
	model.Bias = mf.Bias

	norm, err := textnorm.New()
	if err != nil {
		return nil, fmt.Errorf("sentivec: %w", err)
	}

	threshold := DefaultThreshold
	if mf.Threshold != nil {
		threshold = *mf.Threshold
	}
	return &Analyzer{
		norm:      norm,
		vocab:     voc,
		model:     model,
		threshold: threshold,
		variant:   mf.Variant,
		trainable: mf.Trainable,
	}, nil
}

// Save writes the analyzer to a model file.
func (a *Analyzer) Save(path string) error {
	if a.model == nil {
		return fmt.Errorf("sentivec: analyzer not initialized")
	}

	rows, cols := a.model.Table.Dims()
	table := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		table[i] = append([]float64(nil), a.model.Table.RawRowView(i)...)
	}

	mf := modelFile{
		Variant:   a.variant,
		Trainable: a.trainable,
		Threshold: &a.threshold,
		SeqLen:    a.vocab.SeqLen(),
		Dim:       cols,
		Tokens:    a.vocab.Tokens(),
		Table:     table,
		Weights:   a.model.Weights,
		Bias:      a.model.Bias,
	}
	data, err := json.Marshal(mf)
	if err != nil {
		return fmt.Errorf("sentivec: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("sentivec: %w", err)
	}
	return nil
}

// Classify normalizes and scores a raw review. It returns the label
// ("positive" or "negative") and the positive-class probability.
func (a *Analyzer) Classify(text string) (string, float64, error) {
	if a.model == nil {
		return "", 0, fmt.Errorf("sentivec: analyzer not initialized")
	}
	normalized, err := a.norm.Normalize(text)
	if err != nil {
		return "", 0, fmt.Errorf("sentivec: %w", err)
	}

	seq := a.vocab.Encode(normalized)
	p := a.model.Proba(seq)
	if p >= a.threshold {
		return "positive", p, nil
	}
	return "negative", p, nil
}

// Embeddings returns the embedding vectors and tokens of the topN most
// frequent vocabulary entries. Reserved marker rows are skipped. The
// vocabulary orders tokens by frequency, so the lowest real indices are
// the most frequent words.
func (a *Analyzer) Embeddings(topN int) (*mat.Dense, []string) {
	tokens := a.vocab.Tokens()
	first := vocab.UnknownIndex + 1
	n := len(tokens) - first
	if topN > 0 && topN < n {
		n = topN
	}
	if n <= 0 {
		return &mat.Dense{}, nil
	}

	_, dim := a.model.Table.Dims()
	out := mat.NewDense(n, dim, nil)
	words := make([]string, n)
	for i := 0; i < n; i++ {
		out.SetRow(i, a.model.Table.RawRowView(first+i))
		words[i] = tokens[first+i]
	}
	return out, words
}

// Variant reports which embedding objective the model was trained with.
func (a *Analyzer) Variant() string { return a.variant }

// Trainable reports whether the embedding table was updated during
// classifier training.
func (a *Analyzer) Trainable() bool { return a.trainable }
