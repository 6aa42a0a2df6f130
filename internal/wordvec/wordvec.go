// Package wordvec trains dense word vectors over per-document token lists
// and assembles vocabulary-indexed embedding tables.
package wordvec

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"

	"github.com/ynqa/wego/pkg/embedding"
	"github.com/ynqa/wego/pkg/model/modelutil/vector"
	"github.com/ynqa/wego/pkg/model/word2vec"
)

// Mode selects the word2vec training objective.
type Mode string

const (
	// CBOW predicts the center token from its surrounding context window.
	CBOW Mode = "cbow"
	// SkipGram predicts each context token individually from the center token.
	SkipGram Mode = "skipgram"
)

// Config holds embedding training settings.
type Config struct {
	Mode       Mode
	Dim        int
	Window     int
	MinCount   int
	Iter       int
	Goroutines int
	Verbose    bool
}

// DefaultConfig returns the standard training settings for a mode.
func DefaultConfig(mode Mode) Config {
	return Config{
		Mode:     mode,
		Dim:      300,
		Window:   10,
		MinCount: 100,
		Iter:     50,
	}
}

// Train fits word vectors over the token lists and returns a token->vector
// mapping. Only tokens whose corpus frequency met MinCount receive a vector;
// everything else must fall back to a default vector downstream.
func Train(docs [][]string, cfg Config) (map[string][]float64, error) {
	opts := word2vec.Options{
		BatchSize:          1024,
		Dim:                cfg.Dim,
		DocInMemory:        true,
		Goroutines:         cfg.Goroutines,
		Initlr:             0.025,
		Iter:               cfg.Iter,
		LogBatch:           100000,
		MaxCount:           -1,
		MaxDepth:           100,
		MinCount:           cfg.MinCount,
		MinLR:              0.0000025,
		NegativeSampleSize: 5,
		OptimizerType:      "ns",
		SubsampleThreshold: 0.001,
		ToLower:            false,
		UpdateLRBatch:      100000,
		Verbose:            cfg.Verbose,
		Window:             cfg.Window,
	}
	if opts.Goroutines <= 0 {
		opts.Goroutines = runtime.NumCPU()
	}
	switch cfg.Mode {
	case CBOW:
		opts.ModelType = "cbow"
	case SkipGram:
		opts.ModelType = "skipgram"
	default:
		return nil, fmt.Errorf("wordvec: unknown mode %q", cfg.Mode)
	}

	model, err := word2vec.NewForOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("wordvec: %w", err)
	}

	var sb strings.Builder
	for _, doc := range docs {
		if len(doc) == 0 {
			continue
		}
		sb.WriteString(strings.Join(doc, " "))
		sb.WriteByte('\n')
	}
	if err := model.Train(bytes.NewReader([]byte(sb.String()))); err != nil {
		return nil, fmt.Errorf("wordvec: train: %w", err)
	}

	var buf bytes.Buffer
	if err := model.Save(&buf, vector.Agg); err != nil {
		return nil, fmt.Errorf("wordvec: save: %w", err)
	}
	embs, err := embedding.Load(&buf)
	if err != nil {
		return nil, fmt.Errorf("wordvec: load: %w", err)
	}

	trained := make(map[string][]float64, len(embs))
	for _, emb := range embs {
		trained[emb.Word] = emb.Vector
	}
	return trained, nil
}
