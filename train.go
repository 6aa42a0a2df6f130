package sentivec

import (
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/happyhackingspace/sentivec/internal/classifier"
	"github.com/happyhackingspace/sentivec/internal/dataset"
	"github.com/happyhackingspace/sentivec/internal/metrics"
	"github.com/happyhackingspace/sentivec/internal/textnorm"
	"github.com/happyhackingspace/sentivec/internal/vocab"
	"github.com/happyhackingspace/sentivec/internal/wordvec"
)

// TrainConfig holds configuration for the full pipeline.
type TrainConfig struct {
	VocabSize     int     // vocabulary cap, reserved markers included
	SeqLen        int     // fixed id-sequence length
	Dim           int     // embedding dimensionality
	MinCount      int     // minimum token frequency for embedding training
	Window        int     // context window size
	Passes        int     // embedding training iterations
	Epochs        int     // classifier training epochs
	BatchSize     int     // classifier mini-batch size
	LearningRate  float64 // classifier learning rate
	TrainRatio    float64 // train split share
	Seed          int64   // split shuffle and table init seed
	Threshold     float64 // decision threshold
	BaselineMinDF int     // TF-IDF baseline min document frequency
	Goroutines    int     // embedding trainer worker hint, 0 = NumCPU
	CacheDir      string  // artifact cache directory, empty disables caching
	Verbose       bool
}

// DefaultTrainConfig returns the standard pipeline settings.
func DefaultTrainConfig() *TrainConfig {
	return &TrainConfig{
		VocabSize:     15000,
		SeqLen:        100,
		Dim:           300,
		MinCount:      100,
		Window:        10,
		Passes:        50,
		Epochs:        10,
		BatchSize:     32,
		LearningRate:  0.5,
		TrainRatio:    0.8,
		Seed:          42,
		Threshold:     DefaultThreshold,
		BaselineMinDF: 2,
	}
}

// ReportRow holds the test-split metrics of one model configuration.
type ReportRow struct {
	Model     string  // "cbow", "skipgram" or "tfidf"
	Trainable bool    // embeddings updated during classifier training
	Recall    float64
	Precision float64
	ROCAUC    float64
}

// Report holds evaluation results for every configuration.
type Report struct {
	Rows []ReportRow
}

// Train runs the full pipeline on a labeled reviews CSV and returns an
// analyzer backed by the skip-gram trainable configuration.
func Train(dataPath string, cfg *TrainConfig) (*Analyzer, error) {
	if cfg == nil {
		cfg = DefaultTrainConfig()
	}
	p, err := buildPipeline(dataPath, cfg)
	if err != nil {
		return nil, err
	}

	table, err := p.trainTable(wordvec.SkipGram)
	if err != nil {
		return nil, err
	}

	model, _, err := p.fitClassifier(table, true)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		norm:      p.norm,
		vocab:     p.vocab,
		model:     model,
		threshold: cfg.Threshold,
		variant:   string(wordvec.SkipGram),
		trainable: true,
	}, nil
}

// Evaluate runs the full pipeline and scores every (embedding variant x
// trainable/frozen) configuration plus the TF-IDF baseline on the test
// split.
func Evaluate(dataPath string, cfg *TrainConfig) (*Report, error) {
	if cfg == nil {
		cfg = DefaultTrainConfig()
	}
	p, err := buildPipeline(dataPath, cfg)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, mode := range []wordvec.Mode{wordvec.CBOW, wordvec.SkipGram} {
		table, err := p.trainTable(mode)
		if err != nil {
			return nil, err
		}
		for _, trainable := range []bool{false, true} {
			_, row, err := p.fitClassifier(table, trainable)
			if err != nil {
				return nil, err
			}
			row.Model = string(mode)
			report.Rows = append(report.Rows, row)
		}
	}

	row, err := p.fitBaseline()
	if err != nil {
		return nil, err
	}
	report.Rows = append(report.Rows, row)
	return report, nil
}

// pipeline holds the immutable artifacts shared by every configuration.
type pipeline struct {
	cfg   *TrainConfig
	norm  *textnorm.Normalizer
	vocab *vocab.Vocabulary

	trainNorm   []string
	testNorm    []string
	trainSeqs   [][]int
	testSeqs    [][]int
	trainLabels []int
	testLabels  []int
	tokenLists  [][]string
}

func buildPipeline(dataPath string, cfg *TrainConfig) (*pipeline, error) {
	reviews, err := dataset.LoadCSV(dataPath)
	if err != nil {
		return nil, fmt.Errorf("sentivec: %w", err)
	}
	trainSet, testSet := dataset.Split(reviews, cfg.TrainRatio, cfg.Seed)
	if len(trainSet) == 0 || len(testSet) == 0 {
		return nil, fmt.Errorf("sentivec: split produced an empty side (%d/%d)", len(trainSet), len(testSet))
	}
	slog.Info("Dataset loaded", "reviews", len(reviews), "train", len(trainSet), "test", len(testSet))

	norm, err := textnorm.New()
	if err != nil {
		return nil, fmt.Errorf("sentivec: %w", err)
	}

	p := &pipeline{
		cfg:         cfg,
		norm:        norm,
		trainLabels: dataset.Labels(trainSet),
		testLabels:  dataset.Labels(testSet),
	}

	cache := dataset.NewCache(cfg.CacheDir)
	start := time.Now()
	if cache.Has("normalized_train") && cache.Has("normalized_test") {
		if err := cache.Load("normalized_train", &p.trainNorm); err != nil {
			return nil, err
		}
		if err := cache.Load("normalized_test", &p.testNorm); err != nil {
			return nil, err
		}
		slog.Info("Normalized corpus loaded from cache", "dir", cfg.CacheDir)
	} else {
		if p.trainNorm, err = norm.NormalizeAll(dataset.Texts(trainSet)); err != nil {
			return nil, fmt.Errorf("sentivec: normalize train split: %w", err)
		}
		if p.testNorm, err = norm.NormalizeAll(dataset.Texts(testSet)); err != nil {
			return nil, fmt.Errorf("sentivec: normalize test split: %w", err)
		}
		slog.Info("Corpus normalized", "duration", time.Since(start))
		if err := cache.Save("normalized_train", p.trainNorm); err != nil {
			return nil, err
		}
		if err := cache.Save("normalized_test", p.testNorm); err != nil {
			return nil, err
		}
	}

	// The vocabulary only ever adapts on the training split.
	p.vocab = vocab.Build(vocab.TrainingCorpus(p.trainNorm), cfg.VocabSize, cfg.SeqLen)
	slog.Info("Vocabulary built", "size", p.vocab.Size(), "seq_len", cfg.SeqLen)

	p.trainSeqs = p.vocab.EncodeAll(p.trainNorm)
	p.testSeqs = p.vocab.EncodeAll(p.testNorm)

	if cache.Has("token_lists") {
		if err := cache.Load("token_lists", &p.tokenLists); err != nil {
			return nil, err
		}
		slog.Info("Token lists loaded from cache", "dir", cfg.CacheDir)
	} else {
		p.tokenLists = p.vocab.MaterializeAll(p.trainSeqs)
		if err := cache.Save("token_lists", p.tokenLists); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// trainTable trains one embedding variant and assembles its lookup table.
func (p *pipeline) trainTable(mode wordvec.Mode) (*mat.Dense, error) {
	cfg := p.cfg
	start := time.Now()
	trained, err := wordvec.Train(p.tokenLists, wordvec.Config{
		Mode:       mode,
		Dim:        cfg.Dim,
		Window:     cfg.Window,
		MinCount:   cfg.MinCount,
		Iter:       cfg.Passes,
		Goroutines: cfg.Goroutines,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("sentivec: %w", err)
	}
	slog.Info("Embeddings trained",
		"mode", mode, "vectors", len(trained), "duration", time.Since(start))

	return wordvec.Assemble(p.vocab, trained, cfg.Dim, cfg.Seed), nil
}

// fitClassifier trains one classifier configuration on a private copy of
// the table and scores it on the test split.
func (p *pipeline) fitClassifier(table *mat.Dense, trainable bool) (*classifier.Model, ReportRow, error) {
	cfg := p.cfg

	model, err := classifier.New(mat.DenseCopyOf(table), p.vocab.Size(), cfg.Dim, cfg.SeqLen)
	if err != nil {
		return nil, ReportRow{}, fmt.Errorf("sentivec: %w", err)
	}

	ccfg := classifier.Config{
		Epochs:          cfg.Epochs,
		BatchSize:       cfg.BatchSize,
		LearningRate:    cfg.LearningRate,
		TrainEmbeddings: trainable,
		Seed:            cfg.Seed,
		Verbose:         cfg.Verbose,
	}
	start := time.Now()
	if err := model.Fit(p.trainSeqs, p.trainLabels, ccfg); err != nil {
		return nil, ReportRow{}, fmt.Errorf("sentivec: %w", err)
	}
	slog.Debug("Classifier trained", "trainable", trainable, "duration", time.Since(start))

	preds := make([]int, len(p.testSeqs))
	scores := make([]float64, len(p.testSeqs))
	for i, seq := range p.testSeqs {
		scores[i] = model.Proba(seq)
		preds[i] = model.Classify(seq, cfg.Threshold)
	}
	row := ReportRow{
		Trainable: trainable,
		Recall:    metrics.Recall(p.testLabels, preds),
		Precision: metrics.Precision(p.testLabels, preds),
		ROCAUC:    metrics.ROCAUC(p.testLabels, scores),
	}
	return model, row, nil
}

// fitBaseline trains and scores the TF-IDF bag-of-words reference model.
func (p *pipeline) fitBaseline() (ReportRow, error) {
	cfg := p.cfg

	ccfg := classifier.Config{
		Epochs:       cfg.Epochs,
		BatchSize:    cfg.BatchSize,
		LearningRate: cfg.LearningRate,
		Seed:         cfg.Seed,
		Verbose:      cfg.Verbose,
	}
	b, err := classifier.TrainBaseline(p.trainNorm, p.trainLabels, cfg.BaselineMinDF, ccfg)
	if err != nil {
		return ReportRow{}, fmt.Errorf("sentivec: %w", err)
	}

	preds := make([]int, len(p.testNorm))
	scores := make([]float64, len(p.testNorm))
	for i, doc := range p.testNorm {
		scores[i] = b.Proba(doc)
		preds[i] = b.Classify(doc, cfg.Threshold)
	}
	return ReportRow{
		Model:     "tfidf",
		Recall:    metrics.Recall(p.testLabels, preds),
		Precision: metrics.Precision(p.testLabels, preds),
		ROCAUC:    metrics.ROCAUC(p.testLabels, scores),
	}, nil
}
