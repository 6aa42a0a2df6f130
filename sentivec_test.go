package sentivec

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var positivePhrases = []string{
	"wonderful film with excellent acting and a moving story",
	"brilliant direction superb cast loved every minute",
	"excellent story wonderful characters truly great film",
	"great acting brilliant script a wonderful experience",
	"superb film excellent pacing loved the ending",
}

var negativePhrases = []string{
	"terrible film with awful acting and a boring story",
	"dreadful direction horrible cast hated every minute",
	"awful story terrible characters truly boring film",
	"boring acting dreadful script a horrible experience",
	"horrible film awful pacing hated the ending",
}

// writeDataset builds a small balanced reviews CSV.
func writeDataset(t *testing.T, rows int) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("review,sentiment\n")
	for i := 0; i < rows; i++ {
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%q,positive\n", positivePhrases[i%len(positivePhrases)])
		} else {
			fmt.Fprintf(&sb, "%q,negative\n", negativePhrases[i%len(negativePhrases)])
		}
	}
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func smallConfig() *TrainConfig {
	cfg := DefaultTrainConfig()
	cfg.VocabSize = 100
	cfg.SeqLen = 12
	cfg.Dim = 16
	cfg.MinCount = 2
	cfg.Window = 3
	cfg.Passes = 5
	cfg.Epochs = 30
	cfg.BatchSize = 8
	cfg.Seed = 7
	return cfg
}

func TestEvaluateReportShape(t *testing.T) {
	if testing.Short() {
		t.Skip("full pipeline in short mode")
	}

	report, err := Evaluate(writeDataset(t, 100), smallConfig())
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		model     string
		trainable bool
	}{
		{"cbow", false},
		{"cbow", true},
		{"skipgram", false},
		{"skipgram", true},
		{"tfidf", false},
	}
	if len(report.Rows) != len(want) {
		t.Fatalf("report has %d rows, want %d", len(report.Rows), len(want))
	}
	for i, w := range want {
		row := report.Rows[i]
		if row.Model != w.model || row.Trainable != w.trainable {
			t.Errorf("row %d = %s/%v, want %s/%v", i, row.Model, row.Trainable, w.model, w.trainable)
		}
		for name, v := range map[string]float64{
			"recall": row.Recall, "precision": row.Precision, "roc-auc": row.ROCAUC,
		} {
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Errorf("row %d %s = %v, want value in [0,1]", i, name, v)
			}
		}
	}
}

func TestTrainSaveLoadClassify(t *testing.T) {
	if testing.Short() {
		t.Skip("full pipeline in short mode")
	}

	a, err := Train(writeDataset(t, 100), smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	if a.Variant() != "skipgram" || !a.Trainable() {
		t.Errorf("trained analyzer is %s/trainable=%v", a.Variant(), a.Trainable())
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := a.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	text := "a wonderful film with excellent acting"
	wantLabel, wantProba, err := a.Classify(text)
	if err != nil {
		t.Fatal(err)
	}
	gotLabel, gotProba, err := loaded.Classify(text)
	if err != nil {
		t.Fatal(err)
	}
	if gotLabel != wantLabel || math.Abs(gotProba-wantProba) > 1e-9 {
		t.Errorf("loaded model disagrees: %s/%v vs %s/%v", gotLabel, gotProba, wantLabel, wantProba)
	}
}

func TestEvaluateUsesArtifactCache(t *testing.T) {
	if testing.Short() {
		t.Skip("full pipeline in short mode")
	}

	cfg := smallConfig()
	cfg.CacheDir = t.TempDir()
	dataPath := writeDataset(t, 60)

	if _, err := Evaluate(dataPath, cfg); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"normalized_train.json", "normalized_test.json", "token_lists.json"} {
		if _, err := os.Stat(filepath.Join(cfg.CacheDir, name)); err != nil {
			t.Errorf("artifact %s not cached: %v", name, err)
		}
	}

	// Second run consumes the cached artifacts.
	if _, err := Evaluate(dataPath, cfg); err != nil {
		t.Fatal(err)
	}
}

func TestLoadRejectsBadModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(`{"tokens":["a","b"],"seq_len":5,"dim":2}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for model without reserved markers")
	}
}

func writeModel(t *testing.T, weights, threshold string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	blob := `{"variant":"skipgram",` + threshold + `"seq_len":5,"dim":2,
		"tokens":["","[UNK]","film","good"],
		"table":[[0,0],[0,0],[0,0],[0,0]],
		"weights":` + weights + `,"bias":-1}`
	if err := os.WriteFile(path, []byte(blob), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRejectsWeightShapeMismatch(t *testing.T) {
	// Weights longer or shorter than the embedding dimension must fail at
	// load time, not at the first classification.
	for _, weights := range []string{`[1,2,3,4,5]`, `[1]`, `[]`} {
		if _, err := Load(writeModel(t, weights, "")); err == nil {
			t.Errorf("model with weights %s loaded", weights)
		}
	}
}

func TestLoadKeepsStoredThreshold(t *testing.T) {
	// Zero weights and bias -1 give probability sigmoid(-1), about 0.27,
	// for every input.
	text := "film good"

	// An explicit zero threshold is honored, not remapped to the default.
	a, err := Load(writeModel(t, `[0,0]`, `"threshold":0,`))
	if err != nil {
		t.Fatal(err)
	}
	label, p, err := a.Classify(text)
	if err != nil {
		t.Fatal(err)
	}
	if label != "positive" {
		t.Errorf("threshold 0 classified %v as %s", p, label)
	}

	// A missing threshold falls back to the default.
	a, err = Load(writeModel(t, `[0,0]`, ""))
	if err != nil {
		t.Fatal(err)
	}
	label, p, err = a.Classify(text)
	if err != nil {
		t.Fatal(err)
	}
	if label != "negative" {
		t.Errorf("default threshold classified %v as %s", p, label)
	}
}
