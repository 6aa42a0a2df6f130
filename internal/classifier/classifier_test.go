package classifier

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// testTable builds a 4x2 table where token 2 points one way and token 3 the
// other, so sequences of twos and threes are trivially separable.
func testTable() *mat.Dense {
	return mat.NewDense(4, 2, []float64{
		0, 0, // padding
		0, 0, // unknown
		1, 0, // "positive" token
		-1, 0, // "negative" token
	})
}

func TestNewShapeMismatch(t *testing.T) {
	table := testTable()

	if _, err := New(table, 5, 2, 4); err == nil {
		t.Error("expected error for wrong vocabulary size")
	}
	if _, err := New(table, 4, 3, 4); err == nil {
		t.Error("expected error for wrong dimensionality")
	}
	if _, err := New(table, 4, 2, 0); err == nil {
		t.Error("expected error for zero sequence length")
	}
	if _, err := New(table, 4, 2, 4); err != nil {
		t.Errorf("matching shape rejected: %v", err)
	}
}

func TestFitSeparatesClasses(t *testing.T) {
	m, err := New(testTable(), 4, 2, 4)
	if err != nil {
		t.Fatal(err)
	}

	seqs := [][]int{
		{2, 2, 2, 0},
		{2, 2, 0, 0},
		{3, 3, 3, 0},
		{3, 3, 0, 0},
	}
	labels := []int{1, 1, 0, 0}

	cfg := DefaultConfig()
	cfg.Epochs = 200
	cfg.BatchSize = 2
	if err := m.Fit(seqs, labels, cfg); err != nil {
		t.Fatal(err)
	}

	if p := m.Proba([]int{2, 2, 2, 2}); p <= 0.5 {
		t.Errorf("positive sequence proba = %v, want > 0.5", p)
	}
	if p := m.Proba([]int{3, 3, 3, 3}); p >= 0.5 {
		t.Errorf("negative sequence proba = %v, want < 0.5", p)
	}
}

func TestFitValidatesInput(t *testing.T) {
	m, err := New(testTable(), 4, 2, 4)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Fit([][]int{{2, 2}}, []int{1}, DefaultConfig()); err == nil {
		t.Error("expected error for sequence shorter than SeqLen")
	}
	if err := m.Fit([][]int{{2, 2, 2, 2}}, []int{1, 0}, DefaultConfig()); err == nil {
		t.Error("expected error for label count mismatch")
	}
}

func TestFrozenTableUnchanged(t *testing.T) {
	table := testTable()
	before := mat.DenseCopyOf(table)

	m, err := New(table, 4, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Epochs = 20
	if err := m.Fit([][]int{{2, 2, 0, 0}, {3, 3, 0, 0}}, []int{1, 0}, cfg); err != nil {
		t.Fatal(err)
	}

	if !mat.Equal(table, before) {
		t.Error("frozen training modified the embedding table")
	}
}

func TestTrainableTableUpdated(t *testing.T) {
	table := testTable()
	before := mat.DenseCopyOf(table)

	m, err := New(table, 4, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Epochs = 50
	cfg.TrainEmbeddings = true
	if err := m.Fit([][]int{{2, 2, 0, 0}, {3, 3, 0, 0}}, []int{1, 0}, cfg); err != nil {
		t.Fatal(err)
	}

	if mat.Equal(table, before) {
		t.Error("trainable training left the embedding table untouched")
	}
}

func TestClassifyThreshold(t *testing.T) {
	// Zero weights give probability exactly 0.5 for any input.
	m, err := New(testTable(), 4, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	if got := m.Classify([]int{2, 3}, 0.5); got != 1 {
		t.Errorf("probability 0.5 at threshold 0.5 = class %d, want 1", got)
	}
	if got := m.Classify([]int{2, 3}, 0.5001); got != 0 {
		t.Errorf("probability 0.5 above threshold = class %d, want 0", got)
	}
}

func TestBaselineSeparatesClasses(t *testing.T) {
	docs := []string{
		"good wonderful excellent",
		"good excellent",
		"bad awful dreadful",
		"bad dreadful",
	}
	labels := []int{1, 1, 0, 0}

	cfg := DefaultConfig()
	cfg.Epochs = 300
	cfg.BatchSize = 2
	b, err := TrainBaseline(docs, labels, 1, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if got := b.Classify("wonderful excellent", 0.5); got != 1 {
		t.Errorf("positive doc classified as %d", got)
	}
	if got := b.Classify("awful dreadful", 0.5); got != 0 {
		t.Errorf("negative doc classified as %d", got)
	}
}

func TestBaselineLabelMismatch(t *testing.T) {
	if _, err := TrainBaseline([]string{"good"}, []int{1, 0}, 1, DefaultConfig()); err == nil {
		t.Error("expected error for label count mismatch")
	}
}
