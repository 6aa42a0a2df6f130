package metrics

import (
	"math"
	"testing"
)

func TestPrecisionRecall(t *testing.T) {
	labels := []int{1, 1, 1, 0, 0, 0}
	preds := []int{1, 1, 0, 1, 0, 0}

	// tp=2 fp=1 fn=1.
	if got := Precision(labels, preds); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("Precision = %v, want 2/3", got)
	}
	if got := Recall(labels, preds); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("Recall = %v, want 2/3", got)
	}
}

func TestPrecisionNoPositivePredictions(t *testing.T) {
	if got := Precision([]int{1, 0}, []int{0, 0}); got != 0 {
		t.Errorf("Precision = %v, want 0", got)
	}
}

func TestRecallNoPositiveLabels(t *testing.T) {
	if got := Recall([]int{0, 0}, []int{1, 0}); got != 0 {
		t.Errorf("Recall = %v, want 0", got)
	}
}

func TestROCAUCPerfectRanking(t *testing.T) {
	labels := []int{0, 0, 1, 1}
	scores := []float64{0.1, 0.2, 0.8, 0.9}

	if got := ROCAUC(labels, scores); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("ROCAUC = %v, want 1.0", got)
	}
}

func TestROCAUCInvertedRanking(t *testing.T) {
	labels := []int{1, 1, 0, 0}
	scores := []float64{0.1, 0.2, 0.8, 0.9}

	if got := ROCAUC(labels, scores); math.Abs(got) > 1e-9 {
		t.Errorf("ROCAUC = %v, want 0.0", got)
	}
}

func TestROCAUCDegenerate(t *testing.T) {
	if got := ROCAUC([]int{1, 1}, []float64{0.5, 0.6}); !math.IsNaN(got) {
		t.Errorf("single-class ROCAUC = %v, want NaN", got)
	}
	if got := ROCAUC([]int{1}, []float64{0.5, 0.6}); !math.IsNaN(got) {
		t.Errorf("mismatched input ROCAUC = %v, want NaN", got)
	}
}
