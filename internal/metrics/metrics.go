// Package metrics computes binary classification quality measures for the
// evaluation report.
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Precision returns tp / (tp + fp), or 0 when nothing was predicted
// positive.
func Precision(labels, preds []int) float64 {
	tp, fp, _, _ := confusion(labels, preds)
	if tp+fp == 0 {
		return 0
	}
	return float64(tp) / float64(tp+fp)
}

// Recall returns tp / (tp + fn), or 0 when no positives exist.
func Recall(labels, preds []int) float64 {
	tp, _, fn, _ := confusion(labels, preds)
	if tp+fn == 0 {
		return 0
	}
	return float64(tp) / float64(tp+fn)
}

// ROCAUC ranks the probability scores and integrates the ROC curve. It
// returns NaN when the labels contain only one class.
func ROCAUC(labels []int, scores []float64) float64 {
	if len(labels) != len(scores) || len(labels) == 0 {
		return math.NaN()
	}

	var pos, neg int
	for _, l := range labels {
		if l == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return math.NaN()
	}

	type ranked struct {
		score float64
		pos   bool
	}
	pairs := make([]ranked, len(labels))
	for i := range labels {
		pairs[i] = ranked{score: scores[i], pos: labels[i] == 1}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })

	y := make([]float64, len(pairs))
	classes := make([]bool, len(pairs))
	for i, p := range pairs {
		y[i] = p.score
		classes[i] = p.pos
	}

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

func confusion(labels, preds []int) (tp, fp, fn, tn int) {
	for i := range labels {
		switch {
		case labels[i] == 1 && preds[i] == 1:
			tp++
		case labels[i] == 0 && preds[i] == 1:
			fp++
		case labels[i] == 1 && preds[i] == 0:
			fn++
		default:
			tn++
		}
	}
	return tp, fp, fn, tn
}
