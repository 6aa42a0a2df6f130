// Package dataset loads labeled movie reviews and caches pipeline artifacts.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// Review is a raw text document with a binary sentiment label (1 positive,
// 0 negative). Immutable once loaded.
type Review struct {
	Text  string `json:"text"`
	Label int    `json:"label"`
}

// LoadCSV reads a two-column review/sentiment file. A header row named
// "review,sentiment" (or "text,label") is skipped. Sentiment values may be
// the strings positive/negative or the digits 1/0.
func LoadCSV(path string) ([]Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset: %s is empty", path)
	}

	if isHeader(records[0]) {
		records = records[1:]
	}

	reviews := make([]Review, 0, len(records))
	for i, rec := range records {
		label, err := parseLabel(rec[1])
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: %w", i+1, err)
		}
		reviews = append(reviews, Review{Text: rec[0], Label: label})
	}
	return reviews, nil
}

func isHeader(rec []string) bool {
	first := strings.ToLower(strings.TrimSpace(rec[0]))
	second := strings.ToLower(strings.TrimSpace(rec[1]))
	return (first == "review" || first == "text") &&
		(second == "sentiment" || second == "label")
}

func parseLabel(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "pos", "1":
		return 1, nil
	case "negative", "neg", "0":
		return 0, nil
	}
	return 0, fmt.Errorf("unknown sentiment value %q", s)
}

// Split shuffles the reviews with the seed and cuts them at ratio into train
// and test slices. The input is not modified.
func Split(reviews []Review, ratio float64, seed int64) (train, test []Review) {
	shuffled := make([]Review, len(reviews))
	copy(shuffled, reviews)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(float64(len(shuffled)) * ratio)
	return shuffled[:cut], shuffled[cut:]
}

// Labels extracts the label column.
func Labels(reviews []Review) []int {
	out := make([]int, len(reviews))
	for i, r := range reviews {
		out[i] = r.Label
	}
	return out
}

// Texts extracts the text column.
func Texts(reviews []Review) []string {
	out := make([]string, len(reviews))
	for i, r := range reviews {
		out[i] = r.Text
	}
	return out
}
