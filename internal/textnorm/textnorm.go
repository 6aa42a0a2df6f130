// Package textnorm cleans raw review text into normalized token strings.
package textnorm

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/bbalet/stopwords"
	prose "github.com/jdkato/prose/v2"
)

// ErrInvalidInput is returned for text that is not valid UTF-8.
var ErrInvalidInput = errors.New("textnorm: invalid input")

var (
	urlRe       = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
	nonLetterRe = regexp.MustCompile(`[^a-zA-Z]+`)
)

// Normalizer turns raw review text into a single cleaned, lemmatized string.
// Normalization is a pure function of the input text and the fixed
// stopword/lemmatizer resources loaded at construction.
type Normalizer struct {
	lem *golem.Lemmatizer
}

// New loads the English lemmatizer dictionary.
func New() (*Normalizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("textnorm: %w", err)
	}
	return &Normalizer{lem: lem}, nil
}

// Normalize applies the cleaning stages in fixed order: drop URLs, strip
// markup, replace non-letters with spaces, lowercase, remove stopwords,
// lemmatize each remaining token by its tagged part of speech, rejoin with
// single spaces.
func (n *Normalizer) Normalize(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidInput
	}

	text = urlRe.ReplaceAllString(text, " ")
	text = stripMarkup(text)
	text = nonLetterRe.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	text = stopwords.CleanString(text, "en", false)

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return "", fmt.Errorf("textnorm: %w", err)
	}

	toks := doc.Tokens()
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Text == "" {
			continue
		}
		out = append(out, n.lemma(tok.Text, tok.Tag))
	}
	return strings.Join(out, " "), nil
}

// NormalizeAll normalizes a batch of documents, preserving order.
func (n *Normalizer) NormalizeAll(texts []string) ([]string, error) {
	out := make([]string, len(texts))
	for i, t := range texts {
		norm, err := n.Normalize(t)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out[i] = norm
	}
	return out, nil
}

// lemma resolves a token to its dictionary lemma. Proper nouns and foreign
// words pass through unchanged; any other tag, including ones the tagger
// could not resolve, is treated like a common noun and looked up.
func (n *Normalizer) lemma(word, tag string) string {
	switch tag {
	case "NNP", "NNPS", "FW":
		return word
	}
	return n.lem.Lemma(word)
}

// stripMarkup extracts the text content of any HTML-like markup. Plain text
// round-trips unchanged.
func stripMarkup(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	return doc.Text()
}
