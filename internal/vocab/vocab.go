// Package vocab maps normalized text to fixed-length integer id sequences
// over a frequency-capped token vocabulary.
package vocab

import (
	"fmt"
	"sort"
	"strings"
)

// Reserved vocabulary slots. Index 0 right-pads short sequences and index 1
// absorbs every token outside the learned vocabulary.
const (
	PadIndex     = 0
	UnknownIndex = 1

	PadToken     = ""
	UnknownToken = "[UNK]"
)

// TrainingCorpus marks normalized documents approved for vocabulary
// adaptation. Validation and test splits must never be wrapped in this type;
// they only pass through Encode, which cannot alter the vocabulary.
type TrainingCorpus []string

// Vocabulary is an immutable token<->index mapping with a fixed target
// sequence length.
type Vocabulary struct {
	tokens []string
	index  map[string]int
	seqLen int
}

// Build learns the most frequent tokens of the training corpus, reserving
// two slots for the padding and unknown markers. Ties break alphabetically
// so repeated builds over the same corpus are identical.
func Build(corpus TrainingCorpus, size, seqLen int) *Vocabulary {
	counts := make(map[string]int)
	for _, doc := range corpus {
		for _, tok := range strings.Fields(doc) {
			counts[tok]++
		}
	}

	type tokenCount struct {
		token string
		count int
	}
	ranked := make([]tokenCount, 0, len(counts))
	for tok, c := range counts {
		ranked = append(ranked, tokenCount{tok, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].token < ranked[j].token
	})
	// Sizes below the two reserved slots leave no room for real tokens.
	if size < 2 {
		size = 2
	}
	if len(ranked) > size-2 {
		ranked = ranked[:size-2]
	}

	tokens := make([]string, 2, len(ranked)+2)
	tokens[PadIndex] = PadToken
	tokens[UnknownIndex] = UnknownToken
	index := make(map[string]int, len(ranked))
	for _, tc := range ranked {
		index[tc.token] = len(tokens)
		tokens = append(tokens, tc.token)
	}
	return &Vocabulary{tokens: tokens, index: index, seqLen: seqLen}
}

// FromTokens reconstructs a vocabulary from a previously exported token list.
func FromTokens(tokens []string, seqLen int) (*Vocabulary, error) {
	if len(tokens) < 2 || tokens[PadIndex] != PadToken || tokens[UnknownIndex] != UnknownToken {
		return nil, fmt.Errorf("vocab: token list missing reserved markers")
	}
	index := make(map[string]int, len(tokens)-2)
	for i := 2; i < len(tokens); i++ {
		index[tokens[i]] = i
	}
	return &Vocabulary{tokens: tokens, index: index, seqLen: seqLen}, nil
}

// Size returns the number of vocabulary slots, reserved markers included.
func (v *Vocabulary) Size() int { return len(v.tokens) }

// SeqLen returns the fixed encoded sequence length.
func (v *Vocabulary) SeqLen() int { return v.seqLen }

// Tokens exports the ordered token list.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// Index resolves a token to its id. Tokens outside the vocabulary always
// resolve to UnknownIndex; lookup never fails.
func (v *Vocabulary) Index(token string) int {
	if i, ok := v.index[token]; ok {
		return i
	}
	return UnknownIndex
}

// Token returns the literal token at an index.
func (v *Vocabulary) Token(i int) string {
	if i < 0 || i >= len(v.tokens) {
		return UnknownToken
	}
	return v.tokens[i]
}

// Encode maps a normalized document to exactly SeqLen ids, truncating long
// documents and right-padding short ones with PadIndex.
func (v *Vocabulary) Encode(normalized string) []int {
	seq := make([]int, v.seqLen)
	for i, tok := range strings.Fields(normalized) {
		if i >= v.seqLen {
			break
		}
		seq[i] = v.Index(tok)
	}
	return seq
}

// EncodeAll encodes a batch of normalized documents.
func (v *Vocabulary) EncodeAll(normalized []string) [][]int {
	out := make([][]int, len(normalized))
	for i, doc := range normalized {
		out[i] = v.Encode(doc)
	}
	return out
}

// Materialize emits the literal tokens behind an id sequence in order,
// dropping the padding and unknown markers. The embedding trainer must never
// see either marker as a real token.
func (v *Vocabulary) Materialize(seq []int) []string {
	out := make([]string, 0, len(seq))
	for _, id := range seq {
		if id == PadIndex || id == UnknownIndex {
			continue
		}
		if id > UnknownIndex && id < len(v.tokens) {
			out = append(out, v.tokens[id])
		}
	}
	return out
}

// MaterializeAll materializes a batch of id sequences into per-document
// token lists.
func (v *Vocabulary) MaterializeAll(seqs [][]int) [][]string {
	out := make([][]string, len(seqs))
	for i, seq := range seqs {
		out[i] = v.Materialize(seq)
	}
	return out
}
