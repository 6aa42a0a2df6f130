package wordvec

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/happyhackingspace/sentivec/internal/vocab"
)

// Assemble merges trained vectors into a vocabulary-indexed lookup table of
// shape Size x dim. Every row starts from a seeded uniform initialization in
// [-0.05, 0.05). The padding and unknown rows keep that default, and any
// vocabulary token without a trained vector receives a copy of the unknown
// row's default vector. The merge is pure; callers own the returned table.
func Assemble(v *vocab.Vocabulary, trained map[string][]float64, dim int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	size := v.Size()
	table := mat.NewDense(size, dim, nil)
	for i := 0; i < size; i++ {
		row := table.RawRowView(i)
		for d := range row {
			row[d] = (rng.Float64()*2 - 1) * 0.05
		}
	}

	fallback := append([]float64(nil), table.RawRowView(vocab.UnknownIndex)...)
	for i := vocab.UnknownIndex + 1; i < size; i++ {
		if vec, ok := trained[v.Token(i)]; ok && len(vec) == dim {
			table.SetRow(i, vec)
		} else {
			table.SetRow(i, fallback)
		}
	}
	return table
}
