// Package visualize projects embedding tables to two dimensions and renders
// interactive scatter charts.
package visualize

import (
	"fmt"
	"os"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Projection methods.
const (
	MethodPCA  = "pca"
	MethodTSNE = "tsne"
)

// TSNEConfig tunes the t-SNE optimizer.
type TSNEConfig struct {
	Perplexity   float64
	LearningRate float64
	Iterations   int
}

// DefaultTSNEConfig returns the standard t-SNE settings.
func DefaultTSNEConfig() TSNEConfig {
	return TSNEConfig{Perplexity: 30, LearningRate: 200, Iterations: 1000}
}

// Project reduces the rows of vectors to 2-D coordinates. PCA preserves
// global structure and is fast; t-SNE preserves local neighborhoods and is
// slow.
func Project(vectors mat.Matrix, method string, cfg TSNEConfig) (*mat.Dense, error) {
	switch method {
	case MethodPCA:
		return projectPCA(vectors)
	case MethodTSNE:
		t := tsne.NewTSNE(2, cfg.Perplexity, cfg.LearningRate, cfg.Iterations, false)
		return mat.DenseCopyOf(t.EmbedData(vectors, nil)), nil
	}
	return nil, fmt.Errorf("visualize: unknown method %q", method)
}

func projectPCA(vectors mat.Matrix) (*mat.Dense, error) {
	var pc stat.PC
	if ok := pc.PrincipalComponents(vectors, nil); !ok {
		return nil, fmt.Errorf("visualize: principal component decomposition failed")
	}

	var components mat.Dense
	pc.VectorsTo(&components)

	rows, _ := vectors.Dims()
	out := mat.NewDense(rows, 2, nil)
	_, compCols := components.Dims()
	if compCols < 2 {
		return nil, fmt.Errorf("visualize: need at least 2 components, got %d", compCols)
	}
	out.Mul(vectors, components.Slice(0, components.RawMatrix().Rows, 0, 2))
	return out, nil
}

// Scatter writes an interactive HTML scatter of labeled 2-D points.
func Scatter(points *mat.Dense, labels []string, title, path string) error {
	rows, cols := points.Dims()
	if cols != 2 {
		return fmt.Errorf("visualize: points are %d-dimensional, want 2", cols)
	}
	if len(labels) != rows {
		return fmt.Errorf("visualize: %d labels for %d points", len(labels), rows)
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "800px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}"}),
	)

	data := make([]opts.ScatterData, rows)
	for i := 0; i < rows; i++ {
		data[i] = opts.ScatterData{
			Name:       labels[i],
			Value:      []any{points.At(i, 0), points.At(i, 1)},
			SymbolSize: 6,
		}
	}
	sc.AddSeries("tokens", data)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("visualize: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := sc.Render(f); err != nil {
		return fmt.Errorf("visualize: render: %w", err)
	}
	return nil
}
