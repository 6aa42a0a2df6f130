package cli

import (
	"log/slog"
	"time"

	"github.com/happyhackingspace/sentivec/internal/visualize"
	"github.com/spf13/cobra"
)

func (c *CLI) newPlotCommand() *cobra.Command {
	var modelPath string
	var method string
	var topN int
	var output string
	var perplexity float64

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Project trained embeddings to 2-D and render a scatter chart",
		Example: `  sentivec plot --model model.json
  sentivec plot --method tsne --top 500 --out embeddings.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadOrDownloadModel(modelPath)
			if err != nil {
				return err
			}

			vectors, tokens := a.Embeddings(topN)
			rows, _ := vectors.Dims()
			slog.Info("Projecting embeddings", "method", method, "tokens", rows)

			tcfg := visualize.DefaultTSNEConfig()
			tcfg.Perplexity = perplexity
			start := time.Now()
			points, err := visualize.Project(vectors, method, tcfg)
			if err != nil {
				return err
			}
			slog.Debug("Projection completed", "duration", time.Since(start))

			title := "word embeddings (" + a.Variant() + ", " + method + ")"
			if err := visualize.Scatter(points, tokens, title, output); err != nil {
				return err
			}
			slog.Info("Chart written", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Path to model file (default: auto-detect or download)")
	cmd.Flags().StringVar(&method, "method", visualize.MethodPCA, "Projection method: pca or tsne")
	cmd.Flags().IntVar(&topN, "top", 500, "Number of most frequent tokens to plot (0 = all)")
	cmd.Flags().StringVar(&output, "out", "embeddings.html", "Output HTML file")
	cmd.Flags().Float64Var(&perplexity, "perplexity", 30, "t-SNE perplexity")
	return cmd
}
