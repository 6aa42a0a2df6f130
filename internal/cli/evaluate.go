package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/happyhackingspace/sentivec"
	"github.com/spf13/cobra"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var dataFile string
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score every embedding configuration on a held-out test split",
		Example: `  sentivec evaluate --data data/reviews.csv
  sentivec evaluate --data data/reviews.csv --cache-dir .cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Evaluating", "data", dataFile)
			cfg := sentivec.DefaultTrainConfig()
			cfg.CacheDir = cacheDir
			cfg.Verbose = c.verbose
			start := time.Now()
			report, err := sentivec.Evaluate(dataFile, cfg)
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "data/reviews.csv", "Path to labeled reviews CSV")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for cached pipeline artifacts")
	return cmd
}

func printReport(report *sentivec.Report) {
	fmt.Printf("%-10s %-10s %8s %10s %8s\n", "model", "embedding", "recall", "precision", "roc-auc")
	for _, row := range report.Rows {
		embedding := "-"
		if row.Model != "tfidf" {
			embedding = "frozen"
			if row.Trainable {
				embedding = "trainable"
			}
		}
		fmt.Printf("%-10s %-10s %7.1f%% %9.1f%% %8.3f\n",
			row.Model, embedding, row.Recall*100, row.Precision*100, row.ROCAUC)
	}
}
