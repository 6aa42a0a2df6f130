package cli

import (
	"log/slog"
	"time"

	"github.com/happyhackingspace/sentivec"
	"github.com/spf13/cobra"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var dataFile string
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "train <modelfile>",
		Short: "Train a sentiment model on a labeled reviews CSV",
		Args:  cobra.ExactArgs(1),
		Example: `  sentivec train model.json --data data/reviews.csv
  sentivec train model.json --cache-dir .cache -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			modelPath := args[0]
			slog.Info("Training sentiment model", "data", dataFile, "output", modelPath)
			cfg := sentivec.DefaultTrainConfig()
			cfg.CacheDir = cacheDir
			cfg.Verbose = c.verbose
			start := time.Now()
			a, err := sentivec.Train(dataFile, cfg)
			if err != nil {
				return err
			}
			slog.Debug("Training completed", "duration", time.Since(start))
			if err := a.Save(modelPath); err != nil {
				return err
			}
			slog.Info("Model saved", "path", modelPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "data/reviews.csv", "Path to labeled reviews CSV")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for cached pipeline artifacts")
	return cmd
}
