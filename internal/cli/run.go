package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/happyhackingspace/sentivec"
	"github.com/spf13/cobra"
)

const modelURL = "https://huggingface.co/datasets/happyhackingspace/sentivec/resolve/main/model.json"

type runResult struct {
	Label string  `json:"label"`
	Proba float64 `json:"proba,omitempty"`
}

func (c *CLI) newRunCommand() *cobra.Command {
	var modelPath string
	var threshold float64
	var proba bool

	cmd := &cobra.Command{
		Use:   "run [text-or-file]",
		Short: "Classify the sentiment of a review from an argument, file, or stdin",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Classify a review directly
  sentivec run "a warm, funny and quietly moving picture"

  # Classify a review stored in a file
  sentivec run review.txt

  # Pipe a review from stdin
  cat review.txt | sentivec run

  # Show the positive-class probability
  sentivec run review.txt --proba

  # Use custom decision threshold
  sentivec run review.txt --proba --threshold 0.7

  # Use custom model file
  sentivec run review.txt --model custom.json

  # Silent mode (no banner)
  sentivec run review.txt -s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			var err error

			if len(args) == 0 {
				if isStdinTerminal() {
					return cmd.Help()
				}
				text, err = readFromStdin()
				if err != nil {
					return err
				}
			} else {
				text, err = readInput(args[0])
				if err != nil {
					return err
				}
			}
			slog.Debug("Review read", "bytes", len(text))

			start := time.Now()
			a, err := loadOrDownloadModel(modelPath)
			if err != nil {
				return err
			}
			slog.Debug("Model loaded", "duration", time.Since(start))

			start = time.Now()
			label, p, err := a.Classify(text)
			if err != nil {
				return err
			}
			slog.Debug("Classification completed", "duration", time.Since(start))

			if threshold != sentivec.DefaultThreshold {
				label = "negative"
				if p >= threshold {
					label = "positive"
				}
			}

			result := runResult{Label: label}
			if proba {
				result.Proba = p
			}
			output, _ := json.MarshalIndent(result, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Path to model file (default: auto-detect or download)")
	cmd.Flags().Float64Var(&threshold, "threshold", sentivec.DefaultThreshold, "Positive-class decision threshold")
	cmd.Flags().BoolVar(&proba, "proba", false, "Show probability")
	return cmd
}

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// readInput treats the argument as a file path when one exists, otherwise
// as the review text itself.
func readInput(arg string) (string, error) {
	if fi, err := os.Stat(arg); err == nil && !fi.IsDir() {
		slog.Debug("Reading review file", "path", arg)
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	}
	return arg, nil
}

func readFromStdin() (string, error) {
	slog.Debug("Reading from stdin")
	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", fmt.Errorf("stdin is empty")
	}
	return text, nil
}

func loadOrDownloadModel(modelPath string) (*sentivec.Analyzer, error) {
	if modelPath != "" {
		slog.Debug("Loading custom model", "path", modelPath)
		return sentivec.Load(modelPath)
	}

	a, err := sentivec.New()
	if err == nil {
		return a, nil
	}

	dest := filepath.Join(sentivec.ModelDir(), "model.json")
	if _, err := os.Stat(dest); err == nil {
		return sentivec.Load(dest)
	}
	slog.Info("Model not found, downloading", "url", modelURL, "dest", dest)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, fmt.Errorf("create model dir: %w", err)
	}

	resp, err := http.Get(modelURL)
	if err != nil {
		return nil, fmt.Errorf("download model: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download model: HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("create model file: %w", err)
	}

	written, err := io.Copy(f, resp.Body)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return nil, fmt.Errorf("download model: %w", err)
	}
	_ = f.Close()

	slog.Info("Model downloaded", "size", fmt.Sprintf("%.1fMB", float64(written)/1024/1024))
	return sentivec.Load(dest)
}
