package cli

import (
	"github.com/happyhackingspace/sentivec/internal/dataset"
	"github.com/spf13/cobra"
)

func (c *CLI) newDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage the labeled reviews dataset",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	var downloadFolder string
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download the labeled reviews dataset from Hugging Face",
		Example: `  sentivec data download
  sentivec data download --data-folder data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dataset.Download(dataset.DefaultDataURL, downloadFolder)
		},
	}
	downloadCmd.Flags().StringVar(&downloadFolder, "data-folder", "data", "Destination folder for the dataset")

	dataCmd.AddCommand(downloadCmd)
	return dataCmd
}
