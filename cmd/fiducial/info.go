package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ironsheep/fiducial-tools/internal/imaging"
)

var infoCmd = &cobra.Command{
	Use:   "info <image>",
	Short: "Print metadata about an image file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := imaging.LoadImageInfo(imageCache, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
