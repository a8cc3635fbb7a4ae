// Package main implements the command-line interface for the fiducial
// tool. It locates radially-symmetric bullseye calibration targets in
// camera images and reports their positions.
//
// The main CLI commands are:
//   - detect: Find bullseye targets in an image and print them as JSON
//   - render: Write a score-map heatmap or a keypoint overlay image
//   - info: Print metadata about an image file
//   - version: Print version information
//
// Each command has flags for the kernel geometry and detection
// thresholds. See the help output for details.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/fiducial-tools/internal/imaging"
)

// imageCache is shared across commands so repeated operations on the
// same file decode it once.
var imageCache = imaging.NewImageCache()

var rootCmd = &cobra.Command{
	Use:   "fiducial",
	Short: "Detect bullseye calibration targets in images",
	Long: `fiducial locates radially-symmetric bullseye targets in camera images.

A target is a set of concentric rings alternating bright and dark. The
detector correlates an annular matched filter against every interior
pixel, keeps local maxima above a score threshold, and optionally refines
each detection to sub-pixel precision.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fiducial %s\n", Version)
		fmt.Fprintf(cmd.OutOrStdout(), "  Build time: %s\n", BuildTime)
		fmt.Fprintf(cmd.OutOrStdout(), "  Git commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and exits nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
