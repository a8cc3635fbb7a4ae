package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/fiducial-tools/internal/imaging"
)

var renderOpts struct {
	scoremapPath string
	overlayPath  string
}

// markColor is the overlay ring and crosshair color.
var markColor = color.NRGBA{R: 230, G: 57, B: 70, A: 255}

var renderCmd = &cobra.Command{
	Use:   "render <image>",
	Short: "Write detection visualizations to disk",
	Long: `Render runs detection on an image and writes visualization files.

With --scoremap it writes the symmetry score map as a heatmap; with
--overlay it writes the source image with a ring and crosshair drawn over
each detection. At least one output must be given. Output format follows
the file extension (.png, .jpg, .pgm, ...).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args[0])
	},
}

func init() {
	addKernelFlags(renderCmd)
	renderCmd.Flags().StringVar(&renderOpts.scoremapPath, "scoremap", "",
		"write the score-map heatmap to this path")
	renderCmd.Flags().StringVar(&renderOpts.overlayPath, "overlay", "",
		"write the keypoint overlay to this path")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, path string) error {
	if renderOpts.scoremapPath == "" && renderOpts.overlayPath == "" {
		return fmt.Errorf("nothing to render: pass --scoremap and/or --overlay")
	}

	sel, err := newSelector()
	if err != nil {
		return err
	}

	img, err := imageCache.Load(path)
	if err != nil {
		return err
	}
	sel.SetImage(imaging.NewPlane(img))

	if renderOpts.scoremapPath != "" {
		m, err := sel.ScoreMap()
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		heat := imaging.RenderScoreMap(m)
		if err := imaging.SaveImage(renderOpts.scoremapPath, heat); err != nil {
			return err
		}
		log.Printf("wrote score map to %s", renderOpts.scoremapPath)
	}

	if renderOpts.overlayPath != "" {
		kps, err := sel.Keypoints()
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}
		marked := imaging.MarkKeypoints(img, kps, sel.Kernel().MaxRadius(), markColor)
		if err := imaging.SaveImage(renderOpts.overlayPath, marked); err != nil {
			return err
		}
		log.Printf("marked %d keypoints in %s", len(kps), renderOpts.overlayPath)
	}

	return nil
}
