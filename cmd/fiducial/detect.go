package main

import (
	"encoding/json"
	"fmt"

	"github.com/anthonynsimon/bild/blur"
	"github.com/spf13/cobra"

	"github.com/ironsheep/fiducial-tools/internal/detection"
	"github.com/ironsheep/fiducial-tools/internal/imaging"
)

// detectFlags holds the kernel geometry and tuning for detect and render.
type detectFlags struct {
	inner       int
	outer       int
	density     int
	minScore    float64
	suppression int
	workers     int
	subpixel    bool
	blurRadius  float64
}

var detectOpts detectFlags

// detectResult is the JSON document printed by the detect command.
type detectResult struct {
	Count     int                          `json:"count"`
	Keypoints []detection.Keypoint         `json:"keypoints,omitempty"`
	Subpixel  []detection.SubpixelKeypoint `json:"subpixel_keypoints,omitempty"`
}

var detectCmd = &cobra.Command{
	Use:   "detect <image>",
	Short: "Find bullseye targets in an image",
	Long: `Detect scans an image for bullseye calibration targets and prints the
detections as JSON on stdout.

The kernel geometry must match the physical target: --inner is the radius
in pixels where the ring pattern starts, --outer where it ends, and
--density the number of alternating rings in between.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDetect(cmd, args[0])
	},
}

func init() {
	addKernelFlags(detectCmd)
	detectCmd.Flags().BoolVar(&detectOpts.subpixel, "subpixel", false,
		"refine detections to fractional pixel coordinates")
	rootCmd.AddCommand(detectCmd)
}

// addKernelFlags registers the flags shared by detect and render.
func addKernelFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&detectOpts.inner, "inner", 10, "inner ring radius in pixels")
	cmd.Flags().IntVar(&detectOpts.outer, "outer", 15, "outer ring radius in pixels")
	cmd.Flags().IntVar(&detectOpts.density, "density", 5, "number of alternating rings")
	cmd.Flags().Float64Var(&detectOpts.minScore, "min-score", 0,
		"minimum symmetry score in [-1, 1] (0 selects the default)")
	cmd.Flags().IntVar(&detectOpts.suppression, "suppression", 0,
		"non-maximum suppression radius in pixels (0 selects the outer radius)")
	cmd.Flags().IntVar(&detectOpts.workers, "workers", 0,
		"scan goroutines (0 selects GOMAXPROCS)")
	cmd.Flags().Float64Var(&detectOpts.blurRadius, "blur", 0,
		"Gaussian pre-blur radius in pixels (0 disables)")
}

// newSelector builds a selector from the current flag values.
func newSelector() (*detection.Selector, error) {
	k, err := detection.NewKernel(detectOpts.inner, detectOpts.outer, detectOpts.density)
	if err != nil {
		return nil, err
	}
	opts := detection.Options{
		MinScore:          detectOpts.minScore,
		SuppressionRadius: detectOpts.suppression,
		Workers:           detectOpts.workers,
	}
	return detection.NewSelectorWithKernel(k, opts), nil
}

// loadPlane loads an image through the shared cache and converts it to a
// grayscale plane, applying the optional Gaussian pre-blur first.
func loadPlane(path string) (*imaging.Plane, error) {
	img, err := imageCache.Load(path)
	if err != nil {
		return nil, err
	}
	if detectOpts.blurRadius > 0 {
		img = blur.Gaussian(img, detectOpts.blurRadius)
	}
	return imaging.NewPlane(img), nil
}

func runDetect(cmd *cobra.Command, path string) error {
	sel, err := newSelector()
	if err != nil {
		return err
	}

	plane, err := loadPlane(path)
	if err != nil {
		return err
	}
	sel.SetImage(plane)

	var result detectResult
	if detectOpts.subpixel {
		kps, err := sel.KeypointsSubpixel()
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}
		result.Count = len(kps)
		result.Subpixel = kps
	} else {
		kps, err := sel.Keypoints()
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}
		result.Count = len(kps)
		result.Keypoints = kps
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
