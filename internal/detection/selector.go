package detection

import (
	"fmt"
	"runtime"
)

// DefaultMinScore is the detection threshold applied when Options.MinScore
// is left unset. Scores are normalized correlations in [-1, 1]; a clean
// synthetic target scores close to 1 at its center, while accidental
// partial matches near ring edges rarely exceed 0.5.
const DefaultMinScore = 0.75

// Keypoint is a detected bullseye center at integer pixel precision.
type Keypoint struct {
	Row    int     `json:"row"`
	Column int     `json:"column"`
	Score  float64 `json:"score"`
}

// SubpixelKeypoint is a detected bullseye center refined to fractional
// pixel coordinates. When refinement cannot produce a stable fit the
// coordinates equal the integer keypoint exactly.
type SubpixelKeypoint struct {
	Row    float64 `json:"row"`
	Column float64 `json:"column"`
	Score  float64 `json:"score"`
}

// Options tunes candidate extraction and scan parallelism. The zero value
// of each field selects its default, so Options{} behaves identically to
// DefaultOptions for a given kernel.
type Options struct {
	// MinScore is the minimum symmetry score for a candidate. Zero
	// selects DefaultMinScore; use a small negative value to disable
	// thresholding entirely.
	MinScore float64

	// SuppressionRadius is the Euclidean non-maximum suppression radius
	// in pixels. Zero or negative selects the kernel's maximum radius.
	SuppressionRadius int

	// Workers bounds the number of goroutines used by the scan. Zero or
	// negative selects GOMAXPROCS. The scan result does not depend on
	// the worker count.
	Workers int
}

// DefaultOptions returns the extraction defaults for a kernel.
func DefaultOptions(k *Kernel) Options {
	return Options{
		MinScore:          DefaultMinScore,
		SuppressionRadius: k.MaxRadius(),
		Workers:           runtime.GOMAXPROCS(0),
	}
}

// Selector owns the detection configuration and wires the pipeline: scan,
// candidate extraction, and optional sub-pixel refinement.
//
// A Selector processes one image at a time: bind with SetImage, then query
// with Keypoints or KeypointsSubpixel. It is not safe for concurrent use;
// the underlying Kernel, however, may be shared freely across selectors.
type Selector struct {
	kernel *Kernel
	opts   Options
	img    Image
	scores *ScoreMap
}

// NewSelector builds a selector from the three configuration integers:
// inner ring radius, outer ring radius, and radial sample density. Invalid
// combinations fail immediately with ErrInvalidConfiguration (see
// NewKernel for the exact preconditions).
func NewSelector(inner, outer, density int) (*Selector, error) {
	k, err := NewKernel(inner, outer, density)
	if err != nil {
		return nil, err
	}
	return NewSelectorWithKernel(k, DefaultOptions(k)), nil
}

// NewSelectorWithKernel builds a selector around an existing kernel,
// avoiding redundant construction when several selectors share one
// configuration. Unset option fields are filled with their defaults.
func NewSelectorWithKernel(k *Kernel, opts Options) *Selector {
	if opts.MinScore == 0 {
		opts.MinScore = DefaultMinScore
	}
	if opts.SuppressionRadius <= 0 {
		opts.SuppressionRadius = k.MaxRadius()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Selector{kernel: k, opts: opts}
}

// Kernel returns the selector's shared, read-only kernel.
func (s *Selector) Kernel() *Kernel { return s.kernel }

// SetImage binds a new image to the detection session. It may be called
// repeatedly; each call invalidates any previously computed score map and
// candidates. The image is only read, never mutated.
func (s *Selector) SetImage(img Image) {
	s.img = img
	s.scores = nil
}

// ScoreMap returns the symmetry score map for the bound image, computing
// it on first use. The map stays valid until the next SetImage call. It
// fails with ErrNoImage when no image is bound.
func (s *Selector) ScoreMap() (*ScoreMap, error) {
	if s.img == nil {
		return nil, fmt.Errorf("score map: %w", ErrNoImage)
	}
	if s.scores == nil {
		s.scores = scan(s.img, s.kernel, s.opts.Workers)
	}
	return s.scores, nil
}

// Keypoints runs the full pipeline and returns integer-pixel detections in
// ascending raster order. An image too small to contain the kernel yields
// an empty list, not an error. Calling before SetImage fails with
// ErrNoImage. Repeated calls on the same bound image return identical
// results.
func (s *Selector) Keypoints() ([]Keypoint, error) {
	m, err := s.ScoreMap()
	if err != nil {
		return nil, err
	}
	cands := extract(m, s.opts.MinScore, s.opts.SuppressionRadius)
	kps := make([]Keypoint, len(cands))
	for i, c := range cands {
		kps[i] = Keypoint(c)
	}
	return kps, nil
}

// KeypointsSubpixel runs the pipeline with sub-pixel refinement. Results
// appear in the same order as the integer variant; each refined center
// lies within one pixel of its integer counterpart.
func (s *Selector) KeypointsSubpixel() ([]SubpixelKeypoint, error) {
	m, err := s.ScoreMap()
	if err != nil {
		return nil, err
	}
	cands := extract(m, s.opts.MinScore, s.opts.SuppressionRadius)
	kps := make([]SubpixelKeypoint, len(cands))
	for i, c := range cands {
		row, col := refine(m, c)
		kps[i] = SubpixelKeypoint{Row: row, Column: col, Score: c.Score}
	}
	return kps, nil
}
