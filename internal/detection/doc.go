// Package detection locates radially symmetric "bullseye" calibration
// targets in grayscale images.
//
// A bullseye target is a fiducial pattern of concentric alternating-intensity
// rings, commonly used for sub-pixel-accurate localization in camera
// calibration. Given an image and the ring geometry (inner radius, outer
// radius, radial sample density), the selector reports the pixel centers of
// every target it finds, optionally refined to fractional coordinates.
//
// # Detection Pipeline
//
// Detection runs in three stages, wired together by Selector:
//
//  1. Correlation scan: a precomputed ring kernel (Kernel) is slid over
//     every pixel whose neighborhood fits inside the image, producing a
//     per-pixel normalized correlation score (ScoreMap). High scores mark
//     pixels whose surroundings match alternating concentric rings.
//  2. Candidate extraction: the score map is thresholded and non-maximum
//     suppression keeps only the strongest score within a suppression
//     radius, with deterministic raster-order tie-breaking.
//  3. Sub-pixel refinement (optional): a quadratic surface fitted to the
//     3x3 score neighborhood of each candidate yields a fractional center,
//     falling back to the integer location when the surface is too flat
//     for a stable fit.
//
// # Coordinate System
//
// All coordinates are (row, column) pairs with (0, 0) at the top-left
// corner, rows increasing downward and columns increasing rightward.
// Keypoints always lie within the image bounds cropped by the kernel's
// maximum radius.
//
// # Scores
//
// Scores are normalized cross-correlations in [-1, 1]: the kernel's
// zero-mean, unit-norm weights dotted with the sampled intensities and
// divided by the centered sample norm. This makes scores comparable across
// image regions with different brightness and contrast, and the dense
// angular sampling makes them invariant to the target's rotational phase.
// Locally constant patches score exactly 0.
//
// # Concurrency
//
// A Selector handles one image at a time and is not safe for concurrent
// use. The scan distributes rows across worker goroutines internally, but
// its output never depends on the worker count. A Kernel is immutable
// after construction and may be shared read-only across selectors.
//
// # Performance
//
// The scan dominates: cost is linear in image area and linear in kernel
// size (which grows with the square of the outer radius). Extraction and
// refinement touch only a small neighborhood per surviving cell.
package detection
