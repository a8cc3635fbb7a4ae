package detection

import (
	"fmt"
	"math"
	"sort"
)

// Sample is a single kernel tap: a pixel offset relative to the scan center
// and the signed weight applied to the intensity read there.
type Sample struct {
	// DR is the row offset from the scan center.
	DR int

	// DC is the column offset from the scan center.
	DC int

	// Weight is the signed correlation weight. Positive weights mark
	// expected-bright ring zones, negative weights expected-dark zones.
	// Across the whole kernel the weights have zero mean and unit L2 norm.
	Weight float64
}

// Kernel is a precomputed correlation template for a radially symmetric
// bullseye target: alternating bright and dark concentric rings between an
// inner and an outer radius.
//
// A Kernel is immutable after construction and may be shared read-only
// across any number of selectors with identical configuration (see
// NewSelectorWithKernel). Identical configuration always yields an
// identical kernel.
//
// # Sampling Model
//
// The annulus [inner, outer) is divided into `density` radial bands of
// equal width, alternating expected-bright (band 0) and expected-dark.
// Each band is walked at one or more radii with enough angular steps to
// touch every pixel on the ring, and the resulting integer offsets are
// deduplicated. Each retained offset is classified into a band by its
// actual center distance, so the weight assigned to a pixel is always
// consistent with where that pixel really sits. Weights are +1/-1 by band
// parity, then centered to zero mean and scaled to unit norm so the scan
// score is a true normalized correlation.
type Kernel struct {
	inner   int
	outer   int
	density int
	samples []Sample
}

// NewKernel builds the correlation template for the given ring geometry.
//
// Parameters:
//   - inner: inner ring radius in pixels. Must be positive.
//   - outer: outer ring radius in pixels. Must exceed inner. Also the
//     kernel's maximum sample radius (see MaxRadius).
//   - density: number of alternating radial bands between the radii. Must
//     be at least 2 so the template contains both polarities; a single
//     band cannot express an alternating ring pattern.
//
// Violations return an error wrapping ErrInvalidConfiguration; no partial
// kernel is built.
func NewKernel(inner, outer, density int) (*Kernel, error) {
	if inner <= 0 || outer <= inner {
		return nil, fmt.Errorf("%w: radii must satisfy 0 < inner < outer, got inner=%d outer=%d",
			ErrInvalidConfiguration, inner, outer)
	}
	if density < 2 {
		return nil, fmt.Errorf("%w: sample density must be at least 2 to alternate ring polarity, got %d",
			ErrInvalidConfiguration, density)
	}

	bandWidth := float64(outer-inner) / float64(density)

	type offset struct{ dr, dc int }
	seen := make(map[offset]bool)
	var samples []Sample

	for band := 0; band < density; band++ {
		substeps := int(math.Ceil(bandWidth))
		if substeps < 1 {
			substeps = 1
		}
		for sub := 0; sub < substeps; sub++ {
			r := float64(inner) + bandWidth*(float64(band)+(float64(sub)+0.5)/float64(substeps))
			steps := int(math.Ceil(2 * math.Pi * r))
			if minSteps := 8 * density; steps < minSteps {
				steps = minSteps
			}
			for k := 0; k < steps; k++ {
				theta := 2 * math.Pi * float64(k) / float64(steps)
				dr := int(math.Round(r * math.Sin(theta)))
				dc := int(math.Round(r * math.Cos(theta)))
				o := offset{dr, dc}
				if seen[o] {
					continue
				}
				seen[o] = true

				// Classify by where the rounded offset actually landed,
				// not by the radius that produced it.
				d := math.Hypot(float64(dr), float64(dc))
				if d < float64(inner) || d >= float64(outer) {
					continue
				}
				b := int((d - float64(inner)) / bandWidth)
				if b >= density {
					b = density - 1
				}
				w := 1.0
				if b%2 == 1 {
					w = -1.0
				}
				samples = append(samples, Sample{DR: dr, DC: dc, Weight: w})
			}
		}
	}

	// Fixed ordering keeps construction and scanning deterministic.
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].DR != samples[j].DR {
			return samples[i].DR < samples[j].DR
		}
		return samples[i].DC < samples[j].DC
	})

	// Center to zero mean, scale to unit norm.
	var sum float64
	for _, s := range samples {
		sum += s.Weight
	}
	if len(samples) > 0 {
		mean := sum / float64(len(samples))
		var norm float64
		for i := range samples {
			samples[i].Weight -= mean
			norm += samples[i].Weight * samples[i].Weight
		}
		norm = math.Sqrt(norm)
		if norm >= 1e-12 {
			for i := range samples {
				samples[i].Weight /= norm
			}
		} else {
			samples = nil
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: configuration yields a degenerate kernel (inner=%d outer=%d density=%d)",
			ErrInvalidConfiguration, inner, outer, density)
	}

	return &Kernel{inner: inner, outer: outer, density: density, samples: samples}, nil
}

// Inner returns the configured inner ring radius.
func (k *Kernel) Inner() int { return k.inner }

// Outer returns the configured outer ring radius.
func (k *Kernel) Outer() int { return k.outer }

// Density returns the configured number of radial bands.
func (k *Kernel) Density() int { return k.density }

// MaxRadius returns the maximum sample radius. No kernel offset references
// a pixel farther than this from the scan center; the scanner uses it to
// compute the valid interior region of an image.
func (k *Kernel) MaxRadius() int { return k.outer }

// Size returns the number of sample taps.
func (k *Kernel) Size() int { return len(k.samples) }

// Samples returns a copy of the kernel taps in deterministic (row, column)
// offset order. Useful for introspection and visualization; the kernel
// itself is never mutated.
func (k *Kernel) Samples() []Sample {
	out := make([]Sample, len(k.samples))
	copy(out, k.samples)
	return out
}
