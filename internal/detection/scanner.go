package detection

import (
	"math"
	"runtime"
	"sync"
)

// scoreEpsilon is the minimum centered sample energy for a score to be
// defined. Patches flatter than this score exactly 0.
const scoreEpsilon = 1e-9

// scan slides the kernel over every pixel whose MaxRadius-neighborhood lies
// fully inside the image and records the symmetry score for each. Border
// pixels keep the NaN sentinel. An image smaller than 2*MaxRadius+1 in
// either dimension produces a map with no evaluated cells.
//
// Rows are independent, so they are distributed across workers in a fixed
// stripe pattern; every worker writes disjoint cells and the result is
// identical to a sequential scan regardless of the worker count.
func scan(img Image, k *Kernel, workers int) *ScoreMap {
	rows, cols := img.Rows(), img.Columns()
	margin := k.MaxRadius()
	m := newScoreMap(rows, cols, margin)

	interior := rows - 2*margin
	if interior <= 0 || cols-2*margin <= 0 {
		return m
	}

	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > interior {
		workers = interior
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for row := margin + w; row < rows-margin; row += workers {
				for col := margin; col < cols-margin; col++ {
					m.set(row, col, scoreAt(img, k, row, col))
				}
			}
		}(w)
	}
	wg.Wait()
	return m
}

// scoreAt computes the normalized ring correlation at one pixel: the kernel
// weights (zero mean, unit norm) dotted with the sampled intensities,
// divided by the centered norm of the samples. By Cauchy-Schwarz the result
// lies in [-1, 1]; it is 1 only when the local pattern matches the
// alternating-ring template exactly, and 0 on locally constant patches.
// Because the kernel has dense angular coverage the score does not depend
// on the rotational phase of the target.
func scoreAt(img Image, k *Kernel, row, col int) float64 {
	var sum, sumSq, dot float64
	for _, s := range k.samples {
		v := float64(img.At(row+s.DR, col+s.DC))
		sum += v
		sumSq += v * v
		dot += s.Weight * v
	}
	n := float64(len(k.samples))
	energy := sumSq - sum*sum/n
	if energy <= scoreEpsilon {
		return 0
	}
	return dot / math.Sqrt(energy)
}
