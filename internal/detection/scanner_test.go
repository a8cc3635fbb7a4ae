package detection

import (
	"math"
	"testing"
)

func mustKernel(t *testing.T, inner, outer, density int) *Kernel {
	t.Helper()
	k, err := NewKernel(inner, outer, density)
	if err != nil {
		t.Fatalf("NewKernel(%d, %d, %d) failed: %v", inner, outer, density, err)
	}
	return k
}

func TestScan_UniformImage(t *testing.T) {
	k := mustKernel(t, 5, 9, 2)
	img := newGridImage(64, 64, 200)

	m := scan(img, k, 1)

	margin := k.MaxRadius()
	for row := margin; row < img.rows-margin; row++ {
		for col := margin; col < img.cols-margin; col++ {
			if s := m.At(row, col); s != 0 {
				t.Fatalf("uniform image score at (%d, %d) is %g, want exactly 0", row, col, s)
			}
		}
	}
}

func TestScan_BorderNotEvaluated(t *testing.T) {
	k := mustKernel(t, 5, 9, 2)
	img := newGridImage(40, 50, 128)

	m := scan(img, k, 1)
	margin := k.MaxRadius()

	if m.Border() != margin {
		t.Errorf("Border: got %d, want %d", m.Border(), margin)
	}
	for row := 0; row < img.rows; row++ {
		for col := 0; col < img.cols; col++ {
			interior := row >= margin && row < img.rows-margin &&
				col >= margin && col < img.cols-margin
			if m.Evaluated(row, col) != interior {
				t.Fatalf("Evaluated(%d, %d) = %v, want %v", row, col, m.Evaluated(row, col), interior)
			}
		}
	}
}

func TestScan_ImageSmallerThanKernel(t *testing.T) {
	k := mustKernel(t, 5, 9, 2)
	img := newGridImage(10, 10, 128)

	m := scan(img, k, 4)

	if _, _, ok := m.Range(); ok {
		t.Error("no cell should be evaluated when the kernel does not fit")
	}
}

func TestScan_PeakAtTargetCenter(t *testing.T) {
	k := mustKernel(t, 5, 9, 2)
	img := newGridImage(80, 80, 128)
	drawBullseye(img, 40, 40, 5, 9, 2)

	m := scan(img, k, 1)

	bestRow, bestCol := -1, -1
	best := math.Inf(-1)
	for row := 0; row < img.rows; row++ {
		for col := 0; col < img.cols; col++ {
			if !m.Evaluated(row, col) {
				continue
			}
			if s := m.At(row, col); s > best {
				best, bestRow, bestCol = s, row, col
			}
		}
	}

	if bestRow != 40 || bestCol != 40 {
		t.Errorf("score peak at (%d, %d), want (40, 40)", bestRow, bestCol)
	}
	if best < 0.9 {
		t.Errorf("peak score %.3f, want near 1 for a clean synthetic target", best)
	}
}

func TestScan_WorkerCountInvariance(t *testing.T) {
	k := mustKernel(t, 5, 9, 2)
	img := newGridImage(60, 70, 128)
	drawBullseye(img, 30, 35, 5, 9, 2)

	sequential := scan(img, k, 1)
	parallel := scan(img, k, 7)

	for row := 0; row < img.rows; row++ {
		for col := 0; col < img.cols; col++ {
			a, b := sequential.At(row, col), parallel.At(row, col)
			if math.IsNaN(a) && math.IsNaN(b) {
				continue
			}
			if a != b {
				t.Fatalf("score at (%d, %d) differs: sequential %g, parallel %g", row, col, a, b)
			}
		}
	}
}

func TestScoreAt_ContrastInvariance(t *testing.T) {
	// The same pattern at half contrast must score identically: the
	// normalization divides out local contrast.
	k := mustKernel(t, 5, 9, 2)

	strong := newGridImage(40, 40, 128)
	drawBullseye(strong, 20, 20, 5, 9, 2)

	weak := newGridImage(40, 40, 128)
	for row := 0; row < 40; row++ {
		for col := 0; col < 40; col++ {
			// Compress intensities around the midpoint.
			v := strong.At(row, col)
			weak.set(row, col, uint8(128+(int(v)-128)/2))
		}
	}

	sStrong := scoreAt(strong, k, 20, 20)
	sWeak := scoreAt(weak, k, 20, 20)
	if math.Abs(sStrong-sWeak) > 0.05 {
		t.Errorf("contrast changed the score too much: strong %.4f, weak %.4f", sStrong, sWeak)
	}
}
