package detection

import "math"

// ScoreMap is a dense grid of per-pixel symmetry scores covering one bound
// image. Cells inside the kernel's border margin are never evaluated and
// hold NaN; evaluated cells hold a normalized correlation score in [-1, 1].
//
// A ScoreMap is a pure function of the bound image and the selector
// configuration. It is owned by the selector for the duration of one
// detection session and recomputed from scratch when a new image is bound.
type ScoreMap struct {
	rows, cols int
	border     int
	data       []float64
}

func newScoreMap(rows, cols, border int) *ScoreMap {
	m := &ScoreMap{
		rows:   rows,
		cols:   cols,
		border: border,
		data:   make([]float64, rows*cols),
	}
	nan := math.NaN()
	for i := range m.data {
		m.data[i] = nan
	}
	return m
}

// Rows returns the number of score rows (same extent as the input image).
func (m *ScoreMap) Rows() int { return m.rows }

// Columns returns the number of score columns.
func (m *ScoreMap) Columns() int { return m.cols }

// Border returns the width of the unevaluated margin around the interior
// region. It equals the kernel's maximum radius.
func (m *ScoreMap) Border() int { return m.border }

// At returns the score at (row, column). Cells outside the map or inside
// the unevaluated border return NaN.
func (m *ScoreMap) At(row, col int) float64 {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return math.NaN()
	}
	return m.data[row*m.cols+col]
}

// Evaluated reports whether (row, column) holds a computed score.
func (m *ScoreMap) Evaluated(row, col int) bool {
	return !math.IsNaN(m.At(row, col))
}

// Range returns the minimum and maximum evaluated scores. ok is false when
// the map contains no evaluated cells (image smaller than the kernel).
func (m *ScoreMap) Range() (lo, hi float64, ok bool) {
	for _, v := range m.data {
		if math.IsNaN(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}

func (m *ScoreMap) set(row, col int, v float64) {
	m.data[row*m.cols+col] = v
}
