package detection

import "math"

// Candidate is an integer-pixel detection produced by thresholding and
// non-maximum suppression of a score map.
type Candidate struct {
	Row    int     `json:"row"`
	Column int     `json:"column"`
	Score  float64 `json:"score"`
}

// extract turns a score map into a sparse candidate list.
//
// Cells below minScore are rejected outright; unevaluated border cells are
// skipped. A surviving cell must be the maximum within the Euclidean
// suppression radius, with ties broken by raster order: the earlier row,
// then the earlier column, wins. Candidates are returned in ascending
// raster order of their location, never sorted by score, so iteration is
// deterministic regardless of score ties.
func extract(m *ScoreMap, minScore float64, radius int) []Candidate {
	var out []Candidate
	r2 := radius * radius
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			s := m.At(row, col)
			if math.IsNaN(s) || s < minScore {
				continue
			}
			if suppressed(m, row, col, s, radius, r2) {
				continue
			}
			out = append(out, Candidate{Row: row, Column: col, Score: s})
		}
	}
	return out
}

// suppressed reports whether a strictly stronger score, or an equal score
// at a raster-earlier cell, exists within the suppression radius.
func suppressed(m *ScoreMap, row, col int, s float64, radius, r2 int) bool {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dy == 0 && dx == 0 {
				continue
			}
			if dy*dy+dx*dx > r2 {
				continue
			}
			q := m.At(row+dy, col+dx)
			if math.IsNaN(q) {
				continue
			}
			if q > s {
				return true
			}
			if q == s && (dy < 0 || (dy == 0 && dx < 0)) {
				return true
			}
		}
	}
	return false
}
