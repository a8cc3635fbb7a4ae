package detection

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// refineWindow is the half-width of the score neighborhood used for the
// quadratic surface fit.
const refineWindow = 1

// refine estimates a continuous-valued center for an integer candidate.
//
// It least-squares fits the quadratic surface
//
//	f(dr, dc) = a + b*dr + c*dc + d*dr² + e*dr*dc + f*dc²
//
// to the 3x3 score window around the candidate (QR factorization) and
// returns the surface's stationary point. The fit degrades gracefully to
// the integer location with zero fractional offset when:
//
//   - the window touches unevaluated cells (candidate on the interior edge),
//   - the fitted curvature is not a proper maximum (flat or saddle-shaped
//     score surface), or
//   - the stationary point lies more than one pixel from the candidate,
//     which indicates an unstable fit rather than a better estimate.
func refine(m *ScoreMap, cand Candidate) (row, col float64) {
	row, col = float64(cand.Row), float64(cand.Column)

	const k = refineWindow
	const n = (2*k + 1) * (2*k + 1)

	a := mat.NewDense(n, 6, nil)
	b := mat.NewVecDense(n, nil)
	i := 0
	for dr := -k; dr <= k; dr++ {
		for dc := -k; dc <= k; dc++ {
			if !m.Evaluated(cand.Row+dr, cand.Column+dc) {
				return row, col
			}
			fr, fc := float64(dr), float64(dc)
			a.Set(i, 0, 1)
			a.Set(i, 1, fr)
			a.Set(i, 2, fc)
			a.Set(i, 3, fr*fr)
			a.Set(i, 4, fr*fc)
			a.Set(i, 5, fc*fc)
			b.SetVec(i, m.At(cand.Row+dr, cand.Column+dc))
			i++
		}
	}

	var qr mat.QR
	qr.Factorize(a)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, b); err != nil {
		return row, col
	}

	gr := coef.AtVec(1)
	gc := coef.AtVec(2)
	hrr := 2 * coef.AtVec(3)
	hrc := coef.AtVec(4)
	hcc := 2 * coef.AtVec(5)

	// The stationary point is a maximum only if the Hessian is negative
	// definite: hrr < 0 and det > 0.
	det := hrr*hcc - hrc*hrc
	if hrr >= 0 || det <= 1e-12 {
		return row, col
	}

	offR := (hrc*gc - hcc*gr) / det
	offC := (hrc*gr - hrr*gc) / det
	if math.Abs(offR) > 1 || math.Abs(offC) > 1 {
		return row, col
	}
	return row + offR, col + offC
}
