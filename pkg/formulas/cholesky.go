package formulas

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Cholesky factorizes a symmetric positive semi-definite matrix into a lower
// triangular L with L * L' = m.
//
// Unlike mat.Cholesky this never fails. A negative radicand left over from
// round-off is clamped to zero, and a zero pivot zero-fills the entries below it
// in its column, so a redundant (perfectly correlated or zero variance) asset
// yields a degenerate but usable factor instead of NaNs.
func Cholesky(m mat.Symmetric) *mat.TriDense {
	n := m.SymmetricDim()
	l := mat.NewTriDense(n, mat.Lower, nil)

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			var sum float64
			for k := 0; k < j; k++ {
				sum += l.At(i, k) * l.At(j, k)
			}

			if i == j {
				l.SetTri(i, i, math.Sqrt(math.Max(m.At(i, i)-sum, 0)))
				continue
			}

			pivot := l.At(j, j)
			if pivot == 0 {
				continue
			}
			l.SetTri(i, j, (m.At(i, j)-sum)/pivot)
		}
	}

	return l
}
