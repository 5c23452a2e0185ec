package formulas

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BuildCovariance scales a correlation matrix by per-asset volatilities.
// cov[i][j] = corr[i][j] * vols[i] * vols[j]
//
// The volatilities must be expressed in the horizon the caller samples at
// (monthly for path simulation, annual for closed-form metrics).
// Panics when the dimensions disagree.
func BuildCovariance(corr mat.Symmetric, vols []float64) *mat.SymDense {
	n := corr.SymmetricDim()
	if n != len(vols) {
		panic(fmt.Sprintf("formulas: correlation matrix is %dx%d but %d volatilities were given", n, n, len(vols)))
	}

	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cov.SetSym(i, j, corr.At(i, j)*vols[i]*vols[j])
		}
	}
	return cov
}

// CheckCorrelation verifies the structural invariants of a correlation matrix:
// unit diagonal and every coefficient within [-1, 1]. Symmetry is guaranteed by
// the mat.Symmetric representation.
func CheckCorrelation(corr mat.Symmetric) error {
	n := corr.SymmetricDim()
	for i := 0; i < n; i++ {
		if d := corr.At(i, i); math.Abs(d-1) > 1e-12 {
			return fmt.Errorf("diagonal element (%d,%d) is %v, expected 1", i, i, d)
		}
		for j := 0; j < i; j++ {
			c := corr.At(i, j)
			if math.IsNaN(c) || c < -1 || c > 1 {
				return fmt.Errorf("coefficient (%d,%d) is %v, outside [-1, 1]", i, j, c)
			}
		}
	}
	return nil
}

// PortfolioVariance returns w' * cov * w.
func PortfolioVariance(weights []float64, cov mat.Symmetric) float64 {
	n := cov.SymmetricDim()
	if n != len(weights) {
		panic(fmt.Sprintf("formulas: covariance matrix is %dx%d but %d weights were given", n, n, len(weights)))
	}
	w := mat.NewVecDense(n, weights)
	return mat.Inner(w, cov, w)
}
