package projection

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/aristath/horizon/internal/modules/universe"
	"github.com/aristath/horizon/pkg/formulas"
)

const (
	// MonthsPerYear is the number of simulation steps per year.
	MonthsPerYear = 12
	// ClampSigmas bounds each monthly log draw to drift ± ClampSigmas·σ.
	ClampSigmas = 3.0
	// MaxMonthlyMove is the hard floor/ceiling on any simple monthly return.
	MaxMonthlyMove = 0.25
)

// Model holds everything derived from a universe that sampling needs: the
// Cholesky factor of the monthly covariance matrix and the per-asset monthly
// log-normal parameters and clamp bounds. It is computed once and is read-only
// afterwards, so one Model is shared by every worker of a run.
type Model struct {
	universe *universe.Universe
	factor   *mat.TriDense

	drift [universe.NumAssetClasses]float64
	sigma [universe.NumAssetClasses]float64
	lower [universe.NumAssetClasses]float64
	upper [universe.NumAssetClasses]float64
}

// NewModel precomputes the sampling model for a universe.
func NewModel(u *universe.Universe) *Model {
	m := &Model{universe: u}

	monthlyVols := make([]float64, universe.NumAssetClasses)
	for i, a := range universe.Order {
		s := u.Stats(a)
		variance := s.AnnualVolatility * s.AnnualVolatility / MonthsPerYear
		sigma := math.Sqrt(variance)
		drift := math.Log1p(s.AnnualReturn)/MonthsPerYear - 0.5*variance

		m.drift[i] = drift
		m.sigma[i] = sigma
		m.lower[i] = math.Max(math.Expm1(drift-ClampSigmas*sigma), -MaxMonthlyMove)
		m.upper[i] = math.Min(math.Expm1(drift+ClampSigmas*sigma), MaxMonthlyMove)
		monthlyVols[i] = sigma
	}

	cov := formulas.BuildCovariance(u.Correlation(), monthlyVols)
	m.factor = formulas.Cholesky(cov)
	return m
}

// Universe returns the universe the model was built from.
func (m *Model) Universe() *universe.Universe {
	return m.universe
}

// Factor returns the lower triangular factor of the monthly covariance matrix.
func (m *Model) Factor() mat.Triangular {
	return m.factor
}

// simpleReturn converts a correlated monthly shock into a clamped simple return.
func (m *Model) simpleReturn(i int, shock float64) float64 {
	r := math.Expm1(m.drift[i] + shock)
	if r < m.lower[i] {
		return m.lower[i]
	}
	if r > m.upper[i] {
		return m.upper[i]
	}
	return r
}
