package universe

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/aristath/horizon/pkg/formulas"
)

// Statistics holds the long-run assumptions for one asset class, as decimal fractions.
type Statistics struct {
	AnnualReturn     float64 `json:"annual_return"`
	AnnualVolatility float64 `json:"annual_volatility"`
}

// Asset is the listing form of one asset class.
type Asset struct {
	Key              string  `json:"key" msgpack:"key"`
	Name             string  `json:"name" msgpack:"name"`
	AnnualReturn     float64 `json:"annual_return" msgpack:"annual_return"`
	AnnualVolatility float64 `json:"annual_volatility" msgpack:"annual_volatility"`
}

// Universe is an immutable set of asset statistics and the correlation matrix
// between them, both indexed by AssetClass.
type Universe struct {
	stats       [NumAssetClasses]Statistics
	correlation *mat.SymDense
}

// New validates and builds a universe. Correlations must be exactly symmetric
// with a unit diagonal and coefficients in [-1, 1]; returns must exceed -1 and
// volatilities must be non-negative.
func New(stats [NumAssetClasses]Statistics, correlation [NumAssetClasses][NumAssetClasses]float64) (*Universe, error) {
	for _, a := range Order {
		s := stats[a]
		if s.AnnualReturn <= -1 {
			return nil, fmt.Errorf("%s: annual return %v must be greater than -1", a, s.AnnualReturn)
		}
		if s.AnnualVolatility < 0 {
			return nil, fmt.Errorf("%s: annual volatility %v must be non-negative", a, s.AnnualVolatility)
		}
	}

	data := make([]float64, 0, NumAssetClasses*NumAssetClasses)
	for i := 0; i < NumAssetClasses; i++ {
		for j := 0; j < NumAssetClasses; j++ {
			if correlation[i][j] != correlation[j][i] {
				return nil, fmt.Errorf("correlation between %s and %s is asymmetric (%v vs %v)",
					Order[i], Order[j], correlation[i][j], correlation[j][i])
			}
			data = append(data, correlation[i][j])
		}
	}

	corr := mat.NewSymDense(NumAssetClasses, data)
	if err := formulas.CheckCorrelation(corr); err != nil {
		return nil, fmt.Errorf("invalid correlation matrix: %w", err)
	}

	return &Universe{stats: stats, correlation: corr}, nil
}

// MustNew is New for static reference data; it panics on invalid input because
// bad tables would silently corrupt every simulation.
func MustNew(stats [NumAssetClasses]Statistics, correlation [NumAssetClasses][NumAssetClasses]float64) *Universe {
	u, err := New(stats, correlation)
	if err != nil {
		panic(fmt.Sprintf("universe: %v", err))
	}
	return u
}

var defaultUniverse = MustNew(defaultStatistics, defaultCorrelation)

// Default returns the built-in reference universe.
func Default() *Universe {
	return defaultUniverse
}

// Stats returns the assumptions for one asset class.
func (u *Universe) Stats(a AssetClass) Statistics {
	return u.stats[a]
}

// Correlation returns a copy of the correlation matrix in canonical order.
func (u *Universe) Correlation() *mat.SymDense {
	c := mat.NewSymDense(NumAssetClasses, nil)
	c.CopySym(u.correlation)
	return c
}

// Volatilities returns annual volatilities in canonical order.
func (u *Universe) Volatilities() []float64 {
	v := make([]float64, NumAssetClasses)
	for i, a := range Order {
		v[i] = u.stats[a].AnnualVolatility
	}
	return v
}

// Returns returns annual expected returns in canonical order.
func (u *Universe) Returns() []float64 {
	r := make([]float64, NumAssetClasses)
	for i, a := range Order {
		r[i] = u.stats[a].AnnualReturn
	}
	return r
}

// Assets lists every asset class with its assumptions, in canonical order.
func (u *Universe) Assets() []Asset {
	assets := make([]Asset, 0, NumAssetClasses)
	for _, a := range Order {
		s := u.stats[a]
		assets = append(assets, Asset{
			Key:              a.Key(),
			Name:             a.Name(),
			AnnualReturn:     s.AnnualReturn,
			AnnualVolatility: s.AnnualVolatility,
		})
	}
	return assets
}
