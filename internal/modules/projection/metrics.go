package projection

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/aristath/horizon/internal/modules/universe"
	"github.com/aristath/horizon/pkg/formulas"
)

// zeroVolatility is the threshold below which the Sharpe ratio is undefined.
const zeroVolatility = 1e-12

// CalculateMetrics computes the closed-form annual expected return, volatility
// and return/volatility ratio of an allocation. No sampling is involved.
func CalculateMetrics(u *universe.Universe, alloc Allocation) (PortfolioMetrics, error) {
	w, err := alloc.Normalize()
	if err != nil {
		return PortfolioMetrics{}, err
	}
	return metricsFor(u, w), nil
}

func metricsFor(u *universe.Universe, w Weights) PortfolioMetrics {
	weights := w.Slice()
	expected := floats.Dot(weights, u.Returns())

	cov := formulas.BuildCovariance(u.Correlation(), u.Volatilities())
	variance := math.Max(formulas.PortfolioVariance(weights, cov), 0)
	volatility := math.Sqrt(variance)

	metrics := PortfolioMetrics{
		ExpectedReturn: expected,
		Volatility:     volatility,
	}
	if volatility > zeroVolatility {
		sharpe := expected / volatility
		metrics.SharpeRatio = &sharpe
	}
	return metrics
}

func (m PortfolioMetrics) clone() PortfolioMetrics {
	if m.SharpeRatio != nil {
		sharpe := *m.SharpeRatio
		m.SharpeRatio = &sharpe
	}
	return m
}
