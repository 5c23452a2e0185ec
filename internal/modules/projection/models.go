// Package projection implements the correlated multi-asset Monte Carlo engine
// that turns a target allocation, a starting balance and a monthly contribution
// into percentile bands of future portfolio value, plus the closed-form
// expected return and volatility of the same allocation.
package projection

import (
	"time"

	"github.com/aristath/horizon/internal/modules/universe"
)

// Allocation maps asset classes to target weights in percent. Weights do not
// have to sum to 100; they are normalized before use.
type Allocation map[universe.AssetClass]float64

// Parameters describes one simulation request.
type Parameters struct {
	Allocation          Allocation `json:"allocation" msgpack:"allocation" validate:"required,min=1"`
	InitialInvestment   float64    `json:"initial_investment" msgpack:"initial_investment" validate:"gte=0"`
	MonthlyContribution float64    `json:"monthly_contribution" msgpack:"monthly_contribution" validate:"gte=0"`
	Years               int        `json:"years" msgpack:"years" validate:"gte=0,lte=100"`
	Simulations         int        `json:"simulations" msgpack:"simulations" validate:"gte=1"`
	// Seed makes a run reproducible. Path i draws from PCG(seed, i), so the
	// result does not depend on the number of workers.
	Seed *uint64 `json:"seed,omitempty" msgpack:"seed,omitempty"`
}

// YearSummary is the distribution of simulated portfolio values at one year boundary.
type YearSummary struct {
	Year         int     `json:"year" msgpack:"year"`
	Percentile5  float64 `json:"p5" msgpack:"p5"`
	Percentile25 float64 `json:"p25" msgpack:"p25"`
	Percentile50 float64 `json:"p50" msgpack:"p50"`
	Percentile75 float64 `json:"p75" msgpack:"p75"`
	Percentile95 float64 `json:"p95" msgpack:"p95"`
	Mean         float64 `json:"mean" msgpack:"mean"`
	// Contributed is the cash put in up to this year, with no growth.
	Contributed float64 `json:"contributed" msgpack:"contributed"`
}

// Projection is the result of one engine run.
type Projection struct {
	RunID      string        `json:"run_id" msgpack:"run_id"`
	Parameters Parameters    `json:"parameters" msgpack:"parameters"`
	Years      []YearSummary `json:"years" msgpack:"years"`
	Duration   time.Duration `json:"duration_ns" msgpack:"duration_ns"`
}

// Final returns the summary for the last simulated year.
func (p *Projection) Final() YearSummary {
	if len(p.Years) == 0 {
		return YearSummary{}
	}
	return p.Years[len(p.Years)-1]
}

// PortfolioMetrics are the closed-form annual characteristics of an allocation.
type PortfolioMetrics struct {
	ExpectedReturn float64 `json:"expected_return" msgpack:"expected_return"`
	Volatility     float64 `json:"volatility" msgpack:"volatility"`
	// SharpeRatio is ExpectedReturn / Volatility, not adjusted for a risk-free
	// rate. It is nil when the portfolio has zero volatility.
	SharpeRatio *float64 `json:"sharpe_ratio" msgpack:"sharpe_ratio"`
}
