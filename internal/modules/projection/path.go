package projection

import (
	"github.com/aristath/horizon/internal/modules/universe"
	"github.com/aristath/horizon/pkg/formulas"
)

// PathSimulator produces single portfolio trajectories. Not safe for concurrent use.
type PathSimulator struct {
	returns *ReturnGenerator
	monthly []float64
}

// NewPathSimulator creates a path simulator drawing uniforms from src.
func (m *Model) NewPathSimulator(src formulas.UniformSource) *PathSimulator {
	return &PathSimulator{
		returns: m.NewReturnGenerator(src),
		monthly: make([]float64, universe.NumAssetClasses),
	}
}

// Simulate returns the portfolio value at every year boundary: index 0 is the
// initial investment and index k the value after k years.
func (p *PathSimulator) Simulate(w Weights, initial, contribution float64, years int) []float64 {
	if years < 0 {
		years = 0
	}
	path := make([]float64, years+1)
	p.simulateInto(path, w, initial, contribution)
	return path
}

// simulateInto fills dst (length years+1). Each month the blended return is
// applied first and the contribution is added afterwards, at month end.
func (p *PathSimulator) simulateInto(dst []float64, w Weights, initial, contribution float64) {
	value := initial
	dst[0] = value

	months := (len(dst) - 1) * MonthsPerYear
	active := w.active
	for month := 1; month <= months; month++ {
		p.returns.MonthlyReturns(active, p.monthly)

		var blended float64
		for _, i := range active {
			blended += w.values[i] * p.monthly[i]
		}

		value *= 1 + blended
		value += contribution

		if month%MonthsPerYear == 0 {
			dst[month/MonthsPerYear] = value
		}
	}
}
