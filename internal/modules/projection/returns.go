package projection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/aristath/horizon/internal/modules/universe"
	"github.com/aristath/horizon/pkg/formulas"
)

// ReturnGenerator draws correlated monthly returns from a shared Model. It owns
// its sampler and scratch vectors, so each worker needs its own generator.
type ReturnGenerator struct {
	model   *Model
	sampler *formulas.GaussianSampler
	raw     []float64
	z       *mat.VecDense
	shock   *mat.VecDense
}

// NewReturnGenerator creates a generator drawing uniforms from src.
func (m *Model) NewReturnGenerator(src formulas.UniformSource) *ReturnGenerator {
	raw := make([]float64, universe.NumAssetClasses)
	return &ReturnGenerator{
		model:   m,
		sampler: formulas.NewGaussianSampler(src),
		raw:     raw,
		z:       mat.NewVecDense(universe.NumAssetClasses, raw),
		shock:   mat.NewVecDense(universe.NumAssetClasses, nil),
	}
}

// MonthlyReturns draws one month of simple returns into dst, which must have
// one slot per asset class. Only the assets listed in active are converted;
// every other slot is set to zero. The shock vector is L·z for a fresh
// standard normal z, so correlations hold across all assets regardless of
// which are active.
func (g *ReturnGenerator) MonthlyReturns(active []int, dst []float64) {
	g.sampler.Fill(g.raw)
	g.shock.MulVec(g.model.factor, g.z)

	for i := range dst {
		dst[i] = 0
	}
	for _, i := range active {
		dst[i] = g.model.simpleReturn(i, g.shock.AtVec(i))
	}
}

// Draw returns one month of simple returns for every asset class.
func (g *ReturnGenerator) Draw() map[universe.AssetClass]float64 {
	all := make([]int, universe.NumAssetClasses)
	for i := range all {
		all[i] = i
	}
	dst := make([]float64, universe.NumAssetClasses)
	g.MonthlyReturns(all, dst)

	out := make(map[universe.AssetClass]float64, universe.NumAssetClasses)
	for i, a := range universe.Order {
		out[a] = dst[i]
	}
	return out
}
