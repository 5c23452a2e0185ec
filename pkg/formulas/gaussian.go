package formulas

import "math"

// UniformSource yields uniform draws in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type UniformSource interface {
	Float64() float64
}

// GaussianSampler produces independent standard normal draws with the
// Box-Muller transform. A sampler is not safe for concurrent use; give each
// worker its own sampler over its own source.
type GaussianSampler struct {
	src UniformSource
}

// NewGaussianSampler creates a sampler reading from src.
func NewGaussianSampler(src UniformSource) *GaussianSampler {
	return &GaussianSampler{src: src}
}

// StandardNormalVector returns n independent N(0,1) draws.
func (g *GaussianSampler) StandardNormalVector(n int) []float64 {
	v := make([]float64, n)
	g.Fill(v)
	return v
}

// Fill overwrites dst with independent N(0,1) draws. Both variates of each
// Box-Muller pair are used; the spare of an odd-length fill is discarded so no
// state carries over between calls.
func (g *GaussianSampler) Fill(dst []float64) {
	for i := 0; i < len(dst); i += 2 {
		z0, z1 := g.pair()
		dst[i] = z0
		if i+1 < len(dst) {
			dst[i+1] = z1
		}
	}
}

func (g *GaussianSampler) pair() (float64, float64) {
	u1 := g.src.Float64()
	for u1 == 0 {
		u1 = g.src.Float64()
	}
	u2 := g.src.Float64()

	r := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2
	return r * math.Cos(theta), r * math.Sin(theta)
}
