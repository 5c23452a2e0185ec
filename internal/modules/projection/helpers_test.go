package projection

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/aristath/horizon/internal/modules/universe"
)

func identityCorrelation() [universe.NumAssetClasses][universe.NumAssetClasses]float64 {
	var c [universe.NumAssetClasses][universe.NumAssetClasses]float64
	for i := range c {
		c[i][i] = 1
	}
	return c
}

// flatUniverse has zero volatility everywhere and the same annual return for
// every asset, so paths are fully deterministic.
func flatUniverse(annualReturn float64) *universe.Universe {
	var stats [universe.NumAssetClasses]universe.Statistics
	for i := range stats {
		stats[i] = universe.Statistics{AnnualReturn: annualReturn}
	}
	return universe.MustNew(stats, identityCorrelation())
}

// volatileUniverse gives every asset the same extreme volatility so the hard
// monthly clamp is exercised.
func volatileUniverse(vol float64) *universe.Universe {
	var stats [universe.NumAssetClasses]universe.Statistics
	for i := range stats {
		stats[i] = universe.Statistics{AnnualReturn: 0.05, AnnualVolatility: vol}
	}
	return universe.MustNew(stats, identityCorrelation())
}

func seeded(a, b uint64) *rand.Rand {
	return rand.New(rand.NewPCG(a, b))
}

func seedPtr(s uint64) *uint64 {
	return &s
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testEngine(u *universe.Universe, workers int) *Engine {
	return NewEngine(u, Options{Workers: workers}, testLogger())
}

func sixtyForty() Allocation {
	return Allocation{
		universe.USLargeCap:           60,
		universe.InvestmentGradeBonds: 40,
	}
}
