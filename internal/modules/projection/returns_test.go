package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/horizon/internal/modules/universe"
)

func allAssets() []int {
	all := make([]int, universe.NumAssetClasses)
	for i := range all {
		all[i] = i
	}
	return all
}

func TestMonthlyReturns_WithinClampBounds(t *testing.T) {
	m := NewModel(universe.Default())
	gen := m.NewReturnGenerator(seeded(3, 4))
	dst := make([]float64, universe.NumAssetClasses)

	for n := 0; n < 20000; n++ {
		gen.MonthlyReturns(allAssets(), dst)
		for i, r := range dst {
			require.GreaterOrEqual(t, r, m.lower[i])
			require.LessOrEqual(t, r, m.upper[i])
		}
	}
}

func TestMonthlyReturns_HardClampReached(t *testing.T) {
	m := NewModel(volatileUniverse(1.5))
	gen := m.NewReturnGenerator(seeded(5, 6))
	dst := make([]float64, universe.NumAssetClasses)

	var hitCeiling, hitFloor bool
	for n := 0; n < 2000; n++ {
		gen.MonthlyReturns(allAssets(), dst)
		for _, r := range dst {
			require.LessOrEqual(t, math.Abs(r), MaxMonthlyMove)
			if r == MaxMonthlyMove {
				hitCeiling = true
			}
			if r == -MaxMonthlyMove {
				hitFloor = true
			}
		}
	}
	assert.True(t, hitCeiling)
	assert.True(t, hitFloor)
}

func TestMonthlyReturns_InactiveAssetsAreZero(t *testing.T) {
	m := NewModel(universe.Default())
	gen := m.NewReturnGenerator(seeded(7, 8))
	dst := make([]float64, universe.NumAssetClasses)
	for i := range dst {
		dst[i] = 99
	}

	active := []int{int(universe.Gold)}
	gen.MonthlyReturns(active, dst)

	for i, r := range dst {
		if i == int(universe.Gold) {
			assert.NotEqual(t, 0.0, r)
			continue
		}
		assert.Equal(t, 0.0, r)
	}
}

func TestMonthlyReturns_CorrelationAndDrift(t *testing.T) {
	u := universe.Default()
	m := NewModel(u)
	gen := m.NewReturnGenerator(seeded(11, 12))
	dst := make([]float64, universe.NumAssetClasses)

	const draws = 20000
	large := make([]float64, draws)
	small := make([]float64, draws)
	cash := make([]float64, draws)
	for n := 0; n < draws; n++ {
		gen.MonthlyReturns(allAssets(), dst)
		large[n] = math.Log1p(dst[universe.USLargeCap])
		small[n] = math.Log1p(dst[universe.USSmallCap])
		cash[n] = math.Log1p(dst[universe.Cash])
	}

	expectedCorr := u.Correlation().At(int(universe.USLargeCap), int(universe.USSmallCap))
	assert.InDelta(t, expectedCorr, stat.Correlation(large, small, nil), 0.03)
	assert.InDelta(t, 0.0, stat.Correlation(large, cash, nil), 0.03)

	mean, std := stat.MeanStdDev(large, nil)
	assert.InDelta(t, m.drift[universe.USLargeCap], mean, 0.0015)
	assert.InDelta(t, m.sigma[universe.USLargeCap], std, 0.002)
}

func TestDraw_CoversEveryAssetClass(t *testing.T) {
	gen := NewModel(universe.Default()).NewReturnGenerator(seeded(1, 1))

	returns := gen.Draw()

	require.Len(t, returns, universe.NumAssetClasses)
	for _, a := range universe.Order {
		_, ok := returns[a]
		assert.True(t, ok, "missing %s", a)
	}
}

func TestMonthlyReturns_SeededReproducible(t *testing.T) {
	m := NewModel(universe.Default())
	a := m.NewReturnGenerator(seeded(9, 9))
	b := m.NewReturnGenerator(seeded(9, 9))

	assert.Equal(t, a.Draw(), b.Draw())
}
