package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/aristath/horizon/internal/modules/universe"
)

func TestNewModel_MonthlyParameters(t *testing.T) {
	m := NewModel(universe.Default())

	i := int(universe.USLargeCap)
	variance := 0.16 * 0.16 / 12
	assert.InDelta(t, math.Sqrt(variance), m.sigma[i], 1e-15)
	assert.InDelta(t, math.Log(1.10)/12-0.5*variance, m.drift[i], 1e-15)
}

func TestNewModel_ClampBounds(t *testing.T) {
	m := NewModel(universe.Default())

	for i := range universe.Order {
		assert.InDelta(t, math.Expm1(m.drift[i]-3*m.sigma[i]), m.lower[i], 1e-15)
		assert.InDelta(t, math.Expm1(m.drift[i]+3*m.sigma[i]), m.upper[i], 1e-15)
		assert.Less(t, m.lower[i], m.upper[i])
	}
}

func TestNewModel_HardClampForExtremeVolatility(t *testing.T) {
	m := NewModel(volatileUniverse(1.5))

	for i := range universe.Order {
		assert.Equal(t, -MaxMonthlyMove, m.lower[i])
		assert.Equal(t, MaxMonthlyMove, m.upper[i])
	}
}

func TestNewModel_FactorReconstructsMonthlyCovariance(t *testing.T) {
	u := universe.Default()
	m := NewModel(u)

	var prod mat.Dense
	prod.Mul(m.Factor(), m.Factor().T())

	corr := u.Correlation()
	for i, a := range universe.Order {
		for j, b := range universe.Order {
			expected := corr.At(i, j) * u.Stats(a).AnnualVolatility * u.Stats(b).AnnualVolatility / 12
			assert.InDelta(t, expected, prod.At(i, j), 1e-12, "entry (%s,%s)", a, b)
		}
	}
}

func TestNewModel_ZeroVolatilityUniverse(t *testing.T) {
	m := NewModel(flatUniverse(0.06))

	for i := range universe.Order {
		assert.Equal(t, 0.0, m.sigma[i])
		assert.Equal(t, m.lower[i], m.upper[i])
		for j := 0; j <= i; j++ {
			assert.Equal(t, 0.0, m.Factor().At(i, j))
		}
	}
}
