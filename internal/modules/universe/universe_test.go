package universe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestOrder_MatchesEnumValues(t *testing.T) {
	require.Len(t, Order, NumAssetClasses)
	for i, a := range Order {
		assert.Equal(t, AssetClass(i), a, "Order[%d] must equal its index", i)
	}
}

func TestParseAssetClass_RoundTrip(t *testing.T) {
	for _, a := range Order {
		parsed, err := ParseAssetClass(a.Key())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
}

func TestParseAssetClass_Normalizes(t *testing.T) {
	a, err := ParseAssetClass("  US-Large-Cap ")
	require.NoError(t, err)
	assert.Equal(t, USLargeCap, a)

	_, err = ParseAssetClass("crypto")
	assert.Error(t, err)
}

func TestAssetClass_JSONMapKeys(t *testing.T) {
	in := map[AssetClass]float64{USLargeCap: 60, InvestmentGradeBonds: 40}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"us_large_cap":60,"investment_grade_bonds":40}`, string(data))

	var out map[AssetClass]float64
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestAssetClass_InvalidKey(t *testing.T) {
	assert.False(t, AssetClass(NumAssetClasses).Valid())
	assert.Equal(t, "asset_class(11)", AssetClass(11).Key())
	_, err := AssetClass(-1).MarshalText()
	assert.Error(t, err)
}

func TestDefault_CorrelationIsPositiveDefinite(t *testing.T) {
	corr := Default().Correlation()

	var chol mat.Cholesky
	assert.True(t, chol.Factorize(corr))

	for i := 0; i < NumAssetClasses; i++ {
		assert.Equal(t, 1.0, corr.At(i, i))
	}
}

func TestDefault_Statistics(t *testing.T) {
	u := Default()

	assert.Equal(t, 0.10, u.Stats(USLargeCap).AnnualReturn)
	assert.Equal(t, 0.16, u.Stats(USLargeCap).AnnualVolatility)
	assert.Equal(t, 0.02, u.Stats(Cash).AnnualReturn)

	vols := u.Volatilities()
	returns := u.Returns()
	require.Len(t, vols, NumAssetClasses)
	require.Len(t, returns, NumAssetClasses)
	for i, a := range Order {
		assert.Equal(t, u.Stats(a).AnnualVolatility, vols[i])
		assert.Equal(t, u.Stats(a).AnnualReturn, returns[i])
	}
}

func TestCorrelation_ReturnsCopy(t *testing.T) {
	u := Default()

	c := u.Correlation()
	c.SetSym(0, 1, -0.5)

	assert.Equal(t, 0.85, u.Correlation().At(0, 1))
}

func TestAssets_Listing(t *testing.T) {
	assets := Default().Assets()

	require.Len(t, assets, NumAssetClasses)
	assert.Equal(t, "us_large_cap", assets[0].Key)
	assert.Equal(t, "Cash", assets[NumAssetClasses-1].Name)
}

func identityCorrelation() [NumAssetClasses][NumAssetClasses]float64 {
	var c [NumAssetClasses][NumAssetClasses]float64
	for i := range c {
		c[i][i] = 1
	}
	return c
}

func TestNew_RejectsAsymmetricCorrelation(t *testing.T) {
	c := identityCorrelation()
	c[0][1] = 0.3
	c[1][0] = 0.2

	_, err := New(defaultStatistics, c)
	assert.ErrorContains(t, err, "asymmetric")
}

func TestNew_RejectsNonUnitDiagonal(t *testing.T) {
	c := identityCorrelation()
	c[4][4] = 0.99

	_, err := New(defaultStatistics, c)
	assert.Error(t, err)
}

func TestNew_RejectsImpossibleStatistics(t *testing.T) {
	stats := defaultStatistics
	stats[Gold] = Statistics{AnnualReturn: -1, AnnualVolatility: 0.1}
	_, err := New(stats, identityCorrelation())
	assert.Error(t, err)

	stats = defaultStatistics
	stats[Gold] = Statistics{AnnualReturn: 0.05, AnnualVolatility: -0.1}
	_, err = New(stats, identityCorrelation())
	assert.Error(t, err)
}

func TestMustNew_PanicsOnInvalidData(t *testing.T) {
	c := identityCorrelation()
	c[2][3] = 1.5
	c[3][2] = 1.5

	assert.Panics(t, func() {
		MustNew(defaultStatistics, c)
	})
}
