// Package universe defines the fixed set of asset classes the projection engine
// models, with their long-run return and volatility assumptions and the
// pairwise correlation structure between them.
package universe

import (
	"fmt"
	"strings"
)

// AssetClass identifies one of the modelled asset categories. Its integer value
// is the row/column index used by every vector and matrix in the engine.
type AssetClass int

const (
	USLargeCap AssetClass = iota
	USSmallCap
	InternationalDeveloped
	EmergingMarkets
	EuropeanEquities
	RealEstate
	HighYieldBonds
	InvestmentGradeBonds
	InternationalBonds
	Gold
	Cash
)

// NumAssetClasses is the dimension of every asset-indexed vector and matrix.
const NumAssetClasses = int(Cash) + 1

// Order is the canonical asset ordering. Vectors built from the universe follow it.
var Order = [NumAssetClasses]AssetClass{
	USLargeCap,
	USSmallCap,
	InternationalDeveloped,
	EmergingMarkets,
	EuropeanEquities,
	RealEstate,
	HighYieldBonds,
	InvestmentGradeBonds,
	InternationalBonds,
	Gold,
	Cash,
}

var assetKeys = [NumAssetClasses]string{
	USLargeCap:             "us_large_cap",
	USSmallCap:             "us_small_cap",
	InternationalDeveloped: "intl_developed",
	EmergingMarkets:        "emerging_markets",
	EuropeanEquities:       "european_equities",
	RealEstate:             "real_estate",
	HighYieldBonds:         "high_yield_bonds",
	InvestmentGradeBonds:   "investment_grade_bonds",
	InternationalBonds:     "intl_bonds",
	Gold:                   "gold",
	Cash:                   "cash",
}

var assetNames = [NumAssetClasses]string{
	USLargeCap:             "US Large Cap Equities",
	USSmallCap:             "US Small Cap Equities",
	InternationalDeveloped: "International Developed Equities",
	EmergingMarkets:        "Emerging Markets Equities",
	EuropeanEquities:       "European Equities",
	RealEstate:             "Real Estate (REITs)",
	HighYieldBonds:         "High Yield Bonds",
	InvestmentGradeBonds:   "Investment Grade Bonds",
	InternationalBonds:     "International Bonds",
	Gold:                   "Gold",
	Cash:                   "Cash",
}

// Valid reports whether a is one of the defined asset classes.
func (a AssetClass) Valid() bool {
	return a >= 0 && int(a) < NumAssetClasses
}

// Key returns the stable snake_case identifier used in requests and responses.
func (a AssetClass) Key() string {
	if !a.Valid() {
		return fmt.Sprintf("asset_class(%d)", int(a))
	}
	return assetKeys[a]
}

// Name returns a human readable label.
func (a AssetClass) Name() string {
	if !a.Valid() {
		return a.Key()
	}
	return assetNames[a]
}

func (a AssetClass) String() string {
	return a.Key()
}

// ParseAssetClass resolves a key such as "us_large_cap". Matching ignores case
// and surrounding whitespace, and accepts dashes in place of underscores.
func ParseAssetClass(key string) (AssetClass, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	for _, a := range Order {
		if assetKeys[a] == normalized {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown asset class %q", key)
}

// MarshalText implements encoding.TextMarshaler so asset classes can key JSON maps.
func (a AssetClass) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid asset class %d", int(a))
	}
	return []byte(assetKeys[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AssetClass) UnmarshalText(text []byte) error {
	parsed, err := ParseAssetClass(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
