package universe

// Long-run nominal assumptions, annualized.
var defaultStatistics = [NumAssetClasses]Statistics{
	USLargeCap:             {AnnualReturn: 0.10, AnnualVolatility: 0.16},
	USSmallCap:             {AnnualReturn: 0.11, AnnualVolatility: 0.20},
	InternationalDeveloped: {AnnualReturn: 0.08, AnnualVolatility: 0.17},
	EmergingMarkets:        {AnnualReturn: 0.09, AnnualVolatility: 0.23},
	EuropeanEquities:       {AnnualReturn: 0.08, AnnualVolatility: 0.18},
	RealEstate:             {AnnualReturn: 0.08, AnnualVolatility: 0.21},
	HighYieldBonds:         {AnnualReturn: 0.06, AnnualVolatility: 0.10},
	InvestmentGradeBonds:   {AnnualReturn: 0.04, AnnualVolatility: 0.06},
	InternationalBonds:     {AnnualReturn: 0.03, AnnualVolatility: 0.07},
	Gold:                   {AnnualReturn: 0.05, AnnualVolatility: 0.16},
	Cash:                   {AnnualReturn: 0.02, AnnualVolatility: 0.005},
}

// Rows and columns follow Order.
var defaultCorrelation = [NumAssetClasses][NumAssetClasses]float64{
	//  USL   USS   IntD  EM    EU    REIT  HY    IG    IB    Gold  Cash
	{1.00, 0.85, 0.80, 0.70, 0.78, 0.65, 0.60, 0.10, 0.05, 0.05, 0.00}, // us_large_cap
	{0.85, 1.00, 0.72, 0.65, 0.68, 0.70, 0.60, 0.05, 0.00, 0.05, 0.00}, // us_small_cap
	{0.80, 0.72, 1.00, 0.78, 0.92, 0.60, 0.58, 0.12, 0.20, 0.15, 0.00}, // intl_developed
	{0.70, 0.65, 0.78, 1.00, 0.72, 0.55, 0.58, 0.10, 0.15, 0.25, 0.00}, // emerging_markets
	{0.78, 0.68, 0.92, 0.72, 1.00, 0.58, 0.55, 0.12, 0.22, 0.12, 0.00}, // european_equities
	{0.65, 0.70, 0.60, 0.55, 0.58, 1.00, 0.62, 0.25, 0.20, 0.10, 0.00}, // real_estate
	{0.60, 0.60, 0.58, 0.58, 0.55, 0.62, 1.00, 0.30, 0.25, 0.10, 0.00}, // high_yield_bonds
	{0.10, 0.05, 0.12, 0.10, 0.12, 0.25, 0.30, 1.00, 0.70, 0.25, 0.10}, // investment_grade_bonds
	{0.05, 0.00, 0.20, 0.15, 0.22, 0.20, 0.25, 0.70, 1.00, 0.30, 0.10}, // intl_bonds
	{0.05, 0.05, 0.15, 0.25, 0.12, 0.10, 0.10, 0.25, 0.30, 1.00, 0.00}, // gold
	{0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.10, 0.10, 0.00, 1.00}, // cash
}
