package scoring

// Indicator categories tracked by the dashboard.
const (
	CategoryLiquidity = "liquidity"
	CategoryCredit    = "credit"
	CategoryMacro     = "macro"
	CategoryValuation = "valuation"
	CategoryTechnical = "technical"
)

// Categories lists every category in a stable order.
var Categories = []string{
	CategoryLiquidity,
	CategoryCredit,
	CategoryMacro,
	CategoryValuation,
	CategoryTechnical,
}

// defaultCategoryScore is assumed when no indicator in a category has data.
const defaultCategoryScore = 50.0

// indicatorWeights assigns research-based weights to each indicator within
// its category. Weights are renormalised over the indicators actually
// present in a reading set, so partial data still yields a category score.
var indicatorWeights = map[string]map[string]float64{
	CategoryLiquidity: {
		"M2SL":      0.30,
		"WALCL":     0.25,
		"RRPONTSYD": 0.30,
		"SOFR":      0.15,
	},
	CategoryCredit: {
		"DGS10":           0.15,
		"BAMLH0A0HYM2":    0.20,
		"DRTSCILM":        0.10,
		"YIELD_CURVE":     0.30,
		"CONSUMER_DELINQ": 0.15,
		"MORTGAGE_DELINQ": 0.10,
	},
	CategoryMacro: {
		"UNRATE":         0.15,
		"CPIAUCSL":       0.15,
		"GDP":            0.15,
		"SAHM_RULE":      0.15,
		"HOUSING_STARTS": 0.10,
		"RETAIL_SALES":   0.15,
		"INDPRO":         0.075,
		"PAYEMS":         0.075,
	},
	CategoryValuation: {
		"NCBEILQ027S": 0.60,
		"NASDAQCOM":   0.40,
	},
	CategoryTechnical: {
		"VIXCLS":     0.40,
		"DCOILWTICO": 0.30,
		"DXY":        0.30,
	},
}

// CategoryOf returns the category an indicator belongs to, or "" when the
// indicator is unknown.
func CategoryOf(indicatorID string) string {
	for category, weights := range indicatorWeights {
		if _, ok := weights[indicatorID]; ok {
			return category
		}
	}
	return ""
}

// KnownIndicator reports whether the indicator is part of the taxonomy.
func KnownIndicator(indicatorID string) bool {
	return CategoryOf(indicatorID) != ""
}
