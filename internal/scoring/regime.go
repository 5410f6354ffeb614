package scoring

// Market regimes recognised by the regime-adaptive method.
const (
	RegimeCrisis     = "crisis"
	RegimeBearMarket = "bear_market"
	RegimeBubble     = "bubble"
	RegimeCalm       = "calm"
	RegimeNormal     = "normal"
)

// regimeCategoryWeights shift the category emphasis per regime: credit
// dominates in a crisis, valuation in a bubble.
var regimeCategoryWeights = map[string]map[string]float64{
	RegimeCrisis: {
		CategoryLiquidity: 0.25,
		CategoryCredit:    0.30,
		CategoryMacro:     0.20,
		CategoryValuation: 0.10,
		CategoryTechnical: 0.15,
	},
	RegimeBearMarket: {
		CategoryLiquidity: 0.20,
		CategoryCredit:    0.30,
		CategoryMacro:     0.25,
		CategoryValuation: 0.15,
		CategoryTechnical: 0.10,
	},
	RegimeBubble: {
		CategoryLiquidity: 0.15,
		CategoryCredit:    0.15,
		CategoryMacro:     0.15,
		CategoryValuation: 0.40,
		CategoryTechnical: 0.15,
	},
	RegimeCalm: {
		CategoryLiquidity: 0.15,
		CategoryCredit:    0.15,
		CategoryMacro:     0.20,
		CategoryValuation: 0.35,
		CategoryTechnical: 0.15,
	},
	RegimeNormal: {
		CategoryLiquidity: 0.20,
		CategoryCredit:    0.20,
		CategoryMacro:     0.20,
		CategoryValuation: 0.20,
		CategoryTechnical: 0.20,
	},
}

// readingOr returns the indicator value or a neutral fallback when the
// reading is missing.
func readingOr(readings map[string]float64, indicatorID string, fallback float64) float64 {
	if v, ok := readings[indicatorID]; ok {
		return v
	}
	return fallback
}

// DetectRegime classifies the current market regime from a handful of
// sentinel indicators.
func DetectRegime(readings map[string]float64) string {
	vix := readingOr(readings, "VIXCLS", 25)
	yieldCurve := readingOr(readings, "YIELD_CURVE", 20)
	valuation := readingOr(readings, "NCBEILQ027S", 70)
	credit := readingOr(readings, "BAMLH0A0HYM2", 35)

	switch {
	case vix > 40 || credit > 60:
		return RegimeCrisis
	case yieldCurve > 50 && credit > 40:
		return RegimeBearMarket
	case valuation > 80 && vix < 20:
		return RegimeBubble
	case vix < 20 && credit < 35:
		return RegimeCalm
	default:
		return RegimeNormal
	}
}

// RegimeAdaptive scores categories with the standard indicator weights but
// combines them with regime-specific category weights.
func RegimeAdaptive(readings map[string]float64) Result {
	regime := DetectRegime(readings)
	regimeWeights := regimeCategoryWeights[regime]
	categories := weightedCategoryScores(readings)

	var overall float64
	for category, score := range categories {
		overall += score * regimeWeights[category]
	}
	return Result{
		Overall:    overall,
		Categories: categories,
	}
}
