package scoring

// Market states used by the meta-ensemble selector. Coarser than the
// regime taxonomy: only the split that changes which method wins.
const (
	StateCrisis = "crisis"
	StateCalm   = "calm"
	StateNormal = "normal"
)

// DetectMarketState scores crisis pressure across four sentinel indicators
// and buckets the market into crisis, calm or normal.
func DetectMarketState(readings map[string]float64) string {
	vix := readingOr(readings, "VIXCLS", 25)
	yieldCurve := readingOr(readings, "YIELD_CURVE", 20)
	credit := readingOr(readings, "BAMLH0A0HYM2", 35)
	sahm := readingOr(readings, "SAHM_RULE", 15)

	crisisScore := 0
	switch {
	case vix > 35:
		crisisScore += 2
	case vix > 25:
		crisisScore++
	}
	switch {
	case yieldCurve > 55:
		crisisScore += 2
	case yieldCurve > 40:
		crisisScore++
	}
	switch {
	case credit > 50:
		crisisScore += 2
	case credit > 40:
		crisisScore++
	}
	switch {
	case sahm > 50:
		crisisScore += 2
	case sahm > 30:
		crisisScore++
	}

	switch {
	case crisisScore >= 3:
		return StateCrisis
	case crisisScore <= 1 && vix < 20:
		return StateCalm
	default:
		return StateNormal
	}
}

// MetaEnsemble picks the best method for the detected market state:
// time-decay momentum in crisis (and by default), regime-adaptive in calm
// periods where it has the edge.
func MetaEnsemble(readings map[string]float64) Result {
	if DetectMarketState(readings) == StateCalm {
		return RegimeAdaptive(readings)
	}
	return TimeDecayMomentum(readings)
}
