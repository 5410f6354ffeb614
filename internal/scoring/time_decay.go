package scoring

import "math"

// decayTier maps a value band to a momentum multiplier.
type decayTier struct {
	above      float64
	multiplier float64
}

// momentumTiers lists the indicators that receive a momentum adjustment.
// Fresh spikes get the full multiplier; persistent elevated signals get a
// reduced one because the market has already adjusted to them.
var momentumTiers = map[string][]decayTier{
	"VIXCLS": {
		{above: 60, multiplier: 1.3},
		{above: 40, multiplier: 1.5},
		{above: 30, multiplier: 1.2},
	},
	"YIELD_CURVE": {
		{above: 60, multiplier: 1.3},
		{above: 50, multiplier: 1.5},
		{above: 30, multiplier: 1.2},
	},
	"SAHM_RULE": {
		{above: 60, multiplier: 1.3},
		{above: 40, multiplier: 1.5},
		{above: 30, multiplier: 1.2},
	},
	"BAMLH0A0HYM2": {
		{above: 60, multiplier: 1.3},
		{above: 40, multiplier: 1.5},
	},
}

// decayMultiplier returns the momentum multiplier for one indicator value.
// Indicators outside momentumTiers are passed through unadjusted.
func decayMultiplier(indicatorID string, value float64) float64 {
	for _, tier := range momentumTiers[indicatorID] {
		if value > tier.above {
			return tier.multiplier
		}
	}
	return 1.0
}

// TimeDecayMomentum adjusts the momentum-sensitive indicators by their
// decay multiplier, caps the adjusted values at 100, then scores with the
// weighted average. The recommended default method.
func TimeDecayMomentum(readings map[string]float64) Result {
	adjusted := make(map[string]float64, len(readings))
	for indicatorID, value := range readings {
		adjusted[indicatorID] = math.Min(value*decayMultiplier(indicatorID, value), 100)
	}
	return WeightedAverage(adjusted)
}
