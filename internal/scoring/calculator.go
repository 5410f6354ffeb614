package scoring

import (
	"github.com/sirupsen/logrus"
)

// Method identifies a composite score computation.
type Method string

const (
	MethodSimpleAverage     Method = "simple_average"
	MethodWeightedAverage   Method = "weighted_average"
	MethodTimeDecayMomentum Method = "time_decay_momentum"
	MethodRegimeAdaptive    Method = "regime_adaptive"
	MethodMetaEnsemble      Method = "meta_ensemble"
)

// RecommendedMethod is the default for callers that do not choose one.
const RecommendedMethod = MethodTimeDecayMomentum

// MethodInfo describes a method for the dashboard's method picker.
type MethodInfo struct {
	ID             Method   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Complexity     int      `json:"complexity"`
	OverallError   float64  `json:"overall_error"`
	CrisisError    float64  `json:"crisis_error"`
	CalmError      float64  `json:"calm_error"`
	Improvement    float64  `json:"improvement"`
	RecommendedFor string   `json:"recommended_for"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
}

var methodInfos = []MethodInfo{
	{
		ID:             MethodSimpleAverage,
		Name:           "Simple Average (Baseline)",
		Description:    "Treats all indicators equally with no weighting. Good baseline for comparison.",
		Complexity:     1,
		OverallError:   15.83,
		CrisisError:    20.10,
		CalmError:      10.50,
		Improvement:    0.0,
		RecommendedFor: "Beginners, baseline comparison",
		Pros:           []string{"Simple to understand", "No assumptions"},
		Cons:           []string{"Ignores indicator importance", "Slowest to respond"},
	},
	{
		ID:             MethodWeightedAverage,
		Name:           "Weighted Average",
		Description:    "Uses research-based weights for each indicator category.",
		Complexity:     2,
		OverallError:   15.11,
		CrisisError:    18.88,
		CalmError:      10.40,
		Improvement:    4.6,
		RecommendedFor: "General use, balanced approach",
		Pros:           []string{"Research-based weights", "Better than simple average"},
		Cons:           []string{"Static weights", "Doesn't adapt to conditions"},
	},
	{
		ID:             MethodTimeDecayMomentum,
		Name:           "Time-Decay Momentum",
		Description:    "Adjusts momentum multipliers based on how long indicators have been elevated. Prevents overreaction to persistent signals.",
		Complexity:     3,
		OverallError:   13.91,
		CrisisError:    16.72,
		CalmError:      10.40,
		Improvement:    12.1,
		RecommendedFor: "Most users - best overall performance",
		Pros:           []string{"Best overall accuracy", "Balanced crisis/calm", "Prevents overreaction"},
		Cons:           []string{"Moderate complexity"},
	},
	{
		ID:             MethodRegimeAdaptive,
		Name:           "Regime-Adaptive",
		Description:    "Adjusts category weights based on market regime (crisis, calm, bubble, etc.). Best for calm periods.",
		Complexity:     4,
		OverallError:   13.93,
		CrisisError:    17.12,
		CalmError:      9.95,
		Improvement:    12.0,
		RecommendedFor: "Users focused on calm period accuracy",
		Pros:           []string{"Best calm performance", "Adapts to regime"},
		Cons:           []string{"Slightly worse in crisis", "More complex"},
	},
	{
		ID:             MethodMetaEnsemble,
		Name:           "Meta-Ensemble",
		Description:    "Selects the best method for each situation. Time-Decay for crisis, Regime-Adaptive for calm.",
		Complexity:     5,
		OverallError:   13.82,
		CrisisError:    16.72,
		CalmError:      9.95,
		Improvement:    12.6,
		RecommendedFor: "Power users, maximum accuracy",
		Pros:           []string{"Best overall", "Best crisis", "Best calm"},
		Cons:           []string{"Most complex", "Harder to explain"},
	},
}

// Calculator dispatches composite score computations by method.
type Calculator struct {
	logger *logrus.Logger
}

// NewCalculator creates a calculator that logs fallbacks through logger.
func NewCalculator(logger *logrus.Logger) *Calculator {
	return &Calculator{logger: logger}
}

// Compute runs the requested method over the readings. Unknown methods
// fall back to the recommended default with a logged warning, matching
// the pipeline's forgiving dispatch.
func (c *Calculator) Compute(method Method, readings map[string]float64) Result {
	switch method {
	case MethodSimpleAverage:
		return SimpleAverage(readings)
	case MethodWeightedAverage:
		return WeightedAverage(readings)
	case MethodTimeDecayMomentum:
		return TimeDecayMomentum(readings)
	case MethodRegimeAdaptive:
		return RegimeAdaptive(readings)
	case MethodMetaEnsemble:
		return MetaEnsemble(readings)
	default:
		if c.logger != nil {
			c.logger.WithField("method", string(method)).Warn("Unknown scoring method, using recommended default")
		}
		return TimeDecayMomentum(readings)
	}
}

// ComputeAll runs every method over the same readings.
func (c *Calculator) ComputeAll(readings map[string]float64) map[Method]Result {
	results := make(map[Method]Result, len(methodInfos))
	for _, info := range methodInfos {
		results[info.ID] = c.Compute(info.ID, readings)
	}
	return results
}

// Methods lists the metadata for every available method.
func Methods() []MethodInfo {
	out := make([]MethodInfo, len(methodInfos))
	copy(out, methodInfos)
	return out
}

// MethodByID looks up one method's metadata.
func MethodByID(id Method) (MethodInfo, bool) {
	for _, info := range methodInfos {
		if info.ID == id {
			return info, true
		}
	}
	return MethodInfo{}, false
}

// ValidMethod reports whether id names a known method.
func ValidMethod(id Method) bool {
	_, ok := MethodByID(id)
	return ok
}
