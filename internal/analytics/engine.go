package analytics

import "errors"

// ErrInsufficientData is returned when a series is too short for the
// requested computation.
var ErrInsufficientData = errors.New("insufficient data")

// Trend direction labels.
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionStable = "stable"
)

// Anomaly severity tiers, bucketed by z-score magnitude.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Config holds the calibration knobs for the analytics engine. The defaults
// match the values the risk pipeline was tuned with; tests probe boundary
// behavior by overriding individual fields.
type Config struct {
	// ZScoreThreshold is the minimum z-score magnitude for a point to be
	// flagged as an anomaly.
	ZScoreThreshold float64 `json:"z_score_threshold"`

	// TrendUpSlope and TrendDownSlope classify the regression slope into
	// up/down/stable.
	TrendUpSlope   float64 `json:"trend_up_slope"`
	TrendDownSlope float64 `json:"trend_down_slope"`

	// MomentumWindow is the size of the two adjacent windows compared for
	// momentum. A series must hold at least two full windows.
	MomentumWindow int `json:"momentum_window"`

	// Forecast confidence starts at ConfidenceBase and decays by
	// ConfidenceDecay per step, floored at ConfidenceFloor.
	ConfidenceBase  float64 `json:"confidence_base"`
	ConfidenceDecay float64 `json:"confidence_decay"`
	ConfidenceFloor float64 `json:"confidence_floor"`
}

// DefaultConfig returns the production calibration.
func DefaultConfig() Config {
	return Config{
		ZScoreThreshold: 2.5,
		TrendUpSlope:    0.5,
		TrendDownSlope:  -0.5,
		MomentumWindow:  7,
		ConfidenceBase:  95,
		ConfidenceDecay: 1.5,
		ConfidenceFloor: 50,
	}
}

// Engine computes forecasts, trend summaries and anomaly reports over a
// time-ordered series of risk scores. It is stateless and safe for
// concurrent use; every call is a pure function of its input.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given calibration.
func NewEngine(cfg Config) *Engine {
	if cfg.MomentumWindow <= 0 {
		cfg.MomentumWindow = DefaultConfig().MomentumWindow
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine's calibration.
func (e *Engine) Config() Config {
	return e.cfg
}
