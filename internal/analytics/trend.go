package analytics

import (
	"fmt"
	"math"
)

// TrendSummary describes the direction and momentum of a series together
// with point forecasts at the two standard horizons.
type TrendSummary struct {
	Direction       string  `json:"direction"`
	MomentumPercent float64 `json:"momentum_percent"`
	StrengthScore   float64 `json:"strength_score"`
	Forecast7Day    float64 `json:"forecast_7day"`
	Forecast30Day   float64 `json:"forecast_30day"`
}

// AnalyzeTrend classifies the series direction from its regression slope,
// computes momentum as the relative change between the two most recent
// windows, and derives a bounded strength score from the slope magnitude.
// The series must hold at least two full momentum windows (14 points at
// the default calibration).
func (e *Engine) AnalyzeTrend(series []float64) (TrendSummary, error) {
	w := e.cfg.MomentumWindow
	if len(series) < 2*w {
		return TrendSummary{}, fmt.Errorf("trend analysis needs at least %d points, got %d: %w", 2*w, len(series), ErrInsufficientData)
	}

	reg, err := LinearRegression(series)
	if err != nil {
		return TrendSummary{}, err
	}

	direction := DirectionStable
	switch {
	case reg.Slope > e.cfg.TrendUpSlope:
		direction = DirectionUp
	case reg.Slope < e.cfg.TrendDownSlope:
		direction = DirectionDown
	}

	recent := Mean(series[len(series)-w:])
	older := Mean(series[len(series)-2*w : len(series)-w])
	var momentum float64
	if older != 0 {
		momentum = (recent - older) / older * 100
	}

	forecast7, err := e.PredictFuture(series, 7)
	if err != nil {
		return TrendSummary{}, err
	}
	forecast30, err := e.PredictFuture(series, 30)
	if err != nil {
		return TrendSummary{}, err
	}

	return TrendSummary{
		Direction:       direction,
		MomentumPercent: round1(momentum),
		StrengthScore:   round1(math.Min(100, math.Abs(reg.Slope)*10)),
		Forecast7Day:    forecast7[len(forecast7)-1].PredictedValue,
		Forecast30Day:   forecast30[len(forecast30)-1].PredictedValue,
	}, nil
}
