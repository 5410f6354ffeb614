package analytics

import "math"

// ForecastPoint is a single projected observation. Ordinal is the 1-based
// forward offset into the horizon; bounds are clamped to the 0-100 risk
// score domain.
type ForecastPoint struct {
	Ordinal        int     `json:"ordinal"`
	PredictedValue float64 `json:"predicted_value"`
	LowerBound     float64 `json:"lower_bound"`
	UpperBound     float64 `json:"upper_bound"`
	Confidence     float64 `json:"confidence"`
}

// PredictFuture projects horizon points beyond the end of the series by
// extrapolating its regression line. The confidence interval widens
// linearly with distance, reaching the full 2-sigma band of the historical
// series at the far edge of the horizon. A non-positive horizon yields an
// empty slice.
func (e *Engine) PredictFuture(series []float64, horizon int) ([]ForecastPoint, error) {
	if horizon <= 0 {
		return []ForecastPoint{}, nil
	}

	reg, err := LinearRegression(series)
	if err != nil {
		return nil, err
	}
	stdDev := StdDev(series)

	n := len(series)
	points := make([]ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		predicted := reg.At(float64(n + i - 1))
		margin := stdDev * 2 * (float64(i) / float64(horizon))
		confidence := math.Max(e.cfg.ConfidenceFloor, e.cfg.ConfidenceBase-e.cfg.ConfidenceDecay*float64(i))

		points = append(points, ForecastPoint{
			Ordinal:        i,
			PredictedValue: round1(predicted),
			LowerBound:     round1(math.Max(0, predicted-margin)),
			UpperBound:     round1(math.Min(100, predicted+margin)),
			Confidence:     confidence,
		})
	}
	return points, nil
}
