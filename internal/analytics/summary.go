package analytics

// PredictionSummary is the aggregate report consumed by the dashboard:
// the current value, the trend classification, the two forecast horizons,
// the anomaly list, and the deltas between current and forecast values.
type PredictionSummary struct {
	CurrentValue       float64         `json:"current_value"`
	Trend              TrendSummary    `json:"trend"`
	Forecast7          []ForecastPoint `json:"forecast_7day"`
	Forecast30         []ForecastPoint `json:"forecast_30day"`
	Anomalies          []Anomaly       `json:"anomalies"`
	Change7Day         float64         `json:"change_7day"`
	Change30Day        float64         `json:"change_30day"`
	ChangePercent7Day  float64         `json:"change_percent_7day"`
	ChangePercent30Day float64         `json:"change_percent_30day"`
}

// GeneratePredictionSummary composes the full report for a series. The
// series must satisfy the trend analyzer's minimum length. Percent changes
// against a current value of exactly 0 are reported as 0 rather than
// propagating a division by zero.
func (e *Engine) GeneratePredictionSummary(series []float64) (PredictionSummary, error) {
	trend, err := e.AnalyzeTrend(series)
	if err != nil {
		return PredictionSummary{}, err
	}
	forecast7, err := e.PredictFuture(series, 7)
	if err != nil {
		return PredictionSummary{}, err
	}
	forecast30, err := e.PredictFuture(series, 30)
	if err != nil {
		return PredictionSummary{}, err
	}

	current := series[len(series)-1]
	change7 := forecast7[len(forecast7)-1].PredictedValue - current
	change30 := forecast30[len(forecast30)-1].PredictedValue - current

	var pct7, pct30 float64
	if current != 0 {
		pct7 = change7 / current * 100
		pct30 = change30 / current * 100
	}

	return PredictionSummary{
		CurrentValue:       round1(current),
		Trend:              trend,
		Forecast7:          forecast7,
		Forecast30:         forecast30,
		Anomalies:          e.DetectAnomalies(series),
		Change7Day:         round1(change7),
		Change30Day:        round1(change30),
		ChangePercent7Day:  round1(pct7),
		ChangePercent30Day: round1(pct30),
	}, nil
}
