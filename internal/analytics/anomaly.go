package analytics

import "math"

// Anomaly flags an observation whose z-score against the whole-series mean
// exceeds the detection threshold. Ordinal is the 0-based position of the
// observation, oldest first.
type Anomaly struct {
	Ordinal        int     `json:"ordinal"`
	ObservedValue  float64 `json:"observed_value"`
	ExpectedValue  float64 `json:"expected_value"`
	ZScore         float64 `json:"z_score"`
	Severity       string  `json:"severity"`
}

// DetectAnomalies scans the series with the engine's configured threshold.
func (e *Engine) DetectAnomalies(series []float64) []Anomaly {
	return e.DetectAnomaliesWithThreshold(series, e.cfg.ZScoreThreshold)
}

// DetectAnomaliesWithThreshold flags every point whose z-score magnitude
// exceeds threshold. A constant series has zero variance and can contain
// no anomalies; output preserves input order.
func (e *Engine) DetectAnomaliesWithThreshold(series []float64, threshold float64) []Anomaly {
	mean := Mean(series)
	stdDev := StdDev(series)
	if stdDev == 0 {
		return []Anomaly{}
	}

	anomalies := []Anomaly{}
	for i, v := range series {
		z := math.Abs(v-mean) / stdDev
		if z <= threshold {
			continue
		}
		severity := SeverityLow
		switch {
		case z > 3.5:
			severity = SeverityHigh
		case z > 3:
			severity = SeverityMedium
		}
		anomalies = append(anomalies, Anomaly{
			Ordinal:       i,
			ObservedValue: round1(v),
			ExpectedValue: round1(mean),
			ZScore:        round1(z),
			Severity:      severity,
		})
	}
	return anomalies
}
