package models

import (
	"time"

	"github.com/risk29/riskboard/internal/analytics"
)

// DatedForecastPoint is an engine forecast point with a calendar date
// attached. The engine works purely in ordinals; dates are display glue
// added by the prediction service.
type DatedForecastPoint struct {
	analytics.ForecastPoint
	Date string `json:"date"`
}

// DatedAnomaly is an engine anomaly with the date of the flagged
// observation attached.
type DatedAnomaly struct {
	analytics.Anomaly
	Date string `json:"date"`
}

// PredictionReport is the API payload for the predictions page: the full
// engine summary with calendar dates resolved against the series.
type PredictionReport struct {
	ID                 string                 `json:"id"`
	GeneratedAt        time.Time              `json:"generated_at"`
	Method             string                 `json:"method"`
	CurrentValue       float64                `json:"current_value"`
	Trend              analytics.TrendSummary `json:"trend"`
	Forecast7          []DatedForecastPoint   `json:"forecast_7day"`
	Forecast30         []DatedForecastPoint   `json:"forecast_30day"`
	Anomalies          []DatedAnomaly         `json:"anomalies"`
	Change7Day         float64                `json:"change_7day"`
	Change30Day        float64                `json:"change_30day"`
	ChangePercent7Day  float64                `json:"change_percent_7day"`
	ChangePercent30Day float64                `json:"change_percent_30day"`
}
