package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IndicatorReading is one normalized indicator observation as ingested
// from the data pipeline. Score is the 0-100 risk contribution; Value is
// the raw reading it was derived from (for display only).
type IndicatorReading struct {
	IndicatorID string          `json:"indicator_id"`
	Name        string          `json:"name,omitempty"`
	Category    string          `json:"category,omitempty"`
	Value       decimal.Decimal `json:"value"`
	Score       decimal.Decimal `json:"score"`
	ObservedAt  time.Time       `json:"observed_at"`
}

// RiskScore is one stored composite score observation: the daily value of
// the risk series for a given scoring method.
type RiskScore struct {
	ID         uuid.UUID          `json:"id"`
	Date       time.Time          `json:"date"`
	Method     string             `json:"method"`
	Overall    float64            `json:"overall"`
	Categories map[string]float64 `json:"categories"`
	CreatedAt  time.Time          `json:"created_at"`
}

// RiskCounts buckets indicator scores into the dashboard's three bands.
type RiskCounts struct {
	High   int `json:"high_risk_count"`
	Medium int `json:"medium_risk_count"`
	Low    int `json:"low_risk_count"`
}

// RiskSnapshot is the assembled dashboard payload: the current composite
// score with its status text, category breakdown, band counts and regime.
type RiskSnapshot struct {
	ID          string             `json:"id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Method      string             `json:"method"`
	Score       float64            `json:"score"`
	Status      string             `json:"status"`
	Regime      string             `json:"regime"`
	Summary     RiskCounts         `json:"summary"`
	Categories  map[string]float64 `json:"categories"`
}

// HistoryPoint is one element of the score history series served to the
// chart, with a trailing moving average overlay where enough points exist.
type HistoryPoint struct {
	Date          time.Time `json:"date"`
	Score         float64   `json:"score"`
	MovingAverage *float64  `json:"moving_average,omitempty"`
}
