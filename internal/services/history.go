package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/risk29/riskboard/internal/models"
)

// DBTX is the subset of the pgx pool the repository needs. Satisfied by
// *pgxpool.Pool in production and by pgxmock in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// HistoryRepository persists composite risk scores and indicator readings.
type HistoryRepository struct {
	db DBTX
}

// NewHistoryRepository creates a repository over the given pool.
func NewHistoryRepository(db DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// UpsertScore stores one daily composite score. A second computation for
// the same date and method replaces the earlier row.
func (r *HistoryRepository) UpsertScore(ctx context.Context, score models.RiskScore) error {
	categories, err := json.Marshal(score.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode category scores: %w", err)
	}

	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}

	query := `
		INSERT INTO risk_scores (id, date, method, overall, categories, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (date, method)
		DO UPDATE SET overall = EXCLUDED.overall, categories = EXCLUDED.categories
	`
	if _, err := r.db.Exec(ctx, query, score.ID, score.Date, score.Method, score.Overall, categories); err != nil {
		return fmt.Errorf("failed to upsert risk score: %w", err)
	}
	return nil
}

// SeriesByMethod returns the stored scores for a method over the trailing
// window, oldest first.
func (r *HistoryRepository) SeriesByMethod(ctx context.Context, method string, days int) ([]models.RiskScore, error) {
	query := `
		SELECT id, date, method, overall, categories, created_at
		FROM risk_scores
		WHERE method = $1 AND date > NOW() - ($2 || ' days')::interval
		ORDER BY date ASC
	`
	rows, err := r.db.Query(ctx, query, method, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk score series: %w", err)
	}
	defer rows.Close()

	var scores []models.RiskScore
	for rows.Next() {
		var score models.RiskScore
		var categories []byte
		if err := rows.Scan(&score.ID, &score.Date, &score.Method, &score.Overall, &categories, &score.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan risk score row: %w", err)
		}
		if len(categories) > 0 {
			if err := json.Unmarshal(categories, &score.Categories); err != nil {
				return nil, fmt.Errorf("failed to decode category scores: %w", err)
			}
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// LatestScore returns the most recent stored score for a method.
func (r *HistoryRepository) LatestScore(ctx context.Context, method string) (models.RiskScore, error) {
	query := `
		SELECT id, date, method, overall, categories, created_at
		FROM risk_scores
		WHERE method = $1
		ORDER BY date DESC
		LIMIT 1
	`
	var score models.RiskScore
	var categories []byte
	err := r.db.QueryRow(ctx, query, method).
		Scan(&score.ID, &score.Date, &score.Method, &score.Overall, &categories, &score.CreatedAt)
	if err != nil {
		return models.RiskScore{}, fmt.Errorf("failed to query latest risk score: %w", err)
	}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &score.Categories); err != nil {
			return models.RiskScore{}, fmt.Errorf("failed to decode category scores: %w", err)
		}
	}
	return score, nil
}

// UpsertReading stores one indicator reading, replacing any earlier
// reading for the same indicator and observation date.
func (r *HistoryRepository) UpsertReading(ctx context.Context, reading models.IndicatorReading) error {
	query := `
		INSERT INTO indicator_readings (indicator_id, value, score, observed_at, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (indicator_id, observed_at)
		DO UPDATE SET value = EXCLUDED.value, score = EXCLUDED.score
	`
	if _, err := r.db.Exec(ctx, query, reading.IndicatorID, reading.Value, reading.Score, reading.ObservedAt); err != nil {
		return fmt.Errorf("failed to upsert indicator reading: %w", err)
	}
	return nil
}

// LatestReadings returns the newest score per indicator as the flat map
// the scoring methods consume.
func (r *HistoryRepository) LatestReadings(ctx context.Context) (map[string]float64, error) {
	query := `
		SELECT DISTINCT ON (indicator_id) indicator_id, score
		FROM indicator_readings
		ORDER BY indicator_id, observed_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest readings: %w", err)
	}
	defer rows.Close()

	readings := make(map[string]float64)
	for rows.Next() {
		var indicatorID string
		var score float64
		if err := rows.Scan(&indicatorID, &score); err != nil {
			return nil, fmt.Errorf("failed to scan reading row: %w", err)
		}
		readings[indicatorID] = score
	}
	return readings, rows.Err()
}

// seriesValues extracts the ordered score values and their dates.
func seriesValues(scores []models.RiskScore) ([]float64, []time.Time) {
	values := make([]float64, len(scores))
	dates := make([]time.Time, len(scores))
	for i, s := range scores {
		values[i] = s.Overall
		dates[i] = s.Date
	}
	return values, dates
}
