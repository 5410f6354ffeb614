package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/risk29/riskboard/internal/analytics"
	"github.com/risk29/riskboard/internal/models"
	"github.com/sirupsen/logrus"
)

const predictionCacheKeyPrefix = "riskboard:predictions:"

// ScoreSeries provides the stored risk score history for a method.
type ScoreSeries interface {
	SeriesByMethod(ctx context.Context, method string, days int) ([]models.RiskScore, error)
}

// PredictionService runs the analytics engine over the stored score
// history and dresses the result for the API: calendar dates attached to
// forecast points and anomalies, report cached in Redis.
type PredictionService struct {
	repo        ScoreSeries
	cache       *redis.Client
	engine      *analytics.Engine
	logger      *logrus.Logger
	historyDays int
	cacheTTL    time.Duration
}

// NewPredictionService creates a prediction service. cache may be nil,
// in which case every report is computed fresh.
func NewPredictionService(
	repo ScoreSeries,
	cache *redis.Client,
	engine *analytics.Engine,
	logger *logrus.Logger,
	historyDays int,
	cacheTTL time.Duration,
) *PredictionService {
	return &PredictionService{
		repo:        repo,
		cache:       cache,
		engine:      engine,
		logger:      logger,
		historyDays: historyDays,
		cacheTTL:    cacheTTL,
	}
}

// Report returns the prediction report for a method, serving from cache
// when a fresh copy exists.
func (s *PredictionService) Report(ctx context.Context, method string) (*models.PredictionReport, error) {
	key := predictionCacheKeyPrefix + method

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var report models.PredictionReport
			if err := json.Unmarshal([]byte(raw), &report); err == nil {
				return &report, nil
			}
			s.logger.WithField("key", key).Warn("Discarding undecodable cached prediction report")
		}
	}

	report, err := s.compute(ctx, method)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(report); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.WithError(err).WithField("key", key).Warn("Failed to cache prediction report")
			}
		}
	}
	return report, nil
}

// Invalidate drops the cached report for a method, forcing the next read
// to recompute. Called by the collector after storing a new score.
func (s *PredictionService) Invalidate(ctx context.Context, method string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, predictionCacheKeyPrefix+method).Err(); err != nil {
		s.logger.WithError(err).WithField("method", method).Warn("Failed to invalidate prediction cache")
	}
}

// Anomalies rescans the stored series with a caller-supplied z-score
// threshold. Unlike Report this is never cached; ad-hoc thresholds would
// just churn the cache.
func (s *PredictionService) Anomalies(ctx context.Context, method string, threshold float64) ([]models.DatedAnomaly, error) {
	scores, err := s.repo.SeriesByMethod(ctx, method, s.historyDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load score history: %w", err)
	}

	values, dates := seriesValues(scores)
	return attachAnomalyDates(s.engine.DetectAnomaliesWithThreshold(values, threshold), dates), nil
}

func (s *PredictionService) compute(ctx context.Context, method string) (*models.PredictionReport, error) {
	scores, err := s.repo.SeriesByMethod(ctx, method, s.historyDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load score history: %w", err)
	}

	values, dates := seriesValues(scores)
	summary, err := s.engine.GeneratePredictionSummary(values)
	if err != nil {
		return nil, err
	}

	lastDate := dates[len(dates)-1]
	report := &models.PredictionReport{
		ID:                 uuid.NewString(),
		GeneratedAt:        time.Now().UTC(),
		Method:             method,
		CurrentValue:       summary.CurrentValue,
		Trend:              summary.Trend,
		Forecast7:          attachForecastDates(summary.Forecast7, lastDate),
		Forecast30:         attachForecastDates(summary.Forecast30, lastDate),
		Anomalies:          attachAnomalyDates(summary.Anomalies, dates),
		Change7Day:         summary.Change7Day,
		Change30Day:        summary.Change30Day,
		ChangePercent7Day:  summary.ChangePercent7Day,
		ChangePercent30Day: summary.ChangePercent30Day,
	}
	return report, nil
}

// attachForecastDates resolves forecast ordinals against the last
// observed date. The engine itself never sees calendar dates.
func attachForecastDates(points []analytics.ForecastPoint, lastDate time.Time) []models.DatedForecastPoint {
	dated := make([]models.DatedForecastPoint, len(points))
	for i, p := range points {
		dated[i] = models.DatedForecastPoint{
			ForecastPoint: p,
			Date:          lastDate.AddDate(0, 0, p.Ordinal).Format("2006-01-02"),
		}
	}
	return dated
}

func attachAnomalyDates(anomalies []analytics.Anomaly, dates []time.Time) []models.DatedAnomaly {
	dated := make([]models.DatedAnomaly, len(anomalies))
	for i, a := range anomalies {
		dated[i] = models.DatedAnomaly{Anomaly: a}
		if a.Ordinal >= 0 && a.Ordinal < len(dates) {
			dated[i].Date = dates[a.Ordinal].Format("2006-01-02")
		}
	}
	return dated
}
