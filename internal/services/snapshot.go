package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/risk29/riskboard/internal/models"
	"github.com/risk29/riskboard/internal/scoring"
	"github.com/sirupsen/logrus"
)

const (
	snapshotCacheKeyPrefix = "riskboard:snapshot:"

	// movingAveragePeriod is the window of the history chart overlay.
	movingAveragePeriod = 7
)

// ReadingsSource provides the latest indicator readings and the stored
// score history.
type ReadingsSource interface {
	ScoreSeries
	LatestReadings(ctx context.Context) (map[string]float64, error)
}

// SnapshotService assembles the dashboard snapshot: current composite
// score, status text, band counts, regime, and the history series with a
// moving average overlay.
type SnapshotService struct {
	repo     ReadingsSource
	calc     *scoring.Calculator
	cache    *redis.Client
	logger   *logrus.Logger
	cacheTTL time.Duration
}

// NewSnapshotService creates a snapshot service. cache may be nil.
func NewSnapshotService(
	repo ReadingsSource,
	calc *scoring.Calculator,
	cache *redis.Client,
	logger *logrus.Logger,
	cacheTTL time.Duration,
) *SnapshotService {
	return &SnapshotService{
		repo:     repo,
		calc:     calc,
		cache:    cache,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Snapshot returns the current dashboard snapshot for a method, cached.
func (s *SnapshotService) Snapshot(ctx context.Context, method scoring.Method) (*models.RiskSnapshot, error) {
	key := snapshotCacheKeyPrefix + string(method)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var snapshot models.RiskSnapshot
			if err := json.Unmarshal([]byte(raw), &snapshot); err == nil {
				return &snapshot, nil
			}
		}
	}

	snapshot, err := s.build(ctx, method)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(snapshot); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.WithError(err).WithField("key", key).Warn("Failed to cache snapshot")
			}
		}
	}
	return snapshot, nil
}

// Refresh recomputes and caches the snapshot, replacing any cached copy.
func (s *SnapshotService) Refresh(ctx context.Context, method scoring.Method) (*models.RiskSnapshot, error) {
	snapshot, err := s.build(ctx, method)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if raw, err := json.Marshal(snapshot); err == nil {
			key := snapshotCacheKeyPrefix + string(method)
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.WithError(err).WithField("key", key).Warn("Failed to cache snapshot")
			}
		}
	}
	return snapshot, nil
}

func (s *SnapshotService) build(ctx context.Context, method scoring.Method) (*models.RiskSnapshot, error) {
	readings, err := s.repo.LatestReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load indicator readings: %w", err)
	}
	if len(readings) == 0 {
		return nil, fmt.Errorf("no indicator readings available")
	}

	result := s.calc.Compute(method, readings)

	categories := make(map[string]float64, len(result.Categories))
	for category, score := range result.Categories {
		categories[category] = roundScore(score)
	}

	return &models.RiskSnapshot{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Method:      string(method),
		Score:       roundScore(result.Overall),
		Status:      statusFor(result.Overall),
		Regime:      scoring.DetectRegime(readings),
		Summary:     countBands(readings),
		Categories:  categories,
	}, nil
}

// History returns the stored score series for the chart, with a trailing
// moving average overlay once enough points exist.
func (s *SnapshotService) History(ctx context.Context, method scoring.Method, days int) ([]models.HistoryPoint, error) {
	scores, err := s.repo.SeriesByMethod(ctx, string(method), days)
	if err != nil {
		return nil, fmt.Errorf("failed to load score history: %w", err)
	}

	values, dates := seriesValues(scores)
	points := make([]models.HistoryPoint, len(scores))
	for i := range scores {
		points[i] = models.HistoryPoint{Date: dates[i], Score: roundScore(values[i])}
	}

	if len(values) >= movingAveragePeriod {
		smaIndicator := trend.NewSmaWithPeriod[float64](movingAveragePeriod)
		smaValues := helper.ChanToSlice(smaIndicator.Compute(helper.SliceToChan(values)))
		for i, v := range smaValues {
			ma := roundScore(v)
			points[i+movingAveragePeriod-1].MovingAverage = &ma
		}
	}
	return points, nil
}

// countBands buckets indicator scores into the dashboard's three bands.
func countBands(readings map[string]float64) models.RiskCounts {
	var counts models.RiskCounts
	for _, score := range readings {
		switch {
		case score >= 60:
			counts.High++
		case score >= 30:
			counts.Medium++
		default:
			counts.Low++
		}
	}
	return counts
}

// statusFor maps a composite score to the dashboard status line.
func statusFor(score float64) string {
	switch {
	case score <= 20:
		return "Very low risk - conditions are favorable"
	case score <= 40:
		return "Low risk - conditions are stable"
	case score <= 60:
		return "Moderate risk - monitor closely"
	case score <= 80:
		return "High risk - caution advised"
	default:
		return "Critical risk - immediate attention needed"
	}
}

func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
