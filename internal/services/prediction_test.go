package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/risk29/riskboard/internal/analytics"
	"github.com/risk29/riskboard/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSeries struct {
	scores []models.RiskScore
	calls  int
}

func (s *stubSeries) SeriesByMethod(_ context.Context, _ string, _ int) ([]models.RiskScore, error) {
	s.calls++
	return s.scores, nil
}

func scoresFromValues(values []float64, start time.Time) []models.RiskScore {
	scores := make([]models.RiskScore, len(values))
	for i, v := range values {
		scores[i] = models.RiskScore{
			Date:    start.AddDate(0, 0, i),
			Method:  "time_decay_momentum",
			Overall: v,
		}
	}
	return scores
}

func risingScores(n int, start time.Time) []models.RiskScore {
	values := make([]float64, n)
	for i := range values {
		values[i] = 10 + float64(i)
	}
	return scoresFromValues(values, start)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestPredictionServiceReport(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubSeries{scores: risingScores(30, start)}
	engine := analytics.NewEngine(analytics.DefaultConfig())

	svc := NewPredictionService(repo, nil, engine, newTestLogger(), 90, time.Minute)

	report, err := svc.Report(context.Background(), "time_decay_momentum")
	require.NoError(t, err)

	assert.Equal(t, "time_decay_momentum", report.Method)
	assert.Equal(t, 39.0, report.CurrentValue)
	assert.Equal(t, analytics.DirectionUp, report.Trend.Direction)
	require.Len(t, report.Forecast7, 7)
	require.Len(t, report.Forecast30, 30)

	// Forecast dates continue the series from the last stored date.
	lastDate := start.AddDate(0, 0, 29)
	assert.Equal(t, lastDate.AddDate(0, 0, 1).Format("2006-01-02"), report.Forecast7[0].Date)
	assert.Equal(t, lastDate.AddDate(0, 0, 7).Format("2006-01-02"), report.Forecast7[6].Date)
	assert.Equal(t, lastDate.AddDate(0, 0, 30).Format("2006-01-02"), report.Forecast30[29].Date)

	assert.Empty(t, report.Anomalies)
	assert.NotEmpty(t, report.ID)
}

func TestPredictionServiceAnomalyDates(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 30)
	for i := range values {
		values[i] = 50
	}
	values[29] = 500
	repo := &stubSeries{scores: scoresFromValues(values, start)}
	engine := analytics.NewEngine(analytics.DefaultConfig())

	svc := NewPredictionService(repo, nil, engine, newTestLogger(), 90, time.Minute)

	report, err := svc.Report(context.Background(), "time_decay_momentum")
	require.NoError(t, err)

	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, 29, report.Anomalies[0].Ordinal)
	assert.Equal(t, start.AddDate(0, 0, 29).Format("2006-01-02"), report.Anomalies[0].Date)
	assert.Equal(t, analytics.SeverityHigh, report.Anomalies[0].Severity)
}

func TestPredictionServiceAnomaliesThreshold(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 30)
	for i := range values {
		values[i] = 50
	}
	values[29] = 500
	repo := &stubSeries{scores: scoresFromValues(values, start)}
	engine := analytics.NewEngine(analytics.DefaultConfig())

	svc := NewPredictionService(repo, nil, engine, newTestLogger(), 90, time.Minute)
	ctx := context.Background()

	anomalies, err := svc.Anomalies(ctx, "time_decay_momentum", 2.0)
	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, start.AddDate(0, 0, 29).Format("2006-01-02"), anomalies[0].Date)

	anomalies, err = svc.Anomalies(ctx, "time_decay_momentum", 6.0)
	require.NoError(t, err)
	assert.Empty(t, anomalies)
}

func TestPredictionServiceCaching(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubSeries{scores: risingScores(30, start)}
	engine := analytics.NewEngine(analytics.DefaultConfig())

	svc := NewPredictionService(repo, cache, engine, newTestLogger(), 90, time.Minute)
	ctx := context.Background()

	first, err := svc.Report(ctx, "time_decay_momentum")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	second, err := svc.Report(ctx, "time_decay_momentum")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second read should be served from cache")
	assert.Equal(t, first.ID, second.ID)

	svc.Invalidate(ctx, "time_decay_momentum")

	_, err = svc.Report(ctx, "time_decay_momentum")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "invalidation should force a recompute")
}

func TestPredictionServiceInsufficientHistory(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubSeries{scores: risingScores(5, start)}
	engine := analytics.NewEngine(analytics.DefaultConfig())

	svc := NewPredictionService(repo, nil, engine, newTestLogger(), 90, time.Minute)

	_, err := svc.Report(context.Background(), "time_decay_momentum")
	require.Error(t, err)
	assert.ErrorIs(t, err, analytics.ErrInsufficientData)
}
