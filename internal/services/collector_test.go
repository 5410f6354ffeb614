package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/risk29/riskboard/internal/models"
	"github.com/risk29/riskboard/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScoreStore struct {
	mu       sync.Mutex
	readings map[string]float64
	stored   []models.RiskScore
}

func (s *stubScoreStore) LatestReadings(_ context.Context) (map[string]float64, error) {
	return s.readings, nil
}

func (s *stubScoreStore) UpsertScore(_ context.Context, score models.RiskScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = append(s.stored, score)
	return nil
}

func (s *stubScoreStore) storedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stored)
}

func TestCollectorCollectOnce(t *testing.T) {
	store := &stubScoreStore{
		readings: map[string]float64{
			"VIXCLS":      70,
			"YIELD_CURVE": 50,
			"SAHM_RULE":   20,
		},
	}
	calc := scoring.NewCalculator(newTestLogger())
	collector := NewCollector(store, calc, nil, nil, nil, newTestLogger(), time.Hour, scoring.MethodSimpleAverage)

	require.NoError(t, collector.CollectOnce(context.Background()))
	require.Len(t, store.stored, 1)

	score := store.stored[0]
	assert.Equal(t, string(scoring.MethodSimpleAverage), score.Method)
	assert.Equal(t, 48.0, score.Overall)
	assert.Equal(t, score.Date, score.Date.Truncate(24*time.Hour), "date should be truncated to the day")
	assert.Equal(t, 70.0, score.Categories["technical"])
}

func TestCollectorSkipsEmptyReadings(t *testing.T) {
	store := &stubScoreStore{readings: map[string]float64{}}
	calc := scoring.NewCalculator(newTestLogger())
	collector := NewCollector(store, calc, nil, nil, nil, newTestLogger(), time.Hour, scoring.MethodSimpleAverage)

	require.NoError(t, collector.CollectOnce(context.Background()))
	assert.Empty(t, store.stored)
}

func TestCollectorStartStop(t *testing.T) {
	store := &stubScoreStore{
		readings: map[string]float64{"VIXCLS": 30},
	}
	calc := scoring.NewCalculator(newTestLogger())
	collector := NewCollector(store, calc, nil, nil, nil, newTestLogger(), 10*time.Millisecond, scoring.MethodTimeDecayMomentum)

	require.NoError(t, collector.Start())

	assert.Eventually(t, func() bool {
		return store.storedCount() >= 2
	}, time.Second, 5*time.Millisecond, "periodic collection should run after start")

	collector.Stop()
	after := store.storedCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, store.storedCount(), "no collections after stop")
}
