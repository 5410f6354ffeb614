package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/risk29/riskboard/internal/models"
	"github.com/risk29/riskboard/internal/scoring"
	"github.com/sirupsen/logrus"
)

// ScoreStore is the repository surface the collector writes through.
type ScoreStore interface {
	LatestReadings(ctx context.Context) (map[string]float64, error)
	UpsertScore(ctx context.Context, score models.RiskScore) error
}

// Collector periodically recomputes the composite risk score from the
// latest indicator readings, stores it, and refreshes the cached
// snapshot and prediction report.
type Collector struct {
	repo        ScoreStore
	calc        *scoring.Calculator
	snapshots   *SnapshotService
	predictions *PredictionService
	notifier    *AnomalyNotifier
	logger      *logrus.Logger
	interval    time.Duration
	method      scoring.Method

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCollector creates a collector for the given default method.
func NewCollector(
	repo ScoreStore,
	calc *scoring.Calculator,
	snapshots *SnapshotService,
	predictions *PredictionService,
	notifier *AnomalyNotifier,
	logger *logrus.Logger,
	interval time.Duration,
	method scoring.Method,
) *Collector {
	ctx, cancel := context.WithCancel(context.Background())
	return &Collector{
		repo:        repo,
		calc:        calc,
		snapshots:   snapshots,
		predictions: predictions,
		notifier:    notifier,
		logger:      logger,
		interval:    interval,
		method:      method,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start runs one immediate collection and then the periodic loop.
func (c *Collector) Start() error {
	if err := c.CollectOnce(c.ctx); err != nil {
		c.logger.WithError(err).Warn("Initial score collection failed")
	}

	c.wg.Add(1)
	go c.run()

	c.logger.WithFields(logrus.Fields{
		"interval": c.interval.String(),
		"method":   string(c.method),
	}).Info("Score collector started")
	return nil
}

// Stop cancels the loop and waits for it to exit.
func (c *Collector) Stop() {
	c.cancel()
	c.wg.Wait()
	c.logger.Info("Score collector stopped")
}

func (c *Collector) run() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			if err := c.CollectOnce(c.ctx); err != nil {
				c.logger.WithError(err).Error("Score collection failed")
			}
		}
	}
}

// CollectOnce computes and stores today's composite score from the latest
// readings, then refreshes the derived caches.
func (c *Collector) CollectOnce(ctx context.Context) error {
	readings, err := c.repo.LatestReadings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load readings: %w", err)
	}
	if len(readings) == 0 {
		c.logger.Warn("No indicator readings available, skipping score collection")
		return nil
	}

	result := c.calc.Compute(c.method, readings)
	score := models.RiskScore{
		Date:       time.Now().UTC().Truncate(24 * time.Hour),
		Method:     string(c.method),
		Overall:    result.Overall,
		Categories: result.Categories,
	}
	if err := c.repo.UpsertScore(ctx, score); err != nil {
		return fmt.Errorf("failed to store score: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"method":  string(c.method),
		"overall": result.Overall,
	}).Info("Stored composite risk score")

	if c.snapshots != nil {
		if _, err := c.snapshots.Refresh(ctx, c.method); err != nil {
			c.logger.WithError(err).Warn("Failed to refresh snapshot after collection")
		}
	}
	if c.predictions != nil {
		c.predictions.Invalidate(ctx, string(c.method))

		if c.notifier != nil && c.notifier.Enabled() {
			report, err := c.predictions.Report(ctx, string(c.method))
			if err != nil {
				c.logger.WithError(err).Warn("Failed to compute prediction report for alerting")
			} else if err := c.notifier.NotifyAnomalies(ctx, report.Method, report.Anomalies); err != nil {
				c.logger.WithError(err).Warn("Failed to send anomaly alert")
			}
		}
	}
	return nil
}
