package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/risk29/riskboard/internal/analytics"
	"github.com/risk29/riskboard/internal/api"
	"github.com/risk29/riskboard/internal/config"
	"github.com/risk29/riskboard/internal/database"
	"github.com/risk29/riskboard/internal/logging"
	"github.com/risk29/riskboard/internal/scoring"
	"github.com/risk29/riskboard/internal/services"
	"github.com/risk29/riskboard/internal/telemetry"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.Environment)

	provider, err := telemetry.Init(context.Background(), cfg.Telemetry)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize telemetry")
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Warn("Telemetry shutdown failed")
		}
	}()

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	redis, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redis.Close()

	engine := analytics.NewEngine(engineConfig(cfg.Engine))
	calc := scoring.NewCalculator(logger)
	repo := services.NewHistoryRepository(db.Pool)

	snapshotTTL, _ := time.ParseDuration(cfg.Cache.SnapshotTTL)
	predictionTTL, _ := time.ParseDuration(cfg.Cache.PredictionTTL)

	snapshots := services.NewSnapshotService(repo, calc, redis.Client, logger, snapshotTTL)
	predictions := services.NewPredictionService(repo, redis.Client, engine, logger, cfg.Scoring.HistoryDays, predictionTTL)

	notifier, err := services.NewAnomalyNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize anomaly notifier")
	}

	method := scoring.Method(cfg.Scoring.DefaultMethod)
	if !scoring.ValidMethod(method) {
		logger.WithField("method", cfg.Scoring.DefaultMethod).Fatal("Unknown default scoring method")
	}

	if cfg.Collector.Enabled {
		interval, _ := time.ParseDuration(cfg.Collector.Interval)
		collector := services.NewCollector(repo, calc, snapshots, predictions, notifier, logger, interval, method)
		if err := collector.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start score collector")
		}
		defer collector.Stop()
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Telemetry.Enabled {
		router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	api.SetupRoutes(router, api.Dependencies{
		DB:            db,
		Redis:         redis,
		Snapshots:     snapshots,
		Predictions:   predictions,
		Readings:      repo,
		HistoryDays:   cfg.Scoring.HistoryDays,
		DefaultMethod: method,
		Version:       cfg.Telemetry.ServiceVersion,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func engineConfig(cfg config.EngineConfig) analytics.Config {
	return analytics.Config{
		ZScoreThreshold: cfg.ZScoreThreshold,
		TrendUpSlope:    cfg.TrendUpSlope,
		TrendDownSlope:  cfg.TrendDownSlope,
		MomentumWindow:  cfg.MomentumWindow,
		ConfidenceBase:  cfg.ConfidenceBase,
		ConfidenceDecay: cfg.ConfidenceDecay,
		ConfidenceFloor: cfg.ConfidenceFloor,
	}
}
