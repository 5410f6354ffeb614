package api

import (
	"github.com/gin-gonic/gin"
	"github.com/risk29/riskboard/internal/api/handlers"
	"github.com/risk29/riskboard/internal/scoring"
)

// Dependencies carries everything the route handlers need.
type Dependencies struct {
	DB            handlers.Pinger
	Redis         handlers.Pinger
	Snapshots     handlers.SnapshotProvider
	Predictions   handlers.ReportProvider
	Readings      handlers.ReadingWriter
	HistoryDays   int
	DefaultMethod scoring.Method
	Version       string
}

// SetupRoutes wires every endpoint onto the router.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	health := handlers.NewHealthHandler(deps.DB, deps.Redis, deps.Version)
	router.GET("/health", health.HealthCheck)

	risk := handlers.NewRiskHandler(deps.Snapshots, deps.HistoryDays, deps.DefaultMethod)
	predictions := handlers.NewPredictionHandler(deps.Predictions, deps.DefaultMethod)
	methods := handlers.NewMethodHandler()
	indicators := handlers.NewIndicatorHandler(deps.Readings)

	v1 := router.Group("/api/v1")
	{
		riskGroup := v1.Group("/risk")
		{
			riskGroup.GET("/summary", risk.GetSummary)
			riskGroup.GET("/history", risk.GetHistory)
			riskGroup.GET("/regime", risk.GetRegime)
			riskGroup.GET("/predictions", predictions.GetPredictions)
			riskGroup.GET("/anomalies", predictions.GetAnomalies)
		}

		methodGroup := v1.Group("/methods")
		{
			methodGroup.GET("", methods.ListMethods)
			methodGroup.GET("/:id", methods.GetMethod)
		}

		v1.POST("/indicators", indicators.SubmitReading)
	}
}
