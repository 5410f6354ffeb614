package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/risk29/riskboard/internal/analytics"
	"github.com/risk29/riskboard/internal/models"
	"github.com/risk29/riskboard/internal/scoring"
)

// ReportProvider is the prediction service surface the handler needs.
type ReportProvider interface {
	Report(ctx context.Context, method string) (*models.PredictionReport, error)
	Anomalies(ctx context.Context, method string, threshold float64) ([]models.DatedAnomaly, error)
}

type PredictionHandler struct {
	predictions   ReportProvider
	defaultMethod scoring.Method
}

func NewPredictionHandler(predictions ReportProvider, defaultMethod scoring.Method) *PredictionHandler {
	return &PredictionHandler{
		predictions:   predictions,
		defaultMethod: defaultMethod,
	}
}

// AnomaliesResponse lists the anomalies flagged in the stored score series.
type AnomaliesResponse struct {
	Method    string                `json:"method"`
	Anomalies []models.DatedAnomaly `json:"anomalies"`
	Timestamp time.Time             `json:"timestamp"`
}

// GetPredictions returns the full prediction report: trend, forecasts with
// confidence bands, anomalies and period changes.
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetAnomalies returns the anomaly list. An optional threshold query
// parameter rescans the series with that z-score cutoff instead of the
// configured one.
func (h *PredictionHandler) GetAnomalies(c *gin.Context) {
	if raw := c.Query("threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil || threshold <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Threshold must be a positive number"})
			return
		}

		method, ok := h.methodParam(c)
		if !ok {
			return
		}
		anomalies, err := h.predictions.Anomalies(c.Request.Context(), string(method), threshold)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan for anomalies"})
			return
		}
		c.JSON(http.StatusOK, AnomaliesResponse{
			Method:    string(method),
			Anomalies: anomalies,
			Timestamp: time.Now(),
		})
		return
	}

	report, ok := h.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, AnomaliesResponse{
		Method:    report.Method,
		Anomalies: report.Anomalies,
		Timestamp: report.GeneratedAt,
	})
}

func (h *PredictionHandler) methodParam(c *gin.Context) (scoring.Method, bool) {
	method := h.defaultMethod
	if raw := c.Query("method"); raw != "" {
		method = scoring.Method(raw)
	}
	if !scoring.ValidMethod(method) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown scoring method: " + string(method)})
		return "", false
	}
	return method, true
}

func (h *PredictionHandler) report(c *gin.Context) (*models.PredictionReport, bool) {
	method, ok := h.methodParam(c)
	if !ok {
		return nil, false
	}

	report, err := h.predictions.Report(c.Request.Context(), string(method))
	if err != nil {
		if errors.Is(err, analytics.ErrInsufficientData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Not enough score history for predictions"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate predictions"})
		return nil, false
	}
	return report, true
}
