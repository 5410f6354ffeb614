package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/risk29/riskboard/internal/models"
	"github.com/risk29/riskboard/internal/scoring"
)

// SnapshotProvider is the snapshot service surface the risk handlers need.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, method scoring.Method) (*models.RiskSnapshot, error)
	History(ctx context.Context, method scoring.Method, days int) ([]models.HistoryPoint, error)
}

type RiskHandler struct {
	snapshots     SnapshotProvider
	historyDays   int
	defaultMethod scoring.Method
}

func NewRiskHandler(snapshots SnapshotProvider, historyDays int, defaultMethod scoring.Method) *RiskHandler {
	return &RiskHandler{
		snapshots:     snapshots,
		historyDays:   historyDays,
		defaultMethod: defaultMethod,
	}
}

// HistoryResponse wraps the score series served to the dashboard chart.
type HistoryResponse struct {
	Method    string                `json:"method"`
	Days      int                   `json:"days"`
	Points    []models.HistoryPoint `json:"points"`
	Timestamp time.Time             `json:"timestamp"`
}

// RegimeResponse reports the detected market regime.
type RegimeResponse struct {
	Regime    string    `json:"regime"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
}

// GetSummary returns the current dashboard snapshot.
func (h *RiskHandler) GetSummary(c *gin.Context) {
	method, ok := h.methodParam(c)
	if !ok {
		return
	}

	snapshot, err := h.snapshots.Snapshot(c.Request.Context(), method)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build risk summary"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// GetHistory returns the stored score series with the moving average overlay.
func (h *RiskHandler) GetHistory(c *gin.Context) {
	method, ok := h.methodParam(c)
	if !ok {
		return
	}

	days := h.historyDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days parameter"})
			return
		}
		days = parsed
	}

	points, err := h.snapshots.History(c.Request.Context(), method, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load score history"})
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{
		Method:    string(method),
		Days:      days,
		Points:    points,
		Timestamp: time.Now(),
	})
}

// GetRegime returns the detected market regime behind the current snapshot.
func (h *RiskHandler) GetRegime(c *gin.Context) {
	method, ok := h.methodParam(c)
	if !ok {
		return
	}

	snapshot, err := h.snapshots.Snapshot(c.Request.Context(), method)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detect market regime"})
		return
	}

	c.JSON(http.StatusOK, RegimeResponse{
		Regime:    snapshot.Regime,
		Method:    snapshot.Method,
		Timestamp: snapshot.GeneratedAt,
	})
}

// methodParam resolves the optional method query parameter, writing a 400
// response for unknown methods.
func (h *RiskHandler) methodParam(c *gin.Context) (scoring.Method, bool) {
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
