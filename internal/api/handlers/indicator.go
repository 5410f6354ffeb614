package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/risk29/riskboard/internal/models"
	"github.com/risk29/riskboard/internal/scoring"
	"github.com/risk29/riskboard/internal/utils"
	"github.com/shopspring/decimal"
)

// ReadingWriter is the repository surface the ingest handler writes through.
type ReadingWriter interface {
	UpsertReading(ctx context.Context, reading models.IndicatorReading) error
}

type IndicatorHandler struct {
	repo ReadingWriter
}

func NewIndicatorHandler(repo ReadingWriter) *IndicatorHandler {
	return &IndicatorHandler{repo: repo}
}

// SubmitReadingRequest is the ingest payload for one indicator observation.
type SubmitReadingRequest struct {
	IndicatorID string          `json:"indicator_id" binding:"required"`
	Value       decimal.Decimal `json:"value"`
	Score       decimal.Decimal `json:"score"`
	ObservedAt  string          `json:"observed_at" binding:"required"`
}

// SubmitReading validates and stores one indicator reading from the data
// pipeline.
func (h *IndicatorHandler) SubmitReading(c *gin.Context) {
	var req SubmitReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	reading, err := req.toReading()
	if err != nil {
		var validationErr *utils.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reading"})
		return
	}

	if err := h.repo.UpsertReading(c.Request.Context(), reading); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reading"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"indicator_id": reading.IndicatorID,
		"category":     reading.Category,
		"observed_at":  reading.ObservedAt.Format("2006-01-02"),
	})
}

func (r *SubmitReadingRequest) toReading() (models.IndicatorReading, error) {
	if !scoring.KnownIndicator(r.IndicatorID) {
		return models.IndicatorReading{}, utils.NewValidationErrorf("unknown indicator: %s", r.IndicatorID)
	}

	hundred := decimal.NewFromInt(100)
	if r.Score.IsNegative() || r.Score.GreaterThan(hundred) {
		return models.IndicatorReading{}, utils.NewValidationErrorf("score must be between 0 and 100, got %s", r.Score.String())
	}

	observedAt, err := time.Parse("2006-01-02", r.ObservedAt)
	if err != nil {
		return models.IndicatorReading{}, utils.NewValidationErrorf("observed_at must be a YYYY-MM-DD date: %s", r.ObservedAt)
	}

	return models.IndicatorReading{
		IndicatorID: r.IndicatorID,
		Category:    scoring.CategoryOf(r.IndicatorID),
		Value:       r.Value,
		Score:       r.Score,
		ObservedAt:  observedAt,
	}, nil
}
