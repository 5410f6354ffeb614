package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/risk29/riskboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReadingWriter struct {
	stored []models.IndicatorReading
	err    error
}

func (s *stubReadingWriter) UpsertReading(_ context.Context, reading models.IndicatorReading) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, reading)
	return nil
}

func indicatorRouter(repo ReadingWriter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewIndicatorHandler(repo)
	router.POST("/api/v1/indicators", h.SubmitReading)
	return router
}

func postReading(t *testing.T, router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/indicators", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitReading(t *testing.T) {
	repo := &stubReadingWriter{}
	router := indicatorRouter(repo)

	w := postReading(t, router, map[string]interface{}{
		"indicator_id": "VIXCLS",
		"value":        "22.4",
		"score":        "47.5",
		"observed_at":  "2026-08-27",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.stored, 1)

	reading := repo.stored[0]
	assert.Equal(t, "VIXCLS", reading.IndicatorID)
	assert.Equal(t, "technical", reading.Category)
	assert.Equal(t, "47.5", reading.Score.String())
	assert.Equal(t, "2026-08-27", reading.ObservedAt.Format("2006-01-02"))
}

func TestSubmitReadingValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
		want string
	}{
		{
			name: "unknown indicator",
			body: map[string]interface{}{
				"indicator_id": "NOT_A_THING",
				"score":        "50",
				"observed_at":  "2026-08-27",
			},
			want: "unknown indicator",
		},
		{
			name: "score above range",
			body: map[string]interface{}{
				"indicator_id": "VIXCLS",
				"score":        "101",
				"observed_at":  "2026-08-27",
			},
			want: "between 0 and 100",
		},
		{
			name: "negative score",
			body: map[string]interface{}{
				"indicator_id": "VIXCLS",
				"score":        "-1",
				"observed_at":  "2026-08-27",
			},
			want: "between 0 and 100",
		},
		{
			name: "bad date",
			body: map[string]interface{}{
				"indicator_id": "VIXCLS",
				"score":        "50",
				"observed_at":  "27/08/2026",
			},
			want: "YYYY-MM-DD",
		},
		{
			name: "missing observed_at",
			body: map[string]interface{}{
				"indicator_id": "VIXCLS",
				"score":        "50",
			},
			want: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubReadingWriter{}
			router := indicatorRouter(repo)

			w := postReading(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			assert.Empty(t, repo.stored)
		})
	}
}

func TestSubmitReadingStoreError(t *testing.T) {
	repo := &stubReadingWriter{err: assert.AnError}
	router := indicatorRouter(repo)

	w := postReading(t, router, map[string]interface{}{
		"indicator_id": "VIXCLS",
		"score":        "50",
		"observed_at":  "2026-08-27",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
