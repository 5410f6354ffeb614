package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) HealthCheck(_ context.Context) error {
	return s.err
}

func healthRouter(db, redis Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHealthHandler(db, redis, "1.0.0")
	router.GET("/health", h.HealthCheck)
	return router
}

func TestHealthCheckHealthy(t *testing.T) {
	router := healthRouter(&stubPinger{}, &stubPinger{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Services["database"])
	assert.Equal(t, "healthy", resp.Services["redis"])
	assert.Equal(t, "1.0.0", resp.Version)
}

func TestHealthCheckDegradedDatabase(t *testing.T) {
	router := healthRouter(&stubPinger{err: errors.New("connection refused")}, &stubPinger{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Contains(t, resp.Services["database"], "unhealthy")
}

func TestHealthCheckRedisOptional(t *testing.T) {
	router := healthRouter(&stubPinger{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "disabled", resp.Services["redis"])
}
