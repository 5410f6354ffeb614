package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/risk29/riskboard/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func methodRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewMethodHandler()
	router.GET("/api/v1/methods", h.ListMethods)
	router.GET("/api/v1/methods/:id", h.GetMethod)
	return router
}

func TestListMethods(t *testing.T) {
	router := methodRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/methods", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp MethodsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Methods, 5)
	assert.Equal(t, scoring.MethodTimeDecayMomentum, resp.Recommended)

	ids := make(map[scoring.Method]bool)
	for _, info := range resp.Methods {
		ids[info.ID] = true
	}
	assert.True(t, ids[scoring.MethodSimpleAverage])
	assert.True(t, ids[scoring.MethodMetaEnsemble])
}

func TestGetMethod(t *testing.T) {
	router := methodRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/methods/regime_adaptive", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var info scoring.MethodInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, scoring.MethodRegimeAdaptive, info.ID)
	assert.NotEmpty(t, info.Description)
}

func TestGetMethodNotFound(t *testing.T) {
	router := methodRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/methods/prophet", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
