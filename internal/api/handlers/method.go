package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/risk29/riskboard/internal/scoring"
)

// MethodHandler serves the scoring method catalog for the dashboard's
// method picker.
type MethodHandler struct{}

func NewMethodHandler() *MethodHandler {
	return &MethodHandler{}
}

// MethodsResponse lists every scoring method with its metadata.
type MethodsResponse struct {
	Methods     []scoring.MethodInfo `json:"methods"`
	Recommended scoring.Method       `json:"recommended"`
}

// ListMethods returns the full method catalog.
func (h *MethodHandler) ListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, MethodsResponse{
		Methods:     scoring.Methods(),
		Recommended: scoring.RecommendedMethod,
	})
}

// GetMethod returns the metadata for one method.
func (h *MethodHandler) GetMethod(c *gin.Context) {
	id := scoring.Method(c.Param("id"))
	info, ok := scoring.MethodByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown scoring method: " + string(id)})
		return
	}
	c.JSON(http.StatusOK, info)
}
