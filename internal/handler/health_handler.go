package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medingen/recon_api/internal/service"
	"github.com/medingen/recon_api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	gateway service.CatalogGateway
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(gateway service.CatalogGateway) *HealthHandler {
	return &HealthHandler{gateway: gateway}
}

// GetHealth responds with service and catalog backend status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	catalogStatus := "connected"
	if err := h.gateway.Health(c.Request.Context()); err != nil {
		catalogStatus = "disconnected"
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"catalog": gin.H{
			"status": catalogStatus,
		},
	})
}
