package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/dto"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Utilization returns the team utilization report
func (h *AnalyticsHandler) Utilization(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	report, err := h.analyticsService.Utilization(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"utilization": dto.ToUtilizationDTO(*report),
	})
}
