package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pinecove/cabin-console/internal/application"
	"github.com/pinecove/cabin-console/internal/auth"
	"github.com/pinecove/cabin-console/internal/middleware"
	"github.com/pinecove/cabin-console/internal/response"
)

// StatsHandler handles HTTP requests for the dashboard statistics.
type StatsHandler struct {
	service *application.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *application.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// RegisterRoutes registers all stats routes on the given router group.
func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	stats := r.Group("/api/v1/stats")
	stats.Use(middleware.Auth(jwtManager))
	{
		stats.GET("/dashboard", h.Dashboard)
	}
}

// Dashboard handles GET /api/v1/stats/dashboard. The period query parameter
// defaults to the last seven days.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	period := c.DefaultQuery("period", "7d")

	result, err := h.service.GetDashboardStats(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
