package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pinecove/cabin-console/internal/application"
	"github.com/pinecove/cabin-console/internal/auth"
	settingsDomain "github.com/pinecove/cabin-console/internal/domain/settings"
	"github.com/pinecove/cabin-console/internal/middleware"
	"github.com/pinecove/cabin-console/internal/response"
)

// SettingsHandler handles HTTP requests for the booking settings singleton.
type SettingsHandler struct {
	service *application.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(service *application.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// RegisterRoutes registers all settings routes on the given router group.
func (h *SettingsHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	settings := r.Group("/api/v1/settings")
	settings.Use(middleware.Auth(jwtManager))
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", middleware.RequireRole(auth.RoleAdmin), h.UpdateSettings)
	}
}

// GetSettings handles GET /api/v1/settings.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	result, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateSettings handles PUT /api/v1/settings.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var cfg settingsDomain.Settings
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateSettings(c.Request.Context(), cfg)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
