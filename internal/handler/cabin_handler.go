package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pinecove/cabin-console/internal/application"
	"github.com/pinecove/cabin-console/internal/auth"
	"github.com/pinecove/cabin-console/internal/middleware"
	"github.com/pinecove/cabin-console/internal/response"
)

// CabinHandler handles HTTP requests for cabin operations.
type CabinHandler struct {
	service *application.CabinService
}

// NewCabinHandler creates a new CabinHandler.
func NewCabinHandler(service *application.CabinService) *CabinHandler {
	return &CabinHandler{service: service}
}

// RegisterRoutes registers all cabin routes on the given router group.
func (h *CabinHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	cabins := r.Group("/api/v1/cabins")
	cabins.Use(middleware.Auth(jwtManager))
	{
		cabins.GET("", h.ListCabins)
		cabins.POST("", h.CreateCabin)
		cabins.GET("/:id", h.GetCabin)
		cabins.PATCH("/:id", h.UpdateCabin)
		cabins.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), h.DeleteCabin)
		cabins.POST("/:id/undo", middleware.RequireRole(auth.RoleAdmin), h.UndoDeleteCabin)
		cabins.POST("/:id/duplicate", h.DuplicateCabin)
	}
}

// ListCabins handles GET /api/v1/cabins.
func (h *CabinHandler) ListCabins(c *gin.Context) {
	result, err := h.service.ListCabins(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetCabin handles GET /api/v1/cabins/:id.
func (h *CabinHandler) GetCabin(c *gin.Context) {
	cabinID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cabin ID")
		return
	}

	result, err := h.service.GetCabin(c.Request.Context(), cabinID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateCabin handles POST /api/v1/cabins.
func (h *CabinHandler) CreateCabin(c *gin.Context) {
	var req application.CabinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateCabin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateCabin handles PATCH /api/v1/cabins/:id.
func (h *CabinHandler) UpdateCabin(c *gin.Context) {
	cabinID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cabin ID")
		return
	}

	var req application.CabinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateCabin(c.Request.Context(), cabinID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DuplicateCabin handles POST /api/v1/cabins/:id/duplicate.
func (h *CabinHandler) DuplicateCabin(c *gin.Context) {
	cabinID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cabin ID")
		return
	}

	result, err := h.service.DuplicateCabin(c.Request.Context(), cabinID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteCabin handles DELETE /api/v1/cabins/:id.
func (h *CabinHandler) DeleteCabin(c *gin.Context) {
	cabinID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cabin ID")
		return
	}

	if err := h.service.DeleteCabin(c.Request.Context(), cabinID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UndoDeleteCabin handles POST /api/v1/cabins/:id/undo.
func (h *CabinHandler) UndoDeleteCabin(c *gin.Context) {
	cabinID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cabin ID")
		return
	}

	if err := h.service.UndoDeleteCabin(c.Request.Context(), cabinID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
