package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pinecove/cabin-console/internal/application"
	"github.com/pinecove/cabin-console/internal/auth"
	bookingDomain "github.com/pinecove/cabin-console/internal/domain/booking"
	"github.com/pinecove/cabin-console/internal/middleware"
	"github.com/pinecove/cabin-console/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(middleware.Auth(jwtManager))
	{
		bookings.GET("", h.ListBookings)
		bookings.GET("/recent", h.RecentBookings)
		bookings.GET("/availability", h.Availability)
		bookings.POST("", h.CreateBooking)
		bookings.POST("/bulk-delete", middleware.RequireRole(auth.RoleAdmin), h.DeleteBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
		bookings.POST("/:id/undo", h.UndoBooking)
		bookings.POST("/:id/preview", h.PreviewUpdate)
		bookings.POST("/:id/confirm", h.ConfirmBooking)
		bookings.POST("/:id/check-in", h.CheckIn)
		bookings.POST("/:id/check-out", h.CheckOut)
		bookings.POST("/:id/confirm-payment", h.ConfirmPayment)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}

// ListBookings handles GET /api/v1/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)
	status := c.Query("status")

	result, err := h.service.ListBookings(c.Request.Context(), status, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// RecentBookings handles GET /api/v1/bookings/recent.
func (h *BookingHandler) RecentBookings(c *gin.Context) {
	result, err := h.service.GetRecentBookings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Availability handles GET /api/v1/bookings/availability. The month query
// parameter uses the YYYY-MM form; exclude_booking_id drops the edited
// booking's own reservation from the result.
func (h *BookingHandler) Availability(c *gin.Context) {
	cabinID, err := uuid.Parse(c.Query("cabin_id"))
	if err != nil {
		response.BadRequest(c, "invalid cabin_id")
		return
	}

	month := time.Time{}
	if raw := c.Query("month"); raw != "" {
		month, err = time.Parse("2006-01", raw)
		if err != nil {
			response.BadRequest(c, "month must look like 2026-08")
			return
		}
	}

	var excludeID *uuid.UUID
	if raw := c.Query("exclude_booking_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid exclude_booking_id")
			return
		}
		excludeID = &id
	}

	ranges, err := h.service.GetAvailability(c.Request.Context(), cabinID, month, excludeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ranges)
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var form bookingDomain.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateBooking handles PATCH /api/v1/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var form bookingDomain.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), bookingID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// PreviewUpdate handles POST /api/v1/bookings/:id/preview.
func (h *BookingHandler) PreviewUpdate(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var form bookingDomain.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.PreviewBookingUpdate(c.Request.Context(), bookingID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBooking handles DELETE /api/v1/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), bookingID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UndoBooking handles POST /api/v1/bookings/:id/undo.
func (h *BookingHandler) UndoBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.UndoBooking(c.Request.Context(), bookingID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteBookings handles POST /api/v1/bookings/bulk-delete.
func (h *BookingHandler) DeleteBookings(c *gin.Context) {
	var req struct {
		IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.DeleteBookings(c.Request.Context(), req.IDs); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ConfirmBooking handles POST /api/v1/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.service.ConfirmBooking)
}

// CheckIn handles POST /api/v1/bookings/:id/check-in.
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.service.CheckInBooking)
}

// CheckOut handles POST /api/v1/bookings/:id/check-out.
func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.service.CheckOutBooking)
}

// ConfirmPayment handles POST /api/v1/bookings/:id/confirm-payment.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	h.transition(c, h.service.ConfirmBookingPayment)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.service.CancelBooking)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*application.BookingDTO, error)) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := op(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// parsePagination reads page and limit query parameters with sane bounds.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
