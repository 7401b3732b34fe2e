package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"craftlink/middleware"
	"craftlink/models"
	"craftlink/services/booking"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler builds the handler set for the booking endpoints.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

func requesterID(c *gin.Context) string {
	return c.GetString(middleware.RequesterIDKey)
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), req, requesterID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"), requesterID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Service.ListBookings(c.Request.Context(), requesterID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateStatus handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, requesterID(c), req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": updated})
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var req models.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cancelled, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"), req.Reason, requesterID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": cancelled})
}

// AttachProgressPhotos handles POST /api/bookings/:id/photos.
func (h *BookingHandler) AttachProgressPhotos(c *gin.Context) {
	var req models.ProgressPhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Service.AttachProgressPhotos(c.Request.Context(), c.Param("id"), req.Photos, requesterID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": updated})
}

// respondError maps the service error taxonomy onto HTTP statuses.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var (
		validationErr *booking.ValidationError
		notAvailable  *booking.NotAvailableError
		forbidden     *booking.ForbiddenError
		notFound      *booking.NotFoundError
		schedConflict *booking.SchedulingConflictError
		badTransition *booking.InvalidTransitionError
		writeConflict *booking.ConcurrencyConflictError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &notAvailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &schedConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":                err.Error(),
			"conflictingBookingId": schedConflict.ConflictingBookingID,
		})
	case errors.As(err, &badTransition), errors.As(err, &writeConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.Logger.Error("booking operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
