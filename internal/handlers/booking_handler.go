package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tattoospace/station-booking-backend/internal/middleware"
	"github.com/tattoospace/station-booking-backend/internal/models"
	"github.com/tattoospace/station-booking-backend/internal/services"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create handles POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	booking, err := h.bookingService.Create(userCtx.UserID, &req)
	if err != nil {
		var conflictErr *models.BookingConflictError
		switch {
		case errors.Is(err, services.ErrSpaceNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Space not found",
			})
		case errors.As(err, &conflictErr):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "booking_conflict",
				Message: conflictErr.Error(),
				Code:    "TIME_RANGE_UNAVAILABLE",
			})
		default:
			log.Printf("ERROR: Failed to create booking: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "database_error",
				Message: "Failed to create booking",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// Get handles GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)
	bookingID := c.Param("id")

	booking, err := h.bookingService.GetByID(bookingID)
	if err != nil {
		h.respondTransitionError(c, bookingID, err)
		return
	}

	// Only the booker and the host may view a booking
	if booking.UserID != userCtx.UserID && booking.HostID != userCtx.UserID {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You are not a participant of this booking",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// GetMine handles GET /api/v1/bookings
func (h *BookingHandler) GetMine(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	bookings, err := h.bookingService.GetByUser(userCtx.UserID)
	if err != nil {
		log.Printf("ERROR: Failed to get bookings for user %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// GetHostBookings handles GET /api/v1/host/bookings (host only)
func (h *BookingHandler) GetHostBookings(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	bookings, err := h.bookingService.GetByHost(userCtx.UserID)
	if err != nil {
		log.Printf("ERROR: Failed to get bookings for host %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// GetBySpace handles GET /api/v1/spaces/:id/bookings
func (h *BookingHandler) GetBySpace(c *gin.Context) {
	spaceID := c.Param("id")

	bookings, err := h.bookingService.GetBySpace(spaceID)
	if err != nil {
		log.Printf("ERROR: Failed to get bookings for space %s: %v", spaceID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// Cancel handles POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, "Booking cancelled", h.bookingService.Cancel)
}

// Approve handles POST /api/v1/bookings/:id/approve (host only)
func (h *BookingHandler) Approve(c *gin.Context) {
	h.transition(c, "Booking confirmed", h.bookingService.Approve)
}

// Reject handles POST /api/v1/bookings/:id/reject (host only)
func (h *BookingHandler) Reject(c *gin.Context) {
	h.transition(c, "Booking rejected", h.bookingService.Reject)
}

// Complete handles POST /api/v1/bookings/:id/complete (host only)
func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, "Booking completed", h.bookingService.Complete)
}

func (h *BookingHandler) transition(
	c *gin.Context,
	message string,
	apply func(callerID, bookingID string) (*models.Booking, error),
) {
	userCtx := middleware.MustGetUserContext(c)
	bookingID := c.Param("id")

	booking, err := apply(userCtx.UserID, bookingID)
	if err != nil {
		h.respondTransitionError(c, bookingID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"booking": booking,
	})
}

func (h *BookingHandler) respondTransitionError(c *gin.Context, bookingID string, err error) {
	var transitionErr *models.InvalidTransitionError
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Booking not found",
		})
	case errors.Is(err, services.ErrNotBookingParticipant):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to modify this booking",
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "invalid_transition",
			Message: transitionErr.Error(),
			Code:    "INVALID_STATUS_TRANSITION",
		})
	default:
		log.Printf("ERROR: Booking operation failed for %s: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to process booking",
		})
	}
}
