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

// SubscriptionHandler handles subscription-related HTTP requests
type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// ListPlans handles GET /api/v1/subscriptions/plans
// An optional ?type=artist|host query narrows the result.
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	planType := models.SubscriptionType(c.Query("type"))
	if planType != "" && planType != models.SubscriptionTypeArtist && planType != models.SubscriptionTypeHost {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Plan type must be 'artist' or 'host'",
		})
		return
	}

	plans, err := h.subscriptionService.ListPlans(planType)
	if err != nil {
		log.Printf("ERROR: Failed to list subscription plans: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve plans",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plans": plans,
		"total": len(plans),
	})
}

// Subscribe handles POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	h.assign(c, "Subscribed successfully", h.subscriptionService.Subscribe)
}

// Upgrade handles POST /api/v1/subscriptions/upgrade
func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	h.assign(c, "Subscription upgraded successfully", h.subscriptionService.Upgrade)
}

// Cancel handles DELETE /api/v1/subscriptions
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	if err := h.subscriptionService.Cancel(userCtx.UserID); err != nil {
		if errors.Is(err, services.ErrNoSubscription) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "no_subscription",
				Message: "You have no active subscription to cancel",
			})
			return
		}
		log.Printf("ERROR: Failed to cancel subscription for user %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to cancel subscription",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}

func (h *SubscriptionHandler) assign(
	c *gin.Context,
	message string,
	apply func(userID, planID string) (*models.UserSubscription, error),
) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	subscription, err := apply(userCtx.UserID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Subscription plan not found",
			})
		case errors.Is(err, services.ErrNoSubscription):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "no_subscription",
				Message: "You need an existing subscription to upgrade",
			})
		default:
			log.Printf("ERROR: Failed to assign subscription for user %s: %v", userCtx.UserID, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "database_error",
				Message: "Failed to update subscription",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"subscription": subscription,
	})
}
