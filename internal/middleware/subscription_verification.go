package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tattoospace/station-booking-backend/internal/database"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// RequireActiveHost checks that the caller carries an active host subscription.
// Must be used after AuthMiddleware to have userCtx available.
func RequireActiveHost(userRepo *database.UserRepository) gin.HandlerFunc {
	return requireActiveSubscription(userRepo, models.SubscriptionTypeHost, "host")
}

// RequireActiveArtist checks that the caller carries an active artist subscription.
// Must be used after AuthMiddleware to have userCtx available.
func RequireActiveArtist(userRepo *database.UserRepository) gin.HandlerFunc {
	return requireActiveSubscription(userRepo, models.SubscriptionTypeArtist, "artist")
}

func requireActiveSubscription(userRepo *database.UserRepository, subType models.SubscriptionType, label string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userCtx, exists := GetUserContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "User context not found",
			})
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(userCtx.UserID)
		if err != nil {
			log.Printf("ERROR: Failed to get user for subscription check: %v", err)
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "not_" + label,
				"message": "Account not found",
			})
			c.Abort()
			return
		}

		if !user.HasActiveSubscription(subType) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "subscription_required",
				"message": "An active " + label + " subscription is required to access this resource",
				"code":    "SUBSCRIPTION_REQUIRED",
			})
			c.Abort()
			return
		}

		c.Set(label, user)

		c.Next()
	}
}
