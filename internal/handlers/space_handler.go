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

// SpaceHandler handles listing-related HTTP requests
type SpaceHandler struct {
	spaceService         *services.SpaceService
	customizationService *services.CustomizationService
}

// NewSpaceHandler creates a new space handler
func NewSpaceHandler(
	spaceService *services.SpaceService,
	customizationService *services.CustomizationService,
) *SpaceHandler {
	return &SpaceHandler{
		spaceService:         spaceService,
		customizationService: customizationService,
	}
}

// List handles GET /api/v1/spaces
// Filter criteria are passed as query parameters and combined with AND
// semantics.
func (h *SpaceHandler) List(c *gin.Context) {
	var filter models.SpaceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid filter parameters: " + err.Error(),
		})
		return
	}

	spaces, err := h.spaceService.Search(filter)
	if err != nil {
		log.Printf("ERROR: Failed to search spaces: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve spaces",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"spaces": spaces,
		"total":  len(spaces),
	})
}

// GetFeatured handles GET /api/v1/spaces/featured
func (h *SpaceHandler) GetFeatured(c *gin.Context) {
	customization, err := h.customizationService.Get()
	if err != nil {
		log.Printf("ERROR: Failed to get customization for featured spaces: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve featured spaces",
		})
		return
	}

	spaces, err := h.spaceService.GetFeatured(customization.FeaturedSpaceIDs)
	if err != nil {
		log.Printf("ERROR: Failed to get featured spaces: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve featured spaces",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"spaces": spaces,
		"total":  len(spaces),
	})
}

// Get handles GET /api/v1/spaces/:id
func (h *SpaceHandler) Get(c *gin.Context) {
	spaceID := c.Param("id")

	space, err := h.spaceService.GetByID(spaceID)
	if err != nil {
		if errors.Is(err, services.ErrSpaceNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Space not found",
			})
			return
		}
		log.Printf("ERROR: Failed to get space %s: %v", spaceID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve space",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"space": space})
}

// GetMine handles GET /api/v1/host/spaces (host only)
func (h *SpaceHandler) GetMine(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	spaces, err := h.spaceService.GetByHost(userCtx.UserID)
	if err != nil {
		log.Printf("ERROR: Failed to get spaces for host %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve spaces",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"spaces": spaces,
		"total":  len(spaces),
	})
}

// Create handles POST /api/v1/host/spaces (host only)
func (h *SpaceHandler) Create(c *gin.Context) {
	host, ok := hostFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "Host account not found",
		})
		return
	}

	var req models.CreateSpaceRequest
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

	space, err := h.spaceService.Create(host, &req)
	if err != nil {
		log.Printf("ERROR: Failed to create space for host %s: %v", host.ID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to create space",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Space created successfully",
		"space":   space,
	})
}

// Update handles PATCH /api/v1/host/spaces/:id (host only)
func (h *SpaceHandler) Update(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)
	spaceID := c.Param("id")

	var req models.UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	space, err := h.spaceService.Update(userCtx.UserID, spaceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSpaceNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Space not found",
			})
		case errors.Is(err, services.ErrNotSpaceOwner):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "You don't own this space",
			})
		default:
			log.Printf("ERROR: Failed to update space %s: %v", spaceID, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "database_error",
				Message: "Failed to update space",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Space updated successfully",
		"space":   space,
	})
}

// Delete handles DELETE /api/v1/host/spaces/:id (host only)
func (h *SpaceHandler) Delete(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)
	spaceID := c.Param("id")

	if err := h.spaceService.Delete(userCtx.UserID, spaceID); err != nil {
		switch {
		case errors.Is(err, services.ErrSpaceNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Space not found",
			})
		case errors.Is(err, services.ErrNotSpaceOwner):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "You don't own this space",
			})
		default:
			log.Printf("ERROR: Failed to delete space %s: %v", spaceID, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "database_error",
				Message: "Failed to delete space",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Space deleted successfully"})
}

// hostFromContext retrieves the verified host user stored by the
// subscription middleware
func hostFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("host")
	if !exists {
		return nil, false
	}
	host, ok := value.(*models.User)
	return host, ok
}
