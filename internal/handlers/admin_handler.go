package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tattoospace/station-booking-backend/internal/config"
	"github.com/tattoospace/station-booking-backend/internal/middleware"
	"github.com/tattoospace/station-booking-backend/internal/models"
	"github.com/tattoospace/station-booking-backend/internal/services"
	"github.com/tattoospace/station-booking-backend/pkg/jwt"
)

// AdminHandler handles the admin console HTTP requests
type AdminHandler struct {
	adminService         *services.AdminService
	customizationService *services.CustomizationService
	jwtService           *jwt.Service
	config               *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	adminService *services.AdminService,
	customizationService *services.CustomizationService,
	jwtService *jwt.Service,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{
		adminService:         adminService,
		customizationService: customizationService,
		jwtService:           jwtService,
		config:               cfg,
	}
}

// AdminAuthResponse represents the response after an admin login
type AdminAuthResponse struct {
	Message      string        `json:"message"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int           `json:"expires_in_seconds"`
	Admin        *models.Admin `json:"admin"`
}

// Login handles POST /api/v1/admin/auth/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	admin, err := h.adminService.Login(req.Email, req.Password, c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, services.ErrInvalidAdminCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_credentials",
				Message: "Invalid email or password",
			})
			return
		}
		log.Printf("ERROR: Admin login failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to log in",
		})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(admin.ID, admin.Email, []string{string(admin.Role)}, jwt.ScopeAdmin)
	if err != nil {
		log.Printf("ERROR: Failed to generate admin access token: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "Failed to generate tokens",
		})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(admin.ID, admin.Email, jwt.ScopeAdmin)
	if err != nil {
		log.Printf("ERROR: Failed to generate admin refresh token: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "Failed to generate tokens",
		})
		return
	}

	c.JSON(http.StatusOK, AdminAuthResponse{
		Message:      "Logged in successfully",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(h.config.JWT.AccessTokenExpiry / time.Second),
		Admin:        admin,
	})
}

// Logout handles POST /api/v1/admin/auth/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	h.adminService.Logout(actor)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetMe handles GET /api/v1/admin/me
func (h *AdminHandler) GetMe(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": actor})
}

// ListAdmins handles GET /api/v1/admin/admins
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminService.List()
	if err != nil {
		log.Printf("ERROR: Failed to list admins: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve admins",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admins": admins,
		"total":  len(admins),
	})
}

// AddAdmin handles POST /api/v1/admin/admins (super admin only)
func (h *AdminHandler) AddAdmin(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req models.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	if req.Role != models.AdminRoleSuper && req.Role != models.AdminRoleAdmin && req.Role != models.AdminRoleModerator {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Role must be 'super', 'admin' or 'moderator'",
		})
		return
	}

	admin, err := h.adminService.Add(actor, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotSuperAdmin) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: err.Error(),
			})
			return
		}
		log.Printf("ERROR: Failed to add admin: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to create admin",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin created successfully",
		"admin":   admin,
	})
}

// RemoveAdmin handles DELETE /api/v1/admin/admins/:id (super admin only)
func (h *AdminHandler) RemoveAdmin(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	adminID := c.Param("id")
	if adminID == actor.ID {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "You cannot remove your own account",
		})
		return
	}

	if err := h.adminService.Remove(actor, adminID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotSuperAdmin):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: err.Error(),
			})
		case errors.Is(err, services.ErrAdminNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Admin not found",
			})
		default:
			log.Printf("ERROR: Failed to remove admin %s: %v", adminID, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "database_error",
				Message: "Failed to remove admin",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin removed successfully"})
}

// GetActivityLog handles GET /api/v1/admin/activity-log
func (h *AdminHandler) GetActivityLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := h.customizationService.GetActivityLog(limit)
	if err != nil {
		log.Printf("ERROR: Failed to get activity log: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve activity log",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// GetCustomization handles GET /api/v1/customization
// Public: the app reads its branding and colors from here.
func (h *AdminHandler) GetCustomization(c *gin.Context) {
	customization, err := h.customizationService.Get()
	if err != nil {
		log.Printf("ERROR: Failed to get customization: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve customization",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customization": customization})
}

// UpdateCustomization handles PATCH /api/v1/admin/customization
func (h *AdminHandler) UpdateCustomization(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req models.UpdateCustomizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.customizationService.UpdateAppInfo(actor, &req); err != nil {
		log.Printf("ERROR: Failed to update customization: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to update customization",
		})
		return
	}

	h.respondWithCustomization(c, "Customization updated successfully")
}

// UpdateColorScheme handles PUT /api/v1/admin/customization/colors
// Accepts a partial color map; provided keys override the defaults.
func (h *AdminHandler) UpdateColorScheme(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var partial models.ColorScheme
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	if len(partial) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "At least one color must be provided",
		})
		return
	}

	if err := h.customizationService.UpdateColorScheme(actor, partial); err != nil {
		log.Printf("ERROR: Failed to update color scheme: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to update color scheme",
		})
		return
	}

	h.respondWithCustomization(c, "Color scheme updated successfully")
}

// ResetColorScheme handles DELETE /api/v1/admin/customization/colors
func (h *AdminHandler) ResetColorScheme(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.customizationService.ResetColorScheme(actor); err != nil {
		log.Printf("ERROR: Failed to reset color scheme: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to reset color scheme",
		})
		return
	}

	h.respondWithCustomization(c, "Color scheme reset to defaults")
}

// AddFeaturedSpace handles PUT /api/v1/admin/featured/:spaceId
func (h *AdminHandler) AddFeaturedSpace(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	spaceID := c.Param("spaceId")

	if err := h.customizationService.AddFeaturedSpace(actor, spaceID); err != nil {
		if errors.Is(err, services.ErrSpaceNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Space not found",
			})
			return
		}
		log.Printf("ERROR: Failed to feature space %s: %v", spaceID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to feature space",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Space featured successfully",
		"space_id": spaceID,
	})
}

// RemoveFeaturedSpace handles DELETE /api/v1/admin/featured/:spaceId
func (h *AdminHandler) RemoveFeaturedSpace(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	spaceID := c.Param("spaceId")

	if err := h.customizationService.RemoveFeaturedSpace(actor, spaceID); err != nil {
		log.Printf("ERROR: Failed to unfeature space %s: %v", spaceID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to unfeature space",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Space unfeatured successfully",
		"space_id": spaceID,
	})
}

// actor resolves the authenticated admin account from the request
// context. Writes the error response itself when resolution fails.
func (h *AdminHandler) actor(c *gin.Context) (*models.Admin, bool) {
	userCtx := middleware.MustGetUserContext(c)

	admin, err := h.adminService.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, services.ErrAdminNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "Admin account no longer exists",
			})
			return nil, false
		}
		log.Printf("ERROR: Failed to resolve admin %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to resolve admin account",
		})
		return nil, false
	}

	return admin, true
}

func (h *AdminHandler) respondWithCustomization(c *gin.Context, message string) {
	customization, err := h.customizationService.Get()
	if err != nil {
		log.Printf("ERROR: Failed to reload customization: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to reload customization",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       message,
		"customization": customization,
	})
}
