package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/tattoospace/station-booking-backend/internal/config"
	"github.com/tattoospace/station-booking-backend/internal/database"
	"github.com/tattoospace/station-booking-backend/internal/middleware"
	"github.com/tattoospace/station-booking-backend/internal/models"
	"github.com/tattoospace/station-booking-backend/pkg/jwt"
	"github.com/tattoospace/station-booking-backend/pkg/validator"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	jwtService           *jwt.Service
	credentialsValidator *validator.CredentialsValidator
	userRepository       *database.UserRepository
	config               *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	jwtService *jwt.Service,
	credentialsValidator *validator.CredentialsValidator,
	userRepository *database.UserRepository,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		jwtService:           jwtService,
		credentialsValidator: credentialsValidator,
		userRepository:       userRepository,
		config:               cfg,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// AuthResponse represents the response after a successful register or login
type AuthResponse struct {
	Message      string       `json:"message"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in_seconds"`
	User         *models.User `json:"user"`
}

// RefreshRequest represents the request to refresh an access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	email, err := h.credentialsValidator.ValidateEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_email",
			Message: err.Error(),
		})
		return
	}

	if err := h.credentialsValidator.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_password",
			Message: err.Error(),
		})
		return
	}

	// Reject duplicate email before attempting the insert
	if _, err := h.userRepository.GetByEmail(email); err == nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "email_taken",
			Message: "An account with this email already exists",
		})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("ERROR: Failed to check existing email: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to register",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.config.Security.BcryptCost)
	if err != nil {
		log.Printf("ERROR: Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to register",
		})
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := h.userRepository.Create(user); err != nil {
		log.Printf("ERROR: Failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to register",
		})
		return
	}

	h.respondWithTokens(c, http.StatusCreated, "Account created successfully", user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	email, err := h.credentialsValidator.ValidateEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_email",
			Message: err.Error(),
		})
		return
	}

	user, err := h.userRepository.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_credentials",
				Message: "Invalid email or password",
			})
			return
		}
		log.Printf("ERROR: Failed to get user by email: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to log in",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid email or password",
		})
		return
	}

	h.respondWithTokens(c, http.StatusOK, "Logged in successfully", user)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Invalid or expired refresh token",
			Code:    "INVALID_REFRESH_TOKEN",
		})
		return
	}

	if claims.Scope != jwt.ScopeUser {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Refresh token scope mismatch",
			Code:    "INVALID_REFRESH_TOKEN",
		})
		return
	}

	// Reload the user so refreshed tokens carry current roles
	user, err := h.userRepository.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_token",
				Message: "Account no longer exists",
			})
			return
		}
		log.Printf("ERROR: Failed to get user for token refresh: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to refresh token",
		})
		return
	}

	h.respondWithTokens(c, http.StatusOK, "Token refreshed successfully", user)
}

// GetProfile handles GET /api/v1/users/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	user, err := h.userRepository.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "User not found",
			})
			return
		}
		log.Printf("ERROR: Failed to get profile for user %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile handles PATCH /api/v1/users/me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.userRepository.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "User not found",
			})
			return
		}
		log.Printf("ERROR: Failed to get user %s for profile update: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to update profile",
		})
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Website != nil {
		user.Website = req.Website
	}
	if req.Instagram != nil {
		user.Instagram = req.Instagram
	}
	if req.Portfolio != nil {
		user.Portfolio = req.Portfolio
	}

	if err := h.userRepository.UpdateProfile(user); err != nil {
		log.Printf("ERROR: Failed to update profile for user %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to update profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// GetFavorites handles GET /api/v1/users/me/favorites
func (h *AuthHandler) GetFavorites(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	favorites, err := h.userRepository.GetFavorites(userCtx.UserID)
	if err != nil {
		log.Printf("ERROR: Failed to get favorites for user %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve favorites",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"total":     len(favorites),
	})
}

// ToggleFavorite handles POST /api/v1/users/me/favorites/:spaceId
func (h *AuthHandler) ToggleFavorite(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)
	spaceID := c.Param("spaceId")

	favorited, err := h.userRepository.ToggleFavorite(userCtx.UserID, spaceID)
	if err != nil {
		log.Printf("ERROR: Failed to toggle favorite %s for user %s: %v", spaceID, userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to update favorites",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"space_id":  spaceID,
		"favorited": favorited,
	})
}

func (h *AuthHandler) respondWithTokens(c *gin.Context, status int, message string, user *models.User) {
	accessToken, err := h.jwtService.GenerateAccessToken(user.ID, user.Email, user.Roles(), jwt.ScopeUser)
	if err != nil {
		log.Printf("ERROR: Failed to generate access token: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "Failed to generate tokens",
		})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(user.ID, user.Email, jwt.ScopeUser)
	if err != nil {
		log.Printf("ERROR: Failed to generate refresh token: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "Failed to generate tokens",
		})
		return
	}

	c.JSON(status, AuthResponse{
		Message:      message,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(h.config.JWT.AccessTokenExpiry / time.Second),
		User:         user,
	})
}
