package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tattoospace/station-booking-backend/internal/config"
	"github.com/tattoospace/station-booking-backend/internal/database"
	"github.com/tattoospace/station-booking-backend/internal/handlers"
	"github.com/tattoospace/station-booking-backend/internal/middleware"
	"github.com/tattoospace/station-booking-backend/internal/models"
	"github.com/tattoospace/station-booking-backend/internal/services"
	"github.com/tattoospace/station-booking-backend/pkg/jwt"
	"github.com/tattoospace/station-booking-backend/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting TattooSpace Station Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize repositories
	userRepository := database.NewUserRepository(db)
	spaceRepository := database.NewSpaceRepository(db)
	bookingRepository := database.NewBookingRepository(db)
	planRepository := database.NewPlanRepository(db)
	adminRepository := database.NewAdminRepository(db)
	customizationRepository := database.NewCustomizationRepository(db)
	messageRepository := database.NewMessageRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	credentialsValidator := validator.NewCredentialsValidator()
	spaceService := services.NewSpaceService(spaceRepository, logger)
	bookingService := services.NewBookingService(bookingRepository, spaceRepository, logger)
	subscriptionService := services.NewSubscriptionService(planRepository, userRepository, logger)
	customizationService := services.NewCustomizationService(customizationRepository, spaceRepository, logger)
	adminService := services.NewAdminService(adminRepository, customizationService, cfg.Security.BcryptCost, logger)
	assistantService := services.NewAssistantService(cfg.Assistant, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(jwtService, credentialsValidator, userRepository, cfg)
	spaceHandler := handlers.NewSpaceHandler(spaceService, customizationService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	adminHandler := handlers.NewAdminHandler(adminService, customizationService, jwtService, cfg)
	messageHandler := handlers.NewMessageHandler(messageRepository)
	assistantHandler := handlers.NewAssistantHandler(assistantService)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// User profile routes (protected)
		users := v1.Group("/users")
		users.Use(middleware.AuthMiddleware(jwtService), middleware.RequireScope(jwt.ScopeUser))
		{
			users.GET("/me", authHandler.GetProfile)
			users.PATCH("/me", authHandler.UpdateProfile)
			users.GET("/me/favorites", authHandler.GetFavorites)
			users.POST("/me/favorites/:spaceId", authHandler.ToggleFavorite)
		}

		// Space routes
		spaces := v1.Group("/spaces")
		{
			// Public routes (no authentication)
			spaces.GET("", spaceHandler.List)
			spaces.GET("/featured", spaceHandler.GetFeatured)
			spaces.GET("/:id", spaceHandler.Get)

			// Protected routes (require JWT authentication)
			spacesProtected := spaces.Group("")
			spacesProtected.Use(middleware.AuthMiddleware(jwtService), middleware.RequireScope(jwt.ScopeUser))
			{
				spacesProtected.GET("/:id/bookings", bookingHandler.GetBySpace)
			}
		}

		// Booking routes (all protected; creating a booking requires an
		// active artist subscription)
		bookings := v1.Group("/bookings")
		bookings.Use(middleware.AuthMiddleware(jwtService), middleware.RequireScope(jwt.ScopeUser))
		{
			bookings.POST("", middleware.RequireActiveArtist(userRepository), bookingHandler.Create)
			bookings.GET("", bookingHandler.GetMine)
			bookings.GET("/:id", bookingHandler.Get)
			bookings.POST("/:id/cancel", bookingHandler.Cancel)
			bookings.POST("/:id/approve", bookingHandler.Approve)
			bookings.POST("/:id/reject", bookingHandler.Reject)
			bookings.POST("/:id/complete", bookingHandler.Complete)
		}

		// Host routes (require an active host subscription)
		host := v1.Group("/host")
		host.Use(middleware.AuthMiddleware(jwtService), middleware.RequireScope(jwt.ScopeUser))
		{
			host.GET("/bookings", middleware.RequireRole(models.RoleHost), bookingHandler.GetHostBookings)

			hostVerified := host.Group("")
			hostVerified.Use(middleware.RequireActiveHost(userRepository))
			{
				hostVerified.GET("/spaces", spaceHandler.GetMine)
				hostVerified.POST("/spaces", spaceHandler.Create)
				hostVerified.PATCH("/spaces/:id", spaceHandler.Update)
				hostVerified.DELETE("/spaces/:id", spaceHandler.Delete)
			}
		}

		// Subscription routes
		subscriptions := v1.Group("/subscriptions")
		{
			// Public plan catalog
			subscriptions.GET("/plans", subscriptionHandler.ListPlans)

			subscriptionsProtected := subscriptions.Group("")
			subscriptionsProtected.Use(middleware.AuthMiddleware(jwtService), middleware.RequireScope(jwt.ScopeUser))
			{
				subscriptionsProtected.POST("", subscriptionHandler.Subscribe)
				subscriptionsProtected.POST("/upgrade", subscriptionHandler.Upgrade)
				subscriptionsProtected.DELETE("", subscriptionHandler.Cancel)
			}
		}

		// Support messaging routes (users and admins)
		messages := v1.Group("/messages")
		messages.Use(middleware.AuthMiddleware(jwtService))
		{
			messages.POST("", messageHandler.Send)
			messages.GET("", messageHandler.List)
			messages.GET("/unread", messageHandler.UnreadCount)
			messages.POST("/:id/read", messageHandler.MarkRead)
		}

		// Help assistant routes (protected)
		assistant := v1.Group("/assistant")
		assistant.Use(middleware.AuthMiddleware(jwtService))
		{
			assistant.POST("/chat", assistantHandler.Chat)
		}

		// App customization (public read for the mobile client)
		v1.GET("/customization", adminHandler.GetCustomization)

		// Admin console routes
		admin := v1.Group("/admin")
		{
			admin.POST("/auth/login", adminHandler.Login)

			adminProtected := admin.Group("")
			adminProtected.Use(middleware.AuthMiddleware(jwtService), middleware.RequireScope(jwt.ScopeAdmin))
			{
				adminProtected.POST("/auth/logout", adminHandler.Logout)
				adminProtected.GET("/me", adminHandler.GetMe)

				adminProtected.GET("/admins", adminHandler.ListAdmins)
				adminProtected.POST("/admins", adminHandler.AddAdmin)
				adminProtected.DELETE("/admins/:id", adminHandler.RemoveAdmin)

				adminProtected.GET("/activity-log", adminHandler.GetActivityLog)

				adminProtected.PATCH("/customization", adminHandler.UpdateCustomization)
				adminProtected.PUT("/customization/colors", adminHandler.UpdateColorScheme)
				adminProtected.DELETE("/customization/colors", adminHandler.ResetColorScheme)

				adminProtected.PUT("/featured/:spaceId", adminHandler.AddFeaturedSpace)
				adminProtected.DELETE("/featured/:spaceId", adminHandler.RemoveFeaturedSpace)
			}
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
			fields["scope"] = userCtx.Scope
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
		} else {
			status := c.Writer.Status()
			if status >= 500 {
				entry.Error("Request completed with server error")
			} else if status >= 400 {
				entry.Warn("Request completed with client error")
			} else {
				entry.Info("Request completed successfully")
			}
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "healthy"
		if err := db.Ping(); err != nil {
			dbStatus = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": dbStatus,
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  dbStatus,
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
