package router

import (
	"log"

	"notification-center/internal/handlers"
	"notification-center/internal/middleware"
	"notification-center/internal/models"
	"notification-center/internal/repositories"
	"notification-center/internal/services"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// The returned FeedRenderer lets callers register per-action renderers.
func SetupRoutes(e *echo.Echo, db *gorm.DB, systemName string) *services.FeedRenderer {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.NotificationViewer{},
		&models.FollowerResource{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	followerRepo := repositories.NewPostgresFollowerRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Initialize Services ---
	resolver := services.NewRecipientResolver(followerRepo)
	fanout := services.NewFanoutService(resolver, notificationRepo)
	feed := services.NewFeedRenderer(notificationRepo, systemName)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followerRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, fanout, feed)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return feed
}
