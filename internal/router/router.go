package router

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/newsbridge/backend/internal/handlers"
	"github.com/newsbridge/backend/internal/middleware"
	"github.com/newsbridge/backend/internal/models"
	"github.com/newsbridge/backend/internal/repositories"
	"github.com/newsbridge/backend/internal/services"
	"github.com/newsbridge/backend/pkg/config"
	"golang.org/x/time/rate"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// rateLimiter gates public GET traffic and hints callers to retry later.
func rateLimiter(perSecond float64) echo.MiddlewareFunc {
	return eMiddleware.RateLimiterWithConfig(eMiddleware.RateLimiterConfig{
		Store: eMiddleware.NewRateLimiterMemoryStore(rate.Limit(perSecond)),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			c.Response().Header().Set("Retry-After", "1")
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, firebaseAuthClient *auth.Client) {
	// AutoMigrate the PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.Subscriber{},
		&models.ContactMessage{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	categoryRepo := repositories.NewMongoCategoryRepository(mongoDB)
	eventRepo := repositories.NewMongoEventRepository(mongoDB)
	subscriberRepo := repositories.NewPostgresSubscriberRepository(db.Postgres)
	contactRepo := repositories.NewPostgresContactRepository(db.Postgres)

	if err := postRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create post indexes: %v", err)
	}
	if err := eventRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create event indexes: %v", err)
	}
	log.Println("MongoDB indexes ensured.")

	// --- Initialize Services ---
	contentService := services.NewContentService(postRepo, categoryRepo)
	eventService := services.NewEventService(eventRepo)
	subscriptionService := services.NewSubscriptionService(subscriberRepo, contactRepo)

	dev := cfg.IsDevelopment()

	// --- Public routes (rate limited) ---
	perSecond, err := strconv.ParseFloat(cfg.RateLimitPerSecond, 64)
	if err != nil || perSecond <= 0 {
		perSecond = 20
	}
	public := e.Group("/api/v1")
	public.Use(rateLimiter(perSecond))

	contentHandler := handlers.NewContentHandler(contentService, dev)
	contentHandler.RegisterPublicRoutes(public)
	log.Println("Content routes configured.")

	eventHandler := handlers.NewEventHandler(eventService, dev)
	eventHandler.RegisterPublicRoutes(public)
	log.Println("Event routes configured.")

	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, dev)
	subscriptionHandler.RegisterPublicRoutes(public)
	log.Println("Subscription routes configured.")

	// --- Admin routes (require authentication) ---
	admin := e.Group("/api/v1/admin")
	if cfg.JWTSecret != "" {
		admin.Use(middleware.AdminAuthMiddleware(firebaseAuthClient, cfg.JWTSecret))
		log.Println("Service token and Firebase authentication applied to /api/v1/admin group.")
	} else {
		admin.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
		log.Println("Firebase authentication middleware applied to /api/v1/admin group.")
	}

	adminPostHandler := handlers.NewAdminPostHandler(contentService, dev)
	adminPostHandler.RegisterAdminRoutes(admin)
	eventHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
