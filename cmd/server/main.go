package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/newsbridge/backend/internal/router"
	"github.com/newsbridge/backend/internal/validators"
	"github.com/newsbridge/backend/pkg/config"
	"github.com/newsbridge/backend/pkg/firebase"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	ctx := context.Background()
	conns := config.NewConnManager(cfg)
	db, err := conns.Init(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer conns.Reset() // Ensure database connections are closed when main exits

	// Initialize Firebase
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db, firebaseApp.AuthClient)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
