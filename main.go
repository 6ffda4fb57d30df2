// File: /main.go
package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"loopline-api/config"
	"loopline-api/database"
	"loopline-api/events"
	"loopline-api/jobs"
	"loopline-api/middleware"
	"loopline-api/routes"
	"loopline-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Event bus carrying the post-write fan-out (scores, notifications,
	// welcome mail)
	bus := events.NewBus()
	defer bus.Close()

	emailService := services.NewEmailService(cfg)
	if emailService.Enabled() {
		log.Println("Email service configured")
	} else {
		log.Println("Email service disabled (no SMTP host)")
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.ValidateJSON())
	router.Use(middleware.RateLimit(300, 50))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, bus, emailService)

	// Background cleanup of long-unbound sessions
	cleanupJob := jobs.NewSessionCleanupJob(db, time.Hour, cfg.SessionMaxIdle)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Start server
	log.Printf("Starting Loopline API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
