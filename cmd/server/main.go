package main

import (
	"github.com/a-boudoun/matcha-server/internal/router"
	"github.com/a-boudoun/matcha-server/pkg/config"
	"github.com/a-boudoun/matcha-server/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration and logger
	cfg := config.Load()
	logger := cfg.NewLogger()

	// Initialize database connections
	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize databases")
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure routes")
	}

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	logger.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}
