package router

import (
	"github.com/a-boudoun/matcha-server/internal/handlers"
	"github.com/a-boudoun/matcha-server/internal/middleware"
	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/a-boudoun/matcha-server/internal/realtime"
	"github.com/a-boudoun/matcha-server/internal/repositories"
	"github.com/a-boudoun/matcha-server/internal/services"
	"github.com/a-boudoun/matcha-server/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config, logger zerolog.Logger) error {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Profile{},
		&models.InterestTag{},
		&models.Relationship{},
		&models.Block{},
		&models.Report{},
		&models.Visit{},
	)
	if err != nil {
		return err
	}
	logger.Info().Msg("PostgreSQL auto-migrations completed")

	// Health and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize repositories and services ---
	stores := repositories.NewGormStores(pgdb)
	candidateRepo := repositories.NewPostgresCandidateRepository(pgdb)
	notificationRepo := repositories.NewMongoNotificationRepository(mgClient.Database("matcha"))

	registry := realtime.NewRegistry(logger)
	notifier := services.NewNotifier(notificationRepo, stores.Profiles(), registry, logger)
	matchService := services.NewMatchService(stores, notifier, logger)
	recommendService := services.NewRecommendService(stores.Profiles(), candidateRepo, logger)

	// --- Websocket endpoint (JWT only, a fresh profile may connect) ---
	ws := e.Group("")
	ws.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	wsHandler := handlers.NewWSHandler(registry, stores.Profiles(), cfg.ClientOrigin, logger)
	wsHandler.RegisterWSRoutes(ws)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	// History routes
	historyHandler := handlers.NewHistoryHandler(stores)
	historyHandler.RegisterHistoryRoutes(api)

	// Matching routes additionally require a completed, verified profile
	matching := api.Group("")
	matching.Use(middleware.UsableProfileMiddleware(stores.Profiles()))

	matchHandler := handlers.NewMatchHandler(matchService, recommendService)
	matchHandler.RegisterMatchRoutes(matching)

	searchHandler := handlers.NewSearchHandler(recommendService)
	searchHandler.RegisterSearchRoutes(matching)

	blockHandler := handlers.NewBlockHandler(matchService)
	blockHandler.RegisterBlockRoutes(matching)

	profileHandler := handlers.NewProfileHandler(matchService)
	profileHandler.RegisterProfileRoutes(matching)

	logger.Info().Msg("All routes configured")
	return nil
}
