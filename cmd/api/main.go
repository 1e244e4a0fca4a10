// @title Quiz Arena API
// @version 1.0
// @description Test attempt submission, grading, leaderboards and analytics.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-arena/cmd/api/docs"
	"quiz-arena/internal/adapter"
	"quiz-arena/internal/cache"
	"quiz-arena/internal/config"
	"quiz-arena/internal/database"
	"quiz-arena/internal/domain"
	"quiz-arena/internal/handler"
	"quiz-arena/internal/logger"
	"quiz-arena/internal/middleware"
	"quiz-arena/internal/repository"
	"quiz-arena/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var locker domain.SubmissionLocker = adapter.NoopSubmissionLocker{}
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	switch {
	case redisClient == nil:
		appLogger.Warn("Redis not configured, submission lock disabled", zap.Error(err))
	case err != nil:
		// The client reconnects on its own; Acquire degrades per call until then.
		appLogger.Warn("Redis ping failed, submission lock will fall back to the database", zap.Error(err))
		locker = adapter.NewRedisSubmissionLocker(redisClient, cfg.Attempt.LockTTL, cfg.Attempt.LockWait)
	default:
		appLogger.Info("Successfully connected to Redis")
		locker = adapter.NewRedisSubmissionLocker(redisClient, cfg.Attempt.LockTTL, cfg.Attempt.LockWait)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	catalogRepository := repository.NewCatalogDatabaseAdapter(db)
	attemptRepository := repository.NewAttemptRepository(db)
	analyticsRepository := repository.NewAnalyticsRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	attemptService := service.NewAttemptService(catalogRepository, attemptRepository, txManager, locker, cfg.Attempt)
	analyticsService := service.NewAnalyticsService(analyticsRepository, attemptRepository, catalogRepository)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))

	registerRoutes(app, routeDeps{
		authService:      authService,
		attemptHandler:   handler.NewAttemptHandler(attemptService),
		analyticsHandler: handler.NewAnalyticsHandler(analyticsService),
		submitLimiter:    middleware.NewSubmitRateLimiter(cfg.Attempt.SubmitRatePerMinute, cfg.Attempt.SubmitBurst),
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("driver", cfg.DB.Driver))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
