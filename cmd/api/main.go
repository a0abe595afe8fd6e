package main

// @title Clinic Directory API
// @version 1.0.0
// @description Healthcare clinic directory with provider-backed discovery. Nearby searches are answered from the local clinic store when it holds enough matches and refreshed from the Google Places API otherwise, so repeat map queries stay cheap while coverage keeps growing.
// @description
// @description Main features:
// @description - Nearby clinic discovery with transparent provider fallback
// @description - Forward and reverse geocoding with Redis caching
// @description - Route summaries between a patient and a clinic
// @description - Owner-managed clinic records, appointments and reviews

// @contact.name API Support
// @contact.email support@clinic-directory.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/clinic-directory/docs/swagger"
	"github.com/clinic-directory/internal/config"
	httpDelivery "github.com/clinic-directory/internal/delivery/http"
	"github.com/clinic-directory/internal/delivery/http/handler"
	"github.com/clinic-directory/internal/infrastructure/googleplaces"
	"github.com/clinic-directory/internal/pkg/logger"
	"github.com/clinic-directory/internal/repository/cache"
	"github.com/clinic-directory/internal/repository/postgres"
	redisRepo "github.com/clinic-directory/internal/repository/redis"
	"github.com/clinic-directory/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Clinic Directory Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	clinicRepo := postgres.NewClinicRepository(db)
	userRepo := postgres.NewUserRepository(db)
	apptRepo := postgres.NewAppointmentRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	placesRepo, err := googleplaces.NewClient(&cfg.Google, log)
	if err != nil {
		log.Fatal("Failed to initialize places client", zap.Error(err))
	}

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	discoveryUC := usecase.NewDiscoveryUseCase(
		clinicRepo,
		placesRepo,
		streamRepo,
		log,
		cfg.Discovery.MinCachedResults,
	)

	geocodeUC := usecase.NewGeocodeUseCase(
		placesRepo,
		cacheRepo,
		log,
		cfg.Cache.GeocodeCacheTTL,
	)

	clinicUC := usecase.NewClinicUseCase(clinicRepo, log)

	authUC := usecase.NewAuthUseCase(
		userRepo,
		log,
		cfg.Auth.JWTSecret,
		cfg.Auth.JWTTTL,
	)

	apptUC := usecase.NewAppointmentUseCase(apptRepo, clinicRepo, log)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, clinicRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	placesHandler := handler.NewPlacesHandler(discoveryUC, log)
	clinicHandler := handler.NewClinicHandler(clinicUC, log)
	authHandler := handler.NewAuthHandler(authUC, log)
	apptHandler := handler.NewAppointmentHandler(apptUC, log)
	reviewHandler := handler.NewReviewHandler(reviewUC, log)
	geocodeHandler := handler.NewGeocodeHandler(geocodeUC, log)
	healthHandler := handler.NewHealthHandler(db, redisClient, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		placesHandler,
		clinicHandler,
		authHandler,
		apptHandler,
		reviewHandler,
		geocodeHandler,
		healthHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
