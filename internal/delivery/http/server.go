package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/clinic-directory/internal/config"
	"github.com/clinic-directory/internal/delivery/http/handler"
	"github.com/clinic-directory/internal/delivery/http/middleware"
	"github.com/clinic-directory/internal/domain"
)

// Server - HTTP server built on Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	placesHandler      *handler.PlacesHandler
	clinicHandler      *handler.ClinicHandler
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	reviewHandler      *handler.ReviewHandler
	geocodeHandler     *handler.GeocodeHandler
	healthHandler      *handler.HealthHandler
}

// NewServer - creates a new HTTP server
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	placesHandler *handler.PlacesHandler,
	clinicHandler *handler.ClinicHandler,
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	reviewHandler *handler.ReviewHandler,
	geocodeHandler *handler.GeocodeHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Clinic Directory Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                app,
		config:             cfg,
		logger:             logger,
		placesHandler:      placesHandler,
		clinicHandler:      clinicHandler,
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		reviewHandler:      reviewHandler,
		geocodeHandler:     geocodeHandler,
		healthHandler:      healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - middleware configuration
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - route configuration
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")
	auth := middleware.Auth(s.config.Auth.JWTSecret)

	// Health check
	api.Get("/health", s.healthHandler.Health)

	// Discovery routes
	api.Get("/places/nearby", s.placesHandler.Nearby)
	api.Get("/places/cached", s.placesHandler.Cached)
	api.Get("/places/:placeId", s.placesHandler.Details)

	// Geocoding and routing
	api.Post("/geo/geocode", s.geocodeHandler.Geocode)
	api.Post("/geo/directions", s.geocodeHandler.Directions)

	// Auth routes
	api.Post("/auth/register", s.authHandler.Register)
	api.Post("/auth/login", s.authHandler.Login)

	// Clinic routes. Reads are public, writes require a clinic owner.
	api.Get("/clinics", s.clinicHandler.List)
	api.Get("/clinics/:id", s.clinicHandler.Get)
	api.Get("/clinics/:id/reviews", s.reviewHandler.ListByClinic)
	api.Post("/clinics", auth, middleware.RequireRole(domain.RoleClinicOwner), s.clinicHandler.Create)
	api.Patch("/clinics/:id", auth, middleware.RequireRole(domain.RoleClinicOwner), s.clinicHandler.Update)
	api.Delete("/clinics/:id", auth, middleware.RequireRole(domain.RoleClinicOwner), s.clinicHandler.Delete)

	// Appointment routes
	api.Post("/appointments", auth, s.appointmentHandler.Create)
	api.Get("/appointments", auth, s.appointmentHandler.ListMine)
	api.Patch("/appointments/:id/status", auth, s.appointmentHandler.UpdateStatus)

	// Review routes
	api.Post("/reviews", auth, s.reviewHandler.Create)
}

// Start - starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - fallback error handler for errors escaping handlers
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
