package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger - anything that can report its own liveness
type Pinger interface {
	Health(ctx context.Context) error
}

// HealthHandler - liveness and dependency checks
type HealthHandler struct {
	db     Pinger
	redis  Pinger
	logger *zap.Logger
}

// NewHealthHandler - creates a new HealthHandler
func NewHealthHandler(db, redis Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		redis:  redis,
		logger: logger,
	}
}

// Health godoc
// @Summary Service health
// @Description Reports liveness of the service and its Postgres and Redis dependencies.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := fiber.Map{}

	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("Database health check failed", zap.Error(err))
		checks["database"] = "down"
		status = fiber.StatusServiceUnavailable
	} else {
		checks["database"] = "up"
	}

	if err := h.redis.Health(ctx); err != nil {
		h.logger.Warn("Redis health check failed", zap.Error(err))
		checks["redis"] = "down"
		status = fiber.StatusServiceUnavailable
	} else {
		checks["redis"] = "up"
	}

	healthy := status == fiber.StatusOK
	return c.Status(status).JSON(fiber.Map{
		"status": map[bool]string{true: "healthy", false: "degraded"}[healthy],
		"checks": checks,
		"time":   time.Now(),
	})
}
