package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/service"
)

// HealthHandler implementation.
type healthHandler struct {
	healthChecker service.HealthCheckerService
	logger        *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(healthChecker service.HealthCheckerService, logger *slog.Logger) HealthHandler {
	return &healthHandler{
		healthChecker: healthChecker,
		logger:        logger,
	}
}

// CheckHealth reports whether the service can reach its database.
func (h *healthHandler) CheckHealth(ctx context.Context) error {
	if err := h.healthChecker.CheckDatabase(ctx); err != nil {
		h.logger.ErrorContext(ctx, "health check failed", "error", err)
		return err
	}
	return nil
}

// CheckDependencies reports the state of each external dependency.
func (h *healthHandler) CheckDependencies(ctx context.Context) map[string]string {
	return h.healthChecker.CheckDependencies(ctx)
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// LivenessRoute answers GET /health without touching dependencies.
func LivenessRoute(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

// ReadinessRoute answers GET /api/v1/health: 503 when the database is down,
// otherwise the per-dependency report.
func ReadinessRoute(h HealthHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := h.CheckHealth(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Status:       "unhealthy",
				Dependencies: map[string]string{"database": "unavailable"},
			})
		}
		return c.JSON(http.StatusOK, HealthResponse{
			Status:       "healthy",
			Dependencies: h.CheckDependencies(ctx),
		})
	}
}
