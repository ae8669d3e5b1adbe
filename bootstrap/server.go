package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/handler"
	appmiddleware "github.com/haritabh1992/postgres-mailing-list-summary-sender/middleware"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

// NewHTTPServer creates and configures the Echo HTTP server.
func NewHTTPServer(deps *Dependencies, contextLogger *logger.ContextLogger, otelEnabled bool, otelServiceName string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	// synchronous runs can hold the connection for a whole stage
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Custom error handler for consistent error responses
	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler(deps.Logger)

	// Add OpenTelemetry tracing middleware
	if otelEnabled {
		e.Use(otelecho.Middleware(otelServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(appmiddleware.RequestIDMiddleware())
	e.Use(appmiddleware.LoggingMiddleware(contextLogger, "/health", "/api/v1/health"))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/health", handler.LivenessRoute)
	e.GET("/thread-redirect/:slug", deps.RedirectHandler.HandleRedirect)

	if deps.Config.Metrics.Enabled {
		e.GET(deps.Config.Metrics.Path, echo.WrapHandler(deps.Metrics.Handler()))
	}

	// API routes
	api := e.Group("/api/v1")
	api.GET("/health", handler.ReadinessRoute(deps.HealthHandler))

	pipeline := api.Group("/pipeline")
	pipeline.GET("/runs/:run_id", deps.PipelineHandler.HandleStatus)
	pipeline.POST("/:stage", deps.PipelineHandler.HandleTrigger, appmiddleware.PipelineSecret(deps.Config.Pipeline.Secret))

	return e
}

// StartHTTPServer blocks serving e until it is shut down.
func StartHTTPServer(e *echo.Echo, port int, log *slog.Logger) error {
	addr := fmt.Sprintf(":%d", port)
	log.Info("Starting HTTP server", "port", port)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}
