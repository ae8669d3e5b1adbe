package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/otel"
)

const databaseWaitTimeout = 2 * time.Minute

// Observability is the process logger plus the telemetry settings it was built with.
type Observability struct {
	ContextLogger *logger.ContextLogger
	Logger        *slog.Logger
	OTel          otel.Config
	shutdown      otel.ShutdownFunc
}

// Shutdown flushes telemetry providers.
func (o *Observability) Shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.shutdown(shutdownCtx); err != nil {
		o.Logger.Warn("Failed to shutdown OpenTelemetry", "error", err)
	}
}

// InitObservability installs the OpenTelemetry providers and the global logger.
// A provider failure disables telemetry instead of failing startup.
func InitObservability(ctx context.Context) *Observability {
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	loggerConfig := logger.LoadConfigFromEnv()
	contextLogger := logger.NewContextLogger(os.Stdout, loggerConfig, otelCfg.Enabled)
	log := contextLogger.Logger()
	logger.SetGlobal(log)

	return &Observability{
		ContextLogger: contextLogger,
		Logger:        log,
		OTel:          otelCfg,
		shutdown:      otelShutdown,
	}
}

// Run is the main application entry point. It initializes all dependencies,
// starts the server and background jobs, then waits for a shutdown signal.
func Run(ctx context.Context, cfg *config.Config) error {
	obs := InitObservability(ctx)
	defer obs.Shutdown()
	log := obs.Logger

	log.Info("Starting digest service",
		"otel_enabled", obs.OTel.Enabled,
		"service", obs.OTel.ServiceName,
		"port", cfg.Server.Port,
		"redis_trigger_enabled", cfg.Redis.Enabled)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := BuildDependencies(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}
	defer cleanup()

	waitCtx, cancelWait := context.WithTimeout(ctx, databaseWaitTimeout)
	err = deps.HealthChecker.WaitForDatabase(waitCtx)
	cancelWait()
	if err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	httpServer := NewHTTPServer(deps, obs.ContextLogger, obs.OTel.Enabled, obs.OTel.ServiceName)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return StartHTTPServer(httpServer, cfg.Server.Port, log)
	})

	if err := startJobs(gctx, deps, log); err != nil {
		stop()
		_ = g.Wait()
		return fmt.Errorf("failed to start jobs: %w", err)
	}

	log.Info("Digest service started successfully")

	g.Go(func() error {
		<-gctx.Done()
		return shutdown(httpServer, deps, cfg.Server.ShutdownTimeout, log)
	})

	return g.Wait()
}

func startJobs(ctx context.Context, deps *Dependencies, log *slog.Logger) error {
	log.Info("Starting background jobs")

	if err := deps.Scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	if err := deps.RedisConsumer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start redis consumer: %w", err)
	}

	// Non-fatal dependency report
	for name, status := range deps.HealthHandler.CheckDependencies(ctx) {
		if status != "ok" {
			log.Warn("Dependency not ready", "dependency", name, "status", status)
		}
	}

	return nil
}

func shutdown(httpServer interface{ Shutdown(context.Context) error }, deps *Dependencies, timeout time.Duration, log *slog.Logger) error {
	log.Info("Shutting down digest service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", "error", err)
	}

	deps.RedisConsumer.Stop()
	if err := deps.Scheduler.StopAll(); err != nil {
		log.Error("Error stopping scheduler", "error", err)
	}

	done := make(chan struct{})
	go func() {
		deps.Runner.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn("Pipeline runs still in flight at shutdown")
	}

	log.Info("Digest service stopped")
	return nil
}
