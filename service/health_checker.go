package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/repository"
)

const (
	statusOK            = "ok"
	statusUnconfigured  = "unconfigured"
	statusUnavailable   = "unavailable"
	defaultPollInterval = 10 * time.Second
)

// DatabasePinger is satisfied by a function closing over the pool.
type DatabasePinger func(ctx context.Context) error

// HealthCheckerService implementation.
type healthCheckerService struct {
	ping         DatabasePinger
	llm          repository.SummarizerAPIRepository
	mailer       repository.MailerRepository
	logger       *slog.Logger
	pollInterval time.Duration
}

// NewHealthCheckerService creates a new health checker service.
func NewHealthCheckerService(
	ping DatabasePinger,
	llm repository.SummarizerAPIRepository,
	mailer repository.MailerRepository,
	logger *slog.Logger,
) HealthCheckerService {
	return &healthCheckerService{
		ping:         ping,
		llm:          llm,
		mailer:       mailer,
		logger:       logger,
		pollInterval: defaultPollInterval,
	}
}

// CheckDatabase reports whether the store answers a ping.
func (s *healthCheckerService) CheckDatabase(ctx context.Context) error {
	if s.ping == nil {
		return fmt.Errorf("database not configured")
	}
	if err := s.ping(ctx); err != nil {
		s.logger.ErrorContext(ctx, "database health check failed", "error", err)
		return fmt.Errorf("database not healthy: %w", err)
	}
	return nil
}

// CheckDependencies reports every dependency as ok, unconfigured or unavailable.
// Missing credentials are not failures of the service itself.
func (s *healthCheckerService) CheckDependencies(ctx context.Context) map[string]string {
	status := map[string]string{"database": statusOK}
	if err := s.CheckDatabase(ctx); err != nil {
		status["database"] = statusUnavailable
	}

	status["llm"] = statusOK
	if s.llm == nil || s.llm.CheckConfigured() != nil {
		status["llm"] = statusUnconfigured
	}

	status["mailer"] = statusOK
	if s.mailer == nil || s.mailer.CheckConfigured() != nil {
		status["mailer"] = statusUnconfigured
	}
	return status
}

// WaitForDatabase polls until the store answers or ctx ends.
func (s *healthCheckerService) WaitForDatabase(ctx context.Context) error {
	if err := s.CheckDatabase(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.ErrorContext(ctx, "context canceled while waiting for database")
			return ctx.Err()
		case <-ticker.C:
			if err := s.CheckDatabase(ctx); err == nil {
				s.logger.InfoContext(ctx, "database is now healthy")
				return nil
			}
		}
	}
}
