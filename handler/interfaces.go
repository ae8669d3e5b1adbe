package handler

import (
	"context"
	"time"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/orchestrator"
)

//go:generate mockgen -destination=../test/mocks/handler_mocks.go -package=mocks github.com/haritabh1992/postgres-mailing-list-summary-sender/handler PipelineTrigger,HealthHandler

// PipelineTrigger starts pipeline runs and reports their state.
type PipelineTrigger interface {
	Start(ctx context.Context, stage domain.PipelineStage, params domain.RunParams) string
	Run(ctx context.Context, stage domain.PipelineStage, params domain.RunParams) *domain.RunResult
	Status(ctx context.Context, runID string) (*domain.RunStatus, error)
}

// HealthHandler handles health check endpoints.
type HealthHandler interface {
	CheckHealth(ctx context.Context) error
	CheckDependencies(ctx context.Context) map[string]string
}

// JobScheduler handles job scheduling and coordination.
type JobScheduler interface {
	Schedule(config orchestrator.JobConfig, jobFunc func(ctx context.Context) error) error
	Start(ctx context.Context) error
	StopAll() error
	GetJobStatus(jobName string) (JobStatus, error)
}

// JobStatus represents the status of a scheduled job.
type JobStatus struct {
	LastError  error
	LastRun    *time.Time
	Name       string
	ErrorCount int
	RunCount   int
	IsRunning  bool
}
