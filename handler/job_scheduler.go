package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/orchestrator"
)

// Scheduled job names
const (
	HourlyFetchJob  = "hourly-fetch"
	WeeklyDigestJob = "weekly-digest"
)

// weeklyTick keeps at least one tick inside every UTC hour; WeeklyGate dedups.
const weeklyTick = 15 * time.Minute

var errSchedulerStarted = errors.New("scheduler already started")

// JobScheduler implementation.
type jobScheduler struct {
	jobs   map[string]*scheduledJob
	order  []string
	group  *orchestrator.JobGroup
	logger *slog.Logger
	mutex  sync.RWMutex
}

type scheduledJob struct {
	lastError  error
	lastRun    *time.Time
	config     orchestrator.JobConfig
	jobFunc    func(ctx context.Context) error
	errorCount int
	runCount   int
	isRunning  bool
}

// NewJobScheduler creates a new job scheduler.
func NewJobScheduler(logger *slog.Logger) JobScheduler {
	return &jobScheduler{
		jobs:   make(map[string]*scheduledJob),
		logger: logger,
	}
}

// Schedule registers a job. Jobs registered after Start begin ticking immediately.
func (s *jobScheduler) Schedule(cfg orchestrator.JobConfig, jobFunc func(ctx context.Context) error) error {
	if cfg.Name == "" {
		return fmt.Errorf("job name is required")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive, got %s", cfg.Name, cfg.Interval)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.jobs[cfg.Name]; exists {
		return fmt.Errorf("job %s is already scheduled", cfg.Name)
	}

	job := &scheduledJob{config: cfg, jobFunc: jobFunc}
	s.jobs[cfg.Name] = job
	s.order = append(s.order, cfg.Name)

	if s.group != nil {
		s.group.Add(s.newRunner(job))
	}
	s.logger.Info("job scheduled", "name", cfg.Name, "interval", cfg.Interval)
	return nil
}

// Start launches every registered job under ctx.
func (s *jobScheduler) Start(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.group != nil {
		return errSchedulerStarted
	}
	s.group = orchestrator.NewJobGroup(ctx, s.logger)
	for _, name := range s.order {
		s.group.Add(s.newRunner(s.jobs[name]))
	}
	return nil
}

// StopAll stops all jobs and waits for in-flight runs to return.
func (s *jobScheduler) StopAll() error {
	s.mutex.RLock()
	group := s.group
	s.mutex.RUnlock()

	if group != nil {
		group.StopAll()
	}
	s.logger.Info("all jobs stopped")
	return nil
}

// GetJobStatus returns a snapshot of the job's run history.
func (s *jobScheduler) GetJobStatus(jobName string) (JobStatus, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	job, exists := s.jobs[jobName]
	if !exists {
		return JobStatus{}, fmt.Errorf("job %s not found", jobName)
	}

	return JobStatus{
		Name:       jobName,
		IsRunning:  job.isRunning,
		LastRun:    job.lastRun,
		LastError:  job.lastError,
		ErrorCount: job.errorCount,
		RunCount:   job.runCount,
	}, nil
}

// newRunner wraps the job function so every invocation updates its status.
func (s *jobScheduler) newRunner(job *scheduledJob) *orchestrator.JobRunner {
	return orchestrator.NewJobRunner(job.config, func(ctx context.Context) error {
		s.setRunning(job, true)
		err := job.jobFunc(ctx)
		s.finish(job, err)
		return err
	}, s.logger)
}

func (s *jobScheduler) setRunning(job *scheduledJob, running bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	job.isRunning = running
}

func (s *jobScheduler) finish(job *scheduledJob, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	job.isRunning = false
	job.lastRun = &now
	job.runCount++
	job.lastError = err
	if err != nil {
		job.errorCount++
	}
}

// SchedulePipelineJobs registers the hourly fetch and weekly digest jobs enabled in cfg.
func SchedulePipelineJobs(s JobScheduler, trigger PipelineTrigger, cfg config.ScheduleConfig) error {
	if cfg.HourlyEnabled {
		err := s.Schedule(orchestrator.JobConfig{
			Name:            HourlyFetchJob,
			Interval:        cfg.HourlyInterval,
			InitialBackoff:  5 * time.Minute,
			MaxBackoff:      cfg.MaxBackoff,
			BackoffOnErrors: []error{domain.ErrFetch},
		}, PipelineJob(trigger, domain.StageHourlyFetch))
		if err != nil {
			return err
		}
	}

	if cfg.WeeklyEnabled {
		err := s.Schedule(orchestrator.JobConfig{
			Name:      WeeklyDigestJob,
			Interval:  weeklyTick,
			ShouldRun: orchestrator.WeeklyGate(cfg.WeeklyWeekday, cfg.WeeklyHour),
		}, PipelineJob(trigger, domain.StageWeeklyDigest))
		if err != nil {
			return err
		}
	}
	return nil
}

// PipelineJob runs stage synchronously and surfaces the failing stage's error.
func PipelineJob(trigger PipelineTrigger, stage domain.PipelineStage) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		result := trigger.Run(ctx, stage, domain.RunParams{})
		if err := result.Err(); err != nil {
			return fmt.Errorf("run %s (%s): %w", result.RunID, stage, err)
		}
		return nil
	}
}
