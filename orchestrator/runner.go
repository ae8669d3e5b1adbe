package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultInitialBackoff = 30 * time.Second
	defaultMaxBackoff     = 5 * time.Minute
)

// JobConfig configures a scheduled pipeline job.
type JobConfig struct {
	Name           string
	Interval       time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// BackoffOnErrors stretches the interval while runs fail with one of these.
	BackoffOnErrors []error

	// RunImmediately runs once on start, still subject to ShouldRun.
	RunImmediately bool

	// ShouldRun gates each tick; nil runs on every tick.
	ShouldRun func(now time.Time) bool
}

// JobRunner ticks a pipeline job on its interval until stopped.
type JobRunner struct {
	config JobConfig
	fn     func(ctx context.Context) error
	logger *slog.Logger
	now    func() time.Time
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJobRunner creates a new job runner.
func NewJobRunner(config JobConfig, fn func(ctx context.Context) error, logger *slog.Logger) *JobRunner {
	return &JobRunner{
		config: config,
		fn:     fn,
		logger: logger,
		now:    time.Now,
	}
}

// WeeklyGate fires once per matching weekday and UTC hour. Ticks inside an hour
// that already fired are skipped.
func WeeklyGate(weekday time.Weekday, hour int) func(now time.Time) bool {
	var mu sync.Mutex
	var lastFired time.Time

	return func(now time.Time) bool {
		u := now.UTC()
		if u.Weekday() != weekday || u.Hour() != hour {
			return false
		}
		slot := u.Truncate(time.Hour)

		mu.Lock()
		defer mu.Unlock()
		if slot.Equal(lastFired) {
			return false
		}
		lastFired = slot
		return true
	}
}

// Start starts the job runner in a goroutine.
func (r *JobRunner) Start(ctx context.Context) {
	jobCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(jobCtx)
	}()
}

// Stop stops the job runner and waits for it to finish.
func (r *JobRunner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// run ticks until ctx ends. A panicking job is logged and the loop keeps going.
func (r *JobRunner) run(ctx context.Context) {
	if r.config.RunImmediately && r.due() {
		if err := r.invoke(ctx); err != nil {
			r.logger.ErrorContext(ctx, "initial job run failed", "job", r.config.Name, "error", err)
		}
	}

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	var backoff time.Duration
	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "job stopped", "job", r.config.Name)
			return
		case <-ticker.C:
			if !r.due() {
				continue
			}
			next := r.settle(ctx, backoff, r.invoke(ctx))
			if next != backoff {
				interval := next
				if interval == 0 {
					interval = r.config.Interval
				}
				ticker.Reset(interval)
				backoff = next
			}
		}
	}
}

// settle logs the outcome of one invocation and returns the backoff to apply next.
// Zero means the regular interval.
func (r *JobRunner) settle(ctx context.Context, backoff time.Duration, err error) time.Duration {
	switch {
	case err == nil:
		if backoff > 0 {
			r.logger.InfoContext(ctx, "backoff cleared, resuming normal interval", "job", r.config.Name)
		}
		return 0
	case r.shouldBackoff(err):
		next := r.nextBackoff(backoff)
		r.logger.WarnContext(ctx, "job backing off", "job", r.config.Name, "backoff", next, "error", err)
		return next
	default:
		r.logger.ErrorContext(ctx, "job failed", "job", r.config.Name, "error", err)
		return backoff
	}
}

func (r *JobRunner) invoke(ctx context.Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "panic in job", "job", r.config.Name, "panic", rec)
			err = fmt.Errorf("job %s panicked: %v", r.config.Name, rec)
		}
	}()
	return r.fn(ctx)
}

func (r *JobRunner) due() bool {
	return r.config.ShouldRun == nil || r.config.ShouldRun(r.now())
}

func (r *JobRunner) shouldBackoff(err error) bool {
	for _, target := range r.config.BackoffOnErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// nextBackoff doubles current, starting at InitialBackoff and capped at MaxBackoff.
func (r *JobRunner) nextBackoff(current time.Duration) time.Duration {
	initial := r.config.InitialBackoff
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	ceiling := r.config.MaxBackoff
	if ceiling <= 0 {
		ceiling = defaultMaxBackoff
	}

	if current <= 0 {
		return min(initial, ceiling)
	}
	return min(current*2, ceiling)
}

// JobGroup manages a collection of job runners.
type JobGroup struct {
	runners []*JobRunner
	ctx     context.Context
	logger  *slog.Logger
}

// NewJobGroup creates a new job group. The provided context is used for all
// runners added via Add.
func NewJobGroup(ctx context.Context, logger *slog.Logger) *JobGroup {
	return &JobGroup{ctx: ctx, logger: logger}
}

// Add adds a job runner to the group and starts it immediately.
func (g *JobGroup) Add(runner *JobRunner) {
	g.runners = append(g.runners, runner)
	g.logger.InfoContext(g.ctx, "starting job", "job", runner.config.Name)
	runner.Start(g.ctx)
}

// StopAll stops all jobs in the group and waits for them to finish.
func (g *JobGroup) StopAll() {
	for _, r := range g.runners {
		r.Stop()
	}
}
