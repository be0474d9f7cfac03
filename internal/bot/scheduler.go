package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/edgard/mindfulbot/internal/bot/tasks"
	"github.com/edgard/mindfulbot/internal/config"
)

// ErrSchedulerNotRunning is returned by Defer before Start or after Stop.
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// Scheduler manages cron tasks and one-time deferred jobs using gocron.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       *config.SchedulerConfig
	taskMap   map[string]tasks.ScheduledTaskFunc
	mu        sync.Mutex // protects running during start/stop
	running   bool

	// deferred holds one-time jobs that have not started yet, so Stop can
	// still run them.
	deferredMu sync.Mutex
	deferred   map[uint64]deferredJob
	nextID     uint64
}

type deferredJob struct {
	name string
	task func(ctx context.Context)
}

// NewScheduler creates a new scheduler instance using gocron.
func NewScheduler(logger *slog.Logger, cfg *config.SchedulerConfig, taskMap map[string]tasks.ScheduledTaskFunc) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "scheduler")

	s, err := gocron.NewScheduler(gocron.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    log,
		cfg:       cfg,
		taskMap:   taskMap,
		deferred:  make(map[uint64]deferredJob),
	}, nil
}

// Start schedules all enabled cron tasks and starts the scheduler.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	s.logger.Debug("Configuring scheduler jobs...")

	scheduledCount := 0
	if s.cfg == nil || len(s.cfg.Tasks) == 0 {
		s.logger.Warn("No scheduler tasks configured.")
	}
	for taskName, taskConfig := range tasksOf(s.cfg) {
		if !taskConfig.Enabled {
			s.logger.Info("Skipping disabled task", "task_name", taskName)
			continue
		}

		taskFunc, exists := s.taskMap[taskName]
		if !exists {
			s.logger.Warn("Scheduled task configured but not found in registry, skipping", "task_name", taskName)
			continue
		}

		_, err := s.scheduler.NewJob(
			gocron.CronJob(taskConfig.Schedule, true),
			gocron.NewTask(
				func(ctx context.Context, name string) {
					s.logger.Info("Running scheduled task", "task_name", name)
					startTime := time.Now()
					if taskErr := taskFunc(ctx); taskErr != nil {
						s.logger.Error("Scheduled task failed", "task_name", name, "error", taskErr)
					}
					s.logger.Info("Finished scheduled task", "task_name", name, "duration", time.Since(startTime))
				},
				context.Background(),
				taskName,
			),
			gocron.WithName(taskName),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			s.logger.Error("Failed to schedule task", "task_name", taskName, "schedule", taskConfig.Schedule, "error", err)
			continue
		}

		s.logger.Info("Scheduled task", "task_name", taskName, "schedule", taskConfig.Schedule)
		scheduledCount++
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler initialized and started", "tasks_scheduled", scheduledCount)

	return nil
}

func tasksOf(cfg *config.SchedulerConfig) map[string]config.TaskConfig {
	if cfg == nil {
		return nil
	}
	return cfg.Tasks
}

// Defer runs task once after delay as a gocron one-time job. Tasks still
// pending when Stop is called run during Stop.
func (s *Scheduler) Defer(name string, delay time.Duration, task func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrSchedulerNotRunning
	}

	s.deferredMu.Lock()
	s.nextID++
	id := s.nextID
	s.deferred[id] = deferredJob{name: name, task: task}
	s.deferredMu.Unlock()

	start := gocron.OneTimeJobStartImmediately()
	if delay > 0 {
		start = gocron.OneTimeJobStartDateTime(time.Now().Add(delay))
	}

	_, err := s.scheduler.NewJob(
		gocron.OneTimeJob(start),
		gocron.NewTask(
			func(ctx context.Context, jobID uint64) {
				if job, ok := s.claim(jobID); ok {
					job.task(ctx)
				}
			},
			context.Background(),
			id,
		),
		gocron.WithName(name),
	)
	if err != nil {
		s.claim(id)
		return fmt.Errorf("failed to schedule deferred job %s: %w", name, err)
	}

	s.logger.Debug("Deferred job scheduled", "job_name", name, "delay", delay)
	return nil
}

// claim removes a pending deferred job; only the first caller gets it.
func (s *Scheduler) claim(id uint64) (deferredJob, bool) {
	s.deferredMu.Lock()
	defer s.deferredMu.Unlock()

	job, ok := s.deferred[id]
	if ok {
		delete(s.deferred, id)
	}
	return job, ok
}

// Stop gracefully stops the scheduler, waiting for running jobs to complete,
// then runs any deferred jobs that never started.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.logger.Info("Scheduler is not running, nothing to stop.")
		return nil
	}

	s.logger.Debug("Stopping scheduler gracefully (waiting for jobs)...")
	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	} else {
		s.logger.Info("Scheduler stopped gracefully.")
	}
	s.running = false

	s.deferredMu.Lock()
	pending := make([]deferredJob, 0, len(s.deferred))
	for id, job := range s.deferred {
		pending = append(pending, job)
		delete(s.deferred, id)
	}
	s.deferredMu.Unlock()

	for _, job := range pending {
		s.logger.Info("Running deferred job before shutdown", "job_name", job.name)
		job.task(context.Background())
	}

	return err
}
