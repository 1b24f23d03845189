// Package job provides background job processing using Asynq.
//
// The API enqueues approval notifications through the asynq client; the
// worker server in the same process sends them. A scheduler enqueues the
// reference data cache warm-up on a cron spec.
package job

import (
	"context"

	"github.com/deppfellow/colleague-finance-api/internal/config"
	"github.com/deppfellow/colleague-finance-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue), server (workers) and
// scheduler (periodic tasks).
type JobService struct {
	Client *asynq.Client

	server    *asynq.Server
	scheduler *asynq.Scheduler
	cron      string
	mailer    Mailer
	warmers   []CacheWarmer
	logger    *zerolog.Logger
}

// NewJobService creates a JobService backed by the configured Redis.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Jobs.Concurrency,
		Queues: map[string]int{
			QueueCritical: 6,
			QueueDefault:  3,
			QueueLow:      1,
		},
		Logger:   asynqLogger{logger},
		LogLevel: asynq.WarnLevel,
	})

	var scheduler *asynq.Scheduler
	if cfg.Jobs.CacheWarmupCron != "" {
		scheduler = asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
			Logger:   asynqLogger{logger},
			LogLevel: asynq.WarnLevel,
		})
	}

	return &JobService{
		Client:    asynq.NewClient(redisOpt),
		server:    server,
		scheduler: scheduler,
		cron:      cfg.Jobs.CacheWarmupCron,
		logger:    logger,
	}
}

// InitHandlers wires the dependencies task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

// RegisterWarmers adds the services reloaded by the cache warm-up task.
func (j *JobService) RegisterWarmers(warmers ...CacheWarmer) {
	j.warmers = append(j.warmers, warmers...)
}

// Mux routes task types to handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskApprovalNotification, j.handleApprovalNotificationTask)
	mux.HandleFunc(TaskCacheWarmup, j.handleCacheWarmupTask)
	return mux
}

// Start runs the workers and the scheduler in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.Mux()); err != nil {
		return errors.Wrap(err, "failed to start job server")
	}

	if j.scheduler == nil {
		return nil
	}

	if _, err := j.scheduler.Register(j.cron, NewCacheWarmupTask()); err != nil {
		return errors.Wrapf(err, "invalid cache warm-up schedule %q", j.cron)
	}
	if err := j.scheduler.Start(); err != nil {
		return errors.Wrap(err, "failed to start job scheduler")
	}

	j.logger.Info().Str("cron", j.cron).Msg("scheduled cache warm-up")
	return nil
}

// EnqueueApprovalNotification queues a budget adjustment notification.
func (j *JobService) EnqueueApprovalNotification(ctx context.Context, p ApprovalNotificationPayload) error {
	task, err := NewApprovalNotificationTask(p)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return errors.Wrap(err, "failed to enqueue approval notification")
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("budget_adjustment_id", p.BudgetAdjustmentID).
		Msg("enqueued approval notification")
	return nil
}

// Stop shuts down the scheduler and workers and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	if j.scheduler != nil {
		j.scheduler.Shutdown()
	}
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
