// Package scheduler runs batch maintenance on an in-process cron.
package scheduler

import (
	"context"
	"log/slog"
	"time"
	_ "time/tzdata" // IANA zones in minimal images

	"marketbridge/config"
	"marketbridge/internal/delivery"
	deliverycontext "marketbridge/internal/delivery/context"
	"marketbridge/internal/domain/lifecycle"
	"marketbridge/internal/domain/service"
	"marketbridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

const (
	dailyResetJob  = "daily-reset"
	defaultLockTTL = time.Hour
)

// SchedulerParams holds dependencies for the scheduler
type SchedulerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Config      *config.Config
	Logger      *slog.Logger
	Maintenance usecase.MaintenanceUsecase
	Lock        service.JobLock
}

type scheduler struct {
	cron        *cron.Cron
	spec        string
	location    *time.Location
	lockTTL     time.Duration
	maintenance usecase.MaintenanceUsecase
	lock        service.JobLock
	logger      *slog.Logger
	now         func() time.Time
}

// NewScheduler builds the cron delivery. A disabled scheduler serves nothing.
func NewScheduler(params SchedulerParams) (delivery.Delivery, error) {
	cfg := params.Config.Scheduler
	if cfg == nil || !cfg.Enabled {
		return disabled{logger: params.Logger}, nil
	}

	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, errors.Wrapf(err, "load scheduler time zone %q", cfg.TimeZone)
	}

	lockTTL := defaultLockTTL
	if cfg.Lock != nil && cfg.Lock.TTL > 0 {
		lockTTL = cfg.Lock.TTL
	}

	cronLogger := &slogCronLogger{logger: params.Logger}
	s := &scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		spec:        cfg.DailyResetSpec,
		location:    location,
		lockTTL:     lockTTL,
		maintenance: params.Maintenance,
		lock:        params.Lock,
		logger:      params.Logger,
		now:         time.Now,
	}

	if _, err := s.cron.AddFunc(s.spec, s.runDailyReset); err != nil {
		return nil, errors.Wrapf(err, "invalid daily reset schedule %q", s.spec)
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

// Serve starts the cron loop and returns; jobs run on cron's goroutines.
func (s *scheduler) Serve(context.Context) error {
	s.logger.Info("Starting scheduler",
		slog.String("daily_reset_spec", s.spec),
		slog.String("time_zone", s.location.String()),
	)
	s.cron.Start()

	return nil
}

func (s *scheduler) stop(ctx context.Context) error {
	s.logger.Info("Stopping scheduler")
	done := s.cron.Stop()

	waitCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-done.Done():
		return nil
	case <-waitCtx.Done():
		return errors.Wrap(waitCtx.Err(), "waiting for running jobs")
	}
}

func (s *scheduler) runDailyReset() {
	s.runOnce(context.Background())
}

// runOnce claims today's cycle, keyed by the date in the schedule's zone, and runs it.
func (s *scheduler) runOnce(ctx context.Context) {
	runID := uuid.New().String()
	logger := s.logger.With(slog.String("request_id", runID), slog.String("job", dailyResetJob))
	ctx = deliverycontext.WithRequestID(ctx, runID)
	ctx = deliverycontext.WithLogger(ctx, logger)

	cycle := dailyResetJob + ":" + s.now().In(s.location).Format(time.DateOnly)
	acquired, err := s.lock.Acquire(ctx, cycle, s.lockTTL)
	if err != nil {
		logger.Error("Failed to acquire job lock", slog.String("cycle", cycle), slog.Any("error", err))

		return
	}
	if !acquired {
		logger.Info("Cycle already claimed by another replica", slog.String("cycle", cycle))

		return
	}

	report, err := s.maintenance.ResetDailyViews(ctx)
	if err != nil {
		logger.Error("Daily reset failed", slog.String("cycle", cycle), slog.Any("error", err))

		return
	}

	logger.Info("Daily reset finished",
		slog.String("cycle", cycle),
		slog.Int("updated", report.Updated),
		slog.Int("batches", report.Batches),
	)
}

type disabled struct {
	logger *slog.Logger
}

func (d disabled) Serve(context.Context) error {
	d.logger.Info("Scheduler disabled; daily reset runs only through POST /jobs/daily-reset")

	return nil
}

// slogCronLogger implements cron.Logger
type slogCronLogger struct {
	logger *slog.Logger
}

func (l *slogCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("[cron] "+msg, keysAndValues...)
}

func (l *slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("[cron] "+msg, append(keysAndValues, slog.Any("error", err))...)
}
