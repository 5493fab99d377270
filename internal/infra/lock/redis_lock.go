// Package lock provides the single-run guard used by scheduled maintenance.
package lock

import (
	"context"
	"log/slog"
	"time"

	"marketbridge/config"
	"marketbridge/internal/domain/service"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	keyPrefix   = "marketbridge:lock:"
	dialTimeout = 5 * time.Second
)

// redisLock claims a run with SET NX PX. The key is never released early so a
// replica whose clock fires late cannot repeat a finished cycle.
type redisLock struct {
	client setNXer
	owner  string
}

type setNXer interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *goredis.BoolCmd
}

// NewRedisLock wraps an existing client. owner is stored as the key value for debugging.
func NewRedisLock(client goredis.UniversalClient, owner string) service.JobLock {
	return &redisLock{client: client, owner: owner}
}

// Acquire implements service.JobLock
func (l *redisLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, keyPrefix+name, l.owner, ttl).Result()
	if err != nil {
		return false, errors.Wrapf(err, "acquire lock %s", name)
	}

	return ok, nil
}

// localLock always grants the run; used when no Redis is configured.
type localLock struct{}

func (localLock) Acquire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

// LockParams holds dependencies for the job lock
type LockParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewJobLock returns a Redis-backed lock when scheduler.lock is configured, otherwise a local one.
func NewJobLock(params LockParams) (service.JobLock, error) {
	cfg := params.Config.Scheduler
	if cfg == nil || cfg.Lock == nil || cfg.Lock.RedisAddr == "" {
		params.Logger.Info("Job lock not configured, every replica runs scheduled jobs")

		return localLock{}, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Lock.RedisAddr,
		Password:    cfg.Lock.Password,
		DB:          cfg.Lock.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(params.Ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrap(err, "redis ping")
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	params.Logger.Info("Redis job lock initialized", slog.String("addr", cfg.Lock.RedisAddr))

	return NewRedisLock(client, params.Config.Env.ServiceName), nil
}

// Module provides the job lock FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewJobLock),
)
