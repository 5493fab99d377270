package lock

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketbridge/config"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type fakeSetNX struct {
	held map[string]string
	err  error
	ttl  time.Duration
}

func (f *fakeSetNX) SetNX(_ context.Context, key string, value any, expiration time.Duration) *goredis.BoolCmd {
	if f.err != nil {
		return goredis.NewBoolResult(false, f.err)
	}
	f.ttl = expiration
	if _, ok := f.held[key]; ok {
		return goredis.NewBoolResult(false, nil)
	}
	f.held[key] = value.(string)

	return goredis.NewBoolResult(true, nil)
}

func TestRedisLock_AcquireOnce(t *testing.T) {
	fake := &fakeSetNX{held: map[string]string{}}
	lock := &redisLock{client: fake, owner: "worker-a"}

	ok, err := lock.Acquire(context.Background(), "daily-reset:2026-10-15", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "worker-a", fake.held["marketbridge:lock:daily-reset:2026-10-15"])
	assert.Equal(t, time.Hour, fake.ttl)

	ok, err = lock.Acquire(context.Background(), "daily-reset:2026-10-15", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLock_Error(t *testing.T) {
	lock := &redisLock{client: &fakeSetNX{err: errors.New("connection refused")}}

	ok, err := lock.Acquire(context.Background(), "daily-reset", time.Minute)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestNewJobLock_NotConfigured(t *testing.T) {
	lock, err := NewJobLock(LockParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{Scheduler: &config.SchedulerConfig{Enabled: true}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	ok, err := lock.Acquire(context.Background(), "anything", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
