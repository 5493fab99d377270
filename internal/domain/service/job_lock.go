package service

import (
	"context"
	"time"
)

// JobLock guarantees that a named job run happens on at most one replica.
type JobLock interface {
	// Acquire returns true when this caller owns the run for ttl.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
}
