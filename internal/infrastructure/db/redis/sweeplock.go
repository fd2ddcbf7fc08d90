package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sweepLockKey = "lingua:token_sweep"

// SweepLock throttles the per-request expired-token sweep with a SETNX lease.
// The sweep runs on every inbound request; without the lease a burst of
// traffic would hammer the token store with identical DELETE scans, and
// multiple replicas would duplicate each other's work.
type SweepLock struct {
	client   *redis.Client
	interval time.Duration
}

// NewSweepLock creates a SweepLock with the given lease window.
func NewSweepLock(client *redis.Client, interval time.Duration) *SweepLock {
	if interval <= 0 {
		interval = time.Second
	}
	return &SweepLock{client: client, interval: interval}
}

// TryAcquire reports whether the caller should run the sweep now. Redis
// failures fail open: losing the throttle only costs extra sweeps, while
// skipping them would let expired rows accumulate.
func (l *SweepLock) TryAcquire(ctx context.Context) bool {
	ok, err := l.client.SetNX(ctx, sweepLockKey, "1", l.interval).Result()
	if err != nil {
		return true
	}
	return ok
}
