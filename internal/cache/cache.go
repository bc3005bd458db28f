// Package cache provides the TTL key-value cache used to memoize search
// responses. Two interchangeable backends sit behind one contract: a
// networked Redis store and an in-process fallback. Every operation is
// best-effort; a backend error is a miss (Get) or a no-op (writes), so
// correctness never depends on cache availability.
package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Cache is the result-cache contract.
type Cache interface {
	// Get returns the value for key, or false on miss or backend error.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Delete removes key.
	Delete(ctx context.Context, key string)
	// Clear removes all entries.
	Clear(ctx context.Context)
	// Close releases the backend. For the in-process backend it stops
	// the sweep goroutine.
	Close()
}

// Config holds cache backend selection parameters.
type Config struct {
	Addrs          []string
	Password       string
	SweepInterval  time.Duration
	ConnectTimeout time.Duration
}

// New selects a backend once at startup: Redis when addresses are
// configured and reachable, the in-process fallback otherwise. Selection
// failures are logged, never returned; callers always get a working cache.
func New(cfg Config, logger *zap.Logger) Cache {
	if len(cfg.Addrs) == 0 {
		logger.Info("cache: no redis addrs configured, using in-process backend")
		return NewMemory(cfg.SweepInterval)
	}

	r, err := NewRedis(cfg, logger)
	if err != nil {
		logger.Warn("cache: redis unavailable, falling back to in-process backend",
			zap.Strings("addrs", cfg.Addrs),
			zap.Error(err),
		)
		return NewMemory(cfg.SweepInterval)
	}

	logger.Info("cache: connected to redis", zap.Strings("addrs", cfg.Addrs))
	return r
}
