package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/sign-company/searchd/internal/metrics"
)

// Compile-time check: Redis implements Cache.
var _ Cache = (*Redis)(nil)

// Redis is the networked cache backend via rueidis.
type Redis struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewRedis connects to Redis and verifies reachability with a bounded ping.
func NewRedis(cfg Config, logger *zap.Logger) (*Redis, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	cmd := client.B().Ping().Build()
	if err := client.Do(ctx, cmd).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Redis{client: client, logger: logger}, nil
}

// Get retrieves a value by key. Backend errors degrade to a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	cmd := r.client.B().Get().Key(key).Build()
	data, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			metrics.CacheErrorsTotal.WithLabelValues("get").Inc()
			r.logger.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores a value with an expiration. Backend errors are swallowed.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	cmd := r.client.B().Set().Key(key).Value(string(value)).Ex(ttl).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("set").Inc()
		r.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes a key. Backend errors are swallowed.
func (r *Redis) Delete(ctx context.Context, key string) {
	cmd := r.client.B().Del().Key(key).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("delete").Inc()
		r.logger.Debug("cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear flushes the whole database. Backend errors are swallowed.
func (r *Redis) Clear(ctx context.Context) {
	cmd := r.client.B().Flushall().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("clear").Inc()
		r.logger.Debug("cache clear failed", zap.Error(err))
	}
}

// Close shuts down the client.
func (r *Redis) Close() {
	r.client.Close()
}
