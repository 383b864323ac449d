package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskforge/task-manager/internal/core/domain"
)

// StatsCache caches per-owner task aggregates in Redis.
// Key format: stats:<owner_id>
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached aggregate for the owner, or (nil, nil) on a miss.
func (c *StatsCache) Get(ctx context.Context, ownerID string) (*domain.TaskStats, error) {
	raw, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats domain.TaskStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores the aggregate for the owner (expires after the configured TTL).
func (c *StatsCache) Set(ctx context.Context, ownerID string, stats *domain.TaskStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(ownerID), raw, c.ttl).Err()
}

// Invalidate drops the owner's cached aggregate after any task mutation.
func (c *StatsCache) Invalidate(ctx context.Context, ownerID string) error {
	return c.client.Del(ctx, c.key(ownerID)).Err()
}

func (c *StatsCache) key(ownerID string) string {
	return "stats:" + ownerID
}
