// Package redis provides the Redis client used by the stats cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskforge/task-manager/internal/infrastructure/config"
)

const pingTimeout = 5 * time.Second

// Connect opens a client against the configured instance and fails fast
// when it is unreachable, so a misconfigured cache is caught at startup
// rather than on the first stats request.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
