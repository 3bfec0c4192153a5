package db

import (
	"context"
	"time"

	"github.com/rafly/siprojek/internal/config"
	"github.com/rafly/siprojek/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client for the read-side statistics cache.
// A failed connection is logged but not fatal: statistics degrade to direct
// queries (and ultimately to zero values), never the core workflow.
func NewRedisClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, statistics cache disabled")
	}

	return client
}
