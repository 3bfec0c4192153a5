package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/redis/go-redis/v9"
)

const statsCacheKey = "siprojek:stats:cohort"

// StatsCache stores the cohort counters in Redis for a short TTL. Misses and
// Redis outages surface as errors that callers are expected to absorb.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a new StatsCache
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Get retrieves the cached counters, or a not-found error on a miss
func (c *StatsCache) Get(ctx context.Context) (*dto.CohortStatsResponse, error) {
	payload, err := c.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NewNotFoundError("cohort stats not cached")
		}
		return nil, fmt.Errorf("error reading stats cache: %w", err)
	}

	var stats dto.CohortStatsResponse
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, fmt.Errorf("error decoding cached stats: %w", err)
	}

	return &stats, nil
}

// Set stores the counters for the configured TTL
func (c *StatsCache) Set(ctx context.Context, stats *dto.CohortStatsResponse) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("error encoding stats for cache: %w", err)
	}

	if err := c.client.Set(ctx, statsCacheKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("error writing stats cache: %w", err)
	}

	return nil
}
