package services

import (
	"context"

	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/logger"
)

// StatsService serves the read-only cohort counters. Statistics sit outside
// the workflow core: when the counting queries or the cache fail, the call
// degrades to zero values instead of failing the request.
type StatsService interface {
	CohortStats(ctx context.Context) *dto.CohortStatsResponse
}

type statsServiceImpl struct {
	stats StatsStore
	cache StatsCache
}

// NewStatsService creates a new StatsService. The cache may be nil, in which
// case every call counts directly.
func NewStatsService(stats StatsStore, cache StatsCache) StatsService {
	return &statsServiceImpl{stats: stats, cache: cache}
}

// CohortStats returns the current counters, serving from cache when possible
func (s *statsServiceImpl) CohortStats(ctx context.Context) *dto.CohortStatsResponse {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil {
			return cached
		}
	}

	stats, err := s.stats.CohortCounts(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Cohort statistics unavailable, serving zero values")
		return &dto.CohortStatsResponse{StudentsPerTrack: map[string]int{}}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache cohort statistics")
		}
	}

	return stats
}
