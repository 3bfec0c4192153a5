package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/stretchr/testify/assert"
)

func TestCohortStats_ServesFromCache(t *testing.T) {
	cached := &dto.CohortStatsResponse{GroupsFormed: 4}
	store := &fakeStatsStore{err: errors.New("db down")}
	cache := &fakeStatsCache{stats: cached}
	service := NewStatsService(store, cache)

	stats := service.CohortStats(context.Background())

	assert.Equal(t, 4, stats.GroupsFormed)
}

func TestCohortStats_CountsAndFillsCacheOnMiss(t *testing.T) {
	fresh := &dto.CohortStatsResponse{
		StudentsPerTrack: map[string]int{"proyek1": 12},
		GroupsFormed:     6,
	}
	store := &fakeStatsStore{stats: fresh}
	cache := &fakeStatsCache{}
	service := NewStatsService(store, cache)

	stats := service.CohortStats(context.Background())

	assert.Equal(t, 6, stats.GroupsFormed)
	assert.Equal(t, 1, cache.setCalls)
	assert.Equal(t, fresh, cache.stats)
}

func TestCohortStats_DegradesToZeroValues(t *testing.T) {
	store := &fakeStatsStore{err: errors.New("db down")}
	service := NewStatsService(store, nil)

	stats := service.CohortStats(context.Background())

	assert.NotNil(t, stats)
	assert.Empty(t, stats.StudentsPerTrack)
	assert.Zero(t, stats.GroupsFormed)
}

func TestCohortStats_CacheWriteFailureIsAbsorbed(t *testing.T) {
	store := &fakeStatsStore{stats: &dto.CohortStatsResponse{GroupsFormed: 2}}
	cache := &fakeStatsCache{setErr: errors.New("redis down")}
	service := NewStatsService(store, cache)

	stats := service.CohortStats(context.Background())

	assert.Equal(t, 2, stats.GroupsFormed)
	assert.Equal(t, 1, cache.setCalls)
}
