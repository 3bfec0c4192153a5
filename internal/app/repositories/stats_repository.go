package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
)

// StatsRepository computes read-only cohort counters. Nothing here is used by
// the workflow operations themselves.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// CohortCounts gathers per-track and per-status counters in one pass each
func (r *StatsRepository) CohortCounts(ctx context.Context) (*dto.CohortStatsResponse, error) {
	stats := &dto.CohortStatsResponse{
		StudentsPerTrack: make(map[string]int),
	}

	rows, err := r.db.Query(ctx, `SELECT track, COUNT(*) FROM students WHERE track IS NOT NULL GROUP BY track`)
	if err != nil {
		return nil, fmt.Errorf("error counting students per track: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var track string
		var count int
		if err := rows.Scan(&track, &count); err != nil {
			return nil, fmt.Errorf("error scanning track count: %w", err)
		}
		stats.StudentsPerTrack[track] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading track counts: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE proposal_status = $1),
			COUNT(*) FILTER (WHERE proposal_status IN ($2, $3))
		FROM students`,
		string(models.ProposalPending), string(models.ProposalApproved), string(models.ProposalRejected),
	).Scan(&stats.ProposalsPending, &stats.ProposalsDecided)
	if err != nil {
		return nil, fmt.Errorf("error counting proposals: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2)
		FROM exam_reports`,
		string(models.ReportSubmitted), string(models.ReportApproved),
	).Scan(&stats.ReportsSubmitted, &stats.ReportsApproved)
	if err != nil {
		return nil, fmt.Errorf("error counting reports: %w", err)
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM kelompok`).Scan(&stats.GroupsFormed); err != nil {
		return nil, fmt.Errorf("error counting kelompok: %w", err)
	}

	return stats, nil
}
