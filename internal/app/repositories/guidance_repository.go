package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
)

// GuidanceRepository handles guidance session database operations
type GuidanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGuidanceRepository creates a new GuidanceRepository
func NewGuidanceRepository(db *pgxpool.Pool) *GuidanceRepository {
	return &GuidanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a session in waiting status
func (r *GuidanceRepository) Create(ctx context.Context, session *models.GuidanceSession) (int64, error) {
	sql, args, err := r.sb.Insert("guidance_sessions").
		Columns("student_id", "supervisor_id", "week_number", "topic", "status").
		Values(session.StudentID, session.SupervisorID, session.WeekNumber, session.Topic, string(models.SessionWaiting)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create session query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating guidance session: %w", err)
	}

	return id, nil
}

// GetByID retrieves one session
func (r *GuidanceRepository) GetByID(ctx context.Context, id int64) (*models.GuidanceSession, error) {
	sql, args, err := r.sb.Select("id", "student_id", "supervisor_id", "week_number", "topic", "status", "approved_at").
		From("guidance_sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	var s models.GuidanceSession
	var status string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.StudentID, &s.SupervisorID, &s.WeekNumber, &s.Topic, &status, &s.ApprovedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("guidance session %d not found", id)
		}
		return nil, fmt.Errorf("error retrieving guidance session: %w", err)
	}
	s.Status = models.SessionStatus(status)

	return &s, nil
}

// CountByStudent counts a student's sessions regardless of status
func (r *GuidanceRepository) CountByStudent(ctx context.Context, studentID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("guidance_sessions").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build session count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting guidance sessions: %w", err)
	}

	return count, nil
}

// CountApprovedByStudent counts a student's approved sessions. This is the
// gate value for exam eligibility.
func (r *GuidanceRepository) CountApprovedByStudent(ctx context.Context, studentID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("guidance_sessions").
		Where(squirrel.Eq{"student_id": studentID, "status": string(models.SessionApproved)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build approved count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting approved sessions: %w", err)
	}

	return count, nil
}

// ListByStudent retrieves a student's sessions in week order
func (r *GuidanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.GuidanceSession, error) {
	sql, args, err := r.sb.Select("id", "student_id", "supervisor_id", "week_number", "topic", "status", "approved_at").
		From("guidance_sessions").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("week_number", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing guidance sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.GuidanceSession
	for rows.Next() {
		var s models.GuidanceSession
		var status string
		if err := rows.Scan(&s.ID, &s.StudentID, &s.SupervisorID, &s.WeekNumber, &s.Topic, &status, &s.ApprovedAt); err != nil {
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		s.Status = models.SessionStatus(status)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading guidance sessions: %w", err)
	}

	return sessions, nil
}

// SetStatus writes the review decision; approvedAt is non-nil only on approve
func (r *GuidanceRepository) SetStatus(ctx context.Context, id int64, status models.SessionStatus, approvedAt *time.Time) error {
	sql, args, err := r.sb.Update("guidance_sessions").
		Set("status", string(status)).
		Set("approved_at", approvedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build session status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error setting session status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("guidance session %d not found", id)
	}

	return nil
}

// DeleteAll removes every session row. Part of the period completion cascade.
func (r *GuidanceRepository) DeleteAll(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, "DELETE FROM guidance_sessions"); err != nil {
		return fmt.Errorf("error deleting guidance sessions: %w", err)
	}
	return nil
}
