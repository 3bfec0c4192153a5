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

// ExamRepository handles exam report and schedule database operations
type ExamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetReportByID retrieves one report row
func (r *ExamRepository) GetReportByID(ctx context.Context, id int64) (*models.ExamReport, error) {
	sql, args, err := r.sb.Select("id", "student_id", "file_url", "status", "note", "approver_id", "updated_at").
		From("exam_reports").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get report query: %w", err)
	}

	var rep models.ExamReport
	var status string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rep.ID, &rep.StudentID, &rep.FileURL, &status, &rep.Note, &rep.ApproverID, &rep.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exam report %d not found", id)
		}
		return nil, fmt.Errorf("error retrieving exam report: %w", err)
	}
	rep.Status = models.ReportStatus(status)

	return &rep, nil
}

// GetReportByStudent retrieves the report row owned by a student
func (r *ExamRepository) GetReportByStudent(ctx context.Context, studentID int64) (*models.ExamReport, error) {
	sql, args, err := r.sb.Select("id", "student_id", "file_url", "status", "note", "approver_id", "updated_at").
		From("exam_reports").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get report query: %w", err)
	}

	var rep models.ExamReport
	var status string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rep.ID, &rep.StudentID, &rep.FileURL, &status, &rep.Note, &rep.ApproverID, &rep.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no exam report for student %d", studentID)
		}
		return nil, fmt.Errorf("error retrieving exam report: %w", err)
	}
	rep.Status = models.ReportStatus(status)

	return &rep, nil
}

// UpsertReports inserts or re-submits one report row per member, all sharing
// the same file reference. One UNIQUE(student_id) constraint makes the
// re-submission an update. Must run inside the caller's transaction so the
// group either gets all rows or none.
func (r *ExamRepository) UpsertReports(ctx context.Context, tx pgx.Tx, studentIDs []int64, fileURL string) error {
	const sql = `
		INSERT INTO exam_reports (student_id, file_url, status, note, approver_id, updated_at)
		VALUES ($1, $2, $3, '', NULL, $4)
		ON CONFLICT (student_id) DO UPDATE
		SET file_url = EXCLUDED.file_url,
		    status = EXCLUDED.status,
		    note = '',
		    approver_id = NULL,
		    updated_at = EXCLUDED.updated_at`

	now := time.Now()
	for _, studentID := range studentIDs {
		if _, err := tx.Exec(ctx, sql, studentID, fileURL, string(models.ReportSubmitted), now); err != nil {
			return fmt.Errorf("error upserting exam report for student %d: %w", studentID, err)
		}
	}

	return nil
}

// BroadcastReportStatus writes the same decision onto every member's report
// row. This is the fan-out primitive behind group-wide report decisions.
func (r *ExamRepository) BroadcastReportStatus(ctx context.Context, tx pgx.Tx, studentIDs []int64, status models.ReportStatus, note string, approverID int64) error {
	sql, args, err := r.sb.Update("exam_reports").
		Set("status", string(status)).
		Set("note", note).
		Set("approver_id", approverID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"student_id": studentIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build report broadcast query: %w", err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error broadcasting report status: %w", err)
	}
	if tag.RowsAffected() != int64(len(studentIDs)) {
		return fmt.Errorf("report broadcast touched %d of %d rows", tag.RowsAffected(), len(studentIDs))
	}

	return nil
}

// CreateSchedule inserts one exam sitting
func (r *ExamRepository) CreateSchedule(ctx context.Context, schedule *models.ExamSchedule) (int64, error) {
	sql, args, err := r.sb.Insert("exam_schedules").
		Columns("student_id", "exam_date", "exam_time", "room", "examiner1_id", "examiner2_id").
		Values(schedule.StudentID, schedule.Date, schedule.Time, schedule.Room, schedule.Examiner1ID, schedule.Examiner2ID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create schedule query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating exam schedule: %w", err)
	}

	return id, nil
}

// DeleteAllReports removes every report row. Part of the period completion
// cascade.
func (r *ExamRepository) DeleteAllReports(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, "DELETE FROM exam_reports"); err != nil {
		return fmt.Errorf("error deleting exam reports: %w", err)
	}
	return nil
}

// DeleteAllSchedules removes every sitting. Part of the period completion
// cascade.
func (r *ExamRepository) DeleteAllSchedules(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, "DELETE FROM exam_schedules"); err != nil {
		return fmt.Errorf("error deleting exam schedules: %w", err)
	}
	return nil
}
