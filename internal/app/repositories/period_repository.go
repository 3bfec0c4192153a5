package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/rafly/siprojek/internal/pkg/dberrors"
)

// PeriodRepository handles scheduling window database operations
type PeriodRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPeriodRepository creates a new PeriodRepository
func NewPeriodRepository(db *pgxpool.Pool) *PeriodRepository {
	return &PeriodRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new active period. A partial unique index on
// (semester) WHERE status = 'active' backs the one-active-window invariant;
// a violation means a racing request won.
func (r *PeriodRepository) Create(ctx context.Context, period *models.Period) (int64, error) {
	sql, args, err := r.sb.Insert("periods").
		Columns("semester", "period_type", "start_date", "end_date", "status").
		Values(period.Semester, period.Type, period.StartDate, period.EndDate, string(models.PeriodActive)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create period query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "periods_one_active_per_semester") {
			return 0, apperrors.NewConflictError("an active period for semester %d was created concurrently", period.Semester)
		}
		return 0, fmt.Errorf("error creating period: %w", err)
	}

	return id, nil
}

// GetByID retrieves one period
func (r *PeriodRepository) GetByID(ctx context.Context, id int64) (*models.Period, error) {
	sql, args, err := r.sb.Select("id", "semester", "period_type", "start_date", "end_date", "status").
		From("periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get period query: %w", err)
	}

	var p models.Period
	var status string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.Semester, &p.Type, &p.StartDate, &p.EndDate, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("period %d not found", id)
		}
		return nil, fmt.Errorf("error retrieving period: %w", err)
	}
	p.Status = models.PeriodStatus(status)

	return &p, nil
}

// HasActiveForSemester reports whether an active window exists for the semester
func (r *PeriodRepository) HasActiveForSemester(ctx context.Context, semester int) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("periods").
		Where(squirrel.Eq{"semester": semester, "status": string(models.PeriodActive)}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build active period query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking active period: %w", err)
	}

	return exists, nil
}

// MarkCompleted flips an active period to completed inside the caller's
// transaction. Zero rows means the period was missing or already completed.
func (r *PeriodRepository) MarkCompleted(ctx context.Context, tx pgx.Tx, id int64) error {
	sql, args, err := r.sb.Update("periods").
		Set("status", string(models.PeriodCompleted)).
		Where(squirrel.Eq{"id": id, "status": string(models.PeriodActive)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build complete period query: %w", err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error completing period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewPreconditionError("period %d is not active", id)
	}

	return nil
}
