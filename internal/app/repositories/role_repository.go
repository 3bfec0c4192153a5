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

// RoleRepository handles the role assignment ledger
type RoleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert grants a role, keyed by (instructor, role). Re-granting updates the
// assigned semester. A partial unique index on (role_name, assigned_semester)
// WHERE role_name = 'koordinator' backs the coordinator exclusivity under
// concurrent assignment.
func (r *RoleRepository) Upsert(ctx context.Context, assignment *models.RoleAssignment) error {
	const sql = `
		INSERT INTO role_assignments (instructor_id, role_name, assigned_semester)
		VALUES ($1, $2, $3)
		ON CONFLICT (instructor_id, role_name) DO UPDATE
		SET assigned_semester = EXCLUDED.assigned_semester`

	_, err := r.db.Exec(ctx, sql, assignment.InstructorID, string(assignment.Role), assignment.AssignedSemester)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "role_assignments_one_koordinator_per_semester") {
			return apperrors.NewConflictError("coordinator for semester %v was assigned concurrently", assignment.AssignedSemester)
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewNotFoundError("instructor %d not found", assignment.InstructorID)
		}
		return fmt.Errorf("error upserting role assignment: %w", err)
	}

	return nil
}

// FindCoordinatorForSemester returns the current koordinator assignment for a
// semester, or a not-found error when the seat is vacant
func (r *RoleRepository) FindCoordinatorForSemester(ctx context.Context, semester int) (*models.RoleAssignment, error) {
	sql, args, err := r.sb.Select("id", "instructor_id", "role_name", "assigned_semester").
		From("role_assignments").
		Where(squirrel.Eq{"role_name": string(models.AdminKoordinator), "assigned_semester": semester}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find coordinator query: %w", err)
	}

	var a models.RoleAssignment
	var role string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.InstructorID, &role, &a.AssignedSemester)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no coordinator assigned for semester %d", semester)
		}
		return nil, fmt.Errorf("error finding coordinator: %w", err)
	}
	a.Role = models.AdminRole(role)

	return &a, nil
}

// HasRole reports whether an instructor holds the given administrative role
func (r *RoleRepository) HasRole(ctx context.Context, instructorID int64, role models.AdminRole) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("role_assignments").
		Where(squirrel.Eq{"instructor_id": instructorID, "role_name": string(role)}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build has role query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking role: %w", err)
	}

	return exists, nil
}

// ListByInstructor retrieves every role an instructor holds
func (r *RoleRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]models.RoleAssignment, error) {
	sql, args, err := r.sb.Select("id", "instructor_id", "role_name", "assigned_semester").
		From("role_assignments").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("role_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list roles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing role assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.RoleAssignment
	for rows.Next() {
		var a models.RoleAssignment
		var role string
		if err := rows.Scan(&a.ID, &a.InstructorID, &role, &a.AssignedSemester); err != nil {
			return nil, fmt.Errorf("error scanning role assignment: %w", err)
		}
		a.Role = models.AdminRole(role)
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading role assignments: %w", err)
	}

	return assignments, nil
}
