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
	"github.com/rafly/siprojek/internal/pkg/logger"
)

// studentColumns are the selected columns for student reads; full_name comes
// from the joined users row.
var studentColumns = []string{
	"s.id", "s.user_id", "s.npm", "s.track", "s.desired_partner_npm", "s.kelompok_id",
	"s.proposal_title", "s.proposal_file_url", "s.proposal_status",
	"s.supervisor1_id", "s.supervisor2_id", "u.full_name",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var st models.Student
	var track *string
	var status string

	err := row.Scan(&st.ID, &st.UserID, &st.NPM, &track, &st.DesiredPartnerNPM, &st.KelompokID,
		&st.ProposalTitle, &st.ProposalFileURL, &status,
		&st.Supervisor1ID, &st.Supervisor2ID, &st.FullName)
	if err != nil {
		return nil, err
	}

	if track != nil {
		tr := models.Track(*track)
		st.Track = &tr
	}
	st.ProposalStatus = models.ProposalStatus(status)

	return &st, nil
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(studentColumns...).
		From("students s").
		Join("users u ON u.id = s.user_id")
}

// Create inserts a new student row inside the given transaction
func (r *StudentRepository) Create(ctx context.Context, tx pgx.Tx, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "npm").
		Values(student.UserID, student.NPM).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_npm_key") {
			logger.Warn().Str("npm", student.NPM).Msg("Attempted to create student with duplicate NPM")
			return 0, apperrors.ErrNPMAlreadyExists
		}
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetByID retrieves a student by primary key
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("student %d not found", id)
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByUserID retrieves the student row owned by an account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(squirrel.Eq{"s.user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no student record for user %d", userID)
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByNPM retrieves a student by student number
func (r *StudentRepository) GetByNPM(ctx context.Context, npm string) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(squirrel.Eq{"s.npm": npm}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("student with npm %s not found", npm)
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// LockByID reads a student row under FOR UPDATE inside the transaction
func (r *StudentRepository) LockByID(ctx context.Context, tx pgx.Tx, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.id": id}).
		Suffix("FOR UPDATE OF s").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock student query: %w", err)
	}

	student, err := scanStudent(tx.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("student %d not found", id)
		}
		return nil, fmt.Errorf("error locking student row: %w", err)
	}

	return student, nil
}

// LockPairByNPM reads up to two student rows under FOR UPDATE, in NPM order.
// Locking both candidate rows in one ordered statement is what makes the
// mutual-match decision race-safe: two concurrent selections of the same pair
// serialize here instead of both observing "no match yet".
func (r *StudentRepository) LockPairByNPM(ctx context.Context, tx pgx.Tx, npmA, npmB string) ([]models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.npm": []string{npmA, npmB}}).
		OrderBy("s.npm").
		Suffix("FOR UPDATE OF s").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock pair query: %w", err)
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error locking student pair: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading student pair: %w", err)
	}

	return students, nil
}

// UpdateTrackSelection writes track and desired partner onto a student row
func (r *StudentRepository) UpdateTrackSelection(ctx context.Context, tx pgx.Tx, id int64, track models.Track, partnerNPM *string) error {
	sql, args, err := r.sb.Update("students").
		Set("track", string(track)).
		Set("desired_partner_npm", partnerNPM).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build track selection query: %w", err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating track selection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("student %d not found", id)
	}

	return nil
}

// AssignKelompok attaches the given students to a group and clears their
// pending partner declarations
func (r *StudentRepository) AssignKelompok(ctx context.Context, tx pgx.Tx, kelompokID int64, studentIDs []int64) error {
	sql, args, err := r.sb.Update("students").
		Set("kelompok_id", kelompokID).
		Set("desired_partner_npm", nil).
		Where(squirrel.Eq{"id": studentIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build assign kelompok query: %w", err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error assigning kelompok: %w", err)
	}
	if tag.RowsAffected() != int64(len(studentIDs)) {
		return fmt.Errorf("assign kelompok touched %d of %d rows", tag.RowsAffected(), len(studentIDs))
	}

	return nil
}

// ListByKelompok retrieves every member of a group
func (r *StudentRepository) ListByKelompok(ctx context.Context, kelompokID int64) ([]models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.kelompok_id": kelompokID}).
		OrderBy("s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list members query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing kelompok members: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading kelompok members: %w", err)
	}

	return students, nil
}

// BroadcastProposal writes identical proposal content to every listed member
// and resets their status to pending. This is the fan-out primitive behind
// group proposal submission; it must run inside the caller's transaction.
func (r *StudentRepository) BroadcastProposal(ctx context.Context, tx pgx.Tx, studentIDs []int64, title, fileURL string, supervisorID *int64) error {
	builder := r.sb.Update("students").
		Set("proposal_title", title).
		Set("proposal_file_url", fileURL).
		Set("proposal_status", string(models.ProposalPending)).
		Where(squirrel.Eq{"id": studentIDs})

	if supervisorID != nil {
		builder = builder.Set("supervisor1_id", *supervisorID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build proposal broadcast query: %w", err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error broadcasting proposal: %w", err)
	}
	if tag.RowsAffected() != int64(len(studentIDs)) {
		return fmt.Errorf("proposal broadcast touched %d of %d rows", tag.RowsAffected(), len(studentIDs))
	}

	return nil
}

// SetProposalStatus writes the review decision onto one student row only.
// Group-wide decisions are the caller's responsibility.
func (r *StudentRepository) SetProposalStatus(ctx context.Context, id int64, status models.ProposalStatus) error {
	sql, args, err := r.sb.Update("students").
		Set("proposal_status", string(status)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build proposal status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error setting proposal status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("student %d not found", id)
	}

	return nil
}

// ResetAcademicCycle clears every student's track, partner, group and
// proposal fields back to their registration-time state. Part of the period
// completion cascade.
func (r *StudentRepository) ResetAcademicCycle(ctx context.Context, tx pgx.Tx) error {
	sql, args, err := r.sb.Update("students").
		Set("track", nil).
		Set("desired_partner_npm", nil).
		Set("kelompok_id", nil).
		Set("proposal_title", "").
		Set("proposal_file_url", "").
		Set("proposal_status", string(models.ProposalNone)).
		Set("supervisor1_id", nil).
		Set("supervisor2_id", nil).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cycle reset query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error resetting academic cycle: %w", err)
	}

	return nil
}
