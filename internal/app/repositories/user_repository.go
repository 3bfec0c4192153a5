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

// UserRepository handles account database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new account inside the given transaction
func (r *UserRepository) Create(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password_hash", "full_name", "role_type", "is_active").
		Values(user.Email, user.PasswordHash, user.FullName, string(user.RoleType), true).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			logger.Warn().Str("email", user.Email).Msg("Attempted to register duplicate email")
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

func (r *UserRepository) getBy(ctx context.Context, pred squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "email", "password_hash", "full_name", "role_type", "is_active").
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var u models.User
	var role string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &role, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	u.RoleType = models.RoleType(role)

	return &u, nil
}

// GetByID retrieves an account by primary key
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves an account by e-mail
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

// GetInstructor retrieves an active instructor account, rejecting ids that
// point at students or disabled accounts
func (r *UserRepository) GetInstructor(ctx context.Context, id int64) (*models.User, error) {
	user, err := r.getBy(ctx, squirrel.Eq{"id": id})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("instructor %d not found", id)
		}
		return nil, err
	}
	if user.RoleType != models.RoleDosen || !user.IsActive {
		return nil, apperrors.NewNotFoundError("instructor %d not found", id)
	}

	return user, nil
}
