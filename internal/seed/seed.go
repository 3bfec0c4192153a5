// Package seed creates default accounts on first startup
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/repositories"
	"github.com/rafly/siprojek/internal/db"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/rafly/siprojek/internal/pkg/auth"
	"github.com/rafly/siprojek/internal/pkg/logger"
)

// Default instructor accounts created when missing. The kaprodi account is
// the entry point for assigning every other role; passwords are expected to
// be rotated after first login.
var defaultInstructors = []struct {
	email    string
	fullName string
	password string
	role     models.AdminRole
}{
	{"kaprodi@kampus.ac.id", "Kepala Program Studi", "kaprodi-awal-123", models.AdminKaprodi},
	{"dosen@kampus.ac.id", "Dosen Pembimbing", "dosen-awal-123", models.AdminDosen},
}

// CreateDefaultData ensures the default instructor accounts and their role
// assignments exist. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB) error {
	userRepo := repositories.NewUserRepository(database.Pool)
	roleRepo := repositories.NewRoleRepository(database.Pool)

	var finalErr error
	for _, seed := range defaultInstructors {
		user, err := userRepo.GetByEmail(ctx, seed.email)
		switch {
		case err == nil:
			// account exists
		case errors.Is(err, apperrors.ErrNotFound):
			hash, hashErr := auth.HashPassword(seed.password)
			if hashErr != nil {
				finalErr = errors.Join(finalErr, hashErr)
				continue
			}
			newUser := &models.User{
				Email:        seed.email,
				PasswordHash: hash,
				FullName:     seed.fullName,
				RoleType:     models.RoleDosen,
			}
			err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
				id, createErr := userRepo.Create(ctx, tx, newUser)
				if createErr != nil {
					return createErr
				}
				newUser.ID = id
				return nil
			})
			if err != nil {
				logger.Error().Err(err).Str("email", seed.email).Msg("Error creating default instructor")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			user = newUser
			logger.Info().Str("email", seed.email).Msg("Default instructor account created")
		default:
			finalErr = errors.Join(finalErr, err)
			continue
		}

		if err := roleRepo.Upsert(ctx, &models.RoleAssignment{
			InstructorID: user.ID,
			Role:         seed.role,
		}); err != nil {
			logger.Error().Err(err).Str("email", seed.email).Msg("Error granting default role")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
