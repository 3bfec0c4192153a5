package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/rafly/siprojek/internal/pkg/auth"
	"github.com/rafly/siprojek/internal/pkg/logger"
	"github.com/rafly/siprojek/internal/pkg/validation"
)

// AuthService handles registration and login
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

type authServiceImpl struct {
	tx       TxRunner
	users    UserStore
	students StudentStore
	jwt      *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(tx TxRunner, users UserStore, students StudentStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{tx: tx, users: users, students: students, jwt: jwtService}
}

// Register creates a student account and its student row in one transaction
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewInvalidInputError("invalid email address")
	}
	if !validation.IsValidNPM(req.NPM) {
		return nil, apperrors.NewInvalidInputError("NPM must be 8 to 12 digits")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.NewInvalidInputError("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     req.FullName,
		RoleType:     models.RoleMahasiswa,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := s.users.Create(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID

		_, err = s.students.Create(ctx, tx, &models.Student{
			UserID:         userID,
			NPM:            req.NPM,
			ProposalStatus: models.ProposalNone,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("email", email).Str("npm", req.NPM).Msg("Student registered")

	return s.issueToken(user)
}

// Login verifies credentials and issues an access token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.issueToken(user)
}

func (s *authServiceImpl) issueToken(user *models.User) (*dto.TokenResponse, error) {
	token, expiresIn, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.RoleType))
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
