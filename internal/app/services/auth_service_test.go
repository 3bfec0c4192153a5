package services

import (
	"context"
	"testing"
	"time"

	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/rafly/siprojek/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	tx       *fakeTxRunner
	users    *fakeUserStore
	students *fakeStudentStore
	service  AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		tx:       &fakeTxRunner{},
		users:    newFakeUserStore(),
		students: newFakeStudentStore(),
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key-for-unit-tests",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "siprojek-test",
	})
	f.service = NewAuthService(f.tx, f.users, f.students, jwtService)
	return f
}

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:    "budi@kampus.ac.id",
		Password: "rahasia-123",
		FullName: "Budi Santoso",
		NPM:      "20210801001",
	}
}

func TestRegister_CreatesAccountAndStudentRow(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.service.Register(context.Background(), validRegisterRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 1, f.tx.calls)

	user, err := f.users.GetByEmail(context.Background(), "budi@kampus.ac.id")
	require.NoError(t, err)
	assert.Equal(t, models.RoleMahasiswa, user.RoleType)

	student, err := f.students.GetByNPM(context.Background(), "20210801001")
	require.NoError(t, err)
	assert.Equal(t, user.ID, student.UserID)
	assert.Equal(t, models.ProposalNone, student.ProposalStatus)
}

func TestRegister_NormalizesEmailCase(t *testing.T) {
	f := newAuthFixture()
	req := validRegisterRequest()
	req.Email = "  Budi@Kampus.ac.id "

	_, err := f.service.Register(context.Background(), req)

	require.NoError(t, err)
	_, err = f.users.GetByEmail(context.Background(), "budi@kampus.ac.id")
	assert.NoError(t, err)
}

func TestRegister_RejectsBadNPM(t *testing.T) {
	f := newAuthFixture()
	req := validRegisterRequest()
	req.NPM = "12AB"

	_, err := f.service.Register(context.Background(), req)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	f := newAuthFixture()
	req := validRegisterRequest()
	req.Password = "pendek"

	_, err := f.service.Register(context.Background(), req)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	_, err := f.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	req := validRegisterRequest()
	req.NPM = "20210801002"
	_, err = f.service.Register(context.Background(), req)

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin_IssuesTokenForValidCredentials(t *testing.T) {
	f := newAuthFixture()
	_, err := f.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "budi@kampus.ac.id",
		Password: "rahasia-123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, 3600, resp.ExpiresIn)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	_, err := f.service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "budi@kampus.ac.id",
		Password: "salah-total",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "tidak-ada@kampus.ac.id",
		Password: "rahasia-123",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	f := newAuthFixture()
	hash, err := auth.HashPassword("rahasia-123")
	require.NoError(t, err)
	f.users.add(models.User{ID: 5, Email: "nonaktif@kampus.ac.id", PasswordHash: hash, RoleType: models.RoleMahasiswa, IsActive: false})

	_, err = f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nonaktif@kampus.ac.id",
		Password: "rahasia-123",
	})

	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
