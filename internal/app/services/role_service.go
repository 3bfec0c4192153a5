package services

import (
	"context"
	"errors"

	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/rafly/siprojek/internal/pkg/logger"
)

// RoleService handles the administrative role ledger
type RoleService interface {
	AssignRole(ctx context.Context, req *dto.AssignRoleRequest) (*dto.RoleAssignmentResponse, error)
	AssignCoordinator(ctx context.Context, instructorID int64, semester int) (*dto.RoleAssignmentResponse, error)
	HasRole(ctx context.Context, instructorID int64, role models.AdminRole) (bool, error)
	ListRoles(ctx context.Context, instructorID int64) ([]dto.RoleAssignmentResponse, error)
}

type roleServiceImpl struct {
	roles RoleStore
	users UserStore
}

// NewRoleService creates a new RoleService
func NewRoleService(roles RoleStore, users UserStore) RoleService {
	return &roleServiceImpl{roles: roles, users: users}
}

// AssignRole grants an administrative role to an instructor. Granting a role
// the instructor already holds updates the semester rather than duplicating
// the row. Coordinator grants go through the semester-exclusive path.
func (s *roleServiceImpl) AssignRole(ctx context.Context, req *dto.AssignRoleRequest) (*dto.RoleAssignmentResponse, error) {
	role := models.AdminRole(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewInvalidInputError("unknown role %q", req.Role)
	}

	if role == models.AdminKoordinator {
		if req.Semester == nil {
			return nil, apperrors.NewInvalidInputError("the koordinator role requires a semester")
		}
		return s.AssignCoordinator(ctx, req.InstructorID, *req.Semester)
	}

	if _, err := s.users.GetInstructor(ctx, req.InstructorID); err != nil {
		return nil, err
	}

	assignment := &models.RoleAssignment{
		InstructorID:     req.InstructorID,
		Role:             role,
		AssignedSemester: req.Semester,
	}
	if err := s.roles.Upsert(ctx, assignment); err != nil {
		return nil, err
	}

	return assignmentToResponse(assignment), nil
}

// AssignCoordinator grants the koordinator role for one semester. Each
// semester has at most one coordinator; assigning a second instructor fails
// until the seat is vacated. Re-assigning the current holder is a no-op.
func (s *roleServiceImpl) AssignCoordinator(ctx context.Context, instructorID int64, semester int) (*dto.RoleAssignmentResponse, error) {
	if !models.ValidSemester(semester) {
		return nil, apperrors.NewInvalidInputError("semester must be one of %v, got %d", models.ValidSemesters, semester)
	}
	if _, err := s.users.GetInstructor(ctx, instructorID); err != nil {
		return nil, err
	}

	current, err := s.roles.FindCoordinatorForSemester(ctx, semester)
	switch {
	case err == nil:
		if current.InstructorID != instructorID {
			return nil, apperrors.NewPreconditionError("semester %d already has a coordinator (instructor %d)", semester, current.InstructorID)
		}
	case errors.Is(err, apperrors.ErrNotFound):
		// seat is vacant
	default:
		return nil, err
	}

	assignment := &models.RoleAssignment{
		InstructorID:     instructorID,
		Role:             models.AdminKoordinator,
		AssignedSemester: &semester,
	}
	if err := s.roles.Upsert(ctx, assignment); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("instructorId", instructorID).
		Int("semester", semester).
		Msg("Coordinator assigned")

	return assignmentToResponse(assignment), nil
}

// HasRole reports whether an instructor holds the given role
func (s *roleServiceImpl) HasRole(ctx context.Context, instructorID int64, role models.AdminRole) (bool, error) {
	return s.roles.HasRole(ctx, instructorID, role)
}

// ListRoles retrieves every role an instructor holds
func (s *roleServiceImpl) ListRoles(ctx context.Context, instructorID int64) ([]dto.RoleAssignmentResponse, error) {
	assignments, err := s.roles.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RoleAssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, *assignmentToResponse(&assignments[i]))
	}
	return out, nil
}

func assignmentToResponse(a *models.RoleAssignment) *dto.RoleAssignmentResponse {
	return &dto.RoleAssignmentResponse{
		InstructorID: a.InstructorID,
		Role:         string(a.Role),
		Semester:     a.AssignedSemester,
	}
}
