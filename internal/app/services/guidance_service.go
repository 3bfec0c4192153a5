package services

import (
	"context"
	"time"

	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
)

// GuidanceService handles supervision session records and the session quota
type GuidanceService interface {
	CreateSession(ctx context.Context, studentID int64, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	SetStatus(ctx context.Context, sessionID, supervisorID int64, status string) error
	Progress(ctx context.Context, studentID int64) (*dto.GuidanceProgressResponse, error)
	ListSessions(ctx context.Context, studentID int64) ([]dto.SessionResponse, error)
}

type guidanceServiceImpl struct {
	guidance GuidanceStore
	students StudentStore
	users    UserStore
}

// NewGuidanceService creates a new GuidanceService
func NewGuidanceService(guidance GuidanceStore, students StudentStore, users UserStore) GuidanceService {
	return &guidanceServiceImpl{guidance: guidance, students: students, users: users}
}

// CreateSession records one supervision meeting. The quota counts every
// recorded session regardless of its later review outcome, so a student who
// burns attempts on rejected sessions cannot record replacements.
func (s *guidanceServiceImpl) CreateSession(ctx context.Context, studentID int64, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetInstructor(ctx, req.SupervisorID); err != nil {
		return nil, err
	}

	total, err := s.guidance.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if total >= models.GuidanceQuota {
		return nil, apperrors.NewPreconditionError("student %s has already recorded %d of %d guidance sessions", student.NPM, total, models.GuidanceQuota)
	}

	session := &models.GuidanceSession{
		StudentID:    studentID,
		SupervisorID: req.SupervisorID,
		WeekNumber:   req.WeekNumber,
		Topic:        req.Topic,
		Status:       models.SessionWaiting,
	}
	id, err := s.guidance.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id

	return sessionToResponse(session), nil
}

// SetStatus applies a supervisor's decision to one session. Only an assigned
// supervisor of the owning student may decide, and an approved session can
// never be demoted.
func (s *guidanceServiceImpl) SetStatus(ctx context.Context, sessionID, supervisorID int64, status string) error {
	decided := models.SessionStatus(status)
	if decided != models.SessionApproved && decided != models.SessionRejected {
		return apperrors.NewInvalidInputError("session status must be approved or rejected, got %q", status)
	}

	session, err := s.guidance.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	student, err := s.students.GetByID(ctx, session.StudentID)
	if err != nil {
		return err
	}
	if !student.SupervisedBy(supervisorID) && session.SupervisorID != supervisorID {
		return apperrors.NewForbiddenError("instructor %d does not supervise student %s", supervisorID, student.NPM)
	}
	if session.Status == models.SessionApproved && decided != models.SessionApproved {
		return apperrors.NewPreconditionError("session %d is already approved and cannot be reverted", sessionID)
	}

	var approvedAt *time.Time
	if decided == models.SessionApproved {
		now := time.Now()
		approvedAt = &now
	}

	return s.guidance.SetStatus(ctx, sessionID, decided, approvedAt)
}

// Progress reports a student's totals against the fixed quota
func (s *guidanceServiceImpl) Progress(ctx context.Context, studentID int64) (*dto.GuidanceProgressResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	total, err := s.guidance.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	approved, err := s.guidance.CountApprovedByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.GuidanceProgressResponse{
		StudentID:     studentID,
		TotalSessions: total,
		ApprovedCount: approved,
		Quota:         models.GuidanceQuota,
	}, nil
}

// ListSessions retrieves every session a student has recorded
func (s *guidanceServiceImpl) ListSessions(ctx context.Context, studentID int64) ([]dto.SessionResponse, error) {
	sessions, err := s.guidance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *sessionToResponse(&sessions[i]))
	}
	return out, nil
}

func sessionToResponse(s *models.GuidanceSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:           s.ID,
		StudentID:    s.StudentID,
		SupervisorID: s.SupervisorID,
		WeekNumber:   s.WeekNumber,
		Topic:        s.Topic,
		Status:       string(s.Status),
		ApprovedAt:   s.ApprovedAt,
	}
}
