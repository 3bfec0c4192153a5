package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/rafly/siprojek/internal/pkg/logger"
)

// ProposalService handles the group-aware proposal lifecycle
type ProposalService interface {
	Submit(ctx context.Context, studentID int64, req *dto.SubmitProposalRequest) (*dto.SubmitProposalResponse, error)
	SetStatus(ctx context.Context, studentID int64, status string) error
	MembersOf(ctx context.Context, studentID int64) ([]models.Student, error)
}

type proposalServiceImpl struct {
	tx       TxRunner
	students StudentStore
	users    UserStore
}

// NewProposalService creates a new ProposalService
func NewProposalService(tx TxRunner, students StudentStore, users UserStore) ProposalService {
	return &proposalServiceImpl{tx: tx, students: students, users: users}
}

// Submit records a proposal for the submitting student and fans it out to
// every member of their kelompok in one transaction. Each member's row ends
// up pending with the same title, file and supervisor. Resubmission after a
// rejection overwrites the previous attempt.
func (s *proposalServiceImpl) Submit(ctx context.Context, studentID int64, req *dto.SubmitProposalRequest) (*dto.SubmitProposalResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Track == nil {
		return nil, apperrors.NewPreconditionError("student %s must select a track before submitting a proposal", student.NPM)
	}
	switch student.ProposalStatus {
	case models.ProposalPending:
		return nil, apperrors.NewPreconditionError("proposal for student %s is already awaiting review", student.NPM)
	case models.ProposalApproved:
		return nil, apperrors.NewPreconditionError("proposal for student %s has already been approved", student.NPM)
	}

	if req.SupervisorID != nil {
		if _, err := s.users.GetInstructor(ctx, *req.SupervisorID); err != nil {
			return nil, err
		}
	}

	members, err := groupMembers(ctx, s.students, student)
	if err != nil {
		return nil, err
	}
	ids := memberIDs(members)

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.students.BroadcastProposal(ctx, tx, ids, req.Title, req.FileURL, req.SupervisorID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentId", studentID).
		Ints64("memberIds", ids).
		Str("title", req.Title).
		Msg("Proposal submitted")

	return &dto.SubmitProposalResponse{
		Status:    string(models.ProposalPending),
		MemberIDs: ids,
	}, nil
}

// SetStatus applies a coordinator decision to a single student row. Decisions
// never fan out on their own; callers wanting a group-wide decision apply it
// per member.
func (s *proposalServiceImpl) SetStatus(ctx context.Context, studentID int64, status string) error {
	decided := models.ProposalStatus(status)
	if decided != models.ProposalApproved && decided != models.ProposalRejected {
		return apperrors.NewInvalidInputError("proposal status must be approved or rejected, got %q", status)
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if student.ProposalStatus == models.ProposalNone {
		return apperrors.NewPreconditionError("student %s has no proposal to decide on", student.NPM)
	}

	return s.students.SetProposalStatus(ctx, studentID, decided)
}

// MembersOf lists the student's kelompok members, or just the student when
// solo. Coordinators use this to drive whole-group decisions.
func (s *proposalServiceImpl) MembersOf(ctx context.Context, studentID int64) ([]models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return groupMembers(ctx, s.students, student)
}
