package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/rafly/siprojek/internal/pkg/logger"
)

// ExamService handles final report eligibility, review and exam scheduling
type ExamService interface {
	SubmitReport(ctx context.Context, studentID int64, req *dto.SubmitReportRequest) (*dto.SubmitReportResponse, error)
	SetReportStatus(ctx context.Context, reportID, approverID int64, req *dto.SetReportStatusRequest) error
	GetReport(ctx context.Context, studentID int64) (*models.ExamReport, error)
	ScheduleExam(ctx context.Context, req *dto.ScheduleExamRequest) (*dto.ScheduleExamResponse, error)
}

type examServiceImpl struct {
	tx       TxRunner
	exams    ExamStore
	students StudentStore
	guidance GuidanceStore
	users    UserStore
}

// NewExamService creates a new ExamService
func NewExamService(tx TxRunner, exams ExamStore, students StudentStore, guidance GuidanceStore, users UserStore) ExamService {
	return &examServiceImpl{tx: tx, exams: exams, students: students, guidance: guidance, users: users}
}

// SubmitReport files the final report for the submitting student's whole
// kelompok. Eligibility is collective: the submitter needs an assigned
// supervisor and an approved proposal, and every member must have the full
// approved-session quota. The error names the member who falls short.
// Resubmission after a rejection upserts over the previous rows.
func (s *examServiceImpl) SubmitReport(ctx context.Context, studentID int64, req *dto.SubmitReportRequest) (*dto.SubmitReportResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Supervisor1ID == nil {
		return nil, apperrors.NewPreconditionError("student %s has no assigned supervisor", student.NPM)
	}
	if student.ProposalStatus != models.ProposalApproved {
		return nil, apperrors.NewPreconditionError("proposal for student %s must be approved before the final report", student.NPM)
	}

	members, err := groupMembers(ctx, s.students, student)
	if err != nil {
		return nil, err
	}
	for i := range members {
		approved, err := s.guidance.CountApprovedByStudent(ctx, members[i].ID)
		if err != nil {
			return nil, err
		}
		if approved < models.GuidanceQuota {
			return nil, apperrors.NewPreconditionError("guidance requirement not met for %s: %d/%d approved sessions", members[i].NPM, approved, models.GuidanceQuota)
		}
	}

	ids := memberIDs(members)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.exams.UpsertReports(ctx, tx, ids, req.FileURL)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentId", studentID).
		Ints64("memberIds", ids).
		Msg("Final report submitted")

	return &dto.SubmitReportResponse{
		Status:    string(models.ReportSubmitted),
		MemberIDs: ids,
	}, nil
}

// SetReportStatus applies an instructor's decision to a report and broadcasts
// it to every member of the owner's kelompok in one transaction.
func (s *examServiceImpl) SetReportStatus(ctx context.Context, reportID, approverID int64, req *dto.SetReportStatusRequest) error {
	decided := models.ReportStatus(req.Status)
	if decided != models.ReportApproved && decided != models.ReportRejected {
		return apperrors.NewInvalidInputError("report status must be approved or rejected, got %q", req.Status)
	}

	if _, err := s.users.GetInstructor(ctx, approverID); err != nil {
		return err
	}
	report, err := s.exams.GetReportByID(ctx, reportID)
	if err != nil {
		return err
	}
	owner, err := s.students.GetByID(ctx, report.StudentID)
	if err != nil {
		return err
	}

	members, err := groupMembers(ctx, s.students, owner)
	if err != nil {
		return err
	}
	ids := memberIDs(members)

	return s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.exams.BroadcastReportStatus(ctx, tx, ids, decided, req.Note, approverID)
	})
}

// GetReport retrieves a student's current report row
func (s *examServiceImpl) GetReport(ctx context.Context, studentID int64) (*models.ExamReport, error) {
	return s.exams.GetReportByStudent(ctx, studentID)
}

// ScheduleExam books a sitting for one student. The first examiner is always
// the student's primary supervisor; the second is chosen by the coordinator.
// Scheduling itself carries no report precondition, sittings may be booked
// ahead of the report decision.
func (s *examServiceImpl) ScheduleExam(ctx context.Context, req *dto.ScheduleExamRequest) (*dto.ScheduleExamResponse, error) {
	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Supervisor1ID == nil {
		return nil, apperrors.NewPreconditionError("student %s has no primary supervisor to act as first examiner", student.NPM)
	}
	if _, err := s.users.GetInstructor(ctx, req.Examiner2ID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("exam date must be YYYY-MM-DD, got %q", req.Date)
	}

	schedule := &models.ExamSchedule{
		StudentID:   req.StudentID,
		Date:        date,
		Time:        req.Time,
		Room:        req.Room,
		Examiner1ID: *student.Supervisor1ID,
		Examiner2ID: req.Examiner2ID,
	}
	id, err := s.exams.CreateSchedule(ctx, schedule)
	if err != nil {
		return nil, err
	}

	return &dto.ScheduleExamResponse{
		ID:          id,
		StudentID:   req.StudentID,
		Date:        req.Date,
		Time:        req.Time,
		Room:        req.Room,
		Examiner1ID: *student.Supervisor1ID,
		Examiner2ID: req.Examiner2ID,
	}, nil
}
