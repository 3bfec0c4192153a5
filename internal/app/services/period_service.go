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

// PeriodService handles scheduling windows and the end-of-cycle reset
type PeriodService interface {
	Create(ctx context.Context, req *dto.CreatePeriodRequest) (*dto.PeriodResponse, error)
	Complete(ctx context.Context, periodID int64) error
	Get(ctx context.Context, periodID int64) (*dto.PeriodResponse, error)
}

type periodServiceImpl struct {
	tx       TxRunner
	periods  PeriodStore
	students StudentStore
	kelompok KelompokStore
	guidance GuidanceStore
	exams    ExamStore
}

// NewPeriodService creates a new PeriodService
func NewPeriodService(tx TxRunner, periods PeriodStore, students StudentStore, kelompok KelompokStore, guidance GuidanceStore, exams ExamStore) PeriodService {
	return &periodServiceImpl{
		tx:       tx,
		periods:  periods,
		students: students,
		kelompok: kelompok,
		guidance: guidance,
		exams:    exams,
	}
}

const periodDateLayout = "2006-01-02"

// Create opens a scheduling window. At most one active window may exist per
// semester; a partial unique index enforces that under concurrent creation.
func (s *periodServiceImpl) Create(ctx context.Context, req *dto.CreatePeriodRequest) (*dto.PeriodResponse, error) {
	if !models.ValidSemester(req.Semester) {
		return nil, apperrors.NewInvalidInputError("semester must be one of %v, got %d", models.ValidSemesters, req.Semester)
	}

	start, err := time.Parse(periodDateLayout, req.StartDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("start date must be YYYY-MM-DD, got %q", req.StartDate)
	}
	end, err := time.Parse(periodDateLayout, req.EndDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("end date must be YYYY-MM-DD, got %q", req.EndDate)
	}
	if !end.After(start) {
		return nil, apperrors.NewInvalidInputError("period end date must fall after the start date")
	}

	active, err := s.periods.HasActiveForSemester(ctx, req.Semester)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, apperrors.NewPreconditionError("an active period already exists for semester %d", req.Semester)
	}

	period := &models.Period{
		Semester:  req.Semester,
		Type:      req.Type,
		StartDate: start,
		EndDate:   end,
		Status:    models.PeriodActive,
	}
	id, err := s.periods.Create(ctx, period)
	if err != nil {
		return nil, err
	}
	period.ID = id

	return periodToResponse(period), nil
}

// Complete closes a window and resets the whole cohort in one transaction:
// guidance records, reports and schedules are removed, every student's track,
// partner, kelompok, proposal and supervisors are cleared, and the kelompok
// rows themselves are deleted. Completing an already completed period fails.
func (s *periodServiceImpl) Complete(ctx context.Context, periodID int64) error {
	if _, err := s.periods.GetByID(ctx, periodID); err != nil {
		return err
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.periods.MarkCompleted(ctx, tx, periodID); err != nil {
			return err
		}
		if err := s.exams.DeleteAllSchedules(ctx, tx); err != nil {
			return err
		}
		if err := s.exams.DeleteAllReports(ctx, tx); err != nil {
			return err
		}
		if err := s.guidance.DeleteAll(ctx, tx); err != nil {
			return err
		}
		// Students drop their kelompok reference before the rows go away.
		if err := s.students.ResetAcademicCycle(ctx, tx); err != nil {
			return err
		}
		return s.kelompok.DeleteAll(ctx, tx)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("periodId", periodID).Msg("Period completed, academic cycle reset")
	return nil
}

// Get retrieves one scheduling window
func (s *periodServiceImpl) Get(ctx context.Context, periodID int64) (*dto.PeriodResponse, error) {
	period, err := s.periods.GetByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return periodToResponse(period), nil
}

func periodToResponse(p *models.Period) *dto.PeriodResponse {
	return &dto.PeriodResponse{
		ID:        p.ID,
		Semester:  p.Semester,
		Type:      p.Type,
		StartDate: p.StartDate.Format(periodDateLayout),
		EndDate:   p.EndDate.Format(periodDateLayout),
		Status:    string(p.Status),
	}
}
