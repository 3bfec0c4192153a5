package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/rafly/siprojek/internal/pkg/logger"
)

// MatchingService handles track selection and mutual partner matching
type MatchingService interface {
	SelectTrack(ctx context.Context, studentID int64, req *dto.SelectTrackRequest) (*dto.SelectTrackResponse, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

type matchingServiceImpl struct {
	tx       TxRunner
	students StudentStore
	kelompok KelompokStore
}

// NewMatchingService creates a new MatchingService
func NewMatchingService(tx TxRunner, students StudentStore, kelompok KelompokStore) MatchingService {
	return &matchingServiceImpl{tx: tx, students: students, kelompok: kelompok}
}

// GetStudentByUserID resolves the student row behind an authenticated account
func (s *matchingServiceImpl) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.students.GetByUserID(ctx, userID)
}

// SelectTrack records a student's track choice and, on team tracks, the
// desired partner. When the named partner has already chosen the same track
// and named this student back, both are placed into a newly created kelompok
// inside the same transaction. Both student rows are locked in one ordered
// SELECT ... FOR UPDATE, so two students picking each other concurrently
// still produce exactly one kelompok.
func (s *matchingServiceImpl) SelectTrack(ctx context.Context, studentID int64, req *dto.SelectTrackRequest) (*dto.SelectTrackResponse, error) {
	track := models.Track(req.Track)
	if !track.Valid() {
		return nil, apperrors.NewInvalidInputError("unknown track %q", req.Track)
	}

	partnerNPM := strings.TrimSpace(req.PartnerNPM)
	if partnerNPM != "" && !track.Team() {
		return nil, apperrors.NewInvalidInputError("track %s is taken individually and accepts no partner", track)
	}

	me, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if partnerNPM == me.NPM {
		return nil, apperrors.NewInvalidInputError("a student cannot name themselves as partner")
	}

	resp := &dto.SelectTrackResponse{Track: string(track)}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if partnerNPM == "" {
			locked, err := s.students.LockByID(ctx, tx, studentID)
			if err != nil {
				return err
			}
			if locked.KelompokID != nil {
				return apperrors.NewPreconditionError("student %s already belongs to kelompok %d and cannot change track", locked.NPM, *locked.KelompokID)
			}
			return s.students.UpdateTrackSelection(ctx, tx, studentID, track, nil)
		}

		pair, err := s.students.LockPairByNPM(ctx, tx, me.NPM, partnerNPM)
		if err != nil {
			return err
		}

		var locked, partner *models.Student
		for i := range pair {
			switch pair[i].NPM {
			case me.NPM:
				locked = &pair[i]
			case partnerNPM:
				partner = &pair[i]
			}
		}
		if locked == nil {
			return apperrors.NewNotFoundError("student %d not found", studentID)
		}
		if locked.KelompokID != nil {
			return apperrors.NewPreconditionError("student %s already belongs to kelompok %d and cannot change track", locked.NPM, *locked.KelompokID)
		}

		if err := s.students.UpdateTrackSelection(ctx, tx, studentID, track, &partnerNPM); err != nil {
			return err
		}

		// The selection stands on its own even when the partner has not
		// reciprocated yet: a missing or mismatched partner is not an error.
		if partner == nil || partner.KelompokID != nil ||
			partner.Track == nil || *partner.Track != track ||
			partner.DesiredPartnerNPM == nil || *partner.DesiredPartnerNPM != locked.NPM {
			return nil
		}

		kelompokID, err := s.kelompok.Create(ctx, tx, &models.Kelompok{
			Name:  fmt.Sprintf("%s & %s", locked.FullName, partner.FullName),
			Track: track,
		})
		if err != nil {
			return err
		}
		if err := s.students.AssignKelompok(ctx, tx, kelompokID, []int64{locked.ID, partner.ID}); err != nil {
			return err
		}

		logger.Info().
			Int64("kelompokId", kelompokID).
			Str("npm", locked.NPM).
			Str("partnerNpm", partner.NPM).
			Str("track", string(track)).
			Msg("Mutual partner match formed a kelompok")

		resp.Matched = true
		resp.KelompokID = &kelompokID
		resp.PartnerName = &partner.FullName
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
