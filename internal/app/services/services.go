package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/db"
)

// The workflow services consume their collaborators through these interfaces;
// the pgx-backed repositories satisfy them in production and in-memory fakes
// satisfy them in tests. Methods taking a pgx.Tx must be called inside a
// TxRunner transaction so that group-wide writes commit or roll back as one.

// TxRunner runs a function inside one database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// StudentStore is the student row access used by the workflow core
type StudentStore interface {
	Create(ctx context.Context, tx pgx.Tx, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetByNPM(ctx context.Context, npm string) (*models.Student, error)
	LockByID(ctx context.Context, tx pgx.Tx, id int64) (*models.Student, error)
	LockPairByNPM(ctx context.Context, tx pgx.Tx, npmA, npmB string) ([]models.Student, error)
	UpdateTrackSelection(ctx context.Context, tx pgx.Tx, id int64, track models.Track, partnerNPM *string) error
	AssignKelompok(ctx context.Context, tx pgx.Tx, kelompokID int64, studentIDs []int64) error
	ListByKelompok(ctx context.Context, kelompokID int64) ([]models.Student, error)
	BroadcastProposal(ctx context.Context, tx pgx.Tx, studentIDs []int64, title, fileURL string, supervisorID *int64) error
	SetProposalStatus(ctx context.Context, id int64, status models.ProposalStatus) error
	ResetAcademicCycle(ctx context.Context, tx pgx.Tx) error
}

// KelompokStore is the group row access used by the workflow core
type KelompokStore interface {
	Create(ctx context.Context, tx pgx.Tx, kelompok *models.Kelompok) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Kelompok, error)
	DeleteAll(ctx context.Context, tx pgx.Tx) error
}

// GuidanceStore is the guidance session access used by the workflow core
type GuidanceStore interface {
	Create(ctx context.Context, session *models.GuidanceSession) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.GuidanceSession, error)
	CountByStudent(ctx context.Context, studentID int64) (int, error)
	CountApprovedByStudent(ctx context.Context, studentID int64) (int, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.GuidanceSession, error)
	SetStatus(ctx context.Context, id int64, status models.SessionStatus, approvedAt *time.Time) error
	DeleteAll(ctx context.Context, tx pgx.Tx) error
}

// ExamStore is the report and schedule access used by the workflow core
type ExamStore interface {
	GetReportByID(ctx context.Context, id int64) (*models.ExamReport, error)
	GetReportByStudent(ctx context.Context, studentID int64) (*models.ExamReport, error)
	UpsertReports(ctx context.Context, tx pgx.Tx, studentIDs []int64, fileURL string) error
	BroadcastReportStatus(ctx context.Context, tx pgx.Tx, studentIDs []int64, status models.ReportStatus, note string, approverID int64) error
	CreateSchedule(ctx context.Context, schedule *models.ExamSchedule) (int64, error)
	DeleteAllReports(ctx context.Context, tx pgx.Tx) error
	DeleteAllSchedules(ctx context.Context, tx pgx.Tx) error
}

// PeriodStore is the scheduling window access used by the workflow core
type PeriodStore interface {
	Create(ctx context.Context, period *models.Period) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Period, error)
	HasActiveForSemester(ctx context.Context, semester int) (bool, error)
	MarkCompleted(ctx context.Context, tx pgx.Tx, id int64) error
}

// RoleStore is the role assignment ledger access
type RoleStore interface {
	Upsert(ctx context.Context, assignment *models.RoleAssignment) error
	FindCoordinatorForSemester(ctx context.Context, semester int) (*models.RoleAssignment, error)
	HasRole(ctx context.Context, instructorID int64, role models.AdminRole) (bool, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]models.RoleAssignment, error)
}

// UserStore is the account access used by services
type UserStore interface {
	Create(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetInstructor(ctx context.Context, id int64) (*models.User, error)
}

// StatsStore computes the read-only cohort counters
type StatsStore interface {
	CohortCounts(ctx context.Context) (*dto.CohortStatsResponse, error)
}

// StatsCache is the degradable cache in front of StatsStore
type StatsCache interface {
	Get(ctx context.Context) (*dto.CohortStatsResponse, error)
	Set(ctx context.Context, stats *dto.CohortStatsResponse) error
}

// groupMembers resolves the broadcast set for a student: every member of the
// student's group, or just the student when solo.
func groupMembers(ctx context.Context, students StudentStore, student *models.Student) ([]models.Student, error) {
	if student.KelompokID == nil {
		return []models.Student{*student}, nil
	}
	return students.ListByKelompok(ctx, *student.KelompokID)
}

func memberIDs(members []models.Student) []int64 {
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids
}
