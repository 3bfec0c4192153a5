package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency wiring
type Repositories struct {
	UserRepository     *UserRepository
	StudentRepository  *StudentRepository
	KelompokRepository *KelompokRepository
	GuidanceRepository *GuidanceRepository
	ExamRepository     *ExamRepository
	PeriodRepository   *PeriodRepository
	RoleRepository     *RoleRepository
	StatsRepository    *StatsRepository
}

// NewRepositories creates all repositories sharing one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		StudentRepository:  NewStudentRepository(db),
		KelompokRepository: NewKelompokRepository(db),
		GuidanceRepository: NewGuidanceRepository(db),
		ExamRepository:     NewExamRepository(db),
		PeriodRepository:   NewPeriodRepository(db),
		RoleRepository:     NewRoleRepository(db),
		StatsRepository:    NewStatsRepository(db),
	}
}
