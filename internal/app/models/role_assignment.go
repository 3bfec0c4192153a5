package models

// AdminRole is an administrative capability an instructor may hold. An
// instructor holds zero or more of these; they are a relation, not flags on
// the account.
type AdminRole string

const (
	// AdminDosen is the plain supervising instructor capability
	AdminDosen AdminRole = "dosen"
	// AdminKoordinator validates proposals and schedules exams; at most one
	// holder per assigned semester
	AdminKoordinator AdminRole = "koordinator"
	// AdminKaprodi manages periods and role assignments
	AdminKaprodi AdminRole = "kaprodi"
)

// Valid reports whether the value is a known administrative role.
func (r AdminRole) Valid() bool {
	switch r {
	case AdminDosen, AdminKoordinator, AdminKaprodi:
		return true
	}
	return false
}

// RoleAssignment defines one granted role based on the 'role_assignments'
// table. AssignedSemester is meaningful only for the koordinator role.
type RoleAssignment struct {
	ID               int64     `json:"id" db:"id"`
	InstructorID     int64     `json:"instructorId" db:"instructor_id"`
	Role             AdminRole `json:"role" db:"role_name"`
	AssignedSemester *int      `json:"assignedSemester,omitempty" db:"assigned_semester"`
}
