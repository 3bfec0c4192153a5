package models

import "time"

// PeriodStatus is the lifecycle state of a scheduling window
type PeriodStatus string

const (
	PeriodActive    PeriodStatus = "active"
	PeriodCompleted PeriodStatus = "completed"
)

// ValidSemesters is the fixed set of semester values a period may cover.
var ValidSemesters = []int{2, 3, 5, 7, 8}

// ValidSemester reports whether the semester is one of the fixed values.
func ValidSemester(semester int) bool {
	for _, s := range ValidSemesters {
		if s == semester {
			return true
		}
	}
	return false
}

// Period defines an enrollment/activity window based on the 'periods' table.
// At most one active period may exist per semester at any time.
type Period struct {
	ID        int64        `json:"id" db:"id"`
	Semester  int          `json:"semester" db:"semester"`
	Type      string       `json:"type" db:"period_type"`
	StartDate time.Time    `json:"startDate" db:"start_date"`
	EndDate   time.Time    `json:"endDate" db:"end_date"`
	Status    PeriodStatus `json:"status" db:"status"`
}
