package models

import "time"

// GuidanceQuota is the fixed number of supervision sessions per student.
// Session creation stops at this total and exam eligibility requires this
// many approved sessions.
const GuidanceQuota = 8

// SessionStatus is the review state of a guidance session
type SessionStatus string

const (
	SessionWaiting  SessionStatus = "waiting"
	SessionApproved SessionStatus = "approved"
	SessionRejected SessionStatus = "rejected"
)

// GuidanceSession defines one supervised meeting record based on the
// 'guidance_sessions' table. Sessions belong to a single student; group
// members accrue them independently.
type GuidanceSession struct {
	ID           int64         `json:"id" db:"id"`
	StudentID    int64         `json:"studentId" db:"student_id"`
	SupervisorID int64         `json:"supervisorId" db:"supervisor_id"`
	WeekNumber   int           `json:"weekNumber" db:"week_number"`
	Topic        string        `json:"topic" db:"topic"`
	Status       SessionStatus `json:"status" db:"status"`
	ApprovedAt   *time.Time    `json:"approvedAt,omitempty" db:"approved_at"`
}
