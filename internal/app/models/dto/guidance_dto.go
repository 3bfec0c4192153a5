package dto

import "time"

// CreateSessionRequest is the payload for recording a guidance session
type CreateSessionRequest struct {
	SupervisorID int64  `json:"supervisorId" binding:"required"`
	WeekNumber   int    `json:"weekNumber" binding:"required,min=1" example:"3"`
	Topic        string `json:"topic" binding:"required" example:"Revisi bab 2"`
}

// SessionResponse describes one guidance session
type SessionResponse struct {
	ID           int64      `json:"id"`
	StudentID    int64      `json:"studentId"`
	SupervisorID int64      `json:"supervisorId"`
	WeekNumber   int        `json:"weekNumber"`
	Topic        string     `json:"topic"`
	Status       string     `json:"status"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
}

// SetSessionStatusRequest is the supervisor's decision payload
type SetSessionStatusRequest struct {
	Status string `json:"status" binding:"required" example:"approved"`
}

// GuidanceProgressResponse reports a student's progress toward the quota
type GuidanceProgressResponse struct {
	StudentID     int64 `json:"studentId"`
	TotalSessions int   `json:"totalSessions"`
	ApprovedCount int   `json:"approvedCount"`
	Quota         int   `json:"quota" example:"8"`
}
