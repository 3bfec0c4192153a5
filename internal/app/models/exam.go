package models

import "time"

// ReportStatus is the review state of a final exam report
type ReportStatus string

const (
	ReportSubmitted ReportStatus = "submitted"
	ReportApproved  ReportStatus = "approved"
	ReportRejected  ReportStatus = "rejected"
)

// ExamReport defines a final report row based on the 'exam_reports' table.
// Every group member owns an independent row, but status decisions are
// broadcast across the whole group.
type ExamReport struct {
	ID         int64        `json:"id" db:"id"`
	StudentID  int64        `json:"studentId" db:"student_id"`
	FileURL    string       `json:"fileUrl" db:"file_url"`
	Status     ReportStatus `json:"status" db:"status"`
	Note       string       `json:"note" db:"note"`
	ApproverID *int64       `json:"approverId,omitempty" db:"approver_id"`
	UpdatedAt  time.Time    `json:"updatedAt" db:"updated_at"`
}

// ExamSchedule defines a scheduled final exam sitting based on the
// 'exam_schedules' table. The first examiner is always the student's primary
// supervisor.
type ExamSchedule struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	Date        time.Time `json:"date" db:"exam_date"`
	Time        string    `json:"time" db:"exam_time"`
	Room        string    `json:"room" db:"room"`
	Examiner1ID int64     `json:"examiner1Id" db:"examiner1_id"`
	Examiner2ID int64     `json:"examiner2Id" db:"examiner2_id"`
}
