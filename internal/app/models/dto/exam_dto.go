package dto

// SubmitReportRequest is the payload for a final report submission
type SubmitReportRequest struct {
	FileURL string `json:"fileUrl" binding:"required,url"`
}

// SubmitReportResponse reports which members received a report row
type SubmitReportResponse struct {
	Status    string  `json:"status" example:"submitted"`
	MemberIDs []int64 `json:"memberIds"`
}

// SetReportStatusRequest is the supervisor's decision payload; the decision is
// always applied to every member of the owning student's group.
type SetReportStatusRequest struct {
	Status string `json:"status" binding:"required" example:"approved"`
	Note   string `json:"note,omitempty" example:"Revisi minor pada bab 4"`
}

// ScheduleExamRequest is the coordinator's payload for scheduling a sitting
type ScheduleExamRequest struct {
	StudentID   int64  `json:"studentId" binding:"required"`
	Date        string `json:"date" binding:"required" example:"2026-01-15"`
	Time        string `json:"time" binding:"required" example:"09:00"`
	Room        string `json:"room" binding:"required" example:"R-301"`
	Examiner2ID int64  `json:"examiner2Id" binding:"required"`
}

// ScheduleExamResponse describes the created sitting
type ScheduleExamResponse struct {
	ID          int64  `json:"id"`
	StudentID   int64  `json:"studentId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Room        string `json:"room"`
	Examiner1ID int64  `json:"examiner1Id"`
	Examiner2ID int64  `json:"examiner2Id"`
}
