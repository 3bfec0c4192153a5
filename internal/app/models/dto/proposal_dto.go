package dto

// SubmitProposalRequest is the payload for a proposal submission. The file is
// referenced by a pre-uploaded URL; byte storage lives outside this service.
type SubmitProposalRequest struct {
	Title        string `json:"title" binding:"required" example:"Sistem Monitoring Gizi Balita"`
	FileURL      string `json:"fileUrl" binding:"required,url"`
	SupervisorID *int64 `json:"supervisorId,omitempty" example:"3"`
}

// SubmitProposalResponse reports which student rows received the proposal
type SubmitProposalResponse struct {
	Status    string  `json:"status" example:"pending"`
	MemberIDs []int64 `json:"memberIds"`
}

// SetProposalStatusRequest is the coordinator's decision payload
type SetProposalStatusRequest struct {
	StudentID  int64  `json:"studentId" binding:"required"`
	Status     string `json:"status" binding:"required" example:"approved"`
	WholeGroup bool   `json:"wholeGroup" example:"true"`
}
