package dto

// CreatePeriodRequest is the payload for opening a scheduling window
type CreatePeriodRequest struct {
	Semester  int    `json:"semester" binding:"required" example:"7"`
	Type      string `json:"type" binding:"required" example:"proyek"`
	StartDate string `json:"startDate" binding:"required" example:"2025-09-01"`
	EndDate   string `json:"endDate" binding:"required" example:"2026-01-31"`
}

// PeriodResponse describes one scheduling window
type PeriodResponse struct {
	ID        int64  `json:"id"`
	Semester  int    `json:"semester"`
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}
