package dto

// AssignRoleRequest is the payload for granting an administrative role
type AssignRoleRequest struct {
	InstructorID int64  `json:"instructorId" binding:"required"`
	Role         string `json:"role" binding:"required" example:"koordinator"`
	Semester     *int   `json:"semester,omitempty" example:"7"`
}

// RoleAssignmentResponse describes one granted role
type RoleAssignmentResponse struct {
	InstructorID int64  `json:"instructorId"`
	Role         string `json:"role"`
	Semester     *int   `json:"semester,omitempty"`
}
