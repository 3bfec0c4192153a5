package models

// ProposalStatus is the review state of a student's project proposal
type ProposalStatus string

const (
	ProposalNone     ProposalStatus = "none"
	ProposalPending  ProposalStatus = "pending"
	ProposalApproved ProposalStatus = "approved"
	ProposalRejected ProposalStatus = "rejected"
)

// Student defines the student model based on the 'students' table.
// Track and KelompokID are written only by the matching engine; proposal
// fields are written only by the proposal lifecycle.
type Student struct {
	ID                int64          `json:"id" db:"id"`
	UserID            int64          `json:"userId" db:"user_id"`
	NPM               string         `json:"npm" db:"npm"`
	Track             *Track         `json:"track,omitempty" db:"track"`
	DesiredPartnerNPM *string        `json:"desiredPartnerNpm,omitempty" db:"desired_partner_npm"`
	KelompokID        *int64         `json:"kelompokId,omitempty" db:"kelompok_id"`
	ProposalTitle     string         `json:"proposalTitle" db:"proposal_title"`
	ProposalFileURL   string         `json:"proposalFileUrl" db:"proposal_file_url"`
	ProposalStatus    ProposalStatus `json:"proposalStatus" db:"proposal_status"`
	Supervisor1ID     *int64         `json:"supervisor1Id,omitempty" db:"supervisor1_id"`
	Supervisor2ID     *int64         `json:"supervisor2Id,omitempty" db:"supervisor2_id"`

	// FullName comes from the joined users row
	FullName string `json:"fullName" db:"-"`
}

// SupervisedBy reports whether the given instructor is one of the student's
// assigned supervisors.
func (s *Student) SupervisedBy(instructorID int64) bool {
	if s.Supervisor1ID != nil && *s.Supervisor1ID == instructorID {
		return true
	}
	if s.Supervisor2ID != nil && *s.Supervisor2ID == instructorID {
		return true
	}
	return false
}
