package dto

// CohortStatsResponse carries read-only cohort progress counters. The values
// may legitimately degrade to zero when the statistics collaborators fail;
// this never applies to the workflow operations themselves.
type CohortStatsResponse struct {
	StudentsPerTrack map[string]int `json:"studentsPerTrack"`
	ProposalsPending int            `json:"proposalsPending"`
	ProposalsDecided int            `json:"proposalsDecided"`
	ReportsSubmitted int            `json:"reportsSubmitted"`
	ReportsApproved  int            `json:"reportsApproved"`
	GroupsFormed     int            `json:"groupsFormed"`
}
