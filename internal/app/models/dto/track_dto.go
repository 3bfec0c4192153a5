package dto

// SelectTrackRequest is the payload for a student's track selection. The
// partner NPM is meaningful only on team tracks and names the student the
// caller wants to pair with.
type SelectTrackRequest struct {
	Track      string `json:"track" binding:"required" example:"proyek1"`
	PartnerNPM string `json:"partnerNpm,omitempty" example:"20210801002"`
}

// SelectTrackResponse reports the outcome of a track selection. Matched is
// false while the chosen partner has not reciprocated; the selection is still
// recorded.
type SelectTrackResponse struct {
	Track       string  `json:"track"`
	Matched     bool    `json:"matched"`
	KelompokID  *int64  `json:"kelompokId,omitempty"`
	PartnerName *string `json:"partnerName,omitempty"`
}
