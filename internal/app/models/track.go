package models

// Track is one of the five fixed project/internship categories a student
// selects before any grouping occurs.
type Track string

const (
	TrackProyek1 Track = "proyek1"
	TrackProyek2 Track = "proyek2"
	TrackProyek3 Track = "proyek3"
	TrackMagang  Track = "magang"
	TrackMandiri Track = "mandiri"
)

// AllTracks lists every valid track value.
var AllTracks = []Track{TrackProyek1, TrackProyek2, TrackProyek3, TrackMagang, TrackMandiri}

// Valid reports whether the value is one of the five fixed tracks.
func (t Track) Valid() bool {
	switch t {
	case TrackProyek1, TrackProyek2, TrackProyek3, TrackMagang, TrackMandiri:
		return true
	}
	return false
}

// Team reports whether the track is worked in two-person groups. Internship
// style tracks (magang, mandiri) are always solo and bypass matching.
func (t Track) Team() bool {
	switch t {
	case TrackProyek1, TrackProyek2, TrackProyek3:
		return true
	}
	return false
}
