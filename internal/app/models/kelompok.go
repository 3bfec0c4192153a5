package models

// MaxKelompokMembers caps group membership. Groups are created once by the
// matching engine and membership never changes afterwards.
const MaxKelompokMembers = 2

// Kelompok defines a two-person project group based on the 'kelompok' table.
// Solo (internship) students have no kelompok row at all.
type Kelompok struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Track Track  `json:"track" db:"track"`
}
