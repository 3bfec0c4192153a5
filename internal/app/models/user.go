package models

// RoleType is the base account role
type RoleType string

const (
	// RoleMahasiswa is a student account
	RoleMahasiswa RoleType = "mahasiswa"
	// RoleDosen is an instructor account
	RoleDosen RoleType = "dosen"
)

// User defines an account based on the 'users' table
type User struct {
	ID           int64    `json:"id" db:"id"`
	Email        string   `json:"email" db:"email"`
	PasswordHash string   `json:"-" db:"password_hash"`
	FullName     string   `json:"fullName" db:"full_name"`
	RoleType     RoleType `json:"roleType" db:"role_type"`
	IsActive     bool     `json:"isActive" db:"is_active"`
}
