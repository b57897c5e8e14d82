package domain

import "time"

// Role is the account type chosen at registration
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
)

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleTutor
}

// User is a registered account
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StudentProfile is created together with a STUDENT account
type StudentProfile struct {
	ID        int64
	UserID    int64
	Grade     string
	Subjects  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
