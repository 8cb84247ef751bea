package domain

import "time"

// User represents a dashboard user. The user's email is the actor label
// recorded on transaction log entries.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role controls what a user may do on the dashboard.
type Role string

const (
	// RoleAdmin may manage entries and users.
	RoleAdmin Role = "admin"
	// RoleOperator may subtract and view.
	RoleOperator Role = "operator"
	// RoleViewer may only view.
	RoleViewer Role = "viewer"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}
