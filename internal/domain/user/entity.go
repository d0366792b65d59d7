package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Full access, may act for any user
	RoleManager Role = "manager" // May act for members of teams they manage
	RoleMember  Role = "member"  // Regular team member, self only
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleMember
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
