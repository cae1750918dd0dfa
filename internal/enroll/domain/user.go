package domain

import "time"

// Role values assigned to users. Self-enrolled users are always RoleUser;
// elevated roles are assigned out of band.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a tenant-scoped identity. (TenantID, Email) is unique: the same
// email may exist under multiple tenants as distinct users, but never twice
// under one tenant.
type User struct {
	ID           string
	TenantID     string
	Name         string
	Email        string
	Role         string
	InvitedVia   string // invite code id, empty when not invite-enrolled
	LastActiveAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPublic is the user projection embedded in session payloads and API
// responses.
type UserPublic struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public maps the user to its client-safe projection.
func (u User) Public() UserPublic {
	return UserPublic{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
