package domain

import "time"

// Session binds an opaque bearer token to a (user, tenant) pair. Only the
// SHA-256 fingerprint of the token is persisted; the raw token exists once,
// in the issuance response.
type Session struct {
	ID           string
	TokenHash    string
	UserID       string
	TenantID     string
	CreatedAt    time.Time
	LastActiveAt time.Time
	ExpiresAt    time.Time
}

// SessionGrant is what the client receives when a session is issued: the raw
// token plus the payload it will cache locally.
type SessionGrant struct {
	Token      string       `json:"token"`
	User       UserPublic   `json:"user"`
	Company    TenantPublic `json:"company"`
	CreatedAt  time.Time    `json:"created_at"`
	LastActive time.Time    `json:"last_active"`
	ExpiresAt  time.Time    `json:"expires_at"`
}
