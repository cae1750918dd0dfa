package domain

import (
	"strings"
	"time"
)

// CodeStatus is the lifecycle verdict for an invite code at a point in time.
type CodeStatus string

const (
	CodeValid    CodeStatus = "VALID"
	CodeInactive CodeStatus = "INACTIVE"
	CodeExpired  CodeStatus = "EXPIRED"
	CodeFull     CodeStatus = "FULL"
	// CodeInvalid is the verdict for a code that does not exist. StatusAt
	// never returns it; lookups report it when no record matches.
	CodeInvalid CodeStatus = "INVALID"
)

// InviteCode is a shared secret permitting self-service enrollment into a
// tenant. Exhaustion is monotonic: CurrentUses only ever increases.
type InviteCode struct {
	ID          string
	Code        string // stored normalized (trimmed, uppercase)
	TenantID    string
	MaxUses     *int
	CurrentUses int
	ExpiresAt   *time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeCode canonicalizes a raw code string. Codes are case-insensitive
// by convention, so lookups and storage both go through this.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// StatusAt evaluates the code lifecycle at the given instant. The check
// order defines precedence for records that are unusable for more than one
// reason: INACTIVE wins over EXPIRED wins over FULL.
func (c InviteCode) StatusAt(now time.Time) CodeStatus {
	if !c.IsActive {
		return CodeInactive
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return CodeExpired
	}
	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return CodeFull
	}
	return CodeValid
}
