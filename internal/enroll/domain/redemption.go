package domain

import "time"

// Redemption is an append-only fact recording a successful first-time
// redemption of an invite code by a user. Rows are only ever inserted, never
// mutated or deleted. Repeat redemptions by an existing user do not add rows.
type Redemption struct {
	ID           string
	InviteCodeID string
	UserID       string
	CreatedAt    time.Time
}
