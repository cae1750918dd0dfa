package store

import (
	"context"
	"errors"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrNoCapacity is returned by ConsumeUse when the conditional increment
	// matches no row: the code is gone, deactivated, expired or exhausted.
	ErrNoCapacity = errors.New("store: no remaining uses")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Tenants() Tenants
	InviteCodes() InviteCodes
	Users() Users
	Redemptions() Redemptions
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Tenants interface {
	// GetTenantByID returns a tenant by id.
	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)

	// GetTenantBySlug returns a tenant by its unique slug.
	GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error)

	// CreateTenant inserts a new tenant (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the slug is taken.
	CreateTenant(ctx context.Context, t domain.Tenant) error

	// UpdateTenantBranding mutates the branding fields and bumps updated_at.
	UpdateTenantBranding(ctx context.Context, tenantID string, b domain.Branding) error

	// ListTenants returns all tenants ordered by creation date (newest first).
	ListTenants(ctx context.Context) ([]domain.Tenant, error)
}

type InviteCodes interface {
	// CreateInviteCode inserts a new code (code value already normalized).
	// Returns ErrAlreadyExists when the code value is taken.
	CreateInviteCode(ctx context.Context, c domain.InviteCode) error

	// GetInviteCodeByID returns a code by id.
	GetInviteCodeByID(ctx context.Context, id string) (domain.InviteCode, error)

	// GetInviteCodeByCode looks up a code by its normalized value.
	GetInviteCodeByCode(ctx context.Context, code string) (domain.InviteCode, error)

	// ConsumeUse atomically increments current_uses by exactly 1, but only
	// while the code is active, unexpired and under its use cap. Returns
	// ErrNoCapacity when no row matched, so two racing redemptions of the
	// last seat admit exactly one winner.
	ConsumeUse(ctx context.Context, codeID string, now time.Time) error

	// DeactivateInviteCode flips is_active off. Terminal.
	DeactivateInviteCode(ctx context.Context, codeID string) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByTenantEmail returns the user for a (tenant, email) pair.
	GetUserByTenantEmail(ctx context.Context, tenantID, email string) (domain.User, error)

	// GetUserByEmail returns the first user matching the email across all
	// tenants, oldest first. Used by the returning-user lookup path.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. Returns ErrAlreadyExists when the
	// (tenant_id, email) uniqueness constraint is violated; callers treat
	// that as "fetch the existing row and proceed".
	CreateUser(ctx context.Context, u domain.User) error

	// TouchUserLastActive sets last_active_at and bumps updated_at.
	TouchUserLastActive(ctx context.Context, userID string, at time.Time) error
}

type Redemptions interface {
	// CreateRedemption appends one redemption fact. Rows are never updated
	// or deleted.
	CreateRedemption(ctx context.Context, r domain.Redemption) error

	// CountRedemptionsByCode reports how many redemption facts exist for a
	// code (operator usage view).
	CountRedemptionsByCode(ctx context.Context, codeID string) (int, error)
}

type Sessions interface {
	// CreateSession stores a new session record (token_hash only, never the
	// raw token).
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns a not-expired session by fingerprint.
	GetSessionByTokenHash(ctx context.Context, hash string, now time.Time) (domain.Session, error)

	// TouchSessionLastActive bumps last_active_at.
	TouchSessionLastActive(ctx context.Context, sessionID string, at time.Time) error

	// DeleteExpiredSessions is housekeeping. Returns the number of rows removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
