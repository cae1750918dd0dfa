package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
	"github.com/parlorworks/parlor/internal/enroll/store"
	"github.com/parlorworks/parlor/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTenant(t *testing.T, s *Store) domain.Tenant {
	t.Helper()

	now := time.Now()
	tenant := domain.Tenant{
		ID:        idx.New().String(),
		Name:      "Acme Corp",
		Slug:      idx.New().String(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Tenants().CreateTenant(context.Background(), tenant))
	return tenant
}

func newCode(t *testing.T, s *Store, tenantID string, maxUses *int) domain.InviteCode {
	t.Helper()

	now := time.Now()
	code := domain.InviteCode{
		ID:        idx.New().String(),
		Code:      idx.New().String(),
		TenantID:  tenantID,
		MaxUses:   maxUses,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.InviteCodes().CreateInviteCode(context.Background(), code))
	return code
}

func TestUserUniquenessConstraint(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	tenant := newTenant(t, s)
	other := newTenant(t, s)

	user := domain.User{
		ID:        idx.New().String(),
		TenantID:  tenant.ID,
		Name:      "Alice Nguyen",
		Email:     "alice@example.com",
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, s.Users().CreateUser(ctx, user))

	t.Run("duplicate (tenant, email) maps to ErrAlreadyExists", func(t *testing.T) {
		dup := user
		dup.ID = idx.New().String()
		require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("same email under another tenant is fine", func(t *testing.T) {
		sibling := user
		sibling.ID = idx.New().String()
		sibling.TenantID = other.ID
		require.NoError(t, s.Users().CreateUser(ctx, sibling))
	})

	t.Run("oldest row wins the cross-tenant email lookup", func(t *testing.T) {
		found, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, user.ID, found.ID)
	})
}

func TestConsumeUseEnforcesCapacity(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	tenant := newTenant(t, s)

	t.Run("counts up to the cap then refuses", func(t *testing.T) {
		maxUses := 2
		code := newCode(t, s, tenant.ID, &maxUses)

		require.NoError(t, s.InviteCodes().ConsumeUse(ctx, code.ID, time.Now()))
		require.NoError(t, s.InviteCodes().ConsumeUse(ctx, code.ID, time.Now()))
		require.ErrorIs(t, s.InviteCodes().ConsumeUse(ctx, code.ID, time.Now()), store.ErrNoCapacity)

		after, err := s.InviteCodes().GetInviteCodeByID(ctx, code.ID)
		require.NoError(t, err)
		require.Equal(t, 2, after.CurrentUses)
	})

	t.Run("uncapped codes never refuse", func(t *testing.T) {
		code := newCode(t, s, tenant.ID, nil)
		for i := 0; i < 10; i++ {
			require.NoError(t, s.InviteCodes().ConsumeUse(ctx, code.ID, time.Now()))
		}
	})

	t.Run("deactivated codes refuse regardless of capacity", func(t *testing.T) {
		code := newCode(t, s, tenant.ID, nil)
		require.NoError(t, s.InviteCodes().DeactivateInviteCode(ctx, code.ID))
		require.ErrorIs(t, s.InviteCodes().ConsumeUse(ctx, code.ID, time.Now()), store.ErrNoCapacity)
	})

	t.Run("unknown code refuses", func(t *testing.T) {
		err := s.InviteCodes().ConsumeUse(ctx, idx.New().String(), time.Now())
		require.ErrorIs(t, err, store.ErrNoCapacity)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	tenant := newTenant(t, s)
	maxUses := 1
	code := newCode(t, s, tenant.ID, &maxUses)
	require.NoError(t, s.InviteCodes().ConsumeUse(ctx, code.ID, time.Now()))

	user := domain.User{
		ID:        idx.New().String(),
		TenantID:  tenant.ID,
		Name:      "Bob Tran",
		Email:     "bob@example.com",
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		if err := tx.Redemptions().CreateRedemption(ctx, domain.Redemption{
			ID:           idx.New().String(),
			InviteCodeID: code.ID,
			UserID:       user.ID,
			CreatedAt:    time.Now(),
		}); err != nil {
			return err
		}
		return tx.InviteCodes().ConsumeUse(ctx, code.ID, time.Now())
	})
	require.ErrorIs(t, err, store.ErrNoCapacity)

	// Nothing from the failed transaction survives.
	_, err = s.Users().GetUserByTenantEmail(ctx, tenant.ID, "bob@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	count, err := s.Redemptions().CountRedemptionsByCode(ctx, code.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestRedemptionRowsAreForeignKeyChecked(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	err := s.Redemptions().CreateRedemption(ctx, domain.Redemption{
		ID:           idx.New().String(),
		InviteCodeID: idx.New().String(),
		UserID:       idx.New().String(),
		CreatedAt:    time.Now(),
	})
	require.Error(t, err)
}

func TestSessionExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	tenant := newTenant(t, s)

	user := domain.User{
		ID:        idx.New().String(),
		TenantID:  tenant.ID,
		Name:      "Alice Nguyen",
		Email:     "alice@example.com",
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, s.Users().CreateUser(ctx, user))

	now := time.Now()
	session := domain.Session{
		ID:           idx.New().String(),
		TokenHash:    idx.New().String(),
		UserID:       user.ID,
		TenantID:     tenant.ID,
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    now.Add(time.Hour),
	}
	require.NoError(t, s.Sessions().CreateSession(ctx, session))

	t.Run("live before expiry", func(t *testing.T) {
		found, err := s.Sessions().GetSessionByTokenHash(ctx, session.TokenHash, now)
		require.NoError(t, err)
		require.Equal(t, session.ID, found.ID)
	})

	t.Run("gone at and after expiry", func(t *testing.T) {
		_, err := s.Sessions().GetSessionByTokenHash(ctx, session.TokenHash, session.ExpiresAt)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate token hash maps to ErrAlreadyExists", func(t *testing.T) {
		dup := session
		dup.ID = idx.New().String()
		require.ErrorIs(t, s.Sessions().CreateSession(ctx, dup), store.ErrAlreadyExists)
	})
}
