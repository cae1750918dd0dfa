package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
	"github.com/parlorworks/parlor/internal/enroll/store"
	"github.com/parlorworks/parlor/internal/enroll/store/drivers/sqlite"
	"github.com/parlorworks/parlor/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedTenant(t *testing.T, s store.Store, slug string) domain.Tenant {
	t.Helper()

	now := time.Now()
	tenant := domain.Tenant{
		ID:        idx.New().String(),
		Name:      "Acme Corp",
		Slug:      slug,
		Branding:  domain.Branding{PrimaryColor: "#6633cc"},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Tenants().CreateTenant(context.Background(), tenant))
	return tenant
}

func seedCode(t *testing.T, s store.Store, tenantID, code string, maxUses *int, expiresAt *time.Time, active bool) domain.InviteCode {
	t.Helper()

	now := time.Now()
	record := domain.InviteCode{
		ID:        idx.New().String(),
		Code:      domain.NormalizeCode(code),
		TenantID:  tenantID,
		MaxUses:   maxUses,
		ExpiresAt: expiresAt,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.InviteCodes().CreateInviteCode(context.Background(), record))
	return record
}

func intPtr(n int) *int              { return &n }
func timePtr(t time.Time) *time.Time { return &t }

func TestValidateCode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tenant := seedTenant(t, s, "acme")
	svc := &InviteService{Store: s}

	t.Run("valid code returns tenant projection", func(t *testing.T) {
		seedCode(t, s, tenant.ID, "WELCOME-1", nil, nil, true)

		company, err := svc.ValidateCode(ctx, "  welcome-1 ")
		require.NoError(t, err)
		require.Equal(t, tenant.ID, company.ID)
		require.Equal(t, "acme", company.Slug)
		require.Equal(t, "#6633cc", company.Branding.PrimaryColor)
	})

	t.Run("unknown code is invalid", func(t *testing.T) {
		_, err := svc.ValidateCode(ctx, "NOPE")
		require.ErrorIs(t, err, ErrCodeInvalid)
	})

	t.Run("empty code is a validation error", func(t *testing.T) {
		_, err := svc.ValidateCode(ctx, "   ")
		require.ErrorIs(t, err, ErrEmptyCode)
	})

	t.Run("inactive code", func(t *testing.T) {
		seedCode(t, s, tenant.ID, "DEAD", nil, nil, false)

		_, err := svc.ValidateCode(ctx, "DEAD")
		require.ErrorIs(t, err, ErrCodeInactive)
	})

	t.Run("expired code", func(t *testing.T) {
		seedCode(t, s, tenant.ID, "OLD", nil, timePtr(time.Now().Add(-time.Hour)), true)

		_, err := svc.ValidateCode(ctx, "OLD")
		require.ErrorIs(t, err, ErrCodeExpired)
	})

	t.Run("exhausted code reports FULL", func(t *testing.T) {
		record := seedCode(t, s, tenant.ID, "ACME-7X9K", intPtr(5), nil, true)
		for i := 0; i < 5; i++ {
			require.NoError(t, s.InviteCodes().ConsumeUse(ctx, record.ID, time.Now()))
		}

		_, err := svc.ValidateCode(ctx, "ACME-7X9K")
		require.ErrorIs(t, err, ErrCodeFull)
		require.Equal(t, string(domain.CodeFull), RejectionCode(err))
	})

	t.Run("inactive wins over expired", func(t *testing.T) {
		seedCode(t, s, tenant.ID, "BOTH", nil, timePtr(time.Now().Add(-time.Hour)), false)

		_, err := svc.ValidateCode(ctx, "BOTH")
		require.ErrorIs(t, err, ErrCodeInactive)
	})

	t.Run("validation has no side effects", func(t *testing.T) {
		record := seedCode(t, s, tenant.ID, "READONLY", intPtr(3), nil, true)

		for i := 0; i < 4; i++ {
			_, err := svc.ValidateCode(ctx, "READONLY")
			require.NoError(t, err)
		}

		after, err := s.InviteCodes().GetInviteCodeByID(ctx, record.ID)
		require.NoError(t, err)
		require.Zero(t, after.CurrentUses)
	})
}

func TestRedeemCodeCreatesUserAndLedger(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tenant := seedTenant(t, s, "acme")
	record := seedCode(t, s, tenant.ID, "TEAM-2024", intPtr(10), nil, true)
	svc := &InviteService{Store: s}

	user, company, err := svc.RedeemCode(ctx, "team-2024", "Alice Nguyen", "Alice@Example.com ")
	require.NoError(t, err)
	require.Equal(t, tenant.ID, company.ID)
	require.Equal(t, tenant.ID, user.TenantID)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, domain.RoleUser, user.Role)
	require.Equal(t, record.ID, user.InvitedVia)

	after, err := s.InviteCodes().GetInviteCodeByID(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 1, after.CurrentUses)

	count, err := s.Redemptions().CountRedemptionsByCode(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRedeemCodeIsIdempotentPerEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tenant := seedTenant(t, s, "acme")
	record := seedCode(t, s, tenant.ID, "TEAM-2024", intPtr(10), nil, true)
	svc := &InviteService{Store: s}

	first, _, err := svc.RedeemCode(ctx, "TEAM-2024", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)

	second, _, err := svc.RedeemCode(ctx, "TEAM-2024", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)

	// Same identity both times, one ledger row, one seat consumed.
	require.Equal(t, first.ID, second.ID)

	count, err := s.Redemptions().CountRedemptionsByCode(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	after, err := s.InviteCodes().GetInviteCodeByID(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 1, after.CurrentUses)
}

func TestRedeemCodeCapacityInvariant(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tenant := seedTenant(t, s, "acme")
	record := seedCode(t, s, tenant.ID, "LAST-SEAT", intPtr(1), nil, true)
	svc := &InviteService{Store: s}

	// Two distinct emails race for the last seat. Exactly one wins.
	emails := []string{"first@example.com", "second@example.com"}
	results := make([]error, len(emails))

	var wg sync.WaitGroup
	for i, email := range emails {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			_, _, results[i] = svc.RedeemCode(ctx, "LAST-SEAT", "Race Runner", email)
		}(i, email)
	}
	wg.Wait()

	var wins, fulls int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, ErrCodeFull)
			fulls++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, fulls)

	after, err := s.InviteCodes().GetInviteCodeByID(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 1, after.CurrentUses)

	count, err := s.Redemptions().CountRedemptionsByCode(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// abortingTxStore mirrors postgres transaction semantics over the sqlite
// test store: a statement error inside a transaction puts it in a failed
// state, and committing a failed transaction errors instead of succeeding.
// missChecks makes the pre-insert user lookup report not-found that many
// times, reproducing the window where two redemptions race to create the
// same user.
type abortingTxStore struct {
	store.Store
	missChecks int
}

func (s *abortingTxStore) Users() store.Users {
	return &racingUsers{Users: s.Store.Users(), missChecks: &s.missChecks}
}

func (s *abortingTxStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		wrapped := &failingTx{base: tx}
		if err := fn(wrapped); err != nil {
			return err
		}
		if wrapped.failed {
			return errors.New("pq: Could not complete operation in a failed transaction")
		}
		return nil
	})
}

type racingUsers struct {
	store.Users
	missChecks *int
}

func (u *racingUsers) GetUserByTenantEmail(ctx context.Context, tenantID, email string) (domain.User, error) {
	if *u.missChecks > 0 {
		*u.missChecks--
		return domain.User{}, store.ErrNotFound
	}
	return u.Users.GetUserByTenantEmail(ctx, tenantID, email)
}

type failingTx struct {
	base   store.Tx
	failed bool
}

func (tx *failingTx) Users() store.Users {
	return &failingTxUsers{Users: tx.base.Users(), tx: tx}
}

func (tx *failingTx) Tenants() store.Tenants         { return tx.base.Tenants() }
func (tx *failingTx) InviteCodes() store.InviteCodes { return tx.base.InviteCodes() }
func (tx *failingTx) Redemptions() store.Redemptions { return tx.base.Redemptions() }
func (tx *failingTx) Sessions() store.Sessions       { return tx.base.Sessions() }
func (tx *failingTx) ApplyMigrations() error         { return tx.base.ApplyMigrations() }

func (tx *failingTx) Tx(ctx context.Context) (store.Tx, error) { return tx.base.Tx(ctx) }

func (tx *failingTx) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return tx.base.WithTx(ctx, fn)
}

func (tx *failingTx) Close() error                   { return tx.base.Close() }
func (tx *failingTx) Ping(ctx context.Context) error { return tx.base.Ping(ctx) }
func (tx *failingTx) Commit() error                  { return tx.base.Commit() }
func (tx *failingTx) Rollback() error                { return tx.base.Rollback() }

type failingTxUsers struct {
	store.Users
	tx *failingTx
}

func (u *failingTxUsers) CreateUser(ctx context.Context, user domain.User) error {
	err := u.Users.CreateUser(ctx, user)
	if err != nil {
		u.tx.failed = true
	}
	return err
}

func TestRedeemCodeLostRaceAbortsTransaction(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tenant := seedTenant(t, s, "acme")
	record := seedCode(t, s, tenant.ID, "TEAM-2024", intPtr(10), nil, true)

	first, _, err := (&InviteService{Store: s}).RedeemCode(ctx, "TEAM-2024", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)

	// Replay Alice's redemption through a store whose pre-insert check
	// misses once, so CreateUser hits the uniqueness constraint inside the
	// transaction. The loser must roll back and adopt the winner's row; a
	// commit of the failed transaction would surface as an error here.
	racing := &abortingTxStore{Store: s, missChecks: 1}
	svc := &InviteService{Store: racing}

	second, _, err := svc.RedeemCode(ctx, "TEAM-2024", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	// Losing the race consumes nothing.
	after, err := s.InviteCodes().GetInviteCodeByID(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 1, after.CurrentUses)

	count, err := s.Redemptions().CountRedemptionsByCode(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRedeemCodeFullRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tenant := seedTenant(t, s, "acme")
	record := seedCode(t, s, tenant.ID, "ONE-SEAT", intPtr(1), nil, true)
	svc := &InviteService{Store: s}

	_, _, err := svc.RedeemCode(ctx, "ONE-SEAT", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)

	_, _, err = svc.RedeemCode(ctx, "ONE-SEAT", "Bob Tran", "bob@example.com")
	require.ErrorIs(t, err, ErrCodeFull)

	// The loser's user row must not survive the rollback.
	_, err = s.Users().GetUserByTenantEmail(ctx, tenant.ID, "bob@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	count, err := s.Redemptions().CountRedemptionsByCode(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRedeemCodeCrossTenantEmailIsolation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	acme := seedTenant(t, s, "acme")
	globex := seedTenant(t, s, "globex")
	seedCode(t, s, acme.ID, "ACME-IN", nil, nil, true)
	seedCode(t, s, globex.ID, "GLOBEX-IN", nil, nil, true)
	svc := &InviteService{Store: s}

	first, _, err := svc.RedeemCode(ctx, "ACME-IN", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)

	second, _, err := svc.RedeemCode(ctx, "GLOBEX-IN", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, acme.ID, first.TenantID)
	require.Equal(t, globex.ID, second.TenantID)
}

func TestRedeemCodeValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tenant := seedTenant(t, s, "acme")
	seedCode(t, s, tenant.ID, "TEAM-2024", nil, nil, true)
	svc := &InviteService{Store: s}

	t.Run("short name", func(t *testing.T) {
		_, _, err := svc.RedeemCode(ctx, "TEAM-2024", " J ", "a@x.com")
		require.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("bad email", func(t *testing.T) {
		_, _, err := svc.RedeemCode(ctx, "TEAM-2024", "Alice Nguyen", "not-an-email")
		require.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("empty code", func(t *testing.T) {
		_, _, err := svc.RedeemCode(ctx, "", "Alice Nguyen", "a@x.com")
		require.ErrorIs(t, err, ErrEmptyCode)
	})

	t.Run("rejections never create users", func(t *testing.T) {
		_, err := s.Users().GetUserByEmail(ctx, "a@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestMintCode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tenant := seedTenant(t, s, "acme")
	svc := &InviteService{Store: s}

	t.Run("explicit code is normalized", func(t *testing.T) {
		record, err := svc.MintCode(ctx, tenant.ID, " spring-24 ", intPtr(5), nil)
		require.NoError(t, err)
		require.Equal(t, "SPRING-24", record.Code)
		require.True(t, record.IsActive)
	})

	t.Run("generates a code when none given", func(t *testing.T) {
		record, err := svc.MintCode(ctx, tenant.ID, "", nil, nil)
		require.NoError(t, err)
		require.Len(t, record.Code, 9)
		require.Equal(t, byte('-'), record.Code[4])
	})

	t.Run("unknown tenant", func(t *testing.T) {
		_, err := svc.MintCode(ctx, idx.New().String(), "", nil, nil)
		require.ErrorIs(t, err, ErrTenantNotFound)
	})

	t.Run("rejects past expiry", func(t *testing.T) {
		_, err := svc.MintCode(ctx, tenant.ID, "", nil, timePtr(time.Now().Add(-time.Minute)))
		require.ErrorIs(t, err, ErrInvalidCodeRequest)
	})

	t.Run("rejects non-positive max uses", func(t *testing.T) {
		_, err := svc.MintCode(ctx, tenant.ID, "", intPtr(0), nil)
		require.ErrorIs(t, err, ErrInvalidCodeRequest)
	})
}

func TestDeactivateCodeIsTerminal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tenant := seedTenant(t, s, "acme")
	record := seedCode(t, s, tenant.ID, "SOON-GONE", nil, nil, true)
	svc := &InviteService{Store: s}

	require.NoError(t, svc.DeactivateCode(ctx, record.ID))

	_, err := svc.ValidateCode(ctx, "SOON-GONE")
	require.ErrorIs(t, err, ErrCodeInactive)

	_, _, err = svc.RedeemCode(ctx, "SOON-GONE", "Alice Nguyen", "alice@example.com")
	require.ErrorIs(t, err, ErrCodeInactive)
}

func TestGetCodeUsage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tenant := seedTenant(t, s, "acme")
	record := seedCode(t, s, tenant.ID, "USAGE", intPtr(2), nil, true)
	svc := &InviteService{Store: s}

	_, _, err := svc.RedeemCode(ctx, "USAGE", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)

	usage, err := svc.GetCodeUsage(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 1, usage.Code.CurrentUses)
	require.Equal(t, 1, usage.Redemptions)
	require.Equal(t, domain.CodeValid, usage.Status)
}
