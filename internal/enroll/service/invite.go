package service

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
	"github.com/parlorworks/parlor/internal/enroll/metrics"
	"github.com/parlorworks/parlor/internal/enroll/store"
	"github.com/parlorworks/parlor/pkg/idx"
	"github.com/parlorworks/parlor/pkg/slogx"
)

// InviteService owns the invite code lifecycle: validation, redemption and
// the operator-facing mint/deactivate/usage operations.
type InviteService struct {
	Store store.Store
}

// errLostCreateRace aborts the creation transaction when another request
// inserted the same (tenant, email) user first. It never escapes RedeemCode.
var errLostCreateRace = errors.New("lost user creation race")

// ValidateCode evaluates a raw code against the lifecycle rules and, when
// usable, returns the owning tenant's public projection. Read-only: safe to
// call any number of times without side effects.
//
// Rejections come back as ErrCodeInvalid, ErrCodeInactive, ErrCodeExpired or
// ErrCodeFull. Precedence for records unusable for more than one reason is
// INACTIVE, then EXPIRED, then FULL.
func (s *InviteService) ValidateCode(ctx context.Context, rawCode string) (domain.TenantPublic, error) {
	log := slogx.FromContext(ctx)

	code := domain.NormalizeCode(rawCode)
	if code == "" {
		return domain.TenantPublic{}, ErrEmptyCode
	}

	record, err := s.Store.InviteCodes().GetInviteCodeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.ValidationsTotal.WithLabelValues("invalid").Inc()
			return domain.TenantPublic{}, ErrCodeInvalid
		}
		log.Error("failed to fetch invite code", slog.Any("error", err))
		return domain.TenantPublic{}, err
	}

	if status := record.StatusAt(time.Now()); status != domain.CodeValid {
		metrics.ValidationsTotal.WithLabelValues(verdictLabel(status)).Inc()
		return domain.TenantPublic{}, statusError(status)
	}

	tenant, err := s.Store.Tenants().GetTenantByID(ctx, record.TenantID)
	if err != nil {
		log.Error("failed to fetch tenant for invite code",
			slog.String("code_id", record.ID),
			slog.String("tenant_id", record.TenantID),
			slog.Any("error", err),
		)
		return domain.TenantPublic{}, err
	}

	metrics.ValidationsTotal.WithLabelValues("valid").Inc()
	return tenant.Public(), nil
}

// RedeemCode exchanges a valid invite code plus (name, email) for a
// tenant-scoped user. It performs the following steps:
//  1. Validates input (code non-empty, name >= 2 chars, email well formed)
//  2. Gates on the code lifecycle (same precedence as ValidateCode)
//  3. Resolves identity: fetches the existing (tenant, email) user or
//     creates one. Creation is guarded by the storage uniqueness
//     constraint, so two racing redemptions for the same new user collapse
//     into one row and the loser proceeds with the winner's record.
//  4. On the creation branch only, appends a redemption fact and consumes
//     one use of the code, atomically in one transaction. Exhaustion of the
//     last seat rolls the whole transaction back and reports FULL.
//
// Returning users redeeming again consume nothing: no ledger row, no
// counter increment, just a last_active bump.
func (s *InviteService) RedeemCode(
	ctx context.Context,
	rawCode string,
	name string,
	rawEmail string,
) (domain.User, domain.Tenant, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input before touching the store.
	code := domain.NormalizeCode(rawCode)
	if code == "" {
		metrics.RedemptionsTotal.WithLabelValues("validation_error").Inc()
		return domain.User{}, domain.Tenant{}, ErrEmptyCode
	}
	email := NormalizeEmail(rawEmail)
	if err := validateEmail(email); err != nil {
		metrics.RedemptionsTotal.WithLabelValues("validation_error").Inc()
		return domain.User{}, domain.Tenant{}, err
	}
	if err := validateName(name); err != nil {
		metrics.RedemptionsTotal.WithLabelValues("validation_error").Inc()
		return domain.User{}, domain.Tenant{}, err
	}

	// 2. Lifecycle gate.
	record, err := s.Store.InviteCodes().GetInviteCodeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.RedemptionsTotal.WithLabelValues("invalid").Inc()
			return domain.User{}, domain.Tenant{}, ErrCodeInvalid
		}
		log.Error("failed to fetch invite code", slog.Any("error", err))
		metrics.RedemptionsTotal.WithLabelValues("error").Inc()
		return domain.User{}, domain.Tenant{}, err
	}
	now := time.Now()
	if status := record.StatusAt(now); status != domain.CodeValid {
		log.Info("redemption rejected by code lifecycle",
			slog.String("code_id", record.ID),
			slog.String("status", string(status)),
		)
		metrics.RedemptionsTotal.WithLabelValues(verdictLabel(status)).Inc()
		return domain.User{}, domain.Tenant{}, statusError(status)
	}

	tenant, err := s.Store.Tenants().GetTenantByID(ctx, record.TenantID)
	if err != nil {
		log.Error("failed to fetch tenant for invite code",
			slog.String("code_id", record.ID),
			slog.String("tenant_id", record.TenantID),
			slog.Any("error", err),
		)
		metrics.RedemptionsTotal.WithLabelValues("error").Inc()
		return domain.User{}, domain.Tenant{}, err
	}

	// 3a. Existing user: welcome back, touch last_active and stop. The
	// ledger and counter are untouched on this branch.
	existing, err := s.Store.Users().GetUserByTenantEmail(ctx, tenant.ID, email)
	if err == nil {
		if err := s.Store.Users().TouchUserLastActive(ctx, existing.ID, now); err != nil {
			log.Error("failed to touch user last_active",
				slog.String("user_id", existing.ID),
				slog.Any("error", err),
			)
			metrics.RedemptionsTotal.WithLabelValues("error").Inc()
			return domain.User{}, domain.Tenant{}, err
		}
		existing.LastActiveAt = now
		log.Info("returning user redeemed invite",
			slog.String("user_id", existing.ID),
			slog.String("tenant_id", tenant.ID),
			slog.String("code_id", record.ID),
		)
		metrics.RedemptionsTotal.WithLabelValues("welcome_back").Inc()
		return existing, tenant, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check for existing user", slog.Any("error", err))
		metrics.RedemptionsTotal.WithLabelValues("error").Inc()
		return domain.User{}, domain.Tenant{}, err
	}

	// 3b/4. Creation branch: user row, redemption fact and the counter
	// increment land or roll back together. The conditional increment in
	// ConsumeUse is what keeps current_uses under max_uses when two
	// redemptions race for the last seat.
	user := domain.User{
		ID:           idx.New().String(),
		TenantID:     tenant.ID,
		Name:         name,
		Email:        email,
		Role:         domain.RoleUser,
		InvitedVia:   record.ID,
		LastActiveAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				// Another request created this user between our check and
				// now. On postgres the violated constraint has already put
				// the transaction in a failed state, so it must roll back
				// before the winner's row can be read.
				return errLostCreateRace
			}
			return err
		}

		redemption := domain.Redemption{
			ID:           idx.New().String(),
			InviteCodeID: record.ID,
			UserID:       user.ID,
			CreatedAt:    now,
		}
		if err := tx.Redemptions().CreateRedemption(ctx, redemption); err != nil {
			return err
		}

		return tx.InviteCodes().ConsumeUse(ctx, record.ID, now)
	})
	if errors.Is(err, errLostCreateRace) {
		// They consumed the seat; we just adopt their row.
		winner, err := s.Store.Users().GetUserByTenantEmail(ctx, tenant.ID, email)
		if err != nil {
			log.Error("failed to fetch user after create conflict", slog.Any("error", err))
			metrics.RedemptionsTotal.WithLabelValues("error").Inc()
			return domain.User{}, domain.Tenant{}, err
		}
		if err := s.Store.Users().TouchUserLastActive(ctx, winner.ID, now); err != nil {
			log.Error("failed to touch user last_active",
				slog.String("user_id", winner.ID),
				slog.Any("error", err),
			)
			metrics.RedemptionsTotal.WithLabelValues("error").Inc()
			return domain.User{}, domain.Tenant{}, err
		}
		winner.LastActiveAt = now
		metrics.RedemptionsTotal.WithLabelValues("welcome_back").Inc()
		return winner, tenant, nil
	}
	if err != nil {
		if errors.Is(err, store.ErrNoCapacity) {
			log.Info("redemption lost the race for the last seat",
				slog.String("code_id", record.ID),
			)
			metrics.RedemptionsTotal.WithLabelValues("full").Inc()
			return domain.User{}, domain.Tenant{}, ErrCodeFull
		}
		log.Error("redemption transaction failed",
			slog.String("code_id", record.ID),
			slog.String("tenant_id", tenant.ID),
			slog.Any("error", err),
		)
		metrics.RedemptionsTotal.WithLabelValues("error").Inc()
		return domain.User{}, domain.Tenant{}, err
	}

	log.Info("user enrolled via invite",
		slog.String("user_id", user.ID),
		slog.String("tenant_id", tenant.ID),
		slog.String("code_id", record.ID),
	)
	metrics.RedemptionsTotal.WithLabelValues("created").Inc()
	return user, tenant, nil
}

// MintCode creates a new invite code for the given tenant. If code is
// empty a random one is generated. maxUses and expiresAt are optional:
// nil means unlimited uses and no expiry respectively.
func (s *InviteService) MintCode(
	ctx context.Context,
	tenantID string,
	code string,
	maxUses *int,
	expiresAt *time.Time,
) (domain.InviteCode, error) {
	log := slogx.FromContext(ctx)

	if maxUses != nil && *maxUses < 1 {
		return domain.InviteCode{}, ErrInvalidCodeRequest
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return domain.InviteCode{}, ErrInvalidCodeRequest
	}

	tenant, err := s.Store.Tenants().GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InviteCode{}, ErrTenantNotFound
		}
		log.Error("failed to fetch tenant", slog.Any("error", err))
		return domain.InviteCode{}, err
	}

	code = domain.NormalizeCode(code)
	if code == "" {
		code, err = generateCode()
		if err != nil {
			log.Error("failed to generate invite code", slog.Any("error", err))
			return domain.InviteCode{}, err
		}
	}

	now := time.Now()
	record := domain.InviteCode{
		ID:          idx.New().String(),
		Code:        code,
		TenantID:    tenant.ID,
		MaxUses:     maxUses,
		CurrentUses: 0,
		ExpiresAt:   expiresAt,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.InviteCodes().CreateInviteCode(ctx, record); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.InviteCode{}, ErrInvalidCodeRequest
		}
		log.Error("failed to create invite code", slog.Any("error", err))
		return domain.InviteCode{}, err
	}

	log.Info("invite code minted",
		slog.String("code_id", record.ID),
		slog.String("tenant_id", tenant.ID),
	)
	return record, nil
}

// DeactivateCode flips a code inactive. Terminal: there is no reactivation.
func (s *InviteService) DeactivateCode(ctx context.Context, codeID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.InviteCodes().DeactivateInviteCode(ctx, codeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCodeInvalid
		}
		log.Error("failed to deactivate invite code",
			slog.String("code_id", codeID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("invite code deactivated", slog.String("code_id", codeID))
	return nil
}

// CodeUsage is the operator view of a code's consumption.
type CodeUsage struct {
	Code        domain.InviteCode
	Status      domain.CodeStatus
	Redemptions int
}

// GetCodeUsage returns a code with its lifecycle verdict and ledger count.
func (s *InviteService) GetCodeUsage(ctx context.Context, codeID string) (CodeUsage, error) {
	log := slogx.FromContext(ctx)

	record, err := s.Store.InviteCodes().GetInviteCodeByID(ctx, codeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CodeUsage{}, ErrCodeInvalid
		}
		log.Error("failed to fetch invite code", slog.Any("error", err))
		return CodeUsage{}, err
	}

	count, err := s.Store.Redemptions().CountRedemptionsByCode(ctx, codeID)
	if err != nil {
		log.Error("failed to count redemptions",
			slog.String("code_id", codeID),
			slog.Any("error", err),
		)
		return CodeUsage{}, err
	}

	return CodeUsage{
		Code:        record,
		Status:      record.StatusAt(time.Now()),
		Redemptions: count,
	}, nil
}

// verdictLabel lowers a lifecycle verdict for use as a metric label.
func verdictLabel(status domain.CodeStatus) string {
	switch status {
	case domain.CodeInactive:
		return "inactive"
	case domain.CodeExpired:
		return "expired"
	case domain.CodeFull:
		return "full"
	case domain.CodeInvalid:
		return "invalid"
	}
	return "valid"
}

// codeAlphabet omits ambiguous characters (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// generateCode produces a random XXXX-XXXX code.
func generateCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, 0, 9)
	for i, b := range buf {
		if i == 4 {
			out = append(out, '-')
		}
		out = append(out, codeAlphabet[int(b)%len(codeAlphabet)])
	}
	return string(out), nil
}
