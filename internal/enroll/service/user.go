package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
	"github.com/parlorworks/parlor/internal/enroll/metrics"
	"github.com/parlorworks/parlor/internal/enroll/store"
	"github.com/parlorworks/parlor/pkg/slogx"
)

// UserService covers the returning-user lookup path and profile reads.
type UserService struct {
	Store store.Store
}

// LookupByEmail resolves a returning user by bare email, no code required.
// Email is only unique per tenant, not globally, so this returns the
// oldest matching user across tenants. The lookup path never creates
// users and never touches invite codes or the redemption ledger; its only
// write is the last_active bump on the matched user.
//
// Returns ErrUserNotFound when no account matches, signalling the client
// to fall back to an invite code.
func (s *UserService) LookupByEmail(ctx context.Context, rawEmail string) (domain.User, domain.Tenant, error) {
	log := slogx.FromContext(ctx)

	email := NormalizeEmail(rawEmail)
	if err := validateEmail(email); err != nil {
		return domain.User{}, domain.Tenant{}, err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.LookupsTotal.WithLabelValues("not_found").Inc()
			return domain.User{}, domain.Tenant{}, ErrUserNotFound
		}
		log.Error("failed to look up user by email", slog.Any("error", err))
		metrics.LookupsTotal.WithLabelValues("error").Inc()
		return domain.User{}, domain.Tenant{}, err
	}

	tenant, err := s.Store.Tenants().GetTenantByID(ctx, user.TenantID)
	if err != nil {
		log.Error("failed to fetch tenant for user",
			slog.String("user_id", user.ID),
			slog.String("tenant_id", user.TenantID),
			slog.Any("error", err),
		)
		metrics.LookupsTotal.WithLabelValues("error").Inc()
		return domain.User{}, domain.Tenant{}, err
	}

	now := time.Now()
	if err := s.Store.Users().TouchUserLastActive(ctx, user.ID, now); err != nil {
		log.Error("failed to touch user last_active",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		metrics.LookupsTotal.WithLabelValues("error").Inc()
		return domain.User{}, domain.Tenant{}, err
	}
	user.LastActiveAt = now

	log.Info("returning user resolved by email",
		slog.String("user_id", user.ID),
		slog.String("tenant_id", tenant.ID),
	)
	metrics.LookupsTotal.WithLabelValues("found").Inc()
	return user, tenant, nil
}

// GetProfile returns a user with their tenant, for the authenticated
// profile endpoint.
func (s *UserService) GetProfile(ctx context.Context, userID string) (domain.User, domain.Tenant, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.Tenant{}, ErrUserNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, domain.Tenant{}, err
	}

	tenant, err := s.Store.Tenants().GetTenantByID(ctx, user.TenantID)
	if err != nil {
		log.Error("failed to fetch tenant for user",
			slog.String("user_id", user.ID),
			slog.String("tenant_id", user.TenantID),
			slog.Any("error", err),
		)
		return domain.User{}, domain.Tenant{}, err
	}

	return user, tenant, nil
}
