package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
	"github.com/parlorworks/parlor/internal/enroll/metrics"
	"github.com/parlorworks/parlor/internal/enroll/store"
	"github.com/parlorworks/parlor/pkg/cryptox"
	"github.com/parlorworks/parlor/pkg/idx"
	"github.com/parlorworks/parlor/pkg/slogx"
)

var (
	// ErrSessionInvalid covers unknown tokens and expired sessions alike.
	// Callers get no hint which, on purpose.
	ErrSessionInvalid = errors.New("invalid or expired session")
)

// SessionService mints and verifies opaque bearer sessions. The raw token
// leaves the service exactly once, in the issuance grant; only its SHA-256
// fingerprint is persisted, so a database leak exposes no usable
// credentials.
type SessionService struct {
	Store store.Store
	TTL   time.Duration
}

// Issue mints a session for a resolved (user, tenant) pair. Must only be
// called after identity resolution succeeds: no token exists for a failed
// redemption.
func (s *SessionService) Issue(ctx context.Context, user domain.User, tenant domain.Tenant) (domain.SessionGrant, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate session token", slog.Any("error", err))
		return domain.SessionGrant{}, err
	}

	now := time.Now()
	session := domain.Session{
		ID:           idx.New().String(),
		TokenHash:    cryptox.FingerprintToken(token),
		UserID:       user.ID,
		TenantID:     tenant.ID,
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    now.Add(s.ttl()),
	}
	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		log.Error("failed to persist session",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return domain.SessionGrant{}, err
	}

	log.Debug("session issued",
		slog.String("session_id", session.ID),
		slog.String("user_id", user.ID),
		slog.String("tenant_id", tenant.ID),
		slog.Time("expires_at", session.ExpiresAt),
	)
	metrics.SessionsIssuedTotal.Inc()

	return domain.SessionGrant{
		Token:      token,
		User:       user.Public(),
		Company:    tenant.Public(),
		CreatedAt:  session.CreatedAt,
		LastActive: session.LastActiveAt,
		ExpiresAt:  session.ExpiresAt,
	}, nil
}

// Authenticate resolves a raw bearer token to its access context. Used by
// the session middleware on every authenticated request. Bumps the
// session's last_active as a side effect; a failed bump does not fail the
// request.
func (s *SessionService) Authenticate(ctx context.Context, token string) (domain.Access, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Anonymous(), ErrSessionInvalid
	}

	now := time.Now()
	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token), now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Anonymous(), ErrSessionInvalid
		}
		log.Error("failed to fetch session", slog.Any("error", err))
		return domain.Anonymous(), err
	}

	if err := s.Store.Sessions().TouchSessionLastActive(ctx, session.ID, now); err != nil {
		log.Warn("failed to touch session last_active",
			slog.String("session_id", session.ID),
			slog.Any("error", err),
		)
	}

	return domain.TenantAccess(session.UserID, session.TenantID), nil
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return 30 * 24 * time.Hour
	}
	return s.TTL
}
