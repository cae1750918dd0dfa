package postgres

import (
	"context"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token_hash, user_id, tenant_id, created_at, last_active_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.TokenHash, s.UserID, s.TenantID,
		s.CreatedAt.UTC(), s.LastActiveAt.UTC(), s.ExpiresAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByTokenHash(
	ctx context.Context,
	hash string,
	now time.Time,
) (domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRowContext(ctx, `
		SELECT id, token_hash, user_id, tenant_id, created_at, last_active_at, expires_at
		FROM sessions WHERE token_hash = $1 AND expires_at > $2`,
		hash, now.UTC(),
	).Scan(&s.ID, &s.TokenHash, &s.UserID, &s.TenantID, &s.CreatedAt, &s.LastActiveAt, &s.ExpiresAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) TouchSessionLastActive(
	ctx context.Context,
	sessionID string,
	at time.Time,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET last_active_at = $1 WHERE id = $2`,
		at.UTC(), sessionID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
