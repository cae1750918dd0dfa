package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
	"github.com/parlorworks/parlor/internal/enroll/store"
)

type inviteCodesRepo struct {
	db dbtx
}

const inviteCodeColumns = `id, code, tenant_id, max_uses, current_uses, expires_at, is_active, created_at, updated_at`

func scanInviteCode(row *sql.Row) (domain.InviteCode, error) {
	var (
		c         domain.InviteCode
		maxUses   sql.NullInt64
		expiresAt sql.NullTime
	)
	err := row.Scan(
		&c.ID, &c.Code, &c.TenantID, &maxUses, &c.CurrentUses,
		&expiresAt, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.InviteCode{}, mapNotFound(err)
	}
	c.MaxUses = mapNullIntPtr(maxUses)
	c.ExpiresAt = mapNullTimePtr(expiresAt)
	return c, nil
}

func (r *inviteCodesRepo) CreateInviteCode(ctx context.Context, c domain.InviteCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invite_codes (id, code, tenant_id, max_uses, current_uses, expires_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Code, c.TenantID,
		mapIntPtrNull(c.MaxUses), c.CurrentUses, mapTimePtrNull(c.ExpiresAt),
		c.IsActive, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *inviteCodesRepo) GetInviteCodeByID(
	ctx context.Context,
	id string,
) (domain.InviteCode, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inviteCodeColumns+` FROM invite_codes WHERE id = $1`, id)
	return scanInviteCode(row)
}

func (r *inviteCodesRepo) GetInviteCodeByCode(
	ctx context.Context,
	code string,
) (domain.InviteCode, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inviteCodeColumns+` FROM invite_codes WHERE code = $1`, code)
	return scanInviteCode(row)
}

// ConsumeUse performs the conditional atomic increment that enforces the
// capacity invariant. The row lock taken by UPDATE serializes racing
// redemptions; the WHERE clause re-checks capacity inside the write.
func (r *inviteCodesRepo) ConsumeUse(ctx context.Context, codeID string, now time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invite_codes
		SET current_uses = current_uses + 1, updated_at = $1
		WHERE id = $2
		  AND is_active = TRUE
		  AND (max_uses IS NULL OR current_uses < max_uses)`,
		now.UTC(), codeID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNoCapacity
	}
	return nil
}

func (r *inviteCodesRepo) DeactivateInviteCode(ctx context.Context, codeID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invite_codes SET is_active = FALSE, updated_at = $1
		WHERE id = $2`,
		time.Now().UTC(), codeID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
