package postgres

import (
	"context"

	"github.com/parlorworks/parlor/internal/enroll/domain"
)

type redemptionsRepo struct {
	db dbtx
}

func (r *redemptionsRepo) CreateRedemption(ctx context.Context, red domain.Redemption) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invite_redemptions (id, invite_code_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		red.ID, red.InviteCodeID, red.UserID, red.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *redemptionsRepo) CountRedemptionsByCode(ctx context.Context, codeID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invite_redemptions WHERE invite_code_id = $1`, codeID,
	).Scan(&count)
	return count, err
}
