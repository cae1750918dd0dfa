package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, tenant_id, name, email, role, invited_via, last_active_at, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u          domain.User
		invitedVia sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.TenantID, &u.Name, &u.Email, &u.Role,
		&invitedVia, &u.LastActiveAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.InvitedVia = mapNullString(invitedVia)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByTenantEmail(
	ctx context.Context,
	tenantID, email string,
) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE tenant_id = $1 AND email = $2`,
		tenantID, email)
	return scanUser(row)
}

// GetUserByEmail returns the oldest user for the email across tenants.
func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 ORDER BY created_at ASC, id ASC LIMIT 1`,
		email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, tenant_id, name, email, role, invited_via, last_active_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.TenantID, u.Name, u.Email, u.Role,
		mapStringNull(u.InvitedVia), u.LastActiveAt.UTC(), u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) TouchUserLastActive(ctx context.Context, userID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET last_active_at = $1, updated_at = $2
		WHERE id = $3`,
		at.UTC(), at.UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
