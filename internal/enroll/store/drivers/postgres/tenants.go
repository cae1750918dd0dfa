package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
)

type tenantsRepo struct {
	db dbtx
}

const tenantColumns = `id, name, slug, primary_color, logo_url, is_active, created_at, updated_at`

func scanTenant(row *sql.Row) (domain.Tenant, error) {
	var (
		t            domain.Tenant
		primaryColor sql.NullString
		logoURL      sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &primaryColor, &logoURL,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	t.Branding = domain.Branding{
		PrimaryColor: mapNullString(primaryColor),
		LogoURL:      mapNullString(logoURL),
	}
	return t, nil
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	return scanTenant(row)
}

func (r *tenantsRepo) GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug)
	return scanTenant(row)
}

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenants (id, name, slug, primary_color, logo_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Name, t.Slug,
		mapStringNull(t.Branding.PrimaryColor), mapStringNull(t.Branding.LogoURL),
		t.IsActive, t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *tenantsRepo) UpdateTenantBranding(
	ctx context.Context,
	tenantID string,
	b domain.Branding,
) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tenants SET primary_color = $1, logo_url = $2, updated_at = $3
		WHERE id = $4`,
		mapStringNull(b.PrimaryColor), mapStringNull(b.LogoURL), time.Now().UTC(), tenantID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *tenantsRepo) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Tenant
	for rows.Next() {
		var (
			t            domain.Tenant
			primaryColor sql.NullString
			logoURL      sql.NullString
		)
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Slug, &primaryColor, &logoURL,
			&t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.Branding = domain.Branding{
			PrimaryColor: mapNullString(primaryColor),
			LogoURL:      mapNullString(logoURL),
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
