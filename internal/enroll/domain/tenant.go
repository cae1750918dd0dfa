package domain

import "time"

// Tenant is a company boundary. Every user, code and session belongs to
// exactly one tenant. Tenants are created by platform operators; their
// identity is immutable, branding is not.
type Tenant struct {
	ID        string
	Name      string
	Slug      string
	Branding  Branding
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Branding holds the client-visible customization for a tenant. Both fields
// are optional.
type Branding struct {
	PrimaryColor string `json:"primary_color,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// TenantPublic is the projection of a tenant that is safe to return to
// unauthenticated clients (e.g. on code validation).
type TenantPublic struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Branding Branding `json:"branding"`
}

// Public maps the tenant to its client-safe projection.
func (t Tenant) Public() TenantPublic {
	return TenantPublic{
		ID:       t.ID,
		Name:     t.Name,
		Slug:     t.Slug,
		Branding: t.Branding,
	}
}
