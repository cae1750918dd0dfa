package enrollsdk

import "time"

// ErrorResponse is the body returned for validation errors (400) and
// internal errors (500). Domain-level rejections do not use it; those come
// back as 200 bodies with valid:false or success:false.
type ErrorResponse struct {
	// Error is the machine-readable code, e.g. "VALIDATION_ERROR".
	Error string `json:"error"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Branding is the client-visible tenant customization.
type Branding struct {
	PrimaryColor string `json:"primary_color,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// Company is the public tenant projection returned to clients.
type Company struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Branding Branding `json:"branding"`
}

// User is the public user projection returned to clients.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ValidateRequest is the body for POST /invite/validate.
type ValidateRequest struct {
	Code string `json:"code"`
}

// ValidateResponse reports whether a code is usable. On rejection, Error
// carries one of INVALID, INACTIVE, EXPIRED, FULL.
type ValidateResponse struct {
	Valid   bool     `json:"valid"`
	Company *Company `json:"company,omitempty"`
	Error   string   `json:"error,omitempty"`
	Message string   `json:"message,omitempty"`
}

// RedeemRequest is the body for POST /invite/redeem.
type RedeemRequest struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RedeemResponse is the outcome of a redemption. On success the session
// token is included exactly once; it cannot be recovered later.
type RedeemResponse struct {
	Success      bool       `json:"success"`
	User         *User      `json:"user,omitempty"`
	Company      *Company   `json:"company,omitempty"`
	SessionToken string     `json:"session_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Error        string     `json:"error,omitempty"`
	Message      string     `json:"message,omitempty"`
}

// LookupRequest is the body for POST /invite/lookup.
type LookupRequest struct {
	Email string `json:"email"`
}

// LookupResponse is the outcome of a returning-user lookup.
type LookupResponse struct {
	Found        bool       `json:"found"`
	User         *User      `json:"user,omitempty"`
	Company      *Company   `json:"company,omitempty"`
	SessionToken string     `json:"session_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Message      string     `json:"message,omitempty"`
}

// MeResponse is the authenticated profile view.
type MeResponse struct {
	User    User    `json:"user"`
	Company Company `json:"company"`
}

// CreateTenantRequest is the admin body for POST /admin/tenants.
type CreateTenantRequest struct {
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Branding Branding `json:"branding"`
}

// UpdateBrandingRequest is the admin body for PUT /admin/tenants/{id}/branding.
type UpdateBrandingRequest struct {
	Branding Branding `json:"branding"`
}

// TenantResponse is the admin view of a tenant.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Branding  Branding  `json:"branding"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MintCodeRequest is the admin body for POST /admin/codes. Code is
// optional; a random one is generated when omitted. MaxUses and ExpiresAt
// are optional caps.
type MintCodeRequest struct {
	TenantID  string     `json:"tenant_id"`
	Code      string     `json:"code,omitempty"`
	MaxUses   *int       `json:"max_uses,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CodeResponse is the admin view of an invite code.
type CodeResponse struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	TenantID    string     `json:"tenant_id"`
	MaxUses     *int       `json:"max_uses,omitempty"`
	CurrentUses int        `json:"current_uses"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CodeUsageResponse is the admin usage view of an invite code.
type CodeUsageResponse struct {
	Code        CodeResponse `json:"code"`
	Status      string       `json:"status"`
	Redemptions int          `json:"redemptions"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the health probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
