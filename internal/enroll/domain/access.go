package domain

// AccessKind discriminates the caller classes the service recognizes.
type AccessKind int

const (
	// AccessAnonymous is an unauthenticated caller (validate/redeem/lookup).
	AccessAnonymous AccessKind = iota
	// AccessTenant is a session-authenticated user scoped to one tenant.
	AccessTenant
	// AccessAdmin is a platform operator authenticated by the operator token.
	AccessAdmin
)

// Access is the typed access context attached to every request by the auth
// middleware. Handlers read identity from here, never from client-submitted
// body fields. There is no implicit fallback: a request without a verified
// session or operator token stays Anonymous.
type Access struct {
	Kind     AccessKind
	UserID   string // set for AccessTenant
	TenantID string // set for AccessTenant
}

// Anonymous is the zero access context.
func Anonymous() Access { return Access{Kind: AccessAnonymous} }

// TenantAccess builds the access context for a verified session.
func TenantAccess(userID, tenantID string) Access {
	return Access{Kind: AccessTenant, UserID: userID, TenantID: tenantID}
}

// AdminAccess builds the operator access context.
func AdminAccess() Access { return Access{Kind: AccessAdmin} }
