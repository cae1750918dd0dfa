package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/service"
	"github.com/parlorworks/parlor/internal/enroll/store"
	"github.com/parlorworks/parlor/pkg/enrollsdk"
	"github.com/parlorworks/parlor/pkg/httpx"
	"github.com/parlorworks/parlor/pkg/slogx"

	_ "github.com/parlorworks/parlor/api/enroll" // Swagger docs
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	adminToken   string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	InviteService  *service.InviteService
	UserService    *service.UserService
	SessionService *service.SessionService
	TenantService  *service.TenantService
}

func NewRouter(
	adminToken, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		adminToken:   adminToken,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvites()
	r.registerProfile()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Parlor Enrollment Service API
//	@version		0.1.0
//	@description	Invite-code redemption and tenant-session bootstrap for the Parlor platform.
//	@description
//	@description				Domain-level rejections (invalid, expired, full, inactive codes) are
//	@description				returned as 200 responses with valid:false or success:false bodies.
//	@description				HTTP error codes are reserved for malformed input (400) and internal
//	@description				failures (500).
//
//	@contact.name				ParlorWorks Team
//	@contact.url				https://github.com/parlorworks/parlor
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvites() {
	// POST /invite/validate - read-only, safe to poll from signup forms
	validateHandler := &InviteValidateHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /invite/validate",
		httpx.Chain(validateHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /invite/redeem - strict rate limit (mutating enrollment path)
	redeemHandler := &InviteRedeemHandler{
		InviteService:  r.InviteService,
		SessionService: r.SessionService,
	}
	r.Mux.Handle("POST /invite/redeem",
		httpx.Chain(redeemHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /invite/lookup - strict, it both enumerates emails and mints sessions
	lookupHandler := &InviteLookupHandler{
		UserService:    r.UserService,
		SessionService: r.SessionService,
	}
	r.Mux.Handle("POST /invite/lookup",
		httpx.Chain(lookupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProfile() {
	meHandler := &MeHandler{UserService: r.UserService}
	r.Mux.Handle("GET /me",
		httpx.Chain(meHandler,
			RequireSession(r.SessionService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	admin := RequireAdmin(r.adminToken)

	tenantsHandler := &AdminTenantsHandler{TenantService: r.TenantService}
	r.Mux.Handle("POST /admin/tenants", httpx.Chain(http.HandlerFunc(tenantsHandler.HandleCreate), admin))
	r.Mux.Handle("GET /admin/tenants", httpx.Chain(http.HandlerFunc(tenantsHandler.HandleList), admin))
	r.Mux.Handle("PUT /admin/tenants/{id}/branding", httpx.Chain(http.HandlerFunc(tenantsHandler.HandleUpdateBranding), admin))

	codesHandler := &AdminCodesHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /admin/codes", httpx.Chain(http.HandlerFunc(codesHandler.HandleMint), admin))
	r.Mux.Handle("GET /admin/codes/{id}/usage", httpx.Chain(http.HandlerFunc(codesHandler.HandleUsage), admin))
	r.Mux.Handle("DELETE /admin/codes/{id}", httpx.Chain(http.HandlerFunc(codesHandler.HandleDeactivate), admin))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}

// writeValidationError maps malformed input to a 400 with the shared error
// shape.
func writeValidationError(w http.ResponseWriter, message string) {
	httpx.WriteJSON(w, http.StatusBadRequest, enrollsdk.ErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
	})
}

// writeInternalError hides internals behind a generic 500 body.
func writeInternalError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusInternalServerError, enrollsdk.ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "Something went wrong, please try again",
	})
}
