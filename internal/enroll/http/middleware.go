package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/parlorworks/parlor/internal/enroll/domain"
	"github.com/parlorworks/parlor/internal/enroll/service"
	"github.com/parlorworks/parlor/pkg/enrollsdk"
	"github.com/parlorworks/parlor/pkg/httpx"
	"github.com/parlorworks/parlor/pkg/slogx"
)

// AccessFromContext returns the typed access context attached by the auth
// middleware. Requests that did not pass any auth middleware are Anonymous.
func AccessFromContext(ctx context.Context) domain.Access {
	if v, ok := ctx.Value(httpx.CtxKeyAccess).(domain.Access); ok {
		return v
	}
	return domain.Anonymous()
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RequireSession verifies the bearer token against the sessions table and
// attaches the resolved tenant access to the request context. Identity is
// only ever read from the verified session, never from request bodies.
func RequireSession(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			access, err := sessions.Authenticate(ctx, bearerToken(r))
			if err != nil {
				if errors.Is(err, service.ErrSessionInvalid) {
					httpx.WriteJSON(w, http.StatusUnauthorized, enrollsdk.ErrorResponse{
						Error:   "UNAUTHORIZED",
						Message: "A valid session token is required",
					})
					return
				}
				slogx.FromContext(ctx).Error("session verification failed", "err", err)
				writeInternalError(w)
				return
			}

			ctx = context.WithValue(ctx, httpx.CtxKeyAccess, access)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, access.UserID)
			ctx = context.WithValue(ctx, httpx.CtxKeyTenantID, access.TenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates operator endpoints behind the shared operator token.
// The comparison is constant time. An empty configured token disables the
// admin surface entirely rather than leaving it open.
func RequireAdmin(adminToken string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := bearerToken(r)
			if adminToken == "" ||
				subtle.ConstantTimeCompare([]byte(presented), []byte(adminToken)) != 1 {
				httpx.WriteJSON(w, http.StatusUnauthorized, enrollsdk.ErrorResponse{
					Error:   "UNAUTHORIZED",
					Message: "Operator token required",
				})
				return
			}

			ctx := context.WithValue(r.Context(), httpx.CtxKeyAccess, domain.AdminAccess())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
