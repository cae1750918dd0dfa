package http

import (
	"net/http"

	"github.com/parlorworks/parlor/internal/enroll/service"
	"github.com/parlorworks/parlor/pkg/enrollsdk"
	"github.com/parlorworks/parlor/pkg/httpx"
	"github.com/parlorworks/parlor/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Current User Profile
//	@Description	Return the profile and company for the authenticated session. Identity comes
//	@Description	from the verified session token, never from the request.
//	@Tags			Profile
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	enrollsdk.MeResponse	"user, company"
//	@Failure		401	{object}	enrollsdk.ErrorResponse	"error, message"
//	@Failure		500	{object}	enrollsdk.ErrorResponse	"error, message"
//	@Router			/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	access := AccessFromContext(ctx)
	user, tenant, err := h.UserService.GetProfile(ctx, access.UserID)
	if err != nil {
		log.Error("failed to load profile", "user_id", access.UserID, "err", err)
		writeInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, enrollsdk.MeResponse{
		User:    toUser(user.Public()),
		Company: toCompany(tenant.Public()),
	})
}
