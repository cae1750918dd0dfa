package http

import (
	"errors"
	"net/http"

	"github.com/parlorworks/parlor/internal/enroll/service"
	"github.com/parlorworks/parlor/pkg/enrollsdk"
	"github.com/parlorworks/parlor/pkg/httpx"
	"github.com/parlorworks/parlor/pkg/slogx"
)

type InviteLookupHandler struct {
	UserService    *service.UserService
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Returning User Lookup
//	@Description	Resolve a returning user by email alone and re-issue a session, skipping the
//	@Description	invite code entirely. Never creates users and never consumes invite code uses.
//	@Description	An unknown email returns 200 with found:false, signalling the client to ask
//	@Description	for an invite code.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		enrollsdk.LookupRequest		true	"Email to look up"
//	@Success		200		{object}	enrollsdk.LookupResponse	"found, user, company, session_token"
//	@Failure		400		{object}	enrollsdk.ErrorResponse		"error, message"
//	@Failure		500		{object}	enrollsdk.ErrorResponse		"error, message"
//	@Router			/invite/lookup [post].
func (h *InviteLookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req enrollsdk.LookupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeValidationError(w, "Invalid JSON body")
		return
	}

	user, tenant, err := h.UserService.LookupByEmail(ctx, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			writeValidationError(w, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusOK, enrollsdk.LookupResponse{
				Found:   false,
				Message: "No account found, use an invite code to join",
			})
		default:
			log.Error("failed to look up user", "err", err)
			writeInternalError(w)
		}
		return
	}

	grant, err := h.SessionService.Issue(ctx, user, tenant)
	if err != nil {
		log.Error("failed to issue session after lookup", "err", err)
		writeInternalError(w)
		return
	}

	outUser := toUser(grant.User)
	outCompany := toCompany(grant.Company)
	httpx.WriteJSON(w, http.StatusOK, enrollsdk.LookupResponse{
		Found:        true,
		User:         &outUser,
		Company:      &outCompany,
		SessionToken: grant.Token,
		ExpiresAt:    &grant.ExpiresAt,
	})
}
