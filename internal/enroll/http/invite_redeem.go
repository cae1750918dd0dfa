package http

import (
	"errors"
	"net/http"

	"github.com/parlorworks/parlor/internal/enroll/service"
	"github.com/parlorworks/parlor/pkg/enrollsdk"
	"github.com/parlorworks/parlor/pkg/httpx"
	"github.com/parlorworks/parlor/pkg/slogx"
)

type InviteRedeemHandler struct {
	InviteService  *service.InviteService
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Redeem Invite Code
//	@Description	Exchange a valid invite code plus name and email for a tenant-scoped identity
//	@Description	and session token. Redeeming again with the same email returns the same user.
//	@Description	Code rejections return 200 with success:false and error INVALID_CODE; malformed
//	@Description	input returns 400 with VALIDATION_ERROR.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		enrollsdk.RedeemRequest		true	"Code, display name and email"
//	@Success		200		{object}	enrollsdk.RedeemResponse	"success, user, company, session_token"
//	@Failure		400		{object}	enrollsdk.ErrorResponse		"error, message"
//	@Failure		500		{object}	enrollsdk.ErrorResponse		"error, message"
//	@Router			/invite/redeem [post].
func (h *InviteRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req enrollsdk.RedeemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeValidationError(w, "Invalid JSON body")
		return
	}

	user, tenant, err := h.InviteService.RedeemCode(ctx, req.Code, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCode),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrInvalidName):
			writeValidationError(w, err.Error())
		case service.RejectionCode(err) != "":
			// All code lifecycle rejections share the INVALID_CODE wire
			// code; the message says which rule rejected it.
			httpx.WriteJSON(w, http.StatusOK, enrollsdk.RedeemResponse{
				Success: false,
				Error:   "INVALID_CODE",
				Message: err.Error(),
			})
		default:
			log.Error("failed to redeem invite code", "err", err)
			writeInternalError(w)
		}
		return
	}

	grant, err := h.SessionService.Issue(ctx, user, tenant)
	if err != nil {
		log.Error("failed to issue session after redemption", "err", err)
		writeInternalError(w)
		return
	}

	outUser := toUser(grant.User)
	outCompany := toCompany(grant.Company)
	httpx.WriteJSON(w, http.StatusOK, enrollsdk.RedeemResponse{
		Success:      true,
		User:         &outUser,
		Company:      &outCompany,
		SessionToken: grant.Token,
		ExpiresAt:    &grant.ExpiresAt,
	})
}
