package http

import (
	"errors"
	"net/http"

	"github.com/parlorworks/parlor/internal/enroll/service"
	"github.com/parlorworks/parlor/pkg/enrollsdk"
	"github.com/parlorworks/parlor/pkg/httpx"
	"github.com/parlorworks/parlor/pkg/slogx"
)

type InviteValidateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Validate Invite Code
//	@Description	Check whether an invite code is usable and preview the company it belongs to.
//	@Description	Read-only: calling this never consumes a use. Rejections (INVALID, INACTIVE,
//	@Description	EXPIRED, FULL) return 200 with valid:false; branch on the body, not the status.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		enrollsdk.ValidateRequest	true	"Invite code to check"
//	@Success		200		{object}	enrollsdk.ValidateResponse	"valid, company | valid:false, error, message"
//	@Failure		400		{object}	enrollsdk.ErrorResponse		"error, message"
//	@Failure		500		{object}	enrollsdk.ErrorResponse		"error, message"
//	@Router			/invite/validate [post].
func (h *InviteValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req enrollsdk.ValidateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeValidationError(w, "Invalid JSON body")
		return
	}

	company, err := h.InviteService.ValidateCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCode) {
			writeValidationError(w, err.Error())
			return
		}
		if code := service.RejectionCode(err); code != "" {
			httpx.WriteJSON(w, http.StatusOK, enrollsdk.ValidateResponse{
				Valid:   false,
				Error:   code,
				Message: err.Error(),
			})
			return
		}
		log.Error("failed to validate invite code", "err", err)
		writeInternalError(w)
		return
	}

	out := toCompany(company)
	httpx.WriteJSON(w, http.StatusOK, enrollsdk.ValidateResponse{
		Valid:   true,
		Company: &out,
	})
}
