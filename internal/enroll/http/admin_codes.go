package http

import (
	"errors"
	"net/http"

	"github.com/parlorworks/parlor/internal/enroll/service"
	"github.com/parlorworks/parlor/pkg/enrollsdk"
	"github.com/parlorworks/parlor/pkg/httpx"
	"github.com/parlorworks/parlor/pkg/slogx"
)

type AdminCodesHandler struct {
	InviteService *service.InviteService
}

// HandleMint godoc
//
//	@Summary		Mint Invite Code
//	@Description	Create an invite code for a tenant with optional use cap and expiry. A random
//	@Description	code is generated when none is supplied. Operator only.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		enrollsdk.MintCodeRequest	true	"Tenant, optional code, caps"
//	@Success		201		{object}	enrollsdk.CodeResponse		"created code"
//	@Failure		400		{object}	enrollsdk.ErrorResponse		"error, message"
//	@Failure		401		{object}	enrollsdk.ErrorResponse		"error, message"
//	@Failure		404		{object}	enrollsdk.ErrorResponse		"tenant not found"
//	@Failure		500		{object}	enrollsdk.ErrorResponse		"error, message"
//	@Router			/admin/codes [post].
func (h *AdminCodesHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req enrollsdk.MintCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeValidationError(w, "Invalid JSON body")
		return
	}
	if req.TenantID == "" {
		writeValidationError(w, "tenant_id is required")
		return
	}

	code, err := h.InviteService.MintCode(ctx, req.TenantID, req.Code, req.MaxUses, req.ExpiresAt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTenantNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, enrollsdk.ErrorResponse{
				Error:   "NOT_FOUND",
				Message: err.Error(),
			})
		case errors.Is(err, service.ErrInvalidCodeRequest):
			writeValidationError(w, "Code must be unique, max_uses positive and expiry in the future")
		default:
			log.Error("failed to mint invite code", "err", err)
			writeInternalError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCodeResponse(code))
}

// HandleUsage godoc
//
//	@Summary		Invite Code Usage
//	@Description	Return a code with its lifecycle status and total redemptions. Operator only.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string							true	"Invite code ID"
//	@Success		200	{object}	enrollsdk.CodeUsageResponse		"code, status, redemptions"
//	@Failure		401	{object}	enrollsdk.ErrorResponse			"error, message"
//	@Failure		404	{object}	enrollsdk.ErrorResponse			"code not found"
//	@Failure		500	{object}	enrollsdk.ErrorResponse			"error, message"
//	@Router			/admin/codes/{id}/usage [get].
func (h *AdminCodesHandler) HandleUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	usage, err := h.InviteService.GetCodeUsage(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrCodeInvalid) {
			httpx.WriteJSON(w, http.StatusNotFound, enrollsdk.ErrorResponse{
				Error:   "NOT_FOUND",
				Message: "Invite code not found",
			})
			return
		}
		log.Error("failed to fetch code usage", "err", err)
		writeInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, enrollsdk.CodeUsageResponse{
		Code:        toCodeResponse(usage.Code),
		Status:      string(usage.Status),
		Redemptions: usage.Redemptions,
	})
}

// HandleDeactivate godoc
//
//	@Summary		Deactivate Invite Code
//	@Description	Permanently deactivate an invite code. There is no reactivation. Operator only.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Invite code ID"
//	@Success		204	"deactivated"
//	@Failure		401	{object}	enrollsdk.ErrorResponse	"error, message"
//	@Failure		404	{object}	enrollsdk.ErrorResponse	"code not found"
//	@Failure		500	{object}	enrollsdk.ErrorResponse	"error, message"
//	@Router			/admin/codes/{id} [delete].
func (h *AdminCodesHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.InviteService.DeactivateCode(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrCodeInvalid) {
			httpx.WriteJSON(w, http.StatusNotFound, enrollsdk.ErrorResponse{
				Error:   "NOT_FOUND",
				Message: "Invite code not found",
			})
			return
		}
		log.Error("failed to deactivate invite code", "err", err)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
