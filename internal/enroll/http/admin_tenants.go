package http

import (
	"errors"
	"net/http"

	"github.com/parlorworks/parlor/internal/enroll/domain"
	"github.com/parlorworks/parlor/internal/enroll/service"
	"github.com/parlorworks/parlor/pkg/enrollsdk"
	"github.com/parlorworks/parlor/pkg/httpx"
	"github.com/parlorworks/parlor/pkg/slogx"
)

type AdminTenantsHandler struct {
	TenantService *service.TenantService
}

// HandleCreate godoc
//
//	@Summary		Create Tenant
//	@Description	Register a new tenant with a unique slug. Operator only.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		enrollsdk.CreateTenantRequest	true	"Tenant name, slug and branding"
//	@Success		201		{object}	enrollsdk.TenantResponse		"created tenant"
//	@Failure		400		{object}	enrollsdk.ErrorResponse			"error, message"
//	@Failure		401		{object}	enrollsdk.ErrorResponse			"error, message"
//	@Failure		409		{object}	enrollsdk.ErrorResponse			"slug already taken"
//	@Failure		500		{object}	enrollsdk.ErrorResponse			"error, message"
//	@Router			/admin/tenants [post].
func (h *AdminTenantsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req enrollsdk.CreateTenantRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeValidationError(w, "Invalid JSON body")
		return
	}

	tenant, err := h.TenantService.CreateTenant(ctx, req.Name, req.Slug, domain.Branding{
		PrimaryColor: req.Branding.PrimaryColor,
		LogoURL:      req.Branding.LogoURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTenantRequest):
			writeValidationError(w, "Name is required and slug must be lowercase alphanumeric with hyphens")
		case errors.Is(err, service.ErrSlugTaken):
			httpx.WriteJSON(w, http.StatusConflict, enrollsdk.ErrorResponse{
				Error:   "SLUG_TAKEN",
				Message: err.Error(),
			})
		default:
			log.Error("failed to create tenant", "err", err)
			writeInternalError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTenantResponse(tenant))
}

// HandleList godoc
//
//	@Summary		List Tenants
//	@Description	Return all tenants, newest first. Operator only.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		enrollsdk.TenantResponse	"tenants"
//	@Failure		401	{object}	enrollsdk.ErrorResponse		"error, message"
//	@Failure		500	{object}	enrollsdk.ErrorResponse		"error, message"
//	@Router			/admin/tenants [get].
func (h *AdminTenantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	tenants, err := h.TenantService.ListTenants(ctx)
	if err != nil {
		log.Error("failed to list tenants", "err", err)
		writeInternalError(w)
		return
	}

	out := make([]enrollsdk.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, toTenantResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateBranding godoc
//
//	@Summary		Update Tenant Branding
//	@Description	Replace a tenant's branding. Identity (name, slug) is immutable. Operator only.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Tenant ID"
//	@Param			request	body		enrollsdk.UpdateBrandingRequest	true	"New branding"
//	@Success		200		{object}	enrollsdk.TenantResponse		"updated tenant"
//	@Failure		400		{object}	enrollsdk.ErrorResponse			"error, message"
//	@Failure		401		{object}	enrollsdk.ErrorResponse			"error, message"
//	@Failure		404		{object}	enrollsdk.ErrorResponse			"tenant not found"
//	@Failure		500		{object}	enrollsdk.ErrorResponse			"error, message"
//	@Router			/admin/tenants/{id}/branding [put].
func (h *AdminTenantsHandler) HandleUpdateBranding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req enrollsdk.UpdateBrandingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeValidationError(w, "Invalid JSON body")
		return
	}

	tenant, err := h.TenantService.UpdateBranding(ctx, r.PathValue("id"), domain.Branding{
		PrimaryColor: req.Branding.PrimaryColor,
		LogoURL:      req.Branding.LogoURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, enrollsdk.ErrorResponse{
				Error:   "NOT_FOUND",
				Message: err.Error(),
			})
			return
		}
		log.Error("failed to update branding", "err", err)
		writeInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTenantResponse(tenant))
}
