package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/parlorworks/parlor/internal/enroll/domain"
	"github.com/parlorworks/parlor/internal/enroll/store"
	"github.com/parlorworks/parlor/pkg/idx"
	"github.com/parlorworks/parlor/pkg/slogx"
)

var (
	ErrSlugTaken = errors.New("tenant slug already taken")

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// TenantService is the operator-facing tenant management surface. Tenant
// identity is immutable once created; only branding may change.
type TenantService struct {
	Store store.Store
}

// CreateTenant registers a new tenant. Slug must be lowercase
// alphanumeric with hyphens and globally unique.
func (s *TenantService) CreateTenant(ctx context.Context, name, slug string, branding domain.Branding) (domain.Tenant, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))
	if name == "" || !slugPattern.MatchString(slug) {
		return domain.Tenant{}, ErrInvalidTenantRequest
	}

	now := time.Now()
	tenant := domain.Tenant{
		ID:        idx.New().String(),
		Name:      name,
		Slug:      slug,
		Branding:  branding,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Tenants().CreateTenant(ctx, tenant); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Tenant{}, ErrSlugTaken
		}
		log.Error("failed to create tenant", slog.Any("error", err))
		return domain.Tenant{}, err
	}

	log.Info("tenant created",
		slog.String("tenant_id", tenant.ID),
		slog.String("slug", tenant.Slug),
	)
	return tenant, nil
}

// UpdateBranding replaces a tenant's branding fields.
func (s *TenantService) UpdateBranding(ctx context.Context, tenantID string, branding domain.Branding) (domain.Tenant, error) {
	log := slogx.FromContext(ctx)

	if _, err := s.Store.Tenants().GetTenantByID(ctx, tenantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Tenant{}, ErrTenantNotFound
		}
		log.Error("failed to fetch tenant", slog.Any("error", err))
		return domain.Tenant{}, err
	}

	if err := s.Store.Tenants().UpdateTenantBranding(ctx, tenantID, branding); err != nil {
		log.Error("failed to update tenant branding",
			slog.String("tenant_id", tenantID),
			slog.Any("error", err),
		)
		return domain.Tenant{}, err
	}

	tenant, err := s.Store.Tenants().GetTenantByID(ctx, tenantID)
	if err != nil {
		log.Error("failed to re-fetch tenant", slog.Any("error", err))
		return domain.Tenant{}, err
	}

	log.Info("tenant branding updated", slog.String("tenant_id", tenantID))
	return tenant, nil
}

// GetTenant returns a tenant by id.
func (s *TenantService) GetTenant(ctx context.Context, tenantID string) (domain.Tenant, error) {
	tenant, err := s.Store.Tenants().GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Tenant{}, ErrTenantNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch tenant", slog.Any("error", err))
		return domain.Tenant{}, err
	}
	return tenant, nil
}

// ListTenants returns all tenants, newest first.
func (s *TenantService) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	tenants, err := s.Store.Tenants().ListTenants(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list tenants", slog.Any("error", err))
		return nil, err
	}
	return tenants, nil
}
