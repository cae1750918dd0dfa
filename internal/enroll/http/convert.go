package http

import (
	"github.com/parlorworks/parlor/internal/enroll/domain"
	"github.com/parlorworks/parlor/pkg/enrollsdk"
)

func toCompany(t domain.TenantPublic) enrollsdk.Company {
	return enrollsdk.Company{
		ID:   t.ID,
		Name: t.Name,
		Slug: t.Slug,
		Branding: enrollsdk.Branding{
			PrimaryColor: t.Branding.PrimaryColor,
			LogoURL:      t.Branding.LogoURL,
		},
	}
}

func toUser(u domain.UserPublic) enrollsdk.User {
	return enrollsdk.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func toTenantResponse(t domain.Tenant) enrollsdk.TenantResponse {
	return enrollsdk.TenantResponse{
		ID:   t.ID,
		Name: t.Name,
		Slug: t.Slug,
		Branding: enrollsdk.Branding{
			PrimaryColor: t.Branding.PrimaryColor,
			LogoURL:      t.Branding.LogoURL,
		},
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toCodeResponse(c domain.InviteCode) enrollsdk.CodeResponse {
	return enrollsdk.CodeResponse{
		ID:          c.ID,
		Code:        c.Code,
		TenantID:    c.TenantID,
		MaxUses:     c.MaxUses,
		CurrentUses: c.CurrentUses,
		ExpiresAt:   c.ExpiresAt,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}
