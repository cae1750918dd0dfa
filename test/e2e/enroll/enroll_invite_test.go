package enroll_test

import (
	"testing"

	"github.com/parlorworks/parlor/pkg/enrollsdk"
	"github.com/stretchr/testify/require"
)

// TestInviteEnrollmentFlow walks the full happy path:
// 1. Operator provisions a tenant and mints an invite code
// 2. An anonymous client validates the code and sees the company preview
// 3. The client redeems the code and receives a session token
// 4. The session token resolves the profile via /me
func TestInviteEnrollmentFlow(t *testing.T) {
	baseURL, cleanup := setupEnrollContainer(t)
	defer cleanup()

	admin := enrollsdk.NewClient(baseURL)
	admin.AdminToken = adminToken

	tenant, code := seedTenantWithCode(t, admin, "acme", "TEAM-2024", nil)
	t.Logf("Seeded tenant %s with code %s", tenant.ID, code.Code)

	client := enrollsdk.NewClient(baseURL)

	// Validate previews the company without consuming a use.
	validated, err := client.ValidateCode(t.Context(), "team-2024")
	require.NoError(t, err)
	require.True(t, validated.Valid)
	require.Equal(t, "acme", validated.Company.Slug)
	require.Equal(t, "#6633cc", validated.Company.Branding.PrimaryColor)

	// Redeem enrolls the user and issues a session.
	redeemed, err := client.RedeemCode(t.Context(), "TEAM-2024", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)
	require.True(t, redeemed.Success)
	require.NotEmpty(t, redeemed.SessionToken)
	require.Equal(t, "alice@example.com", redeemed.User.Email)
	require.Equal(t, "user", redeemed.User.Role)
	require.Equal(t, tenant.ID, redeemed.Company.ID)

	// The session token resolves the profile.
	me, err := client.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, redeemed.User.ID, me.User.ID)
	require.Equal(t, "acme", me.Company.Slug)

	// One seat consumed in the operator view.
	usage, err := admin.CodeUsage(t.Context(), code.ID)
	require.NoError(t, err)
	require.Equal(t, 1, usage.Code.CurrentUses)
	require.Equal(t, 1, usage.Redemptions)
}

// TestInviteIdempotentRedemption verifies that re-redeeming with the same
// email returns the same user and consumes nothing further.
func TestInviteIdempotentRedemption(t *testing.T) {
	baseURL, cleanup := setupEnrollContainer(t)
	defer cleanup()

	admin := enrollsdk.NewClient(baseURL)
	admin.AdminToken = adminToken
	_, code := seedTenantWithCode(t, admin, "acme", "TEAM-2024", nil)

	client := enrollsdk.NewClient(baseURL)

	first, err := client.RedeemCode(t.Context(), "TEAM-2024", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := client.RedeemCode(t.Context(), "TEAM-2024", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)
	require.True(t, second.Success)
	require.Equal(t, first.User.ID, second.User.ID)

	usage, err := admin.CodeUsage(t.Context(), code.ID)
	require.NoError(t, err)
	require.Equal(t, 1, usage.Code.CurrentUses)
	require.Equal(t, 1, usage.Redemptions)
}

// TestInviteCapacityExhaustion fills a capped code and verifies the FULL
// rejection comes back as a 200 body, not an HTTP error.
func TestInviteCapacityExhaustion(t *testing.T) {
	baseURL, cleanup := setupEnrollContainer(t)
	defer cleanup()

	admin := enrollsdk.NewClient(baseURL)
	admin.AdminToken = adminToken
	maxUses := 1
	_, code := seedTenantWithCode(t, admin, "acme", "LAST-SEAT", &maxUses)

	winner := enrollsdk.NewClient(baseURL)
	redeemed, err := winner.RedeemCode(t.Context(), "LAST-SEAT", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)
	require.True(t, redeemed.Success)

	loser := enrollsdk.NewClient(baseURL)
	rejected, err := loser.RedeemCode(t.Context(), "LAST-SEAT", "Bob Tran", "bob@example.com")
	require.NoError(t, err)
	require.False(t, rejected.Success)
	require.Equal(t, "INVALID_CODE", rejected.Error)
	require.Empty(t, rejected.SessionToken)

	validated, err := loser.ValidateCode(t.Context(), "LAST-SEAT")
	require.NoError(t, err)
	require.False(t, validated.Valid)
	require.Equal(t, "FULL", validated.Error)

	usage, err := admin.CodeUsage(t.Context(), code.ID)
	require.NoError(t, err)
	require.Equal(t, 1, usage.Code.CurrentUses)
}

// TestReturningUserLookup verifies the code-free re-entry path.
func TestReturningUserLookup(t *testing.T) {
	baseURL, cleanup := setupEnrollContainer(t)
	defer cleanup()

	admin := enrollsdk.NewClient(baseURL)
	admin.AdminToken = adminToken
	_, code := seedTenantWithCode(t, admin, "acme", "TEAM-2024", nil)

	client := enrollsdk.NewClient(baseURL)
	redeemed, err := client.RedeemCode(t.Context(), "TEAM-2024", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)
	require.True(t, redeemed.Success)

	// Lookup reuses the identity without a code.
	returning := enrollsdk.NewClient(baseURL)
	found, err := returning.Lookup(t.Context(), "alice@example.com")
	require.NoError(t, err)
	require.True(t, found.Found)
	require.Equal(t, redeemed.User.ID, found.User.ID)
	require.NotEmpty(t, found.SessionToken)

	me, err := returning.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, redeemed.User.ID, me.User.ID)

	// Lookup never consumes invite code uses.
	usage, err := admin.CodeUsage(t.Context(), code.ID)
	require.NoError(t, err)
	require.Equal(t, 1, usage.Code.CurrentUses)
	require.Equal(t, 1, usage.Redemptions)

	// Unknown emails get found:false, not an error.
	missing, err := returning.Lookup(t.Context(), "stranger@example.com")
	require.NoError(t, err)
	require.False(t, missing.Found)
}

// TestDeactivatedCodeRejection verifies the operator kill switch.
func TestDeactivatedCodeRejection(t *testing.T) {
	baseURL, cleanup := setupEnrollContainer(t)
	defer cleanup()

	admin := enrollsdk.NewClient(baseURL)
	admin.AdminToken = adminToken
	_, code := seedTenantWithCode(t, admin, "acme", "SOON-GONE", nil)

	require.NoError(t, admin.DeactivateCode(t.Context(), code.ID))

	client := enrollsdk.NewClient(baseURL)
	validated, err := client.ValidateCode(t.Context(), "SOON-GONE")
	require.NoError(t, err)
	require.False(t, validated.Valid)
	require.Equal(t, "INACTIVE", validated.Error)

	rejected, err := client.RedeemCode(t.Context(), "SOON-GONE", "Alice Nguyen", "alice@example.com")
	require.NoError(t, err)
	require.False(t, rejected.Success)
}

// TestAdminAuthRequired verifies the operator surface rejects anonymous
// and wrongly-authenticated callers.
func TestAdminAuthRequired(t *testing.T) {
	baseURL, cleanup := setupEnrollContainer(t)
	defer cleanup()

	anon := enrollsdk.NewClient(baseURL)
	_, err := anon.CreateTenant(t.Context(), enrollsdk.CreateTenantRequest{Name: "Acme", Slug: "acme"})
	var apiErr *enrollsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)

	wrong := enrollsdk.NewClient(baseURL)
	wrong.AdminToken = "not-the-token"
	_, err = wrong.ListTenants(t.Context())
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
}

// TestHealthEndpoints verifies the probes.
func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupEnrollContainer(t)
	defer cleanup()

	client := enrollsdk.NewClient(baseURL)

	livez, err := client.Livez(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", livez.Status)

	readyz, err := client.Readyz(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", readyz.Status)
	require.Equal(t, "ok", readyz.Checks.Database)
}
