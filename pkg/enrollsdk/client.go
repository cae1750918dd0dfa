// Package enrollsdk is a typed client for the Parlor enrollment service.
// It covers the public invite endpoints, the authenticated profile endpoint
// and the operator admin surface.
package enrollsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is returned when the service responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("enroll: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
}

// Client is a client for the enrollment service. SessionToken and
// AdminToken are optional; set them for the authenticated and operator
// surfaces respectively.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// SessionToken authenticates /me requests.
	SessionToken string

	// AdminToken authenticates /admin requests.
	AdminToken string
}

// NewClient creates an enrollment service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ValidateCode checks an invite code without consuming a use.
func (c *Client) ValidateCode(ctx context.Context, code string) (*ValidateResponse, error) {
	var out ValidateResponse
	if err := c.do(ctx, http.MethodPost, "/invite/validate", ValidateRequest{Code: code}, "", http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RedeemCode exchanges an invite code plus (name, email) for an identity
// and session token. On success the client's SessionToken is updated.
func (c *Client) RedeemCode(ctx context.Context, code, name, email string) (*RedeemResponse, error) {
	var out RedeemResponse
	if err := c.do(ctx, http.MethodPost, "/invite/redeem", RedeemRequest{Code: code, Name: name, Email: email}, "", http.StatusOK, &out); err != nil {
		return nil, err
	}
	if out.Success {
		c.SessionToken = out.SessionToken
	}
	return &out, nil
}

// Lookup resolves a returning user by email. On success the client's
// SessionToken is updated.
func (c *Client) Lookup(ctx context.Context, email string) (*LookupResponse, error) {
	var out LookupResponse
	if err := c.do(ctx, http.MethodPost, "/invite/lookup", LookupRequest{Email: email}, "", http.StatusOK, &out); err != nil {
		return nil, err
	}
	if out.Found {
		c.SessionToken = out.SessionToken
	}
	return &out, nil
}

// Me returns the profile for the current session token.
func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := c.do(ctx, http.MethodGet, "/me", nil, c.SessionToken, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTenant registers a new tenant. Operator only.
func (c *Client) CreateTenant(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	var out TenantResponse
	if err := c.do(ctx, http.MethodPost, "/admin/tenants", req, c.AdminToken, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTenants returns all tenants. Operator only.
func (c *Client) ListTenants(ctx context.Context) ([]TenantResponse, error) {
	var out []TenantResponse
	if err := c.do(ctx, http.MethodGet, "/admin/tenants", nil, c.AdminToken, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateBranding replaces a tenant's branding. Operator only.
func (c *Client) UpdateBranding(ctx context.Context, tenantID string, branding Branding) (*TenantResponse, error) {
	var out TenantResponse
	path := "/admin/tenants/" + tenantID + "/branding"
	if err := c.do(ctx, http.MethodPut, path, UpdateBrandingRequest{Branding: branding}, c.AdminToken, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MintCode creates an invite code. Operator only.
func (c *Client) MintCode(ctx context.Context, req MintCodeRequest) (*CodeResponse, error) {
	var out CodeResponse
	if err := c.do(ctx, http.MethodPost, "/admin/codes", req, c.AdminToken, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CodeUsage returns a code's lifecycle status and redemption count.
// Operator only.
func (c *Client) CodeUsage(ctx context.Context, codeID string) (*CodeUsageResponse, error) {
	var out CodeUsageResponse
	if err := c.do(ctx, http.MethodGet, "/admin/codes/"+codeID+"/usage", nil, c.AdminToken, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeactivateCode permanently deactivates an invite code. Operator only.
func (c *Client) DeactivateCode(ctx context.Context, codeID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/codes/"+codeID, nil, c.AdminToken, http.StatusNoContent, nil)
}

// Livez checks the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", nil, "", http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz checks the readiness probe.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", nil, "", http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	body any,
	token string,
	expectedStatus int,
	target any,
) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var parsed ErrorResponse
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
			apiErr.Code = parsed.Error
			apiErr.Message = parsed.Message
		} else {
			apiErr.Code = "UNEXPECTED_STATUS"
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
