package enroll_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/parlorworks/parlor/pkg/enrollsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for enroll service end-to-end
 * tests: container setup, seeding and assertions.
 */

const (
	testImageName = "parlor-enroll-test:latest"

	adminToken = "test-operator-token-12345"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Enroll Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Enroll Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/enroll/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupEnrollContainer starts the enroll service in a container and returns
// the base URL. Rate limits are raised so rapid test requests do not trip
// the production defaults.
func setupEnrollContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"ENROLL_DB_DRIVER":     "sqlite",
			"ENROLL_DATABASE_FILE": "/enroll.db",
			"ENROLL_ADMIN_TOKEN":   adminToken,
			"ENROLL_SESSION_TTL":   "1h",
			"ENV":                  "test",
			"LOG_LEVEL":            "info",
			"LOG_FORMAT":           "json",
			// Raised rate limits so rapid test requests don't hit the
			// strict production defaults
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// seedTenantWithCode provisions a tenant and an invite code through the
// admin API and returns both.
func seedTenantWithCode(
	t *testing.T,
	client *enrollsdk.Client,
	slug, code string,
	maxUses *int,
) (*enrollsdk.TenantResponse, *enrollsdk.CodeResponse) {
	t.Helper()

	tenant, err := client.CreateTenant(t.Context(), enrollsdk.CreateTenantRequest{
		Name:     "Acme Corp",
		Slug:     slug,
		Branding: enrollsdk.Branding{PrimaryColor: "#6633cc"},
	})
	require.NoError(t, err)

	minted, err := client.MintCode(t.Context(), enrollsdk.MintCodeRequest{
		TenantID: tenant.ID,
		Code:     code,
		MaxUses:  maxUses,
	})
	require.NoError(t, err)

	return tenant, minted
}
