package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quickplate/quickplate/pkg/authsdk"
)

// TestLivezEndpoint verifies the liveness check endpoint.
func TestLivezEndpoint(t *testing.T) {
	env := setupAuthServer(t)
	client := authsdk.NewSDKClient(env.baseURL)

	health, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Uptime)
	require.NotEmpty(t, health.Version)
}

// TestReadyzEndpoint verifies the readiness check endpoint reports its
// dependency checks.
func TestReadyzEndpoint(t *testing.T) {
	env := setupAuthServer(t)
	client := authsdk.NewSDKClient(env.baseURL)

	health, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Signer)
}
