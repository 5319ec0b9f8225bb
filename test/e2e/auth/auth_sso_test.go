package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quickplate/quickplate/pkg/authsdk"
)

// TestFixtureSSOFlow drives the full SSO round trip against the fixture
// provider: initiate, follow the authorization URL back to the callback,
// and land authenticated on the dashboard.
func TestFixtureSSOFlow(t *testing.T) {
	env := setupAuthServer(t)
	client := authsdk.NewSDKClient(env.baseURL)
	ctx := t.Context()

	initiate, err := client.InitiateSSO(ctx, "google", true)
	require.NoError(t, err)
	require.Equal(t, "google", initiate.Provider)
	require.NotEmpty(t, initiate.AuthorizationURL)

	// The fixture authorization URL points straight back at our callback.
	resp, err := client.HTTPClient.Get(initiate.AuthorizationURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, frontendURL, resp.Header.Get("Location"))

	state, err := client.State(ctx)
	require.NoError(t, err)
	require.Equal(t, "dashboard", state.Screen)
	require.True(t, state.Authenticated)
	require.NotNil(t, state.Profile)
	require.Equal(t, "google", state.Profile.Provider)

	session, err := client.GetSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "google", session.Provider)
}

// TestSSOLogout verifies logging out after an SSO login resets the flow.
func TestSSOLogout(t *testing.T) {
	env := setupAuthServer(t)
	client := authsdk.NewSDKClient(env.baseURL)
	ctx := t.Context()

	initiate, err := client.InitiateSSO(ctx, "github", false)
	require.NoError(t, err)

	resp, err := client.HTTPClient.Get(initiate.AuthorizationURL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	state, err := client.Logout(ctx)
	require.NoError(t, err)
	require.Equal(t, "login", state.Screen)
	requireUnauthenticated(t, client)
}

// TestSSOUnknownProvider verifies an unregistered provider is a 404.
func TestSSOUnknownProvider(t *testing.T) {
	env := setupAuthServer(t)
	client := authsdk.NewSDKClient(env.baseURL)

	_, err := client.InitiateSSO(t.Context(), "twitter", false)
	require.Error(t, err)

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "unknown_provider", apiErr.Code)
}

// TestSSOReplayedCallback verifies a second visit to the same callback
// URL fails instead of minting another session.
func TestSSOReplayedCallback(t *testing.T) {
	env := setupAuthServer(t)
	client := authsdk.NewSDKClient(env.baseURL)
	ctx := t.Context()

	initiate, err := client.InitiateSSO(ctx, "google", false)
	require.NoError(t, err)

	resp, err := client.HTTPClient.Get(initiate.AuthorizationURL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, frontendURL, resp.Header.Get("Location"))

	// Replay the callback; the PKCE state was consumed by the first visit.
	resp, err = client.HTTPClient.Get(initiate.AuthorizationURL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := resp.Location()
	require.NoError(t, err)
	require.Equal(t, "expired_attempt", loc.Query().Get("sso_error"))
}
