package auth_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quickplate/quickplate/internal/auth/app"
	"github.com/quickplate/quickplate/internal/auth/notify"
	"github.com/quickplate/quickplate/internal/auth/oauth"
	"github.com/quickplate/quickplate/pkg/authsdk"
)

/*
 * Common helpers for auth service end-to-end tests. The service runs
 * in-process behind an httptest server with the fixture SSO provider, a
 * per-test SQLite file and a recording OTP notifier, so the full HTTP
 * surface is exercised without any external dependencies.
 */

const (
	testName     = "Jane Doe"
	testEmail    = "jane@quickplate.test"
	testPassword = "Passw0rd"
	frontendURL  = "/app"
)

type testEnv struct {
	baseURL  string
	notifier *notify.RecorderNotifier
}

// setupAuthServer starts an in-process auth service and returns its base
// URL together with the notifier that captures OTP deliveries.
func setupAuthServer(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	// The provider redirect URLs need the server address, which is only
	// known once the listener is up, so the handler is bound late.
	var handler http.Handler
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := app.Config{
		Issuer:               "quickplate-auth-test",
		KeyID:                "test-key-001",
		SessionTTL:           time.Hour,
		DatabaseFile:         filepath.Join(dir, "auth.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		PublicBaseURL:        srv.URL,
		FrontendURL:          frontendURL,
		SSOFixture:           true,
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
	cfg.Providers = make(map[string]app.ProviderCredentials)
	for _, name := range oauth.KnownProviders() {
		cfg.Providers[name] = app.ProviderCredentials{
			RedirectURL: srv.URL + "/auth/" + name + "/callback",
		}
	}

	notifier := &notify.RecorderNotifier{}
	application, err := app.NewWithNotifier(cfg, notifier)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	handler = application.Handler()

	return &testEnv{baseURL: srv.URL, notifier: notifier}
}

// lastCode returns the most recently emailed OTP code.
func (env *testEnv) lastCode(t *testing.T) string {
	t.Helper()
	challenge, ok := env.notifier.Last()
	require.True(t, ok, "expected an OTP to have been sent")
	return challenge.Code
}

// signupVerified drives a signup through OTP verification, leaving the
// session authenticated on the dashboard.
func signupVerified(t *testing.T, env *testEnv, client *authsdk.SDKClient) {
	t.Helper()
	ctx := t.Context()

	state, err := client.Goto(ctx, "signup")
	require.NoError(t, err)
	require.Equal(t, "signup", state.Screen)

	state, err = client.Signup(ctx, testName, testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, "login_otp", state.Screen)

	state, err = client.VerifyOTP(ctx, env.lastCode(t))
	require.NoError(t, err)
	require.Equal(t, "dashboard", state.Screen)
	require.True(t, state.Authenticated)
}

// loginVerified drives a password login through the emailed login code,
// leaving the session authenticated on the dashboard.
func loginVerified(t *testing.T, env *testEnv, client *authsdk.SDKClient, email, password string) {
	t.Helper()
	ctx := t.Context()

	state, err := client.Login(ctx, email, password, false)
	require.NoError(t, err)
	require.Equal(t, "login_otp", state.Screen)

	state, err = client.VerifyOTP(ctx, env.lastCode(t))
	require.NoError(t, err)
	require.Equal(t, "dashboard", state.Screen)
	require.True(t, state.Authenticated)
}

// requireUnauthenticated asserts GET /v1/session returns a 401.
func requireUnauthenticated(t *testing.T, client *authsdk.SDKClient) {
	t.Helper()

	_, err := client.GetSession(t.Context())
	require.Error(t, err)

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
