package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quickplate/quickplate/pkg/authsdk"
)

// TestUserInfoWithBearerToken verifies a minted session token resolves
// back to its identity the way a downstream service would use it.
func TestUserInfoWithBearerToken(t *testing.T) {
	env := setupAuthServer(t)
	client := authsdk.NewSDKClient(env.baseURL)
	ctx := t.Context()

	signupVerified(t, env, client)

	session, err := client.GetSession(ctx)
	require.NoError(t, err)

	info, err := client.GetUserInfo(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, testEmail, info.Email)
	require.Equal(t, testName, info.Name)
	require.Equal(t, "password", info.Provider)
	require.NotEmpty(t, info.UserID)
}

// TestUserInfoRejectsBadToken verifies garbage and missing tokens are a 401.
func TestUserInfoRejectsBadToken(t *testing.T) {
	env := setupAuthServer(t)
	client := authsdk.NewSDKClient(env.baseURL)
	ctx := t.Context()

	_, err := client.GetUserInfo(ctx, "not-a-token")
	require.Error(t, err)

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
