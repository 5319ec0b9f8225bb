package oauth

import (
	"context"
	"net/url"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

// FixtureClient is a ProviderClient that short-circuits the provider leg of
// the flow. Its authorization URL points straight back at our own callback,
// so dev environments without provider credentials can exercise the full
// redirect, callback, exchange and userinfo path in-process.
type FixtureClient struct {
	Provider    string
	CallbackURL string
	Profile     domain.Profile
	Tokens      domain.TokenSet
}

const fixtureCode = "fixture-code"

func NewFixtureClient(provider, callbackURL string) *FixtureClient {
	return &FixtureClient{
		Provider:    provider,
		CallbackURL: callbackURL,
		Profile: domain.Profile{
			ProviderID:    provider + "_fixture-user",
			Provider:      provider,
			Email:         "fixture@" + provider + ".example",
			Name:          "Fixture User",
			EmailVerified: true,
		},
		Tokens: domain.TokenSet{
			AccessToken: "fixture-access-token",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
		},
	}
}

func (f *FixtureClient) Name() string { return f.Provider }

func (f *FixtureClient) AuthorizationURL(state, codeChallenge string) string {
	q := url.Values{}
	q.Set("code", fixtureCode)
	q.Set("state", state)
	return f.CallbackURL + "?" + q.Encode()
}

func (f *FixtureClient) Exchange(ctx context.Context, code, codeVerifier string) (domain.TokenSet, error) {
	if code != fixtureCode {
		return domain.TokenSet{}, &TokenExchangeError{Status: 400, Body: "invalid_grant"}
	}
	return f.Tokens, nil
}

func (f *FixtureClient) UserInfo(ctx context.Context, accessToken string) (domain.Profile, error) {
	if accessToken != f.Tokens.AccessToken {
		return domain.Profile{}, ErrUserInfoFetchFailed
	}
	return f.Profile, nil
}

func (f *FixtureClient) Refresh(ctx context.Context, refreshToken string) (domain.TokenSet, error) {
	return f.Tokens, nil
}
