package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderNotConfigured means the provider name is unknown or has no
	// client credentials in the environment.
	ErrProviderNotConfigured = errors.New("oauth: provider not configured")

	// ErrProviderDenied means the provider's callback carried an error
	// parameter, typically because the user clicked Cancel on the consent
	// screen.
	ErrProviderDenied = errors.New("oauth: provider denied authorization")

	// ErrMalformedCallback means the callback is missing the code or state
	// query parameters.
	ErrMalformedCallback = errors.New("oauth: malformed callback")

	// ErrMissingPKCEState means no pending attempt exists for this session
	// and provider. Replayed callbacks land here.
	ErrMissingPKCEState = errors.New("oauth: no pending pkce state")

	// ErrCsrfMismatch means the state echoed by the provider does not match
	// the one we issued. The attempt is abandoned before any network call.
	ErrCsrfMismatch = errors.New("oauth: state mismatch")

	// ErrUserInfoFetchFailed means the code exchange succeeded but the
	// userinfo request did not.
	ErrUserInfoFetchFailed = errors.New("oauth: userinfo fetch failed")
)

// TokenExchangeError reports a non-2xx response from the provider's token
// endpoint.
type TokenExchangeError struct {
	Status int
	Body   string
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("oauth: token exchange failed with status %d", e.Status)
}
