package domain

import "time"

// PKCEState is the per-attempt secret material stashed before redirecting
// the browser to an SSO provider. It is consumed exactly once when the
// callback returns.
type PKCEState struct {
	Provider  string
	Verifier  string // PKCE code_verifier, never leaves the server
	State     string // CSRF token echoed back by the provider
	CreatedAt time.Time
}
