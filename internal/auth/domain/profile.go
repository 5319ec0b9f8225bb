package domain

import "time"

// Profile is the normalized identity handed to the rest of the app after any
// completed login, password or SSO. ProviderID is "{provider}_{rawID}" for
// SSO logins and the local user ID for password logins.
type Profile struct {
	ProviderID    string `json:"id"`
	Provider      string `json:"provider"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// TokenSet carries provider tokens returned from an SSO code exchange.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"` // typically "Bearer"
	ExpiresIn    int64  `json:"expires_in,omitempty"` // seconds until expiry
}

// TTL converts ExpiresIn to a duration, zero when the provider sent none.
func (t TokenSet) TTL() time.Duration {
	if t.ExpiresIn <= 0 {
		return 0
	}
	return time.Duration(t.ExpiresIn) * time.Second
}
