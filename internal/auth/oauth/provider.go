package oauth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// ProviderConfig is everything needed to talk to one SSO provider.
type ProviderConfig struct {
	Name         string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	Endpoint     oauth2.Endpoint
	UserInfoURL  string
}

// Configured reports whether the provider has credentials set. Unconfigured
// providers are registered but refuse to initiate.
func (c ProviderConfig) Configured() bool {
	return c.ClientID != ""
}

// Defaults for the providers the login screen offers. Client credentials and
// redirect URLs come from the environment; endpoints and scopes are fixed.
var providerDefaults = map[string]ProviderConfig{
	"google": {
		Name:        "google",
		Scopes:      []string{"openid", "email", "profile"},
		Endpoint:    endpoints.Google,
		UserInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
	},
	"facebook": {
		Name:        "facebook",
		Scopes:      []string{"email", "public_profile"},
		Endpoint:    endpoints.Facebook,
		UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email,picture",
	},
	"github": {
		Name:        "github",
		Scopes:      []string{"read:user", "user:email"},
		Endpoint:    endpoints.GitHub,
		UserInfoURL: "https://api.github.com/user",
	},
}

// KnownProviders lists the provider names the registry understands.
func KnownProviders() []string {
	return []string{"google", "facebook", "github"}
}

// DefaultProviderConfig returns the fixed endpoint/scope defaults for a known
// provider name, or false for an unknown one.
func DefaultProviderConfig(name string) (ProviderConfig, bool) {
	cfg, ok := providerDefaults[name]
	return cfg, ok
}

// oauth2Config builds the x/oauth2 config for this provider.
func (c ProviderConfig) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       c.Scopes,
		Endpoint:     c.Endpoint,
	}
}
