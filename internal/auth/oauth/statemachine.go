package oauth

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/quickplate/quickplate/internal/auth/domain"
	"github.com/quickplate/quickplate/internal/auth/vault"
	"github.com/quickplate/quickplate/pkg/cryptox"
	"github.com/quickplate/quickplate/pkg/slogx"
)

// Status is the phase of one SSO attempt.
type Status string

const (
	StatusIdle                   Status = "idle"
	StatusAuthorizationRequested Status = "authorization_requested"
	StatusAwaitingCallback       Status = "awaiting_callback"
	StatusExchangingCode         Status = "exchanging_code"
	StatusFetchingUserInfo       Status = "fetching_user_info"
	StatusCompleted              Status = "completed"
	StatusErrored                Status = "errored"
)

// Client drives the authorization-code flow for all providers. One attempt at
// a time per (session, provider); a new Initiate abandons the previous one.
type Client struct {
	Providers map[string]ProviderClient
	Vault     *vault.Vault

	mu       sync.Mutex
	statuses map[statusKey]Status
}

type statusKey struct {
	sessionID string
	provider  string
}

func NewClient(providers map[string]ProviderClient, v *vault.Vault) *Client {
	return &Client{
		Providers: providers,
		Vault:     v,
		statuses:  make(map[statusKey]Status),
	}
}

// Status reports the phase of the attempt for a (session, provider) pair.
func (c *Client) Status(sessionID, provider string) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.statuses[statusKey{sessionID, provider}]; ok {
		return st
	}
	return StatusIdle
}

func (c *Client) setStatus(sessionID, provider string, st Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st == StatusIdle {
		delete(c.statuses, statusKey{sessionID, provider})
		return
	}
	c.statuses[statusKey{sessionID, provider}] = st
}

// Initiate mints fresh PKCE material, stashes it, and returns the provider
// redirect URL.
func (c *Client) Initiate(ctx context.Context, sessionID, provider string) (string, error) {
	p, ok := c.Providers[provider]
	if !ok {
		return "", ErrProviderNotConfigured
	}

	c.setStatus(sessionID, provider, StatusAuthorizationRequested)

	verifier, err := cryptox.GeneratePKCEVerifier()
	if err != nil {
		c.setStatus(sessionID, provider, StatusErrored)
		return "", err
	}
	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		c.setStatus(sessionID, provider, StatusErrored)
		return "", err
	}

	c.Vault.Put(sessionID, domain.PKCEState{
		Provider:  provider,
		Verifier:  verifier,
		State:     state,
		CreatedAt: time.Now(),
	})

	authURL := p.AuthorizationURL(state, cryptox.DerivePKCEChallenge(verifier))
	c.setStatus(sessionID, provider, StatusAwaitingCallback)

	slogx.FromContext(ctx).Info("sso initiated", "provider", provider)
	return authURL, nil
}

// Abandon discards any pending attempt, e.g. when the user navigates back to
// the login screen.
func (c *Client) Abandon(sessionID, provider string) {
	c.Vault.Drop(sessionID, provider)
	c.setStatus(sessionID, provider, StatusIdle)
}

// Complete handles the provider callback. The stashed PKCE state is consumed
// before anything else, so every outcome, success or failure, burns the
// attempt. CSRF mismatches fail before any network call is made.
func (c *Client) Complete(ctx context.Context, sessionID, provider string, query url.Values) (domain.Profile, domain.TokenSet, error) {
	log := slogx.FromContext(ctx)

	p, ok := c.Providers[provider]
	if !ok {
		return domain.Profile{}, domain.TokenSet{}, ErrProviderNotConfigured
	}

	fail := func(err error) (domain.Profile, domain.TokenSet, error) {
		c.setStatus(sessionID, provider, StatusErrored)
		log.Warn("sso attempt failed", "provider", provider, "err", err)
		return domain.Profile{}, domain.TokenSet{}, err
	}

	if query.Get("error") != "" {
		c.Vault.Drop(sessionID, provider)
		return fail(ErrProviderDenied)
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		c.Vault.Drop(sessionID, provider)
		return fail(ErrMalformedCallback)
	}

	st, err := c.Vault.Consume(sessionID, provider)
	if err != nil {
		return fail(ErrMissingPKCEState)
	}

	if state != st.State {
		return fail(ErrCsrfMismatch)
	}

	c.setStatus(sessionID, provider, StatusExchangingCode)
	tokens, err := p.Exchange(ctx, code, st.Verifier)
	if err != nil {
		return fail(err)
	}

	c.setStatus(sessionID, provider, StatusFetchingUserInfo)
	profile, err := p.UserInfo(ctx, tokens.AccessToken)
	if err != nil {
		return fail(err)
	}

	c.setStatus(sessionID, provider, StatusCompleted)
	log.Info("sso completed", "provider", provider, "provider_id", profile.ProviderID)
	return profile, tokens, nil
}
