package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

// ProviderClient is the wire-level surface for one provider. The real
// implementation sits on golang.org/x/oauth2; the fixture implementation
// serves dev mode and tests.
type ProviderClient interface {
	Name() string

	// AuthorizationURL builds the provider redirect carrying the CSRF state
	// and the S256 code challenge.
	AuthorizationURL(state, codeChallenge string) string

	// Exchange redeems the authorization code, proving possession of the
	// PKCE verifier.
	Exchange(ctx context.Context, code, codeVerifier string) (domain.TokenSet, error)

	// UserInfo fetches and normalizes the provider's profile for the token.
	UserInfo(ctx context.Context, accessToken string) (domain.Profile, error)

	// Refresh redeems a refresh token for a fresh token set.
	Refresh(ctx context.Context, refreshToken string) (domain.TokenSet, error)
}

// NewProviderClient builds the x/oauth2-backed client for a configured
// provider. httpClient may be nil to use http.DefaultClient.
func NewProviderClient(cfg ProviderConfig, httpClient *http.Client) ProviderClient {
	return &httpProviderClient{cfg: cfg, hc: httpClient}
}

type httpProviderClient struct {
	cfg ProviderConfig
	hc  *http.Client
}

func (p *httpProviderClient) Name() string { return p.cfg.Name }

func (p *httpProviderClient) AuthorizationURL(state, codeChallenge string) string {
	return p.cfg.oauth2Config().AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

func (p *httpProviderClient) Exchange(ctx context.Context, code, codeVerifier string) (domain.TokenSet, error) {
	tok, err := p.cfg.oauth2Config().Exchange(p.httpCtx(ctx), code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return domain.TokenSet{}, mapExchangeError(err)
	}
	return tokenSetFromOAuth2(tok), nil
}

func (p *httpProviderClient) Refresh(ctx context.Context, refreshToken string) (domain.TokenSet, error) {
	tok, err := p.cfg.oauth2Config().
		TokenSource(p.httpCtx(ctx), &oauth2.Token{RefreshToken: refreshToken}).
		Token()
	if err != nil {
		return domain.TokenSet{}, mapExchangeError(err)
	}
	return tokenSetFromOAuth2(tok), nil
}

func (p *httpProviderClient) UserInfo(ctx context.Context, accessToken string) (domain.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.UserInfoURL, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %w", ErrUserInfoFetchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	hc := p.hc
	if hc == nil {
		hc = http.DefaultClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %w", ErrUserInfoFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.Profile{}, fmt.Errorf("%w: status %d", ErrUserInfoFetchFailed, resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %w", ErrUserInfoFetchFailed, err)
	}

	return normalizeProfile(p.cfg.Name, raw)
}

// httpCtx threads a custom HTTP client through to x/oauth2 when one was
// injected (tests point it at an httptest server).
func (p *httpProviderClient) httpCtx(ctx context.Context) context.Context {
	if p.hc == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, p.hc)
}

func mapExchangeError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		status := 0
		if rerr.Response != nil {
			status = rerr.Response.StatusCode
		}
		return &TokenExchangeError{Status: status, Body: string(rerr.Body)}
	}
	return fmt.Errorf("oauth: token exchange: %w", err)
}

func tokenSetFromOAuth2(tok *oauth2.Token) domain.TokenSet {
	ts := domain.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		ts.ExpiresIn = tok.ExpiresIn
	}
	return ts
}
