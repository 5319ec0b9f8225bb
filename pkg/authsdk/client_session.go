package authsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetSession returns the signed session token for an authenticated flow
// session. Returns an *APIError with status 401 when no session exists.
func (c *SDKClient) GetSession(ctx context.Context) (*SessionResponse, error) {
	var session SessionResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/session", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUserInfo resolves a bearer session token to its identity, the way a
// downstream service would.
func (c *SDKClient) GetUserInfo(ctx context.Context, token string) (*UserInfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/v1/userinfo"), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr != nil || errResp.Error == "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Code: "unexpected_status"}
		}
		return nil, &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	var info UserInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &info, nil
}

// InitiateSSO asks the service to begin an SSO flow against the named
// provider and returns the authorization URL to navigate the browser to.
func (c *SDKClient) InitiateSSO(ctx context.Context, provider string, remember bool) (*SSOInitiateResponse, error) {
	path := "/v1/sso/" + provider
	if remember {
		path += "?remember=true"
	}
	var resp SSOInitiateResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
