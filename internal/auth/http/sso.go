package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/quickplate/quickplate/internal/auth/flow"
	"github.com/quickplate/quickplate/internal/auth/oauth"
	"github.com/quickplate/quickplate/pkg/authsdk"
	"github.com/quickplate/quickplate/pkg/httpx"
	"github.com/quickplate/quickplate/pkg/slogx"
)

// rememberCookieName carries the remember-me choice across the provider
// round trip, since the callback arrives as a bare redirect.
const rememberCookieName = "qp_sso_remember"

// SSOHandler drives the OAuth 2.0 Authorization Code + PKCE flow against
// the configured providers.
type SSOHandler struct {
	Flow *flow.Manager
	SSO  *oauth.Client

	// FrontendURL is where the callback sends the browser afterwards.
	FrontendURL string
}

// HandleInitiate godoc
//
//	@Summary		SSO Initiation Endpoint
//	@Description	Begin an SSO attempt against the named provider. Returns the
//	@Description	authorization URL to navigate the browser to. Any previous pending
//	@Description	attempt for this session and provider is discarded
//	@Tags			SSO
//	@Produce		json
//	@Param			provider	path		string						true	"Provider name: google, facebook or github"
//	@Param			remember	query		bool						false	"Persist the resulting session across restarts"
//	@Success		200			{object}	authsdk.SSOInitiateResponse	"provider, authorization_url"
//	@Failure		404			{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		500			{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/sso/{provider} [get].
func (h *SSOHandler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	provider := r.PathValue("provider")
	sessionID := ensureSession(w, r)

	authURL, err := h.SSO.Initiate(ctx, sessionID, provider)
	if err != nil {
		if errors.Is(err, oauth.ErrProviderNotConfigured) {
			httpx.WriteJSON(w, http.StatusNotFound, authsdk.ErrorResponse{
				Error:            "unknown_provider",
				ErrorDescription: "No such SSO provider",
			})
			return
		}
		slogx.FromContext(ctx).Error("sso initiate failed", "provider", provider, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to start SSO",
		})
		return
	}

	remember := r.URL.Query().Get("remember") == "true"
	http.SetCookie(w, &http.Cookie{
		Name:     rememberCookieName,
		Value:    boolString(remember),
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.SSOInitiateResponse{
		Provider:         provider,
		AuthorizationURL: authURL,
	})
}

// HandleCallback godoc
//
//	@Summary		SSO Callback Endpoint
//	@Description	Provider redirect target. Validates state, exchanges the code with
//	@Description	PKCE, fetches the user profile and establishes the session, then
//	@Description	redirects the browser back to the frontend. Failures redirect with
//	@Description	an error query parameter instead of rendering a body
//	@Tags			SSO
//	@Param			provider	path	string	true	"Provider name"
//	@Param			code		query	string	false	"Authorization code"
//	@Param			state		query	string	false	"CSRF state"
//	@Param			error		query	string	false	"Provider error code"
//	@Success		302			"redirect to frontend"
//	@Router			/auth/{provider}/callback [get].
func (h *SSOHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	provider := r.PathValue("provider")

	sessionID, ok := sessionFromRequest(r)
	if !ok {
		h.redirectError(w, r, "missing_session")
		return
	}

	profile, tokens, err := h.SSO.Complete(ctx, sessionID, provider, r.URL.Query())
	if err != nil {
		h.redirectError(w, r, callbackErrorCode(err))
		return
	}

	remember := false
	if c, cerr := r.Cookie(rememberCookieName); cerr == nil {
		remember = c.Value == "true"
	}
	clearCookie(w, rememberCookieName)

	if _, err := h.Flow.CompleteSSO(ctx, sessionID, profile, tokens, remember); err != nil {
		log.Error("sso session establishment failed", "provider", provider, "err", err)
		h.redirectError(w, r, "server_error")
		return
	}

	http.Redirect(w, r, h.FrontendURL, http.StatusFound)
}

func (h *SSOHandler) redirectError(w http.ResponseWriter, r *http.Request, code string) {
	u, err := url.Parse(h.FrontendURL)
	if err != nil {
		http.Redirect(w, r, h.FrontendURL, http.StatusFound)
		return
	}
	q := u.Query()
	q.Set("sso_error", code)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusFound)
}

// callbackErrorCode maps completion failures to the opaque codes exposed
// to the frontend. Internal detail stays in the logs.
func callbackErrorCode(err error) string {
	switch {
	case errors.Is(err, oauth.ErrProviderNotConfigured):
		return "unknown_provider"
	case errors.Is(err, oauth.ErrProviderDenied):
		return "access_denied"
	case errors.Is(err, oauth.ErrMalformedCallback):
		return "malformed_callback"
	case errors.Is(err, oauth.ErrMissingPKCEState):
		return "expired_attempt"
	case errors.Is(err, oauth.ErrCsrfMismatch):
		return "state_mismatch"
	default:
		return "exchange_failed"
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
