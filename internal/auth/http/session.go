package http

import (
	"errors"
	"net/http"

	"github.com/quickplate/quickplate/internal/auth/service"
	"github.com/quickplate/quickplate/pkg/authsdk"
	"github.com/quickplate/quickplate/pkg/httpx"
	"github.com/quickplate/quickplate/pkg/jwtx"
	"github.com/quickplate/quickplate/pkg/slogx"
)

// SessionHandler serves the signed session token for authenticated flow
// sessions.
type SessionHandler struct {
	Sessions *service.SessionService
	Verifier *jwtx.Verifier
}

// HandleGet godoc
//
//	@Summary		Session Token Endpoint
//	@Description	Return the signed JWT for the current flow session, for Bearer use
//	@Description	against other Quickplate services. 401 when no session exists or
//	@Description	the stored token has expired
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionResponse	"token, provider, expires_at"
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/session [get].
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := sessionFromRequest(r)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
			Error:            "no_session",
			ErrorDescription: "Not authenticated",
		})
		return
	}

	stored, err := h.Sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
				Error:            "no_session",
				ErrorDescription: "Not authenticated",
			})
			return
		}
		slogx.FromContext(ctx).Error("session lookup failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to load session",
		})
		return
	}

	// The stored token must still verify; a key rotation invalidates it.
	if _, err := h.Verifier.Verify(stored.Token); err != nil {
		_ = h.Sessions.Clear(ctx, sessionID)
		httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
			Error:            "no_session",
			ErrorDescription: "Session token no longer valid",
		})
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.SessionResponse{
		Token:     stored.Token,
		Provider:  stored.Provider,
		ExpiresAt: stored.ExpiresAt.Unix(),
	})
}
