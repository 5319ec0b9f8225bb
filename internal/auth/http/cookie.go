package http

import (
	"net/http"

	"github.com/quickplate/quickplate/pkg/cryptox"
)

// sessionCookieName identifies the anonymous flow session. The value is
// an opaque random token, never a credential.
const sessionCookieName = "qp_session"

// ensureSession returns the flow session ID from the request cookie,
// minting and setting a fresh one when absent.
func ensureSession(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := cryptox.MustGenerateToken(cryptox.TokenSize128)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// sessionFromRequest returns the flow session ID without minting one.
func sessionFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
