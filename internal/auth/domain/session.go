package domain

import "time"

// StoredToken is a session token at rest. Remembered tokens live in the
// durable store and survive restarts; the rest are held in memory only.
type StoredToken struct {
	SessionID string
	UserID    string
	Token     string
	Provider  string
	Persist   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Session is the live view surfaced to the HTTP layer.
type Session struct {
	Token     string    `json:"token,omitempty"`
	Profile   *Profile  `json:"profile,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Authenticated reports whether the session carries a usable token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
