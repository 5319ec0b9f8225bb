package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/quickplate/quickplate/internal/auth/domain"
	"github.com/quickplate/quickplate/internal/auth/store"
	"github.com/quickplate/quickplate/pkg/jwtx"
	"github.com/quickplate/quickplate/pkg/slogx"
)

var ErrNoSession = errors.New("no_session")

// SessionService mints session JWTs and holds them per browser session.
// Remembered logins go to the durable store and survive restarts; the rest
// live in memory only.
type SessionService struct {
	Store  store.Store
	Signer *jwtx.Signer
	Issuer string
	TTL    time.Duration

	mu       sync.Mutex
	volatile map[string]domain.StoredToken
}

// Issue signs a session token for the user and stores it under sessionID,
// replacing whatever was there. ttl <= 0 falls back to the service default.
func (s *SessionService) Issue(ctx context.Context, sessionID string, user domain.User, provider string, ttl time.Duration, persist bool) (domain.StoredToken, error) {
	if ttl <= 0 {
		ttl = s.ttl()
	}
	now := time.Now()

	claims := jwtx.NewSessionClaims(user.ID, user.Email, user.Name, provider, s.Issuer, ttl, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.StoredToken{}, err
	}

	st := domain.StoredToken{
		SessionID: sessionID,
		UserID:    user.ID,
		Token:     token,
		Provider:  provider,
		Persist:   persist,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.put(ctx, st); err != nil {
		return domain.StoredToken{}, err
	}

	slogx.FromContext(ctx).Info("session issued",
		"user_id", user.ID, "provider", provider, "persist", persist)
	return st, nil
}

func (s *SessionService) put(ctx context.Context, st domain.StoredToken) error {
	// A fresh login replaces both homes so a persist flip cannot leave a
	// stale copy behind.
	s.mu.Lock()
	if s.volatile == nil {
		s.volatile = make(map[string]domain.StoredToken)
	}
	delete(s.volatile, st.SessionID)
	if !st.Persist {
		s.volatile[st.SessionID] = st
	}
	s.mu.Unlock()

	if st.Persist {
		return s.Store.Tokens().CreateToken(ctx, st)
	}
	return s.Store.Tokens().DeleteToken(ctx, st.SessionID)
}

// Get returns the live token for a session. The durable store wins over the
// in-memory copy; expired tokens are cleared and reported as absent.
func (s *SessionService) Get(ctx context.Context, sessionID string) (domain.StoredToken, error) {
	st, err := s.Store.Tokens().GetTokenBySession(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return domain.StoredToken{}, err
		}
		s.mu.Lock()
		st, err = func() (domain.StoredToken, error) {
			if v, ok := s.volatile[sessionID]; ok {
				return v, nil
			}
			return domain.StoredToken{}, ErrNoSession
		}()
		s.mu.Unlock()
		if err != nil {
			return domain.StoredToken{}, err
		}
	}

	if time.Now().After(st.ExpiresAt) {
		_ = s.Clear(ctx, sessionID)
		return domain.StoredToken{}, ErrNoSession
	}
	return st, nil
}

// Clear drops the session token from both homes (logout).
func (s *SessionService) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.volatile, sessionID)
	s.mu.Unlock()

	return s.Store.Tokens().DeleteToken(ctx, sessionID)
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return jwtx.DefaultSessionTokenTTL
}
