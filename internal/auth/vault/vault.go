// Package vault holds per-attempt PKCE state in memory between the redirect
// to an SSO provider and the callback. Entries are consumed exactly once;
// nothing here survives a restart, which is fine because an in-flight OAuth
// attempt cannot survive one either.
package vault

import (
	"errors"
	"sync"
	"time"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

var ErrNotFound = errors.New("vault: pkce state not found")

// DefaultTTL bounds how long an abandoned attempt lingers before sweep.
const DefaultTTL = 10 * time.Minute

type key struct {
	sessionID string
	provider  string
}

// Vault is safe for concurrent use.
type Vault struct {
	mu      sync.Mutex
	entries map[key]domain.PKCEState
	ttl     time.Duration
	now     func() time.Time
}

func New() *Vault {
	return &Vault{
		entries: make(map[key]domain.PKCEState),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
}

// Put stores the PKCE state for a (session, provider) pair, replacing any
// previous attempt for the same pair.
func (v *Vault) Put(sessionID string, st domain.PKCEState) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sweepLocked()
	v.entries[key{sessionID, st.Provider}] = st
}

// Consume removes and returns the stored state. A second call for the same
// pair returns ErrNotFound, which is what makes replayed callbacks fail.
func (v *Vault) Consume(sessionID, provider string) (domain.PKCEState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	k := key{sessionID, provider}
	st, ok := v.entries[k]
	if !ok {
		return domain.PKCEState{}, ErrNotFound
	}
	delete(v.entries, k)

	if v.now().Sub(st.CreatedAt) > v.ttl {
		return domain.PKCEState{}, ErrNotFound
	}
	return st, nil
}

// Drop discards any pending state for the pair, e.g. when the user abandons
// the SSO attempt and goes back to the login screen.
func (v *Vault) Drop(sessionID, provider string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.entries, key{sessionID, provider})
}

// Len reports the number of pending attempts.
func (v *Vault) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.entries)
}

func (v *Vault) sweepLocked() {
	cutoff := v.now().Add(-v.ttl)
	for k, st := range v.entries {
		if st.CreatedAt.Before(cutoff) {
			delete(v.entries, k)
		}
	}
}
