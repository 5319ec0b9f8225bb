package vault

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

func newState(provider string) domain.PKCEState {
	return domain.PKCEState{
		Provider:  provider,
		Verifier:  "verifier-" + provider,
		State:     "state-" + provider,
		CreatedAt: time.Now(),
	}
}

func TestConsumeOnce(t *testing.T) {
	v := New()
	v.Put("sess", newState("google"))

	st, err := v.Consume("sess", "google")
	require.NoError(t, err)
	assert.Equal(t, "verifier-google", st.Verifier)

	_, err = v.Consume("sess", "google")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeWrongProvider(t *testing.T) {
	v := New()
	v.Put("sess", newState("google"))

	_, err := v.Consume("sess", "github")
	assert.ErrorIs(t, err, ErrNotFound)

	// The google entry must still be intact.
	_, err = v.Consume("sess", "google")
	require.NoError(t, err)
}

func TestPutReplacesPreviousAttempt(t *testing.T) {
	v := New()

	first := newState("google")
	v.Put("sess", first)

	second := newState("google")
	second.Verifier = "fresh-verifier"
	v.Put("sess", second)

	st, err := v.Consume("sess", "google")
	require.NoError(t, err)
	assert.Equal(t, "fresh-verifier", st.Verifier)
	assert.Equal(t, 0, v.Len())
}

func TestConsumeExpired(t *testing.T) {
	v := New()

	st := newState("google")
	st.CreatedAt = time.Now().Add(-DefaultTTL - time.Minute)
	v.entries[key{"sess", "google"}] = st

	_, err := v.Consume("sess", "google")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweepOnPut(t *testing.T) {
	v := New()

	stale := newState("google")
	stale.CreatedAt = time.Now().Add(-DefaultTTL - time.Minute)
	v.entries[key{"old-sess", "google"}] = stale

	v.Put("sess", newState("github"))
	assert.Equal(t, 1, v.Len())
}

func TestConcurrentConsumeSingleWinner(t *testing.T) {
	v := New()
	v.Put("sess", newState("google"))

	const workers = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := v.Consume("sess", "google"); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)
}

func TestDrop(t *testing.T) {
	v := New()
	v.Put("sess", newState("google"))
	v.Drop("sess", "google")

	_, err := v.Consume("sess", "google")
	assert.ErrorIs(t, err, ErrNotFound)
}
