package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/quickplate/quickplate/internal/auth/domain"
	"github.com/quickplate/quickplate/internal/auth/notify"
	"github.com/quickplate/quickplate/pkg/slogx"
)

var (
	ErrNoChallenge = errors.New("no_pending_challenge")
	ErrOTPExpired  = errors.New("otp_expired")
	ErrOTPMismatch = errors.New("otp_mismatch")
)

// DefaultOTPTTL is how long an emailed code stays valid.
const DefaultOTPTTL = 30 * time.Minute

// OTPService issues, resends and verifies emailed one-time passcodes.
// Challenges are volatile; a restart voids them and the user just resends.
type OTPService struct {
	Notifier notify.Notifier
	TTL      time.Duration

	mu         sync.Mutex
	challenges map[otpKey]domain.OTPChallenge
}

type otpKey struct {
	email   string
	purpose domain.OTPPurpose
}

func NewOTPService(n notify.Notifier) *OTPService {
	return &OTPService{
		Notifier:   n,
		TTL:        DefaultOTPTTL,
		challenges: make(map[otpKey]domain.OTPChallenge),
	}
}

// GenerateOTPCode draws a uniform six-digit code from crypto/rand. Every
// value in [100000, 999999] is equally likely.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue mints a fresh challenge for the (email, purpose) pair, replacing any
// outstanding one, and hands it to the notifier. The generation counter
// increments on every issue so racing verifies against a superseded code can
// be told apart from verifies against the current one.
func (s *OTPService) Issue(ctx context.Context, email string, purpose domain.OTPPurpose) (domain.OTPChallenge, error) {
	code, err := GenerateOTPCode()
	if err != nil {
		return domain.OTPChallenge{}, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now()

	s.mu.Lock()
	if s.challenges == nil {
		s.challenges = make(map[otpKey]domain.OTPChallenge)
	}
	k := otpKey{email, purpose}
	gen := uint64(1)
	if prev, ok := s.challenges[k]; ok {
		gen = prev.Generation + 1
	}
	c := domain.OTPChallenge{
		Email:      email,
		Code:       code,
		Purpose:    purpose,
		Generation: gen,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.ttl()),
	}
	s.challenges[k] = c
	s.mu.Unlock()

	if err := s.Notifier.SendOTP(ctx, c); err != nil {
		return domain.OTPChallenge{}, err
	}

	slogx.FromContext(ctx).Info("otp challenge issued",
		"purpose", string(purpose), "generation", gen)
	return c, nil
}

// Verify checks a submitted code against the current challenge. A match
// consumes the challenge; expired ones are discarded on sight.
func (s *OTPService) Verify(ctx context.Context, email string, purpose domain.OTPPurpose, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	k := otpKey{email, purpose}
	c, ok := s.challenges[k]
	if !ok {
		return ErrNoChallenge
	}

	if c.Expired(time.Now()) {
		delete(s.challenges, k)
		return ErrOTPExpired
	}

	if c.Code != code {
		return ErrOTPMismatch
	}

	delete(s.challenges, k)
	return nil
}

// Pending reports the generation of the outstanding challenge, 0 for none.
// The flow layer uses it to discard effects from superseded resends.
func (s *OTPService) Pending(email string, purpose domain.OTPPurpose) uint64 {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.challenges[otpKey{email, purpose}]; ok {
		return c.Generation
	}
	return 0
}

// Drop discards the outstanding challenge, e.g. when the user backs out of
// the verify screen.
func (s *OTPService) Drop(email string, purpose domain.OTPPurpose) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, otpKey{email, purpose})
}

func (s *OTPService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultOTPTTL
}
