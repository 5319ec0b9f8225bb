package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/quickplate/quickplate/internal/auth/domain"
	"github.com/quickplate/quickplate/internal/auth/store"
	"github.com/quickplate/quickplate/pkg/cryptox"
	"github.com/quickplate/quickplate/pkg/idx"
	"github.com/quickplate/quickplate/pkg/slogx"
)

var (
	ErrDuplicateEmail     = errors.New("duplicate_email")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrWeakPassword       = errors.New("weak_password")
)

// CredentialService owns user records and password verification.
type CredentialService struct {
	Store store.Store
}

// ValidatePasswordPolicy enforces the signup password rules: at least six
// characters with a lowercase letter, an uppercase letter and a digit.
func ValidatePasswordPolicy(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return ErrWeakPassword
	}
	return nil
}

// CreateUser registers a new credential record. The password must already
// have passed policy validation at signup time; it is re-checked here as the
// store is the last line of defense.
func (s *CredentialService) CreateUser(ctx context.Context, email, name, password string) (domain.User, error) {
	if err := ValidatePasswordPolicy(password); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateEmail
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created", "user_id", u.ID)
	return u, nil
}

// GetByEmail looks a user up by email.
func (s *CredentialService) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// Authenticate verifies an email/password pair. Unknown emails fail with
// ErrUserNotFound, wrong passwords with ErrInvalidCredentials; the two are
// kept apart so the login form can point at the offending field.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn comparable time so lookups and mismatches are not
			// distinguishable by latency.
			_ = cryptox.VerifyPassword(password, dummyHash())
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// UpdatePassword replaces the stored hash after a verified reset and revokes
// every remembered session token for the user.
func (s *CredentialService) UpdatePassword(ctx context.Context, email, newPassword string) error {
	if err := ValidatePasswordPolicy(newPassword); err != nil {
		return err
	}

	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		return tx.Tokens().DeleteUserTokens(ctx, u.ID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password updated", "user_id", u.ID)
	return nil
}

// EnsureSSOUser returns the local user record backing an SSO profile,
// creating one on first login. The generated password is random and strong;
// SSO-only accounts can still run the reset flow to set a real one.
func (s *CredentialService) EnsureSSOUser(ctx context.Context, p domain.Profile) (domain.User, error) {
	if p.Email == "" {
		// Providers can withhold the email; the account is then keyed by
		// the provider id alone.
		return s.ensureUser(ctx, p.ProviderID+"@sso.local", p.Name)
	}
	return s.ensureUser(ctx, p.Email, p.Name)
}

func (s *CredentialService) ensureUser(ctx context.Context, email, name string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	password, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return domain.User{}, err
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u = domain.User{
		ID:           idx.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent first login.
			return s.Store.Users().GetUserByEmail(ctx, email)
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("sso user created", "user_id", u.ID)
	return u, nil
}

// dummyHash is a valid argon2id hash of a throwaway value, used only for
// constant-time rejection of unknown emails. Hashing needs the pepper, which
// is only configured at startup, so the value is computed on first use.
var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("dummy-timing-password")
	if err != nil {
		return ""
	}
	return h
})
