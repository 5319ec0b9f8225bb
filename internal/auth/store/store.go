package store

import (
	"context"
	"errors"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for durable state. Concrete drivers
// (sqlite today) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Tokens() Tokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error, the transaction is rolled back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up a user by their lowercased email address.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateName mutates the display name and bumps updated_at.
	UpdateName(ctx context.Context, userID string, name string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser cascades to session_tokens (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Tokens interface {
	// CreateToken stores a remembered session token record.
	CreateToken(ctx context.Context, t domain.StoredToken) error

	// GetTokenBySession returns the token held for a session id.
	GetTokenBySession(ctx context.Context, sessionID string) (domain.StoredToken, error)

	// DeleteToken removes the token held for a session id, if any.
	DeleteToken(ctx context.Context, sessionID string) error

	// DeleteUserTokens removes every remembered token for a user
	// (e.g. after a password reset).
	DeleteUserTokens(ctx context.Context, userID string) error

	// DeleteExpiredTokens is housekeeping.
	DeleteExpiredTokens(ctx context.Context) error
}
