package sqlite

import (
	"context"
	"time"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

type tokensRepo struct {
	db dbtx
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.StoredToken) error {
	// One token per session; a fresh login replaces whatever was there.
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_tokens (session_id, user_id, token, provider, persist, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (session_id) DO UPDATE SET
		   user_id = excluded.user_id,
		   token = excluded.token,
		   provider = excluded.provider,
		   persist = excluded.persist,
		   created_at = excluded.created_at,
		   expires_at = excluded.expires_at`,
		t.SessionID, t.UserID, t.Token, t.Provider, t.Persist, t.CreatedAt.UTC(), t.ExpiresAt.UTC())
	return mapConstraint(err)
}

func (r *tokensRepo) GetTokenBySession(ctx context.Context, sessionID string) (domain.StoredToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT session_id, user_id, token, provider, persist, created_at, expires_at
		 FROM session_tokens WHERE session_id = ?`, sessionID)

	var t domain.StoredToken
	err := row.Scan(&t.SessionID, &t.UserID, &t.Token, &t.Provider, &t.Persist, &t.CreatedAt, &t.ExpiresAt)
	if err != nil {
		return domain.StoredToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) DeleteToken(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM session_tokens WHERE session_id = ?`, sessionID)
	return err
}

func (r *tokensRepo) DeleteUserTokens(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM session_tokens WHERE user_id = ?`, userID)
	return err
}

func (r *tokensRepo) DeleteExpiredTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM session_tokens WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
