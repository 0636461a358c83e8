package passwordreset

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Save(ctx context.Context, token Token) error {
	const query = `
INSERT INTO reset_tokens (token, email, expires_at, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (token) DO UPDATE SET
  email = EXCLUDED.email,
  expires_at = EXCLUDED.expires_at`
	_, err := r.DB.ExecContext(ctx, query, token.Token, token.Email, token.ExpiresAt)
	return err
}

func (r *PGRepo) Get(ctx context.Context, token string) (Token, error) {
	const query = `
SELECT token, email, expires_at, created_at
FROM reset_tokens
WHERE token = $1
LIMIT 1`
	var t Token
	err := r.DB.QueryRowContext(ctx, query, token).Scan(&t.Token, &t.Email, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Token{}, ErrTokenNotFound
		}
		return Token{}, err
	}
	return t, nil
}

func (r *PGRepo) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM reset_tokens WHERE token = $1`
	_, err := r.DB.ExecContext(ctx, query, token)
	return err
}
