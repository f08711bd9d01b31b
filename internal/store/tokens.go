// ABOUTME: Bearer token persistence, one live token per user
// ABOUTME: Tokens are looked up by jti so deleting a row revokes the token

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SaveAuthToken stores token, replacing any token previously issued to the same user.
func (s *SQLiteStore) SaveAuthToken(ctx context.Context, token *AuthToken) error {
	return s.inTx(ctx, func(tx *SQLiteStore) error {
		if err := tx.DeleteAuthTokensByUser(ctx, token.UserID); err != nil {
			return err
		}

		query := `
			INSERT INTO auth_tokens (id, user_id, token, created_at, expires_at)
			VALUES (?, ?, ?, ?, ?)
		`
		_, err := tx.q.ExecContext(ctx, query,
			token.ID,
			token.UserID,
			token.Token,
			formatTime(token.CreatedAt),
			formatTime(token.ExpiresAt),
		)
		if err != nil {
			return fmt.Errorf("inserting auth token: %w", err)
		}
		return nil
	})
}

// GetAuthToken retrieves a token by its jti.
func (s *SQLiteStore) GetAuthToken(ctx context.Context, id string) (*AuthToken, error) {
	query := `
		SELECT id, user_id, token, created_at, expires_at
		FROM auth_tokens
		WHERE id = ?
	`
	tok, err := scanAuthToken(s.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("token", id)
	}
	return tok, err
}

// GetAuthTokenByUser retrieves the token issued to a user.
func (s *SQLiteStore) GetAuthTokenByUser(ctx context.Context, userID int64) (*AuthToken, error) {
	query := `
		SELECT id, user_id, token, created_at, expires_at
		FROM auth_tokens
		WHERE user_id = ?
	`
	tok, err := scanAuthToken(s.q.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("token for user", userID)
	}
	return tok, err
}

// DeleteAuthTokensByUser revokes every token of a user. Deleting nothing is not an error.
func (s *SQLiteStore) DeleteAuthTokensByUser(ctx context.Context, userID int64) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting auth tokens: %w", err)
	}
	return nil
}

func scanAuthToken(row *sql.Row) (*AuthToken, error) {
	var tok AuthToken
	var createdAt, expiresAt string
	if err := row.Scan(&tok.ID, &tok.UserID, &tok.Token, &createdAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning auth token: %w", err)
	}
	var err error
	if tok.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if tok.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, err
	}
	return &tok, nil
}
