// ABOUTME: User account and profile store methods
// ABOUTME: Profiles hold weak pointers to the current shopping list and shop

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateUser inserts a user and sets user.ID.
// Returns ErrUsernameExists if the username is taken.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (username, email, password_hash, is_active, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := s.q.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		formatTime(user.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	user.ID = id

	s.logger.Debug("created user", "id", user.ID, "username", user.Username)
	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, username, email, password_hash, is_active, created_at
		FROM users
		WHERE id = ?
	`
	user, err := scanUser(s.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", id)
	}
	return user, err
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, email, password_hash, is_active, created_at
		FROM users
		WHERE username = ?
	`
	user, err := scanUser(s.q.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", username)
	}
	return user, err
}

func scanUser(row *sql.Row) (*User, error) {
	var user User
	var createdAt string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserActive enables or disables an account.
func (s *SQLiteStore) SetUserActive(ctx context.Context, id int64, active bool) error {
	res, err := s.q.ExecContext(ctx, `UPDATE users SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("updating user status: %w", err)
	}
	return checkAffected(res, "user", id)
}

// GetProfile retrieves the profile of a user.
func (s *SQLiteStore) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	query := `
		SELECT user_id, shopping_list_id, shop_id
		FROM user_profiles
		WHERE user_id = ?
	`

	var p Profile
	var listID, shopID sql.NullInt64
	err := s.q.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &listID, &shopID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("profile", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	p.ShoppingListID = idPtr(listID)
	p.ShopID = idPtr(shopID)
	return &p, nil
}

// SaveProfile creates or replaces the profile of profile.UserID.
func (s *SQLiteStore) SaveProfile(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO user_profiles (user_id, shopping_list_id, shop_id)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			shopping_list_id = excluded.shopping_list_id,
			shop_id = excluded.shop_id
	`

	_, err := s.q.ExecContext(ctx, query,
		profile.UserID,
		nullableID(profile.ShoppingListID),
		nullableID(profile.ShopID),
	)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}
