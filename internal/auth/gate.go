// ABOUTME: Username/password login, signup and token lifecycle for API users
// ABOUTME: Issues one stored JWT per user and resolves bearer tokens to users

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/2389/pantry/internal/store"
)

// Gate errors
var (
	ErrInvalidCredentials = errors.New("invalid login combination")
	ErrAccountDisabled    = errors.New("account has been disabled")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrMissingCredentials = errors.New("username and password are required")
)

// DefaultShoppingListName is the name of the list created for new accounts.
const DefaultShoppingListName = "Shopping list"

// dummyHash keeps the bcrypt comparison cost constant for unknown usernames.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// GateConfig configures token lifetime and password hashing.
type GateConfig struct {
	TokenTTL   time.Duration
	BcryptCost int
}

// Gate authenticates users and manages their bearer tokens.
type Gate struct {
	store    store.Store
	verifier *JWTVerifier
	cfg      GateConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewGate creates a Gate. Zero config values fall back to a 30 day TTL and bcrypt.DefaultCost.
func NewGate(s store.Store, verifier *JWTVerifier, cfg GateConfig, logger *slog.Logger) *Gate {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 30 * 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		store:    s,
		verifier: verifier,
		cfg:      cfg,
		logger:   logger.With("component", "auth"),
		now:      time.Now,
	}
}

// Login checks username and password and returns the user's bearer token.
// An unexpired token issued earlier is returned as is; otherwise a new one is issued.
func (g *Gate) Login(ctx context.Context, username, password string) (string, error) {
	user, err := g.store.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("looking up user: %w", err)
		}
		// Do a dummy bcrypt comparison to maintain constant timing
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		g.logger.Debug("login failed", "username", username)
		return "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", ErrAccountDisabled
	}

	existing, err := g.store.GetAuthTokenByUser(ctx, user.ID)
	switch {
	case err == nil && existing.ExpiresAt.After(g.now()):
		return existing.Token, nil
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return "", fmt.Errorf("looking up token: %w", err)
	}

	token, err := g.issue(ctx, user.ID)
	if err != nil {
		return "", err
	}

	g.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

func (g *Gate) issue(ctx context.Context, userID int64) (string, error) {
	tokenID := uuid.NewString()
	signed, expiresAt, err := g.verifier.Generate(userID, tokenID, g.cfg.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	err = g.store.SaveAuthToken(ctx, &store.AuthToken{
		ID:        tokenID,
		UserID:    userID,
		Token:     signed,
		CreatedAt: g.now(),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return "", fmt.Errorf("saving token: %w", err)
	}
	return signed, nil
}

// Logout revokes the user's token.
func (g *Gate) Logout(ctx context.Context, userID int64) error {
	if err := g.store.DeleteAuthTokensByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	g.logger.Info("user logged out", "user_id", userID)
	return nil
}

// Resolve maps a bearer token to its user. Revoked tokens are rejected with
// ErrInvalidToken even while their signature is still valid.
func (g *Gate) Resolve(ctx context.Context, token string) (*store.User, error) {
	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	stored, err := g.store.GetAuthToken(ctx, claims.TokenID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: revoked", ErrInvalidToken)
		}
		return nil, fmt.Errorf("looking up token: %w", err)
	}
	if stored.UserID != claims.UserID {
		return nil, fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}

	user, err := g.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrInvalidToken)
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// SignupRequest holds the fields of a new account.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Signup creates an active user with an empty current shopping list.
// The user, list and profile are written in one transaction.
func (g *Gate) Signup(ctx context.Context, req SignupRequest) (*store.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), g.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := g.now().UTC()
	user := &store.User{
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
	}

	err = g.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrUsernameExists) {
				return ErrUsernameTaken
			}
			return err
		}

		list := &store.ShoppingList{UserID: user.ID, Name: DefaultShoppingListName, CreatedAt: now}
		if err := tx.CreateShoppingList(ctx, list); err != nil {
			return err
		}

		return tx.SaveProfile(ctx, &store.Profile{UserID: user.ID, ShoppingListID: &list.ID})
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info("user signed up", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Closeup disables the account and revokes its token.
func (g *Gate) Closeup(ctx context.Context, userID int64) error {
	err := g.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.SetUserActive(ctx, userID, false); err != nil {
			return err
		}
		return tx.DeleteAuthTokensByUser(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("closing account: %w", err)
	}

	g.logger.Info("account closed", "user_id", userID)
	return nil
}
