// ABOUTME: Kitchen service wiring the store, ownership guard and reconciler
// ABOUTME: Shared helpers for profile access and owned-entity lookups

package kitchen

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/2389/pantry/internal/guard"
	"github.com/2389/pantry/internal/store"
)

// Kitchen implements the per-user domain operations.
type Kitchen struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Kitchen backed by s.
func New(s store.Store, logger *slog.Logger) *Kitchen {
	if logger == nil {
		logger = slog.Default()
	}
	return &Kitchen{
		store:  s,
		logger: logger.With("component", "kitchen"),
		now:    time.Now,
	}
}

// authorize passes through a lookup error, otherwise checks ownership.
func authorize(userID int64, entity guard.Owned, err error) error {
	if err != nil {
		return err
	}
	return guard.Authorize(userID, entity)
}

// profile returns the user's profile, or an empty one if none is stored yet.
func profile(ctx context.Context, tx store.Store, userID int64) (*store.Profile, error) {
	p, err := tx.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &store.Profile{UserID: userID}, nil
	}
	return p, err
}

// currentListID returns the user's current shopping list id, or false if unset.
func currentListID(ctx context.Context, tx store.Store, userID int64) (int64, bool, error) {
	p, err := profile(ctx, tx, userID)
	if err != nil {
		return 0, false, err
	}
	if p.ShoppingListID == nil {
		return 0, false, nil
	}
	return *p.ShoppingListID, true, nil
}
