// ABOUTME: Shared helpers for kitchen tests
// ABOUTME: Builds a kitchen over a temporary SQLite database

package kitchen

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/2389/pantry/internal/ref"
	"github.com/2389/pantry/internal/store"
)

func setupTestKitchen(t *testing.T) (*Kitchen, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	k := New(s, nil)
	k.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return k, s
}

func createTestUser(t *testing.T, s *store.SQLiteStore, username string) *store.User {
	t.Helper()
	user := &store.User{
		Username:     username,
		PasswordHash: "hash",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

// createCurrentList gives the user a fresh current shopping list.
func createCurrentList(t *testing.T, k *Kitchen, userID int64) *store.ShoppingList {
	t.Helper()
	view, err := k.SaveShoppingList(context.Background(), userID, ref.New(), decode[ShoppingListInput](t, `{"name":"weekly"}`))
	require.NoError(t, err)
	return view.List
}

func createIngredient(t *testing.T, k *Kitchen, userID int64, name string) *store.Ingredient {
	t.Helper()
	ing, err := k.CreateIngredientByName(context.Background(), userID, name)
	require.NoError(t, err)
	return ing
}

// decode parses a request payload the way the HTTP layer does.
func decode[T any](t *testing.T, payload string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(payload), &v))
	return v
}
