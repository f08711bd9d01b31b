// ABOUTME: Tests for ingredient and location link persistence
// ABOUTME: Covers name uniqueness per user and symmetric links

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLocation(t *testing.T, s *SQLiteStore, userID int64, name string) *Location {
	t.Helper()
	ctx := context.Background()
	shop := &Shop{UserID: userID, Name: name + " shop"}
	require.NoError(t, s.CreateShop(ctx, shop))
	loc := &Location{UserID: userID, ShopID: shop.ID, Name: name}
	require.NoError(t, s.CreateLocation(ctx, loc))
	return loc
}

func TestStore_IngredientCRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	ing := createTestIngredient(t, s, user.ID, "salt")
	assert.NotZero(t, ing.ID)
	assert.Equal(t, []int64{}, ing.LocationIDs)

	got, err := s.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.Equal(t, "salt", got.Name)
	assert.Empty(t, got.LocationIDs)

	got.Name = "sea salt"
	require.NoError(t, s.UpdateIngredient(ctx, got))

	byName, err := s.GetIngredientByName(ctx, user.ID, "sea salt")
	require.NoError(t, err)
	assert.Equal(t, ing.ID, byName.ID)

	require.NoError(t, s.DeleteIngredient(ctx, ing.ID))
	_, err = s.GetIngredient(ctx, ing.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_GetIngredientByName_ScopedToOwner(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	createTestIngredient(t, s, bob.ID, "pepper")

	_, err := s.GetIngredientByName(ctx, alice.ID, "pepper")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_IngredientLocations(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	ing := createTestIngredient(t, s, user.ID, "rice")
	other := createTestIngredient(t, s, user.ID, "beans")
	aisle := createTestLocation(t, s, user.ID, "aisle 3")
	shelf := createTestLocation(t, s, user.ID, "top shelf")

	require.NoError(t, s.AddIngredientLocation(ctx, ing.ID, shelf.ID))
	require.NoError(t, s.AddIngredientLocation(ctx, ing.ID, aisle.ID))
	// Pairs are unique; re-adding is a no-op
	require.NoError(t, s.AddIngredientLocation(ctx, ing.ID, aisle.ID))
	require.NoError(t, s.AddIngredientLocation(ctx, other.ID, aisle.ID))

	got, err := s.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{aisle.ID, shelf.ID}, got.LocationIDs)

	all, err := s.ListIngredients(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []int64{aisle.ID, shelf.ID}, all[0].LocationIDs)
	assert.Equal(t, []int64{aisle.ID}, all[1].LocationIDs)

	require.NoError(t, s.RemoveIngredientLocation(ctx, ing.ID, shelf.ID))
	assert.ErrorIs(t, s.RemoveIngredientLocation(ctx, ing.ID, shelf.ID), ErrNotFound)

	// Deleting a location drops its associations
	require.NoError(t, s.DeleteLocation(ctx, aisle.ID))
	got, err = s.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.Empty(t, got.LocationIDs)
}
