// ABOUTME: Tests for ingredient operations
// ABOUTME: Covers lookup by name, location sets, ownership and deletion

package kitchen

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/pantry/internal/guard"
	"github.com/2389/pantry/internal/ref"
	"github.com/2389/pantry/internal/store"
)

func createLocation(t *testing.T, k *Kitchen, userID int64, name string) *store.Location {
	t.Helper()
	ctx := context.Background()
	shop, err := k.SaveShop(ctx, userID, ref.New(), decode[ShopInput](t, `{"name":"market"}`))
	require.NoError(t, err)
	loc, err := k.SaveLocation(ctx, userID, ref.New(), decode[LocationInput](t,
		fmt.Sprintf(`{"name":%q,"shop":%d}`, name, shop.ID)))
	require.NoError(t, err)
	return loc
}

func TestIngredientByName(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	first := createIngredient(t, k, alice.ID, "salt")
	second := createIngredient(t, k, alice.ID, "salt")
	assert.NotEqual(t, first.ID, second.ID, "create by name always creates")
	createIngredient(t, k, bob.ID, "pepper")

	got, err := k.GetIngredientByName(ctx, alice.ID, "salt")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = k.GetIngredientByName(ctx, alice.ID, "pepper")
	assert.ErrorIs(t, err, store.ErrNotFound, "lookups are scoped to the user")
}

func TestSaveIngredient_Locations(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	a := createLocation(t, k, user.ID, "aisle 1")
	b := createLocation(t, k, user.ID, "aisle 2")
	c := createLocation(t, k, user.ID, "aisle 3")

	ing, err := k.SaveIngredient(ctx, user.ID, ref.New(), decode[IngredientInput](t,
		fmt.Sprintf(`{"name":"rice","locations":[%d,%d]}`, a.ID, b.ID)))
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID}, ing.LocationIDs)

	ing, err = k.SaveIngredient(ctx, user.ID, ref.ID(ing.ID), decode[IngredientInput](t,
		fmt.Sprintf(`{"locations":[{"id":%d},%d,%d]}`, c.ID, b.ID, c.ID)))
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, c.ID}, ing.LocationIDs)
	assert.Equal(t, "rice", ing.Name)

	ing, err = k.SaveIngredient(ctx, user.ID, ref.ID(ing.ID), decode[IngredientInput](t, `{"name":"brown rice"}`))
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, c.ID}, ing.LocationIDs, "absent locations keep the set")

	ing, err = k.SaveIngredient(ctx, user.ID, ref.ID(ing.ID), decode[IngredientInput](t, `{"locations":[]}`))
	require.NoError(t, err)
	assert.Empty(t, ing.LocationIDs)
}

func TestSaveIngredient_Errors(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	bobsLoc := createLocation(t, k, bob.ID, "aisle")
	bobsIng := createIngredient(t, k, bob.ID, "salt")

	_, err := k.SaveIngredient(ctx, alice.ID, ref.New(), decode[IngredientInput](t,
		fmt.Sprintf(`{"name":"rice","locations":[%d]}`, bobsLoc.ID)))
	assert.ErrorIs(t, err, guard.ErrForbidden)

	_, err = k.SaveIngredient(ctx, alice.ID, ref.New(), decode[IngredientInput](t, `{"locations":[9999]}`))
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = k.SaveIngredient(ctx, alice.ID, ref.ID(bobsIng.ID), decode[IngredientInput](t, `{"name":"mine"}`))
	assert.ErrorIs(t, err, guard.ErrForbidden)

	list, err := k.ListIngredients(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteIngredient(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	ing := createIngredient(t, k, alice.ID, "salt")

	_, err := k.GetIngredient(ctx, bob.ID, ing.ID)
	assert.ErrorIs(t, err, guard.ErrForbidden)
	assert.ErrorIs(t, k.DeleteIngredient(ctx, bob.ID, ing.ID), guard.ErrForbidden)

	require.NoError(t, k.DeleteIngredient(ctx, alice.ID, ing.ID))
	_, err = k.GetIngredient(ctx, alice.ID, ing.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
