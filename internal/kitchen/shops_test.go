// ABOUTME: Tests for shop and location operations
// ABOUTME: Covers the current shop, cascades and location ownership

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

func TestSaveShop(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	shop, err := k.SaveShop(ctx, alice.ID, ref.New(), decode[ShopInput](t, `{"name":"market"}`))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, shop.UserID)

	renamed, err := k.SaveShop(ctx, alice.ID, ref.ID(shop.ID), decode[ShopInput](t, `{"name":"corner shop"}`))
	require.NoError(t, err)
	assert.Equal(t, shop.ID, renamed.ID)
	assert.Equal(t, "corner shop", renamed.Name)

	_, err = k.SaveShop(ctx, bob.ID, ref.ID(shop.ID), decode[ShopInput](t, `{"name":"stolen"}`))
	assert.ErrorIs(t, err, guard.ErrForbidden)
	_, err = k.GetShop(ctx, bob.ID, ref.ID(shop.ID))
	assert.ErrorIs(t, err, guard.ErrForbidden)

	shops, err := k.ListShops(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, shops)
}

func TestCurrentShop(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	shop, err := k.SaveShop(ctx, alice.ID, ref.New(), decode[ShopInput](t, `{"name":"market"}`))
	require.NoError(t, err)

	current, err := k.GetShop(ctx, alice.ID, ref.New())
	require.NoError(t, err)
	assert.Nil(t, current, "no shop selected yet")

	_, err = k.SetCurrentShop(ctx, bob.ID, ref.ID(shop.ID))
	assert.ErrorIs(t, err, guard.ErrForbidden)
	_, err = k.SetCurrentShop(ctx, alice.ID, ref.ID(9999))
	assert.ErrorIs(t, err, store.ErrNotFound)

	set, err := k.SetCurrentShop(ctx, alice.ID, ref.ID(shop.ID))
	require.NoError(t, err)
	assert.Equal(t, shop.ID, set.ID)

	current, err = k.CurrentShop(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, shop.ID, current.ID)

	cleared, err := k.SetCurrentShop(ctx, alice.ID, decode[ShopInput](t, `{"id":null}`).ID)
	require.NoError(t, err)
	assert.Nil(t, cleared)
	current, err = k.CurrentShop(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestDeleteShop_CascadesLocationsAndClearsCurrent(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	loc := createLocation(t, k, user.ID, "aisle 1")

	_, err := k.SetCurrentShop(ctx, user.ID, ref.ID(loc.ShopID))
	require.NoError(t, err)
	ing, err := k.SaveIngredient(ctx, user.ID, ref.New(), decode[IngredientInput](t,
		fmt.Sprintf(`{"name":"rice","locations":[%d]}`, loc.ID)))
	require.NoError(t, err)

	require.NoError(t, k.DeleteShop(ctx, user.ID, loc.ShopID))

	_, err = k.GetLocation(ctx, user.ID, loc.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	current, err := k.CurrentShop(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
	got, err := k.GetIngredient(ctx, user.ID, ing.ID)
	require.NoError(t, err)
	assert.Empty(t, got.LocationIDs)
}

func TestSaveLocation(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	shop, err := k.SaveShop(ctx, alice.ID, ref.New(), decode[ShopInput](t, `{"name":"market"}`))
	require.NoError(t, err)
	other, err := k.SaveShop(ctx, alice.ID, ref.New(), decode[ShopInput](t, `{"name":"bakery"}`))
	require.NoError(t, err)
	bobsShop, err := k.SaveShop(ctx, bob.ID, ref.New(), decode[ShopInput](t, `{"name":"bob's"}`))
	require.NoError(t, err)

	_, err = k.SaveLocation(ctx, alice.ID, ref.New(), decode[LocationInput](t, `{"name":"aisle"}`))
	assert.ErrorIs(t, err, ErrValidation, "new locations need a shop")
	_, err = k.SaveLocation(ctx, alice.ID, ref.New(), decode[LocationInput](t, `{"name":"aisle","shop":9999}`))
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = k.SaveLocation(ctx, alice.ID, ref.New(), decode[LocationInput](t,
		fmt.Sprintf(`{"name":"aisle","shop":%d}`, bobsShop.ID)))
	assert.ErrorIs(t, err, guard.ErrForbidden)

	loc, err := k.SaveLocation(ctx, alice.ID, ref.New(), decode[LocationInput](t,
		fmt.Sprintf(`{"name":"aisle","shop":{"id":%d}}`, shop.ID)))
	require.NoError(t, err)
	assert.Equal(t, shop.ID, loc.ShopID)

	moved, err := k.SaveLocation(ctx, alice.ID, ref.ID(loc.ID), decode[LocationInput](t,
		fmt.Sprintf(`{"shop":"%d"}`, other.ID)))
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.ShopID)
	assert.Equal(t, "aisle", moved.Name)

	locs, err := k.ListLocations(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, locs, 1)

	assert.ErrorIs(t, k.DeleteLocation(ctx, bob.ID, loc.ID), guard.ErrForbidden)
	require.NoError(t, k.DeleteLocation(ctx, alice.ID, loc.ID))
}
