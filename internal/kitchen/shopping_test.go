// ABOUTME: Tests for shopping list operations
// ABOUTME: Covers the current list, item reconciliation and recipe toggling

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

func TestGetShoppingList_NoCurrentList(t *testing.T) {
	k, s := setupTestKitchen(t)
	user := createTestUser(t, s, "alice")

	_, err := k.GetShoppingList(context.Background(), user.ID, ref.New())
	assert.ErrorIs(t, err, ErrNoCurrentList)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveShoppingList_CreateBecomesCurrent(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	milk := createIngredient(t, k, user.ID, "milk")
	soup, err := k.SaveRecipe(ctx, user.ID, ref.New(), decode[RecipeInput](t, `{"name":"Soup","serves":3}`))
	require.NoError(t, err)

	first := createCurrentList(t, k, user.ID)

	payload := fmt.Sprintf(`{"id":%d,"name":"party","date":"ignored","items":[
		{"id":77,"ingredient":{"id":%d},"unit":"l","quantity":"1.5"},
		{"recipe":%d,"unit":"serve","quantity":3}
	]}`, first.ID, milk.ID, soup.Recipe.ID)
	view, err := k.SaveShoppingList(ctx, user.ID, ref.New(), decode[ShoppingListInput](t, payload))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, view.List.ID, "sentinel path always creates")
	assert.Equal(t, "party", view.List.Name)
	assert.Equal(t, k.now(), view.List.CreatedAt)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "milk", view.Items[0].IngredientName)
	assert.Equal(t, "Soup", view.Items[1].RecipeName)
	assert.Equal(t, 3, view.Items[1].RecipeServes)

	current, err := k.GetShoppingList(ctx, user.ID, ref.New())
	require.NoError(t, err)
	assert.Equal(t, view.List.ID, current.List.ID)

	old, err := k.GetShoppingList(ctx, user.ID, ref.ID(first.ID))
	require.NoError(t, err)
	assert.Empty(t, old.Items, "the previous list is untouched")
}

func TestSaveShoppingList_UpdateReconcilesItems(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	milk := createIngredient(t, k, user.ID, "milk")
	eggs := createIngredient(t, k, user.ID, "eggs")

	list := createCurrentList(t, k, user.ID)
	target := ref.ID(list.ID)
	created, err := k.SaveShoppingList(ctx, user.ID, target, decode[ShoppingListInput](t,
		fmt.Sprintf(`{"items":[{"ingredient":%d,"quantity":1},{"ingredient":%d,"quantity":6}]}`, milk.ID, eggs.ID)))
	require.NoError(t, err)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "weekly", created.List.Name)

	updated, err := k.SaveShoppingList(ctx, user.ID, target, decode[ShoppingListInput](t,
		fmt.Sprintf(`{"name":"renamed","items":[{"id":%d,"ingredient":%d,"quantity":12}]}`, created.Items[1].ID, eggs.ID)))
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.List.Name)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, created.Items[1].ID, updated.Items[0].ID)
	assert.InDelta(t, 12, updated.Items[0].Quantity, 1e-9)
}

func TestSaveShoppingList_ItemReferences(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	bobsMilk := createIngredient(t, k, bob.ID, "milk")
	bobsSoup, err := k.SaveRecipe(ctx, bob.ID, ref.New(), decode[RecipeInput](t, `{"name":"Soup"}`))
	require.NoError(t, err)
	list := createCurrentList(t, k, alice.ID)

	_, err = k.SaveShoppingList(ctx, alice.ID, ref.ID(list.ID), decode[ShoppingListInput](t,
		fmt.Sprintf(`{"items":[{"ingredient":%d}]}`, bobsMilk.ID)))
	assert.ErrorIs(t, err, guard.ErrForbidden)

	_, err = k.SaveShoppingList(ctx, alice.ID, ref.ID(list.ID), decode[ShoppingListInput](t,
		`{"items":[{"recipe":9999}]}`))
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Recipes are looked up globally
	view, err := k.SaveShoppingList(ctx, alice.ID, ref.ID(list.ID), decode[ShoppingListInput](t,
		fmt.Sprintf(`{"items":[{"recipe":%d}]}`, bobsSoup.Recipe.ID)))
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	_, err = k.SaveShoppingList(ctx, bob.ID, ref.ID(list.ID), decode[ShoppingListInput](t, `{"name":"mine"}`))
	assert.ErrorIs(t, err, guard.ErrForbidden)

	// Ownership of the list is checked before its items
	_, err = k.SaveShoppingList(ctx, bob.ID, ref.ID(list.ID), decode[ShoppingListInput](t,
		`{"items":[{"id":"_","ingredient":9999}]}`))
	assert.ErrorIs(t, err, guard.ErrForbidden)
	assert.NotErrorIs(t, err, store.ErrNotFound)

	_, err = k.SaveShoppingList(ctx, bob.ID, ref.ID(9999), decode[ShoppingListInput](t,
		fmt.Sprintf(`{"items":[{"ingredient":%d}]}`, bobsMilk.ID)))
	assert.ErrorIs(t, err, store.ErrNotFound)

	view, err = k.GetShoppingList(ctx, alice.ID, ref.ID(list.ID))
	require.NoError(t, err)
	assert.Len(t, view.Items, 1, "rejected saves leave the list alone")
}

func TestToggleRecipe_AddTwice(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	list := createCurrentList(t, k, user.ID)
	soup, err := k.SaveRecipe(ctx, user.ID, ref.New(), decode[RecipeInput](t, `{"name":"Soup","serves":4}`))
	require.NoError(t, err)

	status, err := k.ToggleRecipe(ctx, user.ID, ref.New(), soup.Recipe.ID, RecipeCommand{Action: ActionAdd})
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, status)

	status, err = k.ToggleRecipe(ctx, user.ID, ref.ID(list.ID), soup.Recipe.ID, RecipeCommand{Action: ActionAdd})
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyInList, status)

	view, err := k.GetShoppingList(ctx, user.ID, ref.New())
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, RecipeServingUnit, view.Items[0].Unit)
	assert.InDelta(t, 4, view.Items[0].Quantity, 1e-9)

	in, err := k.RecipeInList(ctx, user.ID, ref.New(), soup.Recipe.ID)
	require.NoError(t, err)
	assert.True(t, in)
}

func TestToggleRecipe_RemoveAbsent(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	milk := createIngredient(t, k, user.ID, "milk")
	list := createCurrentList(t, k, user.ID)
	soup, err := k.SaveRecipe(ctx, user.ID, ref.New(), decode[RecipeInput](t, `{"name":"Soup"}`))
	require.NoError(t, err)

	_, err = k.SaveShoppingList(ctx, user.ID, ref.ID(list.ID), decode[ShoppingListInput](t,
		fmt.Sprintf(`{"items":[{"ingredient":%d,"quantity":1}]}`, milk.ID)))
	require.NoError(t, err)
	before, err := k.GetShoppingList(ctx, user.ID, ref.New())
	require.NoError(t, err)

	status, err := k.ToggleRecipe(ctx, user.ID, ref.New(), soup.Recipe.ID, RecipeCommand{Action: ActionRemove})
	require.NoError(t, err)
	assert.Equal(t, StatusNotInList, status)

	after, err := k.GetShoppingList(ctx, user.ID, ref.New())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestToggleRecipe_AddThenRemove(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	createCurrentList(t, k, user.ID)
	soup, err := k.SaveRecipe(ctx, user.ID, ref.New(), decode[RecipeInput](t, `{"name":"Soup"}`))
	require.NoError(t, err)

	_, err = k.ToggleRecipe(ctx, user.ID, ref.New(), soup.Recipe.ID, RecipeCommand{Action: ActionAdd})
	require.NoError(t, err)
	status, err := k.ToggleRecipe(ctx, user.ID, ref.New(), soup.Recipe.ID, RecipeCommand{Action: ActionRemove})
	require.NoError(t, err)
	assert.Equal(t, StatusRemoved, status)

	in, err := k.RecipeInList(ctx, user.ID, ref.New(), soup.Recipe.ID)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestToggleRecipe_Errors(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	soup, err := k.SaveRecipe(ctx, alice.ID, ref.New(), decode[RecipeInput](t, `{"name":"Soup"}`))
	require.NoError(t, err)
	bobsList := createCurrentList(t, k, bob.ID)

	_, err = k.ToggleRecipe(ctx, alice.ID, ref.New(), soup.Recipe.ID, RecipeCommand{Action: ActionAdd})
	assert.ErrorIs(t, err, ErrNoCurrentList)

	_, err = k.ToggleRecipe(ctx, alice.ID, ref.ID(bobsList.ID), soup.Recipe.ID, RecipeCommand{Action: ActionAdd})
	assert.ErrorIs(t, err, guard.ErrForbidden)

	createCurrentList(t, k, alice.ID)
	_, err = k.ToggleRecipe(ctx, alice.ID, ref.New(), 9999, RecipeCommand{Action: ActionAdd})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = k.ToggleRecipe(ctx, alice.ID, ref.New(), soup.Recipe.ID, RecipeCommand{Action: "flip"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteShoppingList_ClearsCurrent(t *testing.T) {
	k, s := setupTestKitchen(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	list := createCurrentList(t, k, alice.ID)

	assert.ErrorIs(t, k.DeleteShoppingList(ctx, bob.ID, list.ID), guard.ErrForbidden)
	require.NoError(t, k.DeleteShoppingList(ctx, alice.ID, list.ID))

	_, err := k.GetShoppingList(ctx, alice.ID, ref.New())
	assert.ErrorIs(t, err, ErrNoCurrentList)
	assert.ErrorIs(t, k.DeleteShoppingList(ctx, alice.ID, list.ID), store.ErrNotFound)
}
