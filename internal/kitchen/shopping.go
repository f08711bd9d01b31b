// ABOUTME: Shopping list operations and the per-recipe add/remove toggle
// ABOUTME: The sentinel ref addresses the user's current list

package kitchen

import (
	"context"
	"errors"
	"fmt"

	"github.com/2389/pantry/internal/reconcile"
	"github.com/2389/pantry/internal/ref"
	"github.com/2389/pantry/internal/store"
)

// Toggle results reported to clients.
const (
	StatusAdded         = "added"
	StatusAlreadyInList = "already in list"
	StatusRemoved       = "removed"
	StatusNotInList     = "not in list"
)

// RecipeServingUnit is the unit of items created by the recipe toggle.
const RecipeServingUnit = "serve"

// ShoppingListView is a shopping list with its items.
type ShoppingListView struct {
	List  *store.ShoppingList
	Items []*store.ShoppingItem
}

// resolveList loads the list addressed by r, the current list for the
// sentinel, and checks the user owns it.
func resolveList(ctx context.Context, tx store.Store, userID int64, r ref.Ref) (*store.ShoppingList, error) {
	id, ok := r.Existing()
	if !ok {
		current, set, err := currentListID(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
		if !set {
			return nil, ErrNoCurrentList
		}
		id = current
	}

	list, err := tx.GetShoppingList(ctx, id)
	if err := authorize(userID, list, err); err != nil {
		return nil, err
	}
	return list, nil
}

func loadListView(ctx context.Context, tx store.Store, list *store.ShoppingList) (*ShoppingListView, error) {
	items, err := tx.ListShoppingItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	return &ShoppingListView{List: list, Items: items}, nil
}

// GetShoppingList returns the list addressed by r with its items.
func (k *Kitchen) GetShoppingList(ctx context.Context, userID int64, r ref.Ref) (*ShoppingListView, error) {
	var view *ShoppingListView
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		list, err := resolveList(ctx, tx, userID, r)
		if err != nil {
			return err
		}
		view, err = loadListView(ctx, tx, list)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SaveShoppingList creates a new current list when target is the sentinel,
// copying the submitted items into it. Otherwise it updates the addressed
// list and reconciles its items.
func (k *Kitchen) SaveShoppingList(ctx context.Context, userID int64, target ref.Ref, in ShoppingListInput) (*ShoppingListView, error) {
	var view *ShoppingListView
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		var list *store.ShoppingList
		if id, ok := target.Existing(); ok {
			var err error
			list, err = tx.GetShoppingList(ctx, id)
			if err := authorize(userID, list, err); err != nil {
				return err
			}
			if err := checkShoppingItems(ctx, tx, userID, in.Items); err != nil {
				return err
			}
			if in.Name != nil {
				list.Name = *in.Name
				if err := tx.UpdateShoppingList(ctx, list); err != nil {
					return err
				}
			}
			if in.Items != nil {
				if err := reconcileShoppingItems(ctx, tx, list.ID, in.Items); err != nil {
					return err
				}
			}
		} else {
			if err := checkShoppingItems(ctx, tx, userID, in.Items); err != nil {
				return err
			}
			list = &store.ShoppingList{UserID: userID, CreatedAt: k.now().UTC()}
			if in.Name != nil {
				list.Name = *in.Name
			}
			if err := tx.CreateShoppingList(ctx, list); err != nil {
				return err
			}
			for _, item := range in.Items {
				if err := tx.CreateShoppingItem(ctx, item.toItem(list.ID)); err != nil {
					return err
				}
			}

			p, err := profile(ctx, tx, userID)
			if err != nil {
				return err
			}
			p.ShoppingListID = &list.ID
			if err := tx.SaveProfile(ctx, p); err != nil {
				return err
			}
		}

		var err error
		view, err = loadListView(ctx, tx, list)
		return err
	})
	if err != nil {
		return nil, err
	}

	k.logger.Debug("saved shopping list", "id", view.List.ID, "user_id", userID, "items", len(view.Items))
	return view, nil
}

// checkShoppingItems resolves item references. Ingredients must belong to the
// user; recipes only have to exist.
func checkShoppingItems(ctx context.Context, tx store.Store, userID int64, items []ShoppingItemInput) error {
	for _, item := range items {
		switch {
		case item.Ingredient != nil:
			ing, err := tx.GetIngredient(ctx, int64(*item.Ingredient))
			if err := authorize(userID, ing, err); err != nil {
				return fmt.Errorf("shopping list item: %w", err)
			}
		case item.Recipe != nil:
			if _, err := tx.GetRecipe(ctx, int64(*item.Recipe)); err != nil {
				return fmt.Errorf("shopping list item: %w", err)
			}
		}
	}
	return nil
}

func (in ShoppingItemInput) toItem(listID int64) *store.ShoppingItem {
	item := &store.ShoppingItem{ListID: listID}
	in.applyTo(item)
	return item
}

func (in ShoppingItemInput) applyTo(item *store.ShoppingItem) {
	item.Unit = in.Unit
	item.Quantity = float64(in.Quantity)
	item.IngredientID, item.RecipeID = nil, nil
	if in.Ingredient != nil {
		id := int64(*in.Ingredient)
		item.IngredientID = &id
	}
	if in.Recipe != nil {
		id := int64(*in.Recipe)
		item.RecipeID = &id
	}
}

func reconcileShoppingItems(ctx context.Context, tx store.Store, listID int64, submitted []ShoppingItemInput) error {
	existing, err := tx.ListShoppingItems(ctx, listID)
	if err != nil {
		return err
	}

	plan, err := reconcile.Diff(existing, submitted,
		func(item *store.ShoppingItem) int64 { return item.ID },
		func(in ShoppingItemInput) ref.Ref { return in.ID },
	)
	if err != nil {
		return fmt.Errorf("shopping list item: %w", err)
	}

	return reconcile.Apply(ctx, plan, reconcile.Ops[*store.ShoppingItem, ShoppingItemInput]{
		Delete: func(ctx context.Context, item *store.ShoppingItem) error {
			return tx.DeleteShoppingItem(ctx, item.ID)
		},
		Update: func(ctx context.Context, item *store.ShoppingItem, in ShoppingItemInput) error {
			in.applyTo(item)
			return tx.UpdateShoppingItem(ctx, item)
		},
		Create: func(ctx context.Context, in ShoppingItemInput) error {
			return tx.CreateShoppingItem(ctx, in.toItem(listID))
		},
	})
}

// DeleteShoppingList deletes a list and its items. If it was the current list
// the user is left without one.
func (k *Kitchen) DeleteShoppingList(ctx context.Context, userID, listID int64) error {
	return k.store.WithTx(ctx, func(tx store.Store) error {
		list, err := tx.GetShoppingList(ctx, listID)
		if err := authorize(userID, list, err); err != nil {
			return err
		}
		return tx.DeleteShoppingList(ctx, listID)
	})
}

// RecipeInList reports whether the recipe has an item in the addressed list.
// Unknown recipes are simply not in the list.
func (k *Kitchen) RecipeInList(ctx context.Context, userID int64, listRef ref.Ref, recipeID int64) (bool, error) {
	var in bool
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		list, err := resolveList(ctx, tx, userID, listRef)
		if err != nil {
			return err
		}
		found, err := tx.RecipesInList(ctx, list.ID, []int64{recipeID})
		in = found[recipeID]
		return err
	})
	return in, err
}

// ToggleRecipe adds or removes the recipe's item in the addressed list and
// reports what happened. Adding uses the recipe's serving count as quantity.
func (k *Kitchen) ToggleRecipe(ctx context.Context, userID int64, listRef ref.Ref, recipeID int64, cmd RecipeCommand) (string, error) {
	var status string
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		list, err := resolveList(ctx, tx, userID, listRef)
		if err != nil {
			return err
		}
		recipe, err := tx.GetRecipe(ctx, recipeID)
		if err != nil {
			return err
		}

		item, err := tx.FindRecipeItem(ctx, list.ID, recipeID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		present := err == nil

		switch cmd.Action {
		case ActionAdd:
			if present {
				status = StatusAlreadyInList
				return nil
			}
			status = StatusAdded
			return tx.CreateShoppingItem(ctx, &store.ShoppingItem{
				ListID:   list.ID,
				RecipeID: &recipe.ID,
				Unit:     RecipeServingUnit,
				Quantity: float64(recipe.Serves),
			})
		case ActionRemove:
			if !present {
				status = StatusNotInList
				return nil
			}
			status = StatusRemoved
			return tx.DeleteShoppingItem(ctx, item.ID)
		default:
			return invalid("unknown command: %s", cmd.Action)
		}
	})
	if err != nil {
		return "", err
	}

	k.logger.Debug("toggled recipe", "list_id", listRef.String(), "recipe_id", recipeID, "status", status)
	return status, nil
}
