// ABOUTME: Ingredient operations including by-name lookup and location reconciliation
// ABOUTME: Location associations are diffed as a set against the submitted ids

package kitchen

import (
	"context"
	"fmt"

	"github.com/2389/pantry/internal/reconcile"
	"github.com/2389/pantry/internal/ref"
	"github.com/2389/pantry/internal/store"
)

// ListIngredients returns the user's ingredients.
func (k *Kitchen) ListIngredients(ctx context.Context, userID int64) ([]*store.Ingredient, error) {
	ings, err := k.store.ListIngredients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing ingredients: %w", err)
	}
	return ings, nil
}

// GetIngredient returns one of the user's ingredients.
func (k *Kitchen) GetIngredient(ctx context.Context, userID, id int64) (*store.Ingredient, error) {
	ing, err := k.store.GetIngredient(ctx, id)
	if err := authorize(userID, ing, err); err != nil {
		return nil, err
	}
	return ing, nil
}

// GetIngredientByName returns the user's ingredient called name. When several
// share the name the oldest wins.
func (k *Kitchen) GetIngredientByName(ctx context.Context, userID int64, name string) (*store.Ingredient, error) {
	return k.store.GetIngredientByName(ctx, userID, name)
}

// CreateIngredientByName always creates a new ingredient called name.
func (k *Kitchen) CreateIngredientByName(ctx context.Context, userID int64, name string) (*store.Ingredient, error) {
	ing := &store.Ingredient{UserID: userID, Name: name}
	if err := k.store.CreateIngredient(ctx, ing); err != nil {
		return nil, fmt.Errorf("creating ingredient: %w", err)
	}
	return ing, nil
}

// SaveIngredient creates or updates an ingredient. When in.Locations is set
// the ingredient's locations become exactly that set.
func (k *Kitchen) SaveIngredient(ctx context.Context, userID int64, target ref.Ref, in IngredientInput) (*store.Ingredient, error) {
	var saved *store.Ingredient
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		ing := &store.Ingredient{UserID: userID}
		if id, ok := target.Existing(); ok {
			var err error
			ing, err = tx.GetIngredient(ctx, id)
			if err := authorize(userID, ing, err); err != nil {
				return err
			}
		}

		var wanted []int64
		if in.Locations != nil {
			wanted = make([]int64, 0, len(in.Locations))
			for _, id := range in.Locations {
				loc, err := tx.GetLocation(ctx, int64(id))
				if err := authorize(userID, loc, err); err != nil {
					return fmt.Errorf("ingredient location: %w", err)
				}
				wanted = append(wanted, loc.ID)
			}
		}

		if in.Name != nil {
			ing.Name = *in.Name
		}
		if ing.ID == 0 {
			if err := tx.CreateIngredient(ctx, ing); err != nil {
				return err
			}
		} else if err := tx.UpdateIngredient(ctx, ing); err != nil {
			return err
		}

		if in.Locations != nil {
			add, remove := reconcile.Symmetric(ing.LocationIDs, wanted)
			for _, id := range remove {
				if err := tx.RemoveIngredientLocation(ctx, ing.ID, id); err != nil {
					return err
				}
			}
			for _, id := range add {
				if err := tx.AddIngredientLocation(ctx, ing.ID, id); err != nil {
					return err
				}
			}
		}

		var err error
		saved, err = tx.GetIngredient(ctx, ing.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	k.logger.Debug("saved ingredient", "id", saved.ID, "user_id", userID, "locations", len(saved.LocationIDs))
	return saved, nil
}

// DeleteIngredient deletes an ingredient. Recipe lines and shopping items
// referencing it go with it.
func (k *Kitchen) DeleteIngredient(ctx context.Context, userID, id int64) error {
	return k.store.WithTx(ctx, func(tx store.Store) error {
		ing, err := tx.GetIngredient(ctx, id)
		if err := authorize(userID, ing, err); err != nil {
			return err
		}
		return tx.DeleteIngredient(ctx, id)
	})
}
