// ABOUTME: Recipe operations: list, get, create-or-update with line reconciliation, delete
// ABOUTME: Each recipe is annotated with whether it is in the current shopping list

package kitchen

import (
	"context"
	"fmt"

	"github.com/2389/pantry/internal/reconcile"
	"github.com/2389/pantry/internal/ref"
	"github.com/2389/pantry/internal/store"
)

// RecipeView is a recipe as returned to clients.
type RecipeView struct {
	Recipe         *store.Recipe
	Ingredients    []*store.RecipeIngredient // nil in list views
	InShoppingList bool
}

// ListRecipes returns the user's recipes, each flagged with membership in the
// current shopping list using one query over the whole id set.
func (k *Kitchen) ListRecipes(ctx context.Context, userID int64) ([]RecipeView, error) {
	var views []RecipeView
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		recipes, err := tx.ListRecipes(ctx, userID)
		if err != nil {
			return err
		}

		inList := map[int64]bool{}
		if listID, ok, err := currentListID(ctx, tx, userID); err != nil {
			return err
		} else if ok {
			ids := make([]int64, len(recipes))
			for i, r := range recipes {
				ids[i] = r.ID
			}
			if inList, err = tx.RecipesInList(ctx, listID, ids); err != nil {
				return err
			}
		}

		views = make([]RecipeView, len(recipes))
		for i, r := range recipes {
			views[i] = RecipeView{Recipe: r, InShoppingList: inList[r.ID]}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return views, nil
}

// GetRecipe returns a recipe with its ingredient lines.
func (k *Kitchen) GetRecipe(ctx context.Context, userID, recipeID int64) (*RecipeView, error) {
	var view *RecipeView
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		recipe, err := tx.GetRecipe(ctx, recipeID)
		if err := authorize(userID, recipe, err); err != nil {
			return err
		}
		view, err = loadRecipeView(ctx, tx, userID, recipe)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func loadRecipeView(ctx context.Context, tx store.Store, userID int64, recipe *store.Recipe) (*RecipeView, error) {
	lines, err := tx.ListRecipeIngredients(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}

	view := &RecipeView{Recipe: recipe, Ingredients: lines}
	listID, ok, err := currentListID(ctx, tx, userID)
	if err != nil || !ok {
		return view, err
	}
	in, err := tx.RecipesInList(ctx, listID, []int64{recipe.ID})
	if err != nil {
		return nil, err
	}
	view.InShoppingList = in[recipe.ID]
	return view, nil
}

// SaveRecipe creates the recipe when target is the sentinel and otherwise
// updates it, then reconciles its ingredient lines with in.RecipeIngredients.
// Every referenced ingredient must belong to the user.
func (k *Kitchen) SaveRecipe(ctx context.Context, userID int64, target ref.Ref, in RecipeInput) (*RecipeView, error) {
	var view *RecipeView
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		recipe := &store.Recipe{UserID: userID}
		if id, ok := target.Existing(); ok {
			var err error
			recipe, err = tx.GetRecipe(ctx, id)
			if err := authorize(userID, recipe, err); err != nil {
				return err
			}
		}

		// Referenced ingredients are resolved before any write
		if err := checkRecipeIngredients(ctx, tx, userID, in.RecipeIngredients); err != nil {
			return err
		}

		in.applyTo(recipe)
		if recipe.ID == 0 {
			if err := tx.CreateRecipe(ctx, recipe); err != nil {
				return err
			}
		} else if err := tx.UpdateRecipe(ctx, recipe); err != nil {
			return err
		}

		if in.RecipeIngredients != nil {
			if err := reconcileRecipeIngredients(ctx, tx, recipe.ID, in.RecipeIngredients); err != nil {
				return err
			}
		}

		var err error
		view, err = loadRecipeView(ctx, tx, userID, recipe)
		return err
	})
	if err != nil {
		return nil, err
	}

	k.logger.Debug("saved recipe", "id", view.Recipe.ID, "user_id", userID, "lines", len(view.Ingredients))
	return view, nil
}

// applyTo copies the submitted scalar fields onto r.
func (in RecipeInput) applyTo(r *store.Recipe) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Category != nil {
		r.Category = *in.Category
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Serves != nil {
		r.Serves = int(*in.Serves)
	}
	if in.Duration != nil {
		r.Duration = int(*in.Duration)
	}
	if in.Image != nil {
		r.Image = *in.Image
	}
}

func checkRecipeIngredients(ctx context.Context, tx store.Store, userID int64, lines []RecipeIngredientInput) error {
	seen := map[EntityID]bool{}
	for _, line := range lines {
		id := *line.Ingredient
		if seen[id] {
			continue
		}
		seen[id] = true
		ing, err := tx.GetIngredient(ctx, int64(id))
		if err := authorize(userID, ing, err); err != nil {
			return fmt.Errorf("recipe ingredient: %w", err)
		}
	}
	return nil
}

func reconcileRecipeIngredients(ctx context.Context, tx store.Store, recipeID int64, submitted []RecipeIngredientInput) error {
	existing, err := tx.ListRecipeIngredients(ctx, recipeID)
	if err != nil {
		return err
	}

	plan, err := reconcile.Diff(existing, submitted,
		func(ri *store.RecipeIngredient) int64 { return ri.ID },
		func(in RecipeIngredientInput) ref.Ref { return in.ID },
	)
	if err != nil {
		return fmt.Errorf("recipe ingredient: %w", err)
	}

	return reconcile.Apply(ctx, plan, reconcile.Ops[*store.RecipeIngredient, RecipeIngredientInput]{
		Delete: func(ctx context.Context, ri *store.RecipeIngredient) error {
			return tx.DeleteRecipeIngredient(ctx, ri.ID)
		},
		Update: func(ctx context.Context, ri *store.RecipeIngredient, in RecipeIngredientInput) error {
			in.applyTo(ri)
			return tx.UpdateRecipeIngredient(ctx, ri)
		},
		Create: func(ctx context.Context, in RecipeIngredientInput) error {
			ri := &store.RecipeIngredient{RecipeID: recipeID}
			in.applyTo(ri)
			return tx.CreateRecipeIngredient(ctx, ri)
		},
	})
}

func (in RecipeIngredientInput) applyTo(ri *store.RecipeIngredient) {
	ri.IngredientID = int64(*in.Ingredient)
	ri.Unit = in.Unit
	ri.Quantity = float64(in.Quantity)
}

// DeleteRecipe deletes a recipe and its ingredient lines.
func (k *Kitchen) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		recipe, err := tx.GetRecipe(ctx, recipeID)
		if err := authorize(userID, recipe, err); err != nil {
			return err
		}
		return tx.DeleteRecipe(ctx, recipeID)
	})
	if err != nil {
		return err
	}

	k.logger.Debug("deleted recipe", "id", recipeID, "user_id", userID)
	return nil
}
