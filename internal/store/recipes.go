// ABOUTME: Recipe and recipe ingredient store methods
// ABOUTME: Recipe ingredients cascade with their recipe through foreign keys

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const recipeColumns = `id, user_id, name, category, description, serves, duration, image`

// ListRecipes returns the recipes owned by userID ordered by id.
func (s *SQLiteStore) ListRecipes(ctx context.Context, userID int64) ([]*Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE user_id = ? ORDER BY id`

	rows, err := s.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	recipes := []*Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID.
func (s *SQLiteStore) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = ?`

	r, err := scanRecipe(s.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("recipe", id)
	}
	return r, err
}

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*Recipe, error) {
	var r Recipe
	err := scanner.Scan(
		&r.ID,
		&r.UserID,
		&r.Name,
		&r.Category,
		&r.Description,
		&r.Serves,
		&r.Duration,
		&r.Image,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning recipe: %w", err)
	}
	return &r, nil
}

// CreateRecipe inserts a recipe and sets recipe.ID.
func (s *SQLiteStore) CreateRecipe(ctx context.Context, recipe *Recipe) error {
	query := `
		INSERT INTO recipes (user_id, name, category, description, serves, duration, image)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.q.ExecContext(ctx, query,
		recipe.UserID,
		recipe.Name,
		recipe.Category,
		recipe.Description,
		recipe.Serves,
		recipe.Duration,
		recipe.Image,
	)
	if err != nil {
		return fmt.Errorf("inserting recipe: %w", err)
	}
	if recipe.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading recipe id: %w", err)
	}

	s.logger.Debug("created recipe", "id", recipe.ID, "user_id", recipe.UserID)
	return nil
}

// UpdateRecipe writes the scalar fields of recipe. The owner is never changed.
func (s *SQLiteStore) UpdateRecipe(ctx context.Context, recipe *Recipe) error {
	query := `
		UPDATE recipes
		SET name = ?, category = ?, description = ?, serves = ?, duration = ?, image = ?
		WHERE id = ?
	`

	res, err := s.q.ExecContext(ctx, query,
		recipe.Name,
		recipe.Category,
		recipe.Description,
		recipe.Serves,
		recipe.Duration,
		recipe.Image,
		recipe.ID,
	)
	if err != nil {
		return fmt.Errorf("updating recipe: %w", err)
	}
	return checkAffected(res, "recipe", recipe.ID)
}

// DeleteRecipe deletes a recipe together with its recipe ingredients and any
// shopping items referencing it.
func (s *SQLiteStore) DeleteRecipe(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	if err := checkAffected(res, "recipe", id); err != nil {
		return err
	}

	s.logger.Debug("deleted recipe", "id", id)
	return nil
}

const recipeIngredientSelect = `
	SELECT ri.id, ri.recipe_id, ri.ingredient_id, i.name, ri.unit, ri.quantity
	FROM recipe_ingredients ri
	JOIN ingredients i ON i.id = ri.ingredient_id
`

// ListRecipeIngredients returns the ingredient lines of a recipe ordered by id.
func (s *SQLiteStore) ListRecipeIngredients(ctx context.Context, recipeID int64) ([]*RecipeIngredient, error) {
	rows, err := s.q.QueryContext(ctx, recipeIngredientSelect+`WHERE ri.recipe_id = ? ORDER BY ri.id`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("querying recipe ingredients: %w", err)
	}
	defer rows.Close()

	lines := []*RecipeIngredient{}
	for rows.Next() {
		ri, err := scanRecipeIngredient(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, ri)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipe ingredients: %w", err)
	}
	return lines, nil
}

// GetRecipeIngredient retrieves one recipe ingredient line by ID.
func (s *SQLiteStore) GetRecipeIngredient(ctx context.Context, id int64) (*RecipeIngredient, error) {
	ri, err := scanRecipeIngredient(s.q.QueryRowContext(ctx, recipeIngredientSelect+`WHERE ri.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("recipe ingredient", id)
	}
	return ri, err
}

func scanRecipeIngredient(scanner interface{ Scan(dest ...any) error }) (*RecipeIngredient, error) {
	var ri RecipeIngredient
	err := scanner.Scan(&ri.ID, &ri.RecipeID, &ri.IngredientID, &ri.IngredientName, &ri.Unit, &ri.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning recipe ingredient: %w", err)
	}
	return &ri, nil
}

// CreateRecipeIngredient inserts a recipe ingredient line and sets ri.ID.
func (s *SQLiteStore) CreateRecipeIngredient(ctx context.Context, ri *RecipeIngredient) error {
	query := `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, unit, quantity)
		VALUES (?, ?, ?, ?)
	`

	res, err := s.q.ExecContext(ctx, query, ri.RecipeID, ri.IngredientID, ri.Unit, ri.Quantity)
	if err != nil {
		return fmt.Errorf("inserting recipe ingredient: %w", err)
	}
	if ri.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading recipe ingredient id: %w", err)
	}
	return nil
}

// UpdateRecipeIngredient writes the ingredient, unit and quantity of ri.
func (s *SQLiteStore) UpdateRecipeIngredient(ctx context.Context, ri *RecipeIngredient) error {
	query := `
		UPDATE recipe_ingredients
		SET ingredient_id = ?, unit = ?, quantity = ?
		WHERE id = ?
	`

	res, err := s.q.ExecContext(ctx, query, ri.IngredientID, ri.Unit, ri.Quantity, ri.ID)
	if err != nil {
		return fmt.Errorf("updating recipe ingredient: %w", err)
	}
	return checkAffected(res, "recipe ingredient", ri.ID)
}

// DeleteRecipeIngredient deletes one recipe ingredient line.
func (s *SQLiteStore) DeleteRecipeIngredient(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting recipe ingredient: %w", err)
	}
	return checkAffected(res, "recipe ingredient", id)
}
