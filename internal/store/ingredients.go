// ABOUTME: Ingredient store methods and the ingredient/location association
// ABOUTME: Association rows are unique per (ingredient, location) pair

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ListIngredients returns the ingredients owned by userID ordered by id,
// each with its location ids.
func (s *SQLiteStore) ListIngredients(ctx context.Context, userID int64) ([]*Ingredient, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, user_id, name FROM ingredients WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []*Ingredient{}
	byID := make(map[int64]*Ingredient)
	for rows.Next() {
		ing := &Ingredient{LocationIDs: []int64{}}
		if err := rows.Scan(&ing.ID, &ing.UserID, &ing.Name); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
		byID[ing.ID] = ing
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredients: %w", err)
	}
	rows.Close()

	query := `
		SELECT il.ingredient_id, il.location_id
		FROM ingredient_locations il
		JOIN ingredients i ON i.id = il.ingredient_id
		WHERE i.user_id = ?
		ORDER BY il.ingredient_id, il.location_id
	`
	locRows, err := s.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying ingredient locations: %w", err)
	}
	defer locRows.Close()

	for locRows.Next() {
		var ingredientID, locationID int64
		if err := locRows.Scan(&ingredientID, &locationID); err != nil {
			return nil, fmt.Errorf("scanning ingredient location: %w", err)
		}
		if ing, ok := byID[ingredientID]; ok {
			ing.LocationIDs = append(ing.LocationIDs, locationID)
		}
	}
	if err := locRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredient locations: %w", err)
	}
	return ingredients, nil
}

// GetIngredient retrieves an ingredient by ID with its location ids.
func (s *SQLiteStore) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	return s.getIngredient(ctx, `SELECT id, user_id, name FROM ingredients WHERE id = ?`, id)
}

// GetIngredientByName retrieves the first ingredient of userID named name.
func (s *SQLiteStore) GetIngredientByName(ctx context.Context, userID int64, name string) (*Ingredient, error) {
	return s.getIngredient(ctx,
		`SELECT id, user_id, name FROM ingredients WHERE user_id = ? AND name = ? ORDER BY id LIMIT 1`,
		userID, name)
}

func (s *SQLiteStore) getIngredient(ctx context.Context, query string, args ...any) (*Ingredient, error) {
	ing := &Ingredient{}
	err := s.q.QueryRowContext(ctx, query, args...).Scan(&ing.ID, &ing.UserID, &ing.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("ingredient", args[len(args)-1])
	}
	if err != nil {
		return nil, fmt.Errorf("querying ingredient: %w", err)
	}

	if ing.LocationIDs, err = s.ingredientLocationIDs(ctx, ing.ID); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *SQLiteStore) ingredientLocationIDs(ctx context.Context, ingredientID int64) ([]int64, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT location_id FROM ingredient_locations WHERE ingredient_id = ? ORDER BY location_id`,
		ingredientID)
	if err != nil {
		return nil, fmt.Errorf("querying ingredient locations: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning location id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredient locations: %w", err)
	}
	return ids, nil
}

// CreateIngredient inserts an ingredient and sets ingredient.ID.
// LocationIDs are not written; use AddIngredientLocation.
func (s *SQLiteStore) CreateIngredient(ctx context.Context, ingredient *Ingredient) error {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO ingredients (user_id, name) VALUES (?, ?)`,
		ingredient.UserID, ingredient.Name)
	if err != nil {
		return fmt.Errorf("inserting ingredient: %w", err)
	}
	if ingredient.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading ingredient id: %w", err)
	}
	if ingredient.LocationIDs == nil {
		ingredient.LocationIDs = []int64{}
	}

	s.logger.Debug("created ingredient", "id", ingredient.ID, "user_id", ingredient.UserID)
	return nil
}

// UpdateIngredient writes the name of ingredient.
func (s *SQLiteStore) UpdateIngredient(ctx context.Context, ingredient *Ingredient) error {
	res, err := s.q.ExecContext(ctx, `UPDATE ingredients SET name = ? WHERE id = ?`, ingredient.Name, ingredient.ID)
	if err != nil {
		return fmt.Errorf("updating ingredient: %w", err)
	}
	return checkAffected(res, "ingredient", ingredient.ID)
}

// DeleteIngredient deletes an ingredient. Recipe lines, shopping items and
// location associations referencing it are removed with it.
func (s *SQLiteStore) DeleteIngredient(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM ingredients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting ingredient: %w", err)
	}
	return checkAffected(res, "ingredient", id)
}

// AddIngredientLocation associates a location with an ingredient.
// Adding an existing pair is a no-op.
func (s *SQLiteStore) AddIngredientLocation(ctx context.Context, ingredientID, locationID int64) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO ingredient_locations (ingredient_id, location_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		ingredientID, locationID)
	if err != nil {
		return fmt.Errorf("adding ingredient location: %w", err)
	}
	return nil
}

// RemoveIngredientLocation removes the association between an ingredient and a location.
func (s *SQLiteStore) RemoveIngredientLocation(ctx context.Context, ingredientID, locationID int64) error {
	res, err := s.q.ExecContext(ctx,
		`DELETE FROM ingredient_locations WHERE ingredient_id = ? AND location_id = ?`,
		ingredientID, locationID)
	if err != nil {
		return fmt.Errorf("removing ingredient location: %w", err)
	}
	return checkAffected(res, "ingredient location", fmt.Sprintf("%d/%d", ingredientID, locationID))
}
