// ABOUTME: Shopping list and shopping item store methods
// ABOUTME: Items reference exactly one ingredient or recipe, checked here and by the schema

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetShoppingList retrieves a shopping list by ID.
func (s *SQLiteStore) GetShoppingList(ctx context.Context, id int64) (*ShoppingList, error) {
	var list ShoppingList
	var createdAt string
	err := s.q.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM shopping_lists WHERE id = ?`, id).
		Scan(&list.ID, &list.UserID, &list.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("shopping list", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying shopping list: %w", err)
	}
	if list.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateShoppingList inserts a shopping list and sets list.ID.
func (s *SQLiteStore) CreateShoppingList(ctx context.Context, list *ShoppingList) error {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO shopping_lists (user_id, name, created_at) VALUES (?, ?, ?)`,
		list.UserID, list.Name, formatTime(list.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting shopping list: %w", err)
	}
	if list.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading shopping list id: %w", err)
	}

	s.logger.Debug("created shopping list", "id", list.ID, "user_id", list.UserID)
	return nil
}

// UpdateShoppingList writes the name of list. The creation date is immutable.
func (s *SQLiteStore) UpdateShoppingList(ctx context.Context, list *ShoppingList) error {
	res, err := s.q.ExecContext(ctx, `UPDATE shopping_lists SET name = ? WHERE id = ?`, list.Name, list.ID)
	if err != nil {
		return fmt.Errorf("updating shopping list: %w", err)
	}
	return checkAffected(res, "shopping list", list.ID)
}

// DeleteShoppingList deletes a shopping list and its items. Profiles pointing
// at it are left without a current list.
func (s *SQLiteStore) DeleteShoppingList(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting shopping list: %w", err)
	}
	return checkAffected(res, "shopping list", id)
}

const shoppingItemSelect = `
	SELECT si.id, si.list_id, si.ingredient_id, si.recipe_id, si.unit, si.quantity,
		COALESCE(i.name, ''), COALESCE(r.name, ''), COALESCE(r.serves, 0)
	FROM shopping_items si
	LEFT JOIN ingredients i ON i.id = si.ingredient_id
	LEFT JOIN recipes r ON r.id = si.recipe_id
`

// ListShoppingItems returns the items of a shopping list ordered by id.
func (s *SQLiteStore) ListShoppingItems(ctx context.Context, listID int64) ([]*ShoppingItem, error) {
	rows, err := s.q.QueryContext(ctx, shoppingItemSelect+`WHERE si.list_id = ? ORDER BY si.id`, listID)
	if err != nil {
		return nil, fmt.Errorf("querying shopping items: %w", err)
	}
	defer rows.Close()

	items := []*ShoppingItem{}
	for rows.Next() {
		item, err := scanShoppingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shopping items: %w", err)
	}
	return items, nil
}

// FindRecipeItem returns the first item of listID referencing recipeID.
func (s *SQLiteStore) FindRecipeItem(ctx context.Context, listID, recipeID int64) (*ShoppingItem, error) {
	row := s.q.QueryRowContext(ctx,
		shoppingItemSelect+`WHERE si.list_id = ? AND si.recipe_id = ? ORDER BY si.id LIMIT 1`,
		listID, recipeID)
	item, err := scanShoppingItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("shopping item for recipe", recipeID)
	}
	return item, err
}

func scanShoppingItem(scanner interface{ Scan(dest ...any) error }) (*ShoppingItem, error) {
	var item ShoppingItem
	var ingredientID, recipeID sql.NullInt64
	err := scanner.Scan(
		&item.ID,
		&item.ListID,
		&ingredientID,
		&recipeID,
		&item.Unit,
		&item.Quantity,
		&item.IngredientName,
		&item.RecipeName,
		&item.RecipeServes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning shopping item: %w", err)
	}
	item.IngredientID = idPtr(ingredientID)
	item.RecipeID = idPtr(recipeID)
	return &item, nil
}

// CreateShoppingItem inserts an item and sets item.ID.
// Returns ErrInvalidShoppingItem unless exactly one reference is set.
func (s *SQLiteStore) CreateShoppingItem(ctx context.Context, item *ShoppingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx,
		`INSERT INTO shopping_items (list_id, ingredient_id, recipe_id, unit, quantity) VALUES (?, ?, ?, ?, ?)`,
		item.ListID,
		nullableID(item.IngredientID),
		nullableID(item.RecipeID),
		item.Unit,
		item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("inserting shopping item: %w", err)
	}
	if item.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading shopping item id: %w", err)
	}
	return nil
}

// UpdateShoppingItem writes the references, unit and quantity of item.
func (s *SQLiteStore) UpdateShoppingItem(ctx context.Context, item *ShoppingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx,
		`UPDATE shopping_items SET ingredient_id = ?, recipe_id = ?, unit = ?, quantity = ? WHERE id = ?`,
		nullableID(item.IngredientID),
		nullableID(item.RecipeID),
		item.Unit,
		item.Quantity,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating shopping item: %w", err)
	}
	return checkAffected(res, "shopping item", item.ID)
}

// DeleteShoppingItem deletes one item.
func (s *SQLiteStore) DeleteShoppingItem(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting shopping item: %w", err)
	}
	return checkAffected(res, "shopping item", id)
}

// RecipesInList returns which of recipeIDs are referenced by items of listID
// using a single query over the whole id set.
func (s *SQLiteStore) RecipesInList(ctx context.Context, listID int64, recipeIDs []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return found, nil
	}

	args := make([]any, 0, len(recipeIDs)+1)
	args = append(args, listID)
	for _, id := range recipeIDs {
		args = append(args, id)
	}

	query := fmt.Sprintf(
		`SELECT DISTINCT recipe_id FROM shopping_items WHERE list_id = ? AND recipe_id IN (%s)`,
		placeholders(len(recipeIDs)))
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recipe membership: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning recipe id: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipe membership: %w", err)
	}
	return found, nil
}
