// ABOUTME: Read-only aggregations over a user's recipes
// ABOUTME: Recipes without a category are counted under "other"

package store

import (
	"context"
	"fmt"
)

// UncategorizedLabel is the category reported for recipes with an empty category.
const UncategorizedLabel = "other"

// RecipeCategoryCounts returns recipe counts per category for userID, sorted by category.
func (s *SQLiteStore) RecipeCategoryCounts(ctx context.Context, userID int64) ([]CategoryCount, error) {
	query := `
		SELECT CASE WHEN category = '' THEN ? ELSE category END AS cat, COUNT(*)
		FROM recipes
		WHERE user_id = ?
		GROUP BY cat
		ORDER BY cat
	`

	rows, err := s.q.QueryContext(ctx, query, UncategorizedLabel, userID)
	if err != nil {
		return nil, fmt.Errorf("querying category counts: %w", err)
	}
	defer rows.Close()

	counts := []CategoryCount{}
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Recipes); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}
	return counts, nil
}
