// ABOUTME: Recipe statistics per category

package kitchen

import (
	"context"
	"fmt"

	"github.com/2389/pantry/internal/store"
)

// Stats summarizes a user's recipes.
type Stats struct {
	Categories []store.CategoryCount
	Total      int
}

// RecipeStats counts the user's recipes per category. Recipes without a
// category are counted under store.UncategorizedLabel.
func (k *Kitchen) RecipeStats(ctx context.Context, userID int64) (*Stats, error) {
	counts, err := k.store.RecipeCategoryCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting recipes: %w", err)
	}

	stats := &Stats{Categories: counts}
	for _, c := range counts {
		stats.Total += c.Recipes
	}
	return stats, nil
}
