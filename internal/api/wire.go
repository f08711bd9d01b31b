// ABOUTME: JSON response shapes for every kitchen entity
// ABOUTME: Converters from store and kitchen types to their wire form

package api

import (
	"time"

	"github.com/2389/pantry/internal/kitchen"
	"github.com/2389/pantry/internal/store"
)

type recipeSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	Serves         int    `json:"serves"`
	Duration       int    `json:"duration"`
	Image          string `json:"image"`
	InShoppingList bool   `json:"in_shopping_list"`
}

type recipeDetail struct {
	recipeSummary
	RecipeIngredients []recipeIngredientResponse `json:"recipe_ingredients"`
}

type ingredientRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type recipeIngredientResponse struct {
	ID         int64         `json:"id"`
	Ingredient ingredientRef `json:"ingredient"`
	Unit       string        `json:"unit"`
	Quantity   float64       `json:"quantity"`
}

type ingredientResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Locations []int64 `json:"locations"`
}

type recipeRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Serves int    `json:"serves"`
}

type shoppingItemResponse struct {
	ID         int64          `json:"id"`
	Unit       string         `json:"unit"`
	Quantity   float64        `json:"quantity"`
	Ingredient *ingredientRef `json:"ingredient"`
	Recipe     *recipeRef     `json:"recipe"`
}

type shoppingListResponse struct {
	ID    int64                  `json:"id"`
	Name  string                 `json:"name"`
	Date  string                 `json:"date"`
	Items []shoppingItemResponse `json:"items"`
}

type shopResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type locationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Shop int64  `json:"shop"`
}

type categoryCount struct {
	Category string `json:"category"`
	Recipes  int    `json:"recipes"`
}

type statsResponse struct {
	Recipes      []categoryCount `json:"recipes"`
	RecipeNumber int             `json:"recipe_number"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toRecipeSummary(v kitchen.RecipeView) recipeSummary {
	r := v.Recipe
	return recipeSummary{
		ID:             r.ID,
		Name:           r.Name,
		Category:       r.Category,
		Description:    r.Description,
		Serves:         r.Serves,
		Duration:       r.Duration,
		Image:          r.Image,
		InShoppingList: v.InShoppingList,
	}
}

func toRecipeDetail(v *kitchen.RecipeView) recipeDetail {
	lines := make([]recipeIngredientResponse, len(v.Ingredients))
	for i, ri := range v.Ingredients {
		lines[i] = recipeIngredientResponse{
			ID:         ri.ID,
			Ingredient: ingredientRef{ID: ri.IngredientID, Name: ri.IngredientName},
			Unit:       ri.Unit,
			Quantity:   ri.Quantity,
		}
	}
	return recipeDetail{recipeSummary: toRecipeSummary(*v), RecipeIngredients: lines}
}

func toIngredient(ing *store.Ingredient) ingredientResponse {
	locs := ing.LocationIDs
	if locs == nil {
		locs = []int64{}
	}
	return ingredientResponse{ID: ing.ID, Name: ing.Name, Locations: locs}
}

func toShoppingList(v *kitchen.ShoppingListView) shoppingListResponse {
	items := make([]shoppingItemResponse, len(v.Items))
	for i, item := range v.Items {
		resp := shoppingItemResponse{ID: item.ID, Unit: item.Unit, Quantity: item.Quantity}
		if item.IngredientID != nil {
			resp.Ingredient = &ingredientRef{ID: *item.IngredientID, Name: item.IngredientName}
		}
		if item.RecipeID != nil {
			resp.Recipe = &recipeRef{ID: *item.RecipeID, Name: item.RecipeName, Serves: item.RecipeServes}
		}
		items[i] = resp
	}
	return shoppingListResponse{
		ID:    v.List.ID,
		Name:  v.List.Name,
		Date:  v.List.CreatedAt.UTC().Format(time.RFC3339),
		Items: items,
	}
}

// toShop renders nil as JSON null.
func toShop(shop *store.Shop) *shopResponse {
	if shop == nil {
		return nil
	}
	return &shopResponse{ID: shop.ID, Name: shop.Name}
}

func toLocation(loc *store.Location) locationResponse {
	return locationResponse{ID: loc.ID, Name: loc.Name, Shop: loc.ShopID}
}

func toStats(st *kitchen.Stats) statsResponse {
	counts := make([]categoryCount, len(st.Categories))
	for i, c := range st.Categories {
		counts[i] = categoryCount{Category: c.Category, Recipes: c.Recipes}
	}
	return statsResponse{Recipes: counts, RecipeNumber: st.Total}
}
