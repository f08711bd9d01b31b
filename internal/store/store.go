// ABOUTME: Store interfaces and data types for pantry persistence
// ABOUTME: Defines users, recipes, ingredients, shops, locations and shopping lists

package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when trying to create a user with an existing username.
var ErrUsernameExists = errors.New("username already exists")

// ErrInvalidShoppingItem is returned when a shopping item does not reference
// exactly one of an ingredient or a recipe.
var ErrInvalidShoppingItem = errors.New("shopping item must reference exactly one of ingredient or recipe")

// User is an account that owns kitchen data.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt hash
	IsActive     bool
	CreatedAt    time.Time
}

// Profile holds the user's current shopping list and current shop.
// Both are weak pointers: deleting the list or shop sets them to nil.
type Profile struct {
	UserID         int64
	ShoppingListID *int64
	ShopID         *int64
}

// AuthToken is a bearer token issued to a user. ID is the token's jti claim.
type AuthToken struct {
	ID        string
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Recipe is a user's recipe.
type Recipe struct {
	ID          int64
	UserID      int64
	Name        string
	Category    string
	Description string
	Serves      int
	Duration    int // minutes
	Image       string
}

// OwnerID implements guard.Owned.
func (r *Recipe) OwnerID() int64 { return r.UserID }

// RecipeIngredient is one ingredient line of a recipe.
type RecipeIngredient struct {
	ID             int64
	RecipeID       int64
	IngredientID   int64
	IngredientName string // populated on reads
	Unit           string
	Quantity       float64
}

// Ingredient is a user's ingredient with the locations it can be found at.
type Ingredient struct {
	ID          int64
	UserID      int64
	Name        string
	LocationIDs []int64 // populated on reads, ascending
}

// OwnerID implements guard.Owned.
func (i *Ingredient) OwnerID() int64 { return i.UserID }

// Shop is a user's shop.
type Shop struct {
	ID     int64
	UserID int64
	Name   string
}

// OwnerID implements guard.Owned.
func (s *Shop) OwnerID() int64 { return s.UserID }

// Location is a place inside a shop (an aisle, a shelf).
type Location struct {
	ID     int64
	UserID int64
	ShopID int64
	Name   string
}

// OwnerID implements guard.Owned.
func (l *Location) OwnerID() int64 { return l.UserID }

// ShoppingList is a user's shopping list.
type ShoppingList struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// OwnerID implements guard.Owned.
func (l *ShoppingList) OwnerID() int64 { return l.UserID }

// ShoppingItem is one entry of a shopping list. Exactly one of IngredientID
// and RecipeID is set.
type ShoppingItem struct {
	ID             int64
	ListID         int64
	IngredientID   *int64
	RecipeID       *int64
	Unit           string
	Quantity       float64
	IngredientName string // populated on reads for ingredient items
	RecipeName     string // populated on reads for recipe items
	RecipeServes   int    // populated on reads for recipe items
}

// Validate checks the ingredient/recipe exclusivity rule.
func (i *ShoppingItem) Validate() error {
	if (i.IngredientID == nil) == (i.RecipeID == nil) {
		return ErrInvalidShoppingItem
	}
	return nil
}

// CategoryCount is the number of recipes in one category.
type CategoryCount struct {
	Category string
	Recipes  int
}

// UserStore defines persistence for accounts and profiles.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	SetUserActive(ctx context.Context, id int64, active bool) error

	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	SaveProfile(ctx context.Context, profile *Profile) error
}

// TokenStore defines persistence for issued bearer tokens.
type TokenStore interface {
	SaveAuthToken(ctx context.Context, token *AuthToken) error
	GetAuthToken(ctx context.Context, id string) (*AuthToken, error)
	GetAuthTokenByUser(ctx context.Context, userID int64) (*AuthToken, error)
	DeleteAuthTokensByUser(ctx context.Context, userID int64) error
}

// RecipeStore defines persistence for recipes and recipe ingredients.
type RecipeStore interface {
	ListRecipes(ctx context.Context, userID int64) ([]*Recipe, error)
	GetRecipe(ctx context.Context, id int64) (*Recipe, error)
	CreateRecipe(ctx context.Context, recipe *Recipe) error
	UpdateRecipe(ctx context.Context, recipe *Recipe) error
	DeleteRecipe(ctx context.Context, id int64) error

	ListRecipeIngredients(ctx context.Context, recipeID int64) ([]*RecipeIngredient, error)
	GetRecipeIngredient(ctx context.Context, id int64) (*RecipeIngredient, error)
	CreateRecipeIngredient(ctx context.Context, ri *RecipeIngredient) error
	UpdateRecipeIngredient(ctx context.Context, ri *RecipeIngredient) error
	DeleteRecipeIngredient(ctx context.Context, id int64) error
}

// IngredientStore defines persistence for ingredients and their locations.
type IngredientStore interface {
	ListIngredients(ctx context.Context, userID int64) ([]*Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*Ingredient, error)
	GetIngredientByName(ctx context.Context, userID int64, name string) (*Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *Ingredient) error
	UpdateIngredient(ctx context.Context, ingredient *Ingredient) error
	DeleteIngredient(ctx context.Context, id int64) error

	AddIngredientLocation(ctx context.Context, ingredientID, locationID int64) error
	RemoveIngredientLocation(ctx context.Context, ingredientID, locationID int64) error
}

// ShopStore defines persistence for shops and locations.
type ShopStore interface {
	ListShops(ctx context.Context, userID int64) ([]*Shop, error)
	GetShop(ctx context.Context, id int64) (*Shop, error)
	CreateShop(ctx context.Context, shop *Shop) error
	UpdateShop(ctx context.Context, shop *Shop) error
	DeleteShop(ctx context.Context, id int64) error

	ListLocations(ctx context.Context, userID int64) ([]*Location, error)
	GetLocation(ctx context.Context, id int64) (*Location, error)
	CreateLocation(ctx context.Context, location *Location) error
	UpdateLocation(ctx context.Context, location *Location) error
	DeleteLocation(ctx context.Context, id int64) error
}

// ShoppingStore defines persistence for shopping lists and items.
type ShoppingStore interface {
	GetShoppingList(ctx context.Context, id int64) (*ShoppingList, error)
	CreateShoppingList(ctx context.Context, list *ShoppingList) error
	UpdateShoppingList(ctx context.Context, list *ShoppingList) error
	DeleteShoppingList(ctx context.Context, id int64) error

	ListShoppingItems(ctx context.Context, listID int64) ([]*ShoppingItem, error)
	CreateShoppingItem(ctx context.Context, item *ShoppingItem) error
	UpdateShoppingItem(ctx context.Context, item *ShoppingItem) error
	DeleteShoppingItem(ctx context.Context, id int64) error

	// FindRecipeItem returns the first item of listID referencing recipeID.
	FindRecipeItem(ctx context.Context, listID, recipeID int64) (*ShoppingItem, error)
	// RecipesInList returns which of recipeIDs are referenced by items of listID.
	RecipesInList(ctx context.Context, listID int64, recipeIDs []int64) (map[int64]bool, error)
}

// StatsStore defines read-only aggregations.
type StatsStore interface {
	RecipeCategoryCounts(ctx context.Context, userID int64) ([]CategoryCount, error)
}

// Store is the complete persistence surface.
type Store interface {
	UserStore
	TokenStore
	RecipeStore
	IngredientStore
	ShopStore
	ShoppingStore
	StatsStore

	// WithTx runs fn inside one transaction.
	WithTx(ctx context.Context, fn func(Store) error) error
	Close() error
}

// notFound wraps ErrNotFound with the entity kind and id.
func notFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, ErrNotFound)
}
