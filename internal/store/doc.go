// Package store provides persistent storage for pantry using SQLite.
//
// # Architecture
//
// The store package uses an interface-driven architecture with one interface
// per domain area:
//
//   - UserStore: accounts and the per-user profile (current list and shop)
//   - TokenStore: issued bearer tokens, one per user
//   - RecipeStore: recipes and their recipe ingredients
//   - IngredientStore: ingredients and their location associations
//   - ShopStore: shops and the locations inside them
//   - ShoppingStore: shopping lists and their items
//   - StatsStore: read-only aggregations
//
// Store composes all of them and adds WithTx. SQLiteStore implements Store in
// a single struct.
//
// # Ownership
//
// Recipe, Ingredient, Shop, Location and ShoppingList carry the owning user
// id and implement OwnerID so callers can pass them to guard.Authorize.
// Child rows (RecipeIngredient, ShoppingItem, ingredient locations) carry the
// id of their parent only.
//
// # Transactions
//
// WithTx runs a function against a transaction-bound Store. The transaction
// commits when the function returns nil and rolls back otherwise. Calling
// WithTx on a transaction-bound store reuses the running transaction.
//
// # SQLite Configuration
//
// Every pooled connection is opened with:
//
//	PRAGMA foreign_keys=ON;
//	PRAGMA busy_timeout=5000;
//	PRAGMA journal_mode=WAL;
//
// and transactions begin with BEGIN IMMEDIATE so concurrent writers queue on
// the database lock instead of failing on upgrade.
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: Requested entity does not exist
//   - ErrUsernameExists: Username is already registered
//   - ErrInvalidShoppingItem: Item references neither or both of ingredient and recipe
//
// All methods accept context.Context for cancellation support.
//
// # Migrations
//
// Migrations are embedded from internal/store/migrations/ and applied with
// golang-migrate when the store is opened.
package store
