// Package kitchen implements the per-user operations on recipes, ingredients,
// shopping lists, shops and locations.
//
// Every operation takes the requesting user's id and runs in one store
// transaction. Handlers check existence first (store.ErrNotFound), then
// ownership (guard.ErrForbidden), then apply mutations. Request payloads are
// decoded into the *Input types, whose UnmarshalJSON rejects keys outside each
// type's allow-list, so malformed payloads fail before any store access.
//
// Child collections follow full-replacement semantics through
// reconcile.Diff: recipe ingredients of a recipe, items of a shopping list.
// Ingredient locations are a pure association and are synchronized with
// reconcile.Symmetric.
package kitchen
