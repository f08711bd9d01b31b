// ABOUTME: Request payload types with allow-listed fields
// ABOUTME: Decoding rejects unknown keys so bad payloads fail before any store access

package kitchen

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/2389/pantry/internal/reconcile"
	"github.com/2389/pantry/internal/ref"
)

// Allow-lists per payload kind.
var (
	recipeFields           = reconcile.NewFields("recipe", "id", "name", "category", "description", "serves", "duration", "recipe_ingredients", "in_shopping_list", "image")
	recipeIngredientFields = reconcile.NewFields("recipe ingredient", "id", "ingredient", "unit", "quantity")
	ingredientFields       = reconcile.NewFields("ingredient", "id", "name", "locations")
	shoppingListFields     = reconcile.NewFields("shopping list", "id", "name", "date", "items")
	shoppingItemFields     = reconcile.NewFields("shopping list item", "id", "unit", "quantity", "ingredient", "recipe")
	shopFields             = reconcile.NewFields("shop", "id", "name")
	locationFields         = reconcile.NewFields("location", "id", "name", "shop")
	commandFields          = reconcile.NewFields("command", "action")
)

// decodeStrict checks data against fields and decodes it into v, which must
// not be a type with its own UnmarshalJSON.
func decodeStrict(fields reconcile.Fields, data []byte, v any) error {
	if err := fields.CheckObject(data); err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// EntityID references a persisted entity. It decodes from a number, a numeric
// string, or an object with an "id" member such as {"id": 3, "name": "salt"}.
type EntityID int64

// UnmarshalJSON implements json.Unmarshaler.
func (e *EntityID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.ID == nil {
			return invalid("reference object has no id")
		}
		data = obj.ID
	}

	var r ref.Ref
	if err := r.UnmarshalJSON(data); err != nil {
		return err
	}
	id, ok := r.Existing()
	if !ok {
		return invalid("reference must be an existing id")
	}
	*e = EntityID(id)
	return nil
}

// Quantity is an amount that decodes from a JSON number or a numeric string.
type Quantity float64

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	s, err := numericText(data)
	if err != nil {
		return err
	}
	if s == "" {
		*q = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return invalid("quantity %q is not a number", s)
	}
	*q = Quantity(f)
	return nil
}

// Count is a whole number that decodes from a JSON number or a numeric string.
type Count int

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	s, err := numericText(data)
	if err != nil {
		return err
	}
	if s == "" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return invalid("%q is not a whole number", s)
	}
	*c = Count(n)
	return nil
}

// numericText returns the text of a JSON number or string.
func numericText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", invalid("expected a number, got %s", data)
	}
	return n.String(), nil
}

// RecipeInput is the payload of a recipe create or update. Nil scalar fields
// keep their stored value; a nil RecipeIngredients leaves the lines untouched
// and an empty one removes them all.
type RecipeInput struct {
	ID                ref.Ref                 `json:"id"`
	Name              *string                 `json:"name"`
	Category          *string                 `json:"category"`
	Description       *string                 `json:"description"`
	Serves            *Count                  `json:"serves"`
	Duration          *Count                  `json:"duration"`
	Image             *string                 `json:"image"`
	RecipeIngredients []RecipeIngredientInput `json:"recipe_ingredients"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *RecipeInput) UnmarshalJSON(data []byte) error {
	type plain RecipeInput
	var p plain
	if err := decodeStrict(recipeFields, data, &p); err != nil {
		return err
	}
	*in = RecipeInput(p)
	return nil
}

// RecipeIngredientInput is one submitted recipe line.
type RecipeIngredientInput struct {
	ID         ref.Ref   `json:"id"`
	Ingredient *EntityID `json:"ingredient"`
	Unit       string    `json:"unit"`
	Quantity   Quantity  `json:"quantity"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *RecipeIngredientInput) UnmarshalJSON(data []byte) error {
	type plain RecipeIngredientInput
	var p plain
	if err := decodeStrict(recipeIngredientFields, data, &p); err != nil {
		return err
	}
	if p.Ingredient == nil {
		return invalid("recipe ingredient requires an ingredient")
	}
	*in = RecipeIngredientInput(p)
	return nil
}

// IngredientInput is the payload of an ingredient create or update.
// A nil Locations leaves the associations untouched.
type IngredientInput struct {
	ID        ref.Ref    `json:"id"`
	Name      *string    `json:"name"`
	Locations []EntityID `json:"locations"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *IngredientInput) UnmarshalJSON(data []byte) error {
	type plain IngredientInput
	var p plain
	if err := decodeStrict(ingredientFields, data, &p); err != nil {
		return err
	}
	*in = IngredientInput(p)
	return nil
}

// ShoppingListInput is the payload of a shopping list create or update. The
// creation date is read-only and ignored. A nil Items leaves an existing
// list's items untouched.
type ShoppingListInput struct {
	Name  *string             `json:"name"`
	Items []ShoppingItemInput `json:"items"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *ShoppingListInput) UnmarshalJSON(data []byte) error {
	type plain ShoppingListInput
	var p plain
	if err := decodeStrict(shoppingListFields, data, &p); err != nil {
		return err
	}
	*in = ShoppingListInput(p)
	return nil
}

// ShoppingItemInput is one submitted shopping list item. Exactly one of
// Ingredient and Recipe must be set.
type ShoppingItemInput struct {
	ID         ref.Ref   `json:"id"`
	Unit       string    `json:"unit"`
	Quantity   Quantity  `json:"quantity"`
	Ingredient *EntityID `json:"ingredient"`
	Recipe     *EntityID `json:"recipe"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *ShoppingItemInput) UnmarshalJSON(data []byte) error {
	type plain ShoppingItemInput
	var p plain
	if err := decodeStrict(shoppingItemFields, data, &p); err != nil {
		return err
	}
	if (p.Ingredient == nil) == (p.Recipe == nil) {
		return invalid("shopping list item must reference exactly one of ingredient or recipe")
	}
	*in = ShoppingItemInput(p)
	return nil
}

// ShopInput is the payload of a shop create or update, and of the
// current-shop selection where a null id clears the selection.
type ShopInput struct {
	ID   ref.Ref `json:"id"`
	Name *string `json:"name"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *ShopInput) UnmarshalJSON(data []byte) error {
	type plain ShopInput
	var p plain
	if err := decodeStrict(shopFields, data, &p); err != nil {
		return err
	}
	*in = ShopInput(p)
	return nil
}

// LocationInput is the payload of a location create or update.
type LocationInput struct {
	ID   ref.Ref   `json:"id"`
	Name *string   `json:"name"`
	Shop *EntityID `json:"shop"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *LocationInput) UnmarshalJSON(data []byte) error {
	type plain LocationInput
	var p plain
	if err := decodeStrict(locationFields, data, &p); err != nil {
		return err
	}
	*in = LocationInput(p)
	return nil
}

// Toggle actions for a recipe in a shopping list.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// RecipeCommand is the payload of the shopping list recipe toggle.
type RecipeCommand struct {
	Action string `json:"action"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *RecipeCommand) UnmarshalJSON(data []byte) error {
	type plain RecipeCommand
	var p plain
	if err := decodeStrict(commandFields, data, &p); err != nil {
		return err
	}
	switch p.Action {
	case ActionAdd, ActionRemove:
	default:
		return invalid("unknown command: %s", p.Action)
	}
	*c = RecipeCommand(p)
	return nil
}

// Target selects the entity a create-or-update request addresses. An existing
// path id wins and must agree with any existing body id. A sentinel path
// defers to the body id.
func Target(path, body ref.Ref) (ref.Ref, error) {
	pathID, ok := path.Existing()
	if !ok {
		return body, nil
	}
	if bodyID, ok := body.Existing(); ok && bodyID != pathID {
		return ref.Ref{}, invalid("id %d in body does not match id %d in path", bodyID, pathID)
	}
	return path, nil
}
