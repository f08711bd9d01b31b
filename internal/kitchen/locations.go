// ABOUTME: Location operations; every location belongs to one of the user's shops

package kitchen

import (
	"context"
	"fmt"

	"github.com/2389/pantry/internal/ref"
	"github.com/2389/pantry/internal/store"
)

// ListLocations returns the user's locations across all shops.
func (k *Kitchen) ListLocations(ctx context.Context, userID int64) ([]*store.Location, error) {
	locs, err := k.store.ListLocations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	return locs, nil
}

// GetLocation returns one of the user's locations.
func (k *Kitchen) GetLocation(ctx context.Context, userID, id int64) (*store.Location, error) {
	loc, err := k.store.GetLocation(ctx, id)
	if err := authorize(userID, loc, err); err != nil {
		return nil, err
	}
	return loc, nil
}

// SaveLocation creates or updates a location. A new location needs a shop;
// any referenced shop must belong to the user.
func (k *Kitchen) SaveLocation(ctx context.Context, userID int64, target ref.Ref, in LocationInput) (*store.Location, error) {
	var loc *store.Location
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		loc = &store.Location{UserID: userID}
		if id, ok := target.Existing(); ok {
			var err error
			loc, err = tx.GetLocation(ctx, id)
			if err := authorize(userID, loc, err); err != nil {
				return err
			}
		} else if in.Shop == nil {
			return invalid("location requires a shop")
		}

		if in.Shop != nil {
			shop, err := tx.GetShop(ctx, int64(*in.Shop))
			if err := authorize(userID, shop, err); err != nil {
				return fmt.Errorf("location shop: %w", err)
			}
			loc.ShopID = shop.ID
		}
		if in.Name != nil {
			loc.Name = *in.Name
		}

		if loc.ID == 0 {
			return tx.CreateLocation(ctx, loc)
		}
		return tx.UpdateLocation(ctx, loc)
	})
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// DeleteLocation deletes a location and detaches it from ingredients.
func (k *Kitchen) DeleteLocation(ctx context.Context, userID, id int64) error {
	return k.store.WithTx(ctx, func(tx store.Store) error {
		loc, err := tx.GetLocation(ctx, id)
		if err := authorize(userID, loc, err); err != nil {
			return err
		}
		return tx.DeleteLocation(ctx, id)
	})
}
