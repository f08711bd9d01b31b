// ABOUTME: Shop operations and the user's current shop selection
// ABOUTME: Deleting a shop removes its locations and clears it as current shop

package kitchen

import (
	"context"
	"fmt"

	"github.com/2389/pantry/internal/ref"
	"github.com/2389/pantry/internal/store"
)

// ListShops returns the user's shops.
func (k *Kitchen) ListShops(ctx context.Context, userID int64) ([]*store.Shop, error) {
	shops, err := k.store.ListShops(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing shops: %w", err)
	}
	return shops, nil
}

// GetShop returns the shop addressed by r. The sentinel addresses the
// current shop, which may be unset (nil, nil).
func (k *Kitchen) GetShop(ctx context.Context, userID int64, r ref.Ref) (*store.Shop, error) {
	id, ok := r.Existing()
	if !ok {
		return k.CurrentShop(ctx, userID)
	}
	shop, err := k.store.GetShop(ctx, id)
	if err := authorize(userID, shop, err); err != nil {
		return nil, err
	}
	return shop, nil
}

// CurrentShop returns the user's current shop or nil if none is selected.
func (k *Kitchen) CurrentShop(ctx context.Context, userID int64) (*store.Shop, error) {
	var shop *store.Shop
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		p, err := profile(ctx, tx, userID)
		if err != nil || p.ShopID == nil {
			return err
		}
		shop, err = tx.GetShop(ctx, *p.ShopID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return shop, nil
}

// SetCurrentShop selects the shop addressed by r as current. The sentinel
// clears the selection and returns nil.
func (k *Kitchen) SetCurrentShop(ctx context.Context, userID int64, r ref.Ref) (*store.Shop, error) {
	var shop *store.Shop
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		p, err := profile(ctx, tx, userID)
		if err != nil {
			return err
		}

		p.ShopID = nil
		if id, ok := r.Existing(); ok {
			var err error
			shop, err = tx.GetShop(ctx, id)
			if err := authorize(userID, shop, err); err != nil {
				return err
			}
			p.ShopID = &shop.ID
		}
		return tx.SaveProfile(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	k.logger.Debug("set current shop", "user_id", userID, "shop", r.String())
	return shop, nil
}

// SaveShop creates or updates a shop.
func (k *Kitchen) SaveShop(ctx context.Context, userID int64, target ref.Ref, in ShopInput) (*store.Shop, error) {
	var shop *store.Shop
	err := k.store.WithTx(ctx, func(tx store.Store) error {
		shop = &store.Shop{UserID: userID}
		if id, ok := target.Existing(); ok {
			var err error
			shop, err = tx.GetShop(ctx, id)
			if err := authorize(userID, shop, err); err != nil {
				return err
			}
		}

		if in.Name != nil {
			shop.Name = *in.Name
		}
		if shop.ID == 0 {
			return tx.CreateShop(ctx, shop)
		}
		return tx.UpdateShop(ctx, shop)
	})
	if err != nil {
		return nil, err
	}
	return shop, nil
}

// DeleteShop deletes a shop and its locations.
func (k *Kitchen) DeleteShop(ctx context.Context, userID, id int64) error {
	return k.store.WithTx(ctx, func(tx store.Store) error {
		shop, err := tx.GetShop(ctx, id)
		if err := authorize(userID, shop, err); err != nil {
			return err
		}
		return tx.DeleteShop(ctx, id)
	})
}
