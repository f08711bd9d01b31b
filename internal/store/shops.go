// ABOUTME: Shop and location store methods
// ABOUTME: Deleting a shop removes its locations and clears profiles pointing at it

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ListShops returns the shops owned by userID ordered by id.
func (s *SQLiteStore) ListShops(ctx context.Context, userID int64) ([]*Shop, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, user_id, name FROM shops WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying shops: %w", err)
	}
	defer rows.Close()

	shops := []*Shop{}
	for rows.Next() {
		var shop Shop
		if err := rows.Scan(&shop.ID, &shop.UserID, &shop.Name); err != nil {
			return nil, fmt.Errorf("scanning shop: %w", err)
		}
		shops = append(shops, &shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shops: %w", err)
	}
	return shops, nil
}

// GetShop retrieves a shop by ID.
func (s *SQLiteStore) GetShop(ctx context.Context, id int64) (*Shop, error) {
	var shop Shop
	err := s.q.QueryRowContext(ctx, `SELECT id, user_id, name FROM shops WHERE id = ?`, id).
		Scan(&shop.ID, &shop.UserID, &shop.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("shop", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying shop: %w", err)
	}
	return &shop, nil
}

// CreateShop inserts a shop and sets shop.ID.
func (s *SQLiteStore) CreateShop(ctx context.Context, shop *Shop) error {
	res, err := s.q.ExecContext(ctx, `INSERT INTO shops (user_id, name) VALUES (?, ?)`, shop.UserID, shop.Name)
	if err != nil {
		return fmt.Errorf("inserting shop: %w", err)
	}
	if shop.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading shop id: %w", err)
	}
	return nil
}

// UpdateShop writes the name of shop.
func (s *SQLiteStore) UpdateShop(ctx context.Context, shop *Shop) error {
	res, err := s.q.ExecContext(ctx, `UPDATE shops SET name = ? WHERE id = ?`, shop.Name, shop.ID)
	if err != nil {
		return fmt.Errorf("updating shop: %w", err)
	}
	return checkAffected(res, "shop", shop.ID)
}

// DeleteShop deletes a shop and its locations.
func (s *SQLiteStore) DeleteShop(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM shops WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting shop: %w", err)
	}
	return checkAffected(res, "shop", id)
}

// ListLocations returns the locations owned by userID ordered by id.
func (s *SQLiteStore) ListLocations(ctx context.Context, userID int64) ([]*Location, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, user_id, shop_id, name FROM locations WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	locations := []*Location{}
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.UserID, &loc.ShopID, &loc.Name); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, &loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locations: %w", err)
	}
	return locations, nil
}

// GetLocation retrieves a location by ID.
func (s *SQLiteStore) GetLocation(ctx context.Context, id int64) (*Location, error) {
	var loc Location
	err := s.q.QueryRowContext(ctx, `SELECT id, user_id, shop_id, name FROM locations WHERE id = ?`, id).
		Scan(&loc.ID, &loc.UserID, &loc.ShopID, &loc.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("location", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying location: %w", err)
	}
	return &loc, nil
}

// CreateLocation inserts a location and sets location.ID.
func (s *SQLiteStore) CreateLocation(ctx context.Context, location *Location) error {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO locations (user_id, shop_id, name) VALUES (?, ?, ?)`,
		location.UserID, location.ShopID, location.Name)
	if err != nil {
		return fmt.Errorf("inserting location: %w", err)
	}
	if location.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading location id: %w", err)
	}
	return nil
}

// UpdateLocation writes the shop and name of location.
func (s *SQLiteStore) UpdateLocation(ctx context.Context, location *Location) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE locations SET shop_id = ?, name = ? WHERE id = ?`,
		location.ShopID, location.Name, location.ID)
	if err != nil {
		return fmt.Errorf("updating location: %w", err)
	}
	return checkAffected(res, "location", location.ID)
}

// DeleteLocation deletes a location and its ingredient associations.
func (s *SQLiteStore) DeleteLocation(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}
	return checkAffected(res, "location", id)
}
