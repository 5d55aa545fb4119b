package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"perishables/internal/domain"
)

// AddItem validates and inserts a new item. The added date is today by the
// store clock and the store assigns the identity.
func (s *Store) AddItem(ctx context.Context, in domain.ItemInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, fmt.Errorf("add item: %w", err)
	}

	var id int64
	err := s.write(ctx, "add item", func(ctx context.Context, conn *sql.Conn) error {
		args := append(itemWriteArgs(in), s.Today().String())
		res, err := conn.ExecContext(ctx, `
			INSERT INTO items (name, quantity, price, storage_location, expiry_date, added_date)
			VALUES (?, ?, ?, ?, ?, ?)
		`, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetItem retrieves a single item by ID
func (s *Store) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	err := s.withConn(ctx, "get item", func(ctx context.Context, conn *sql.Conn) error {
		var row itemRow
		err := conn.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id).
			Scan(row.scanArgs()...)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return err
		}
		item, err = row.toDomain()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns every item ordered by name, ties by identity
func (s *Store) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.queryItems(ctx, "list items", `
		SELECT `+itemColumns+` FROM items
		ORDER BY name, id
	`)
}

// UpdateItem replaces every mutable field of an item
func (s *Store) UpdateItem(ctx context.Context, id int64, in domain.ItemInput) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("update item %d: %w", id, err)
	}

	return s.write(ctx, "update item", func(ctx context.Context, conn *sql.Conn) error {
		args := append(itemWriteArgs(in), id)
		res, err := conn.ExecContext(ctx, `
			UPDATE items
			SET name = ?, quantity = ?, price = ?, storage_location = ?, expiry_date = ?
			WHERE id = ?
		`, args...)
		if err != nil {
			return err
		}
		return expectAffected(res, fmt.Sprintf("item %d", id))
	})
}

// UpdateItemQuantity sets only the quantity; zero is allowed
func (s *Store) UpdateItemQuantity(ctx context.Context, id int64, quantity int) error {
	if err := domain.ValidateQuantity(quantity); err != nil {
		return fmt.Errorf("update item %d quantity: %w", id, err)
	}

	return s.write(ctx, "update item quantity", func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, `UPDATE items SET quantity = ? WHERE id = ?`, quantity, id)
		if err != nil {
			return err
		}
		return expectAffected(res, fmt.Sprintf("item %d", id))
	})
}

// DeleteItem removes an item; its category links go with it (ON DELETE CASCADE)
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	return s.write(ctx, "delete item", func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return expectAffected(res, fmt.Sprintf("item %d", id))
	})
}

// SearchItems matches term case-insensitively against name or storage location
func (s *Store) SearchItems(ctx context.Context, term string) ([]domain.Item, error) {
	pattern := containsPattern(term)
	return s.queryItems(ctx, "search items", `
		SELECT `+itemColumns+` FROM items
		WHERE `+s.dialect.Lower("name")+` LIKE ? ESCAPE '`+likeEscape+`'
		   OR `+s.dialect.Lower("storage_location")+` LIKE ? ESCAPE '`+likeEscape+`'
		ORDER BY name, id
	`, pattern, pattern)
}

// ListExpiring returns items expiring in [today, today+withinDays], soonest first.
// Dates are compared as YYYY-MM-DD strings, which sort chronologically up to
// domain.MaxDate, so the upper bound is capped there.
func (s *Store) ListExpiring(ctx context.Context, withinDays int) ([]domain.Item, error) {
	if withinDays < 0 {
		return nil, fmt.Errorf("list expiring: %w", domain.ValidationErrorf("window must not be negative, got %d", withinDays))
	}

	today := s.Today()
	return s.queryItems(ctx, "list expiring items", `
		SELECT `+itemColumns+` FROM items
		WHERE expiry_date IS NOT NULL
		  AND expiry_date >= ?
		  AND expiry_date <= ?
		ORDER BY expiry_date, name, id
	`, today.String(), today.AddDaysCapped(withinDays).String())
}

// queryItems runs a read returning item rows
func (s *Store) queryItems(ctx context.Context, op, query string, args ...interface{}) ([]domain.Item, error) {
	var items []domain.Item
	err := s.withConn(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		items, err = scanItems(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
