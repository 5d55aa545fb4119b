package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"perishables/internal/domain"
)

// sampleItem is a seeded item; expiry is an offset from today so the
// expiring view always has something to show
type sampleItem struct {
	name       string
	quantity   int
	price      string
	location   string
	expiryDays int
	categories []string
}

var sampleCategories = []string{"Citrus", "Tropical", "Berries", "Core Fruits"}

var sampleItems = []sampleItem{
	{name: "Apple", quantity: 100, price: "0.50", location: "Cold Storage A", expiryDays: 51, categories: []string{"Core Fruits"}},
	{name: "Banana", quantity: 150, price: "0.30", location: "Room Temperature Storage", expiryDays: 5, categories: []string{"Tropical"}},
	{name: "Orange", quantity: 80, price: "0.60", location: "Cold Storage B", expiryDays: 40, categories: []string{"Citrus"}},
	{name: "Strawberry", quantity: 50, price: "1.20", location: "Freezer", expiryDays: 0, categories: []string{"Berries"}},
	{name: "Mango", quantity: 30, price: "1.50", location: "Room Temperature Storage", expiryDays: 15, categories: []string{"Tropical"}},
}

// SeedSampleData fills an empty inventory with sample fruits, categories and
// links in one transaction. It returns false without writing anything when
// items already exist. Nothing calls it implicitly.
func (s *Store) SeedSampleData(ctx context.Context) (bool, error) {
	seeded := false
	err := s.write(ctx, "seed sample data", func(ctx context.Context, conn *sql.Conn) error {
		var count int
		if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		if count > 0 {
			return nil
		}

		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		categoryIDs := make(map[string]int64, len(sampleCategories))
		for _, name := range sampleCategories {
			var id int64
			err := tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = ?`, name).Scan(&id)
			if errors.Is(err, sql.ErrNoRows) {
				res, err := tx.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name)
				if err != nil {
					return fmt.Errorf("insert category %s: %w", name, err)
				}
				if id, err = res.LastInsertId(); err != nil {
					return err
				}
			} else if err != nil {
				return fmt.Errorf("lookup category %s: %w", name, err)
			}
			categoryIDs[name] = id
		}

		today := s.Today()
		for _, sample := range sampleItems {
			in := domain.ItemInput{
				Name:            sample.name,
				Quantity:        sample.quantity,
				Price:           decimal.RequireFromString(sample.price),
				StorageLocation: sample.location,
				ExpiryDate:      domain.DatePtr(today.AddDays(sample.expiryDays)),
			}
			args := append(itemWriteArgs(in), today.String())
			res, err := tx.ExecContext(ctx, `
				INSERT INTO items (name, quantity, price, storage_location, expiry_date, added_date)
				VALUES (?, ?, ?, ?, ?, ?)
			`, args...)
			if err != nil {
				return fmt.Errorf("insert item %s: %w", sample.name, err)
			}
			itemID, err := res.LastInsertId()
			if err != nil {
				return err
			}

			for _, category := range sample.categories {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO item_categories (item_id, category_id) VALUES (?, ?)
				`, itemID, categoryIDs[category]); err != nil {
					return fmt.Errorf("link %s to %s: %w", sample.name, category, err)
				}
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}
