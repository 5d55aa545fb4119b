package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"perishables/internal/domain"
)

// AssignItemToCategory links an item to a category. Linking a pair that is
// already linked is a no-op.
func (s *Store) AssignItemToCategory(ctx context.Context, itemID, categoryID int64) error {
	return s.write(ctx, "assign item to category", func(ctx context.Context, conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO item_categories (item_id, category_id) VALUES (?, ?)
		`, itemID, categoryID)
		switch s.dialect.Classify(err) {
		case ViolationNone:
			return err
		case ViolationUnique:
			return nil
		case ViolationForeignKey:
			return fmt.Errorf("item %d / category %d: %w", itemID, categoryID, domain.ErrForeignKeyViolation)
		default:
			return err
		}
	})
}

// RemoveItemFromCategory deletes a single link
func (s *Store) RemoveItemFromCategory(ctx context.Context, itemID, categoryID int64) error {
	return s.write(ctx, "remove item from category", func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, `
			DELETE FROM item_categories WHERE item_id = ? AND category_id = ?
		`, itemID, categoryID)
		if err != nil {
			return err
		}
		return expectAffected(res, fmt.Sprintf("link item %d / category %d", itemID, categoryID))
	})
}

// ListItemsByCategory returns the items linked to a category, ordered by
// name. An unknown category yields an empty list.
func (s *Store) ListItemsByCategory(ctx context.Context, categoryID int64) ([]domain.Item, error) {
	return s.queryItems(ctx, "list items by category", `
		SELECT `+qualifiedItemColumns("i")+`
		FROM items i
		JOIN item_categories ic ON ic.item_id = i.id
		WHERE ic.category_id = ?
		ORDER BY i.name, i.id
	`, categoryID)
}

// ListCategoriesForItem returns the categories an item is linked to
func (s *Store) ListCategoriesForItem(ctx context.Context, itemID int64) ([]domain.Category, error) {
	var categories []domain.Category
	err := s.withConn(ctx, "list categories for item", func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT c.id, c.name
			FROM categories c
			JOIN item_categories ic ON ic.category_id = c.id
			WHERE ic.item_id = ?
			ORDER BY c.name, c.id
		`, itemID)
		if err != nil {
			return err
		}
		categories, err = scanCategories(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}
