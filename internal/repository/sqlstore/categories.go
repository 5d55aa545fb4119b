package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"perishables/internal/domain"
)

// AddCategory inserts a category; names are unique
func (s *Store) AddCategory(ctx context.Context, name string) (int64, error) {
	if err := domain.ValidateCategoryName(name); err != nil {
		return 0, fmt.Errorf("add category: %w", err)
	}
	name = strings.TrimSpace(name)

	var id int64
	err := s.write(ctx, "add category", func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name)
		if err != nil {
			return s.categoryNameError(name, err)
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetCategory retrieves a category by ID
func (s *Store) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := s.withConn(ctx, "get category", func(ctx context.Context, conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id).
			Scan(&c.ID, &c.Name)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCategory renames a category
func (s *Store) UpdateCategory(ctx context.Context, id int64, name string) error {
	if err := domain.ValidateCategoryName(name); err != nil {
		return fmt.Errorf("update category %d: %w", id, err)
	}
	name = strings.TrimSpace(name)

	return s.write(ctx, "update category", func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, name, id)
		if err != nil {
			return s.categoryNameError(name, err)
		}
		return expectAffected(res, fmt.Sprintf("category %d", id))
	})
}

// DeleteCategory removes a category and, by cascade, its links
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.write(ctx, "delete category", func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return expectAffected(res, fmt.Sprintf("category %d", id))
	})
}

// ListCategories returns all categories ordered by name
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := s.withConn(ctx, "list categories", func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id`)
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

// CategoryCounts returns the number of linked items per category, empty
// categories included, ordered by name
func (s *Store) CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	counts := []domain.CategoryCount{}
	err := s.withConn(ctx, "count items per category", func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT c.id, c.name, COUNT(ic.item_id)
			FROM categories c
			LEFT JOIN item_categories ic ON ic.category_id = c.id
			GROUP BY c.id, c.name
			ORDER BY c.name, c.id
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var cc domain.CategoryCount
			if err := rows.Scan(&cc.CategoryID, &cc.Name, &cc.Items); err != nil {
				return fmt.Errorf("scan category count: %w", err)
			}
			counts = append(counts, cc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// categoryNameError reports a unique violation as a duplicate name
func (s *Store) categoryNameError(name string, err error) error {
	if s.dialect.Classify(err) == ViolationUnique {
		return fmt.Errorf("category %q: %w", name, domain.ErrDuplicateName)
	}
	return err
}
