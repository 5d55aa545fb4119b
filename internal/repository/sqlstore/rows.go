package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"perishables/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToDatePtr parses a nullable YYYY-MM-DD column
func nullToDatePtr(ns sql.NullString) (*domain.Date, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// datePtrToNull formats an optional date for a nullable column
func datePtrToNull(d *domain.Date) sql.NullString {
	if d == nil || d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

// ============================================================================
// Item Row Scanner
// ============================================================================
//
// Column order must match between itemColumns and itemRow.scanArgs().
// Queries joining other tables use qualifiedItemColumns with the same order.

// itemColumns is the SELECT column list for item queries
const itemColumns = `id, name, quantity, price, storage_location, expiry_date, added_date`

// qualifiedItemColumns prefixes itemColumns with a table alias
func qualifiedItemColumns(alias string) string {
	cols := strings.Split(itemColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// itemRow holds all columns from an item query for scanning
type itemRow struct {
	ID              int64
	Name            string
	Quantity        int
	Price           float64
	StorageLocation string
	ExpiryDate      sql.NullString
	AddedDate       string
}

// scanArgs returns pointers to all fields for sql.Scan()
func (r *itemRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,
		&r.Name,
		&r.Quantity,
		&r.Price,
		&r.StorageLocation,
		&r.ExpiryDate,
		&r.AddedDate,
	}
}

// toDomain converts the scanned row to a domain.Item
func (r *itemRow) toDomain() (domain.Item, error) {
	item := domain.Item{
		ID:              r.ID,
		Name:            r.Name,
		Quantity:        r.Quantity,
		Price:           decimal.NewFromFloat(r.Price),
		StorageLocation: r.StorageLocation,
	}

	expiry, err := nullToDatePtr(r.ExpiryDate)
	if err != nil {
		return domain.Item{}, fmt.Errorf("item %d expiry_date: %w", r.ID, err)
	}
	item.ExpiryDate = expiry

	added, err := domain.ParseDate(r.AddedDate)
	if err != nil {
		return domain.Item{}, fmt.Errorf("item %d added_date: %w", r.ID, err)
	}
	item.AddedDate = added

	return item, nil
}

// itemWriteArgs prepares the mutable columns for INSERT/UPDATE
// Returns: name, quantity, price, storage_location, expiry_date
func itemWriteArgs(in domain.ItemInput) []interface{} {
	return []interface{}{
		strings.TrimSpace(in.Name),
		in.Quantity,
		in.Price.InexactFloat64(),
		in.StorageLocation,
		datePtrToNull(in.ExpiryDate),
	}
}

// scanItems drains rows into domain items
func scanItems(rows *sql.Rows) ([]domain.Item, error) {
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var row itemRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// ============================================================================
// Category Row Scanner
// ============================================================================

const categoryColumns = `id, name`

// scanCategories drains rows of (id, name)
func scanCategories(rows *sql.Rows) ([]domain.Category, error) {
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// ============================================================================
// Search Helpers
// ============================================================================

// likeEscape is the ESCAPE character used by search patterns. '!' needs no
// quoting in either SQLite or MySQL string literals.
const likeEscape = "!"

// containsPattern builds a lower-cased LIKE pattern matching term anywhere,
// with LIKE wildcards in term matched literally
func containsPattern(term string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
