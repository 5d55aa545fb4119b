// Package repository defines the data access interface for the inventory.
//
// The Repository interface is the only gateway between domain operations
// and the persisted relations. The implementation lives in the sqlstore
// subpackage; the sqlite and mysql subpackages open a database with the
// right driver and hand sqlstore a Dialect.
//
// # Schema
//
// Three relations back the inventory:
//
//   - items: id, name, quantity, price, storage_location, expiry_date, added_date
//   - categories: id, name (unique)
//   - item_categories: (item_id, category_id) with cascading foreign keys
//
// Initialize provisions them with "create if not exists" statements, so it
// is safe to call on every start.
//
// # Errors
//
// Every operation returns an explicit outcome. "Nothing matched" is
// domain.ErrNotFound, never a silent success, and is kept distinct from
// storage faults (domain.ErrPersistence, domain.ErrStorageUnavailable).
//
// # Concurrency
//
// Writes are serialized by the store and every call runs on a connection
// acquired for that call only, under a fixed timeout.
package repository
