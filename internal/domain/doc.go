// Package domain defines the core types of the perishables inventory.
//
// Everything here is a plain value with no persistence awareness.
//
// # Core Types
//
// Item is a tracked perishable good: name, quantity, unit price, storage
// location, optional expiry date and the date it was added. Its derived
// properties (TotalValue, IsExpiringSoon, IsExpired) are recomputed on every
// call from the caller's notion of today, so nothing is cached.
//
// Category is a named tag. Items and categories are linked many-to-many by
// the repository; the domain only sees the resulting lists.
//
// Inventory wraps a slice of items and computes aggregate views (total value,
// total quantity, expiring and expired subsets, Stats).
//
// # Dates
//
// Date is a calendar date whose boundary form is YYYY-MM-DD. That layout
// sorts lexicographically in chronological order, which the store relies on
// when filtering by expiry.
//
// # Errors
//
// The error kinds (ErrValidation, ErrNotFound, ErrDuplicateName,
// ErrForeignKeyViolation, ErrPersistence, ErrStorageUnavailable) are shared
// by every layer and compared with errors.Is.
package domain
