// Package service implements business logic for the perishables inventory.
//
// InventoryService sits between the HTTP handlers or CLI and the
// repository. It forwards every operation to the repository, keeps the
// stats cache honest and announces changes on an EventBus.
//
// # Event System
//
// Every successful mutation publishes an Event (item_created,
// category_deleted, inventory_imported, ...). The SSE hub forwards them
// to connected clients so views can refresh after a write.
//
// # Stats
//
// Stats are computed from the full item list and the per-category counts,
// and cached per day and window until the next write.
//
// # Import and export
//
// Export builds a domain.Snapshot with category names attached to items.
// Import replays a snapshot row by row; a bad row is reported in the
// result and does not stop the others.
package service
