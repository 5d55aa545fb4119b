// Package handler implements the HTTP API of the perishables inventory.
//
// # Handlers
//
// InventoryHandler serves items, categories, their links, stats, health and
// import/export. Routes registers it on a method-pattern ServeMux.
//
// Middleware provides panic recovery, request IDs, CORS and request logging.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for creation
// - PUT for updates
// - DELETE for removal
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes (200, 201,
// 204). Error responses return JSON with {error, details} structure. The
// status follows the error kind: validation 400, duplicate name 409, not
// found 404, foreign key 422, storage unavailable 503, anything else 500.
package handler
