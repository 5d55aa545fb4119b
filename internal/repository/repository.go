package repository

import (
	"context"

	"perishables/internal/domain"
)

// Repository defines the data access contract for the inventory.
// Failures are reported with the domain error kinds (see domain.ErrNotFound etc.).
type Repository interface {
	// Schema
	Initialize(ctx context.Context) error

	// Items
	AddItem(ctx context.Context, in domain.ItemInput) (int64, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	UpdateItem(ctx context.Context, id int64, in domain.ItemInput) error
	UpdateItemQuantity(ctx context.Context, id int64, quantity int) error
	DeleteItem(ctx context.Context, id int64) error
	SearchItems(ctx context.Context, term string) ([]domain.Item, error)
	ListExpiring(ctx context.Context, withinDays int) ([]domain.Item, error)

	// Categories
	AddCategory(ctx context.Context, name string) (int64, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error)

	// Links
	AssignItemToCategory(ctx context.Context, itemID, categoryID int64) error
	RemoveItemFromCategory(ctx context.Context, itemID, categoryID int64) error
	ListItemsByCategory(ctx context.Context, categoryID int64) ([]domain.Item, error)
	ListCategoriesForItem(ctx context.Context, itemID int64) ([]domain.Category, error)

	// Setup
	SeedSampleData(ctx context.Context) (bool, error)

	// Ping checks the store is reachable
	Ping(ctx context.Context) error

	// Close releases resources
	Close() error
}
