package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"perishables/internal/cache"
	"perishables/internal/codec"
	"perishables/internal/domain"
	"perishables/internal/repository"
)

// InventoryService provides business logic for inventory operations
type InventoryService struct {
	repo     repository.Repository
	eventBus *EventBus
	stats    cache.StatsCache
	window   atomic.Int64
	now      func() time.Time

	// generation counts writes so Stats can tell its result went stale
	generation atomic.Uint64
}

// Option configures an InventoryService
type Option func(*InventoryService)

// WithStatsCache caches computed stats between writes
func WithStatsCache(c cache.StatsCache) Option {
	return func(s *InventoryService) {
		if c != nil {
			s.stats = c
		}
	}
}

// WithExpiringWindow overrides the default expiring-soon window in days
func WithExpiringWindow(days int) Option {
	return func(s *InventoryService) {
		if days >= 0 {
			s.window.Store(int64(days))
		}
	}
}

// WithClock overrides the clock used for stats
func WithClock(now func() time.Time) Option {
	return func(s *InventoryService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewInventoryService creates a new inventory service
func NewInventoryService(repo repository.Repository, eventBus *EventBus, opts ...Option) *InventoryService {
	s := &InventoryService{
		repo:     repo,
		eventBus: eventBus,
		stats:    cache.Nop{},
		now:      time.Now,
	}
	s.window.Store(domain.DefaultExpiringWindow)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExpiringWindow is the window used when callers do not pick one
func (s *InventoryService) ExpiringWindow() int {
	return int(s.window.Load())
}

// SetExpiringWindow changes the default window while the service runs.
// Negative values are ignored.
func (s *InventoryService) SetExpiringWindow(days int) {
	if days >= 0 {
		s.window.Store(int64(days))
	}
}

// Today is the service's current calendar date
func (s *InventoryService) Today() domain.Date {
	return domain.DateOf(s.now())
}

// Events is the bus that write operations publish to
func (s *InventoryService) Events() *EventBus {
	return s.eventBus
}

// Ping checks the store is reachable
func (s *InventoryService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// ============================================================================
// Items
// ============================================================================

// ListItems returns every item ordered by name
func (s *InventoryService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListItems(ctx)
}

// GetItem retrieves a single item by ID
func (s *InventoryService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetItem(ctx, id)
}

// SearchItems matches term against name or storage location
func (s *InventoryService) SearchItems(ctx context.Context, term string) ([]domain.Item, error) {
	return s.repo.SearchItems(ctx, term)
}

// ListExpiring returns items expiring within days; a negative days value
// selects the configured window
func (s *InventoryService) ListExpiring(ctx context.Context, days int) ([]domain.Item, error) {
	if days < 0 {
		days = s.ExpiringWindow()
	}
	return s.repo.ListExpiring(ctx, days)
}

// CreateItem adds an item and returns it as stored
func (s *InventoryService) CreateItem(ctx context.Context, in domain.ItemInput) (*domain.Item, error) {
	id, err := s.repo.AddItem(ctx, in)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, EventItemCreated, map[string]interface{}{"item_id": id, "name": in.Name})
	return s.repo.GetItem(ctx, id)
}

// UpdateItem replaces the mutable fields of an item
func (s *InventoryService) UpdateItem(ctx context.Context, id int64, in domain.ItemInput) (*domain.Item, error) {
	if err := s.repo.UpdateItem(ctx, id, in); err != nil {
		return nil, err
	}
	s.changed(ctx, EventItemUpdated, map[string]interface{}{"item_id": id})
	return s.repo.GetItem(ctx, id)
}

// SetQuantity updates only the quantity of an item
func (s *InventoryService) SetQuantity(ctx context.Context, id int64, quantity int) (*domain.Item, error) {
	if err := s.repo.UpdateItemQuantity(ctx, id, quantity); err != nil {
		return nil, err
	}
	s.changed(ctx, EventItemUpdated, map[string]interface{}{"item_id": id, "quantity": quantity})
	return s.repo.GetItem(ctx, id)
}

// DeleteItem removes an item and its category links
func (s *InventoryService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, EventItemDeleted, map[string]interface{}{"item_id": id})
	return nil
}

// ============================================================================
// Categories
// ============================================================================

// ListCategories returns all categories ordered by name
func (s *InventoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// GetCategory retrieves a category by ID
func (s *InventoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// CreateCategory adds a category
func (s *InventoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	id, err := s.repo.AddCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, EventCategoryCreated, map[string]interface{}{"category_id": id, "name": name})
	return s.repo.GetCategory(ctx, id)
}

// RenameCategory changes a category's name
func (s *InventoryService) RenameCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	if err := s.repo.UpdateCategory(ctx, id, name); err != nil {
		return nil, err
	}
	s.changed(ctx, EventCategoryUpdated, map[string]interface{}{"category_id": id, "name": name})
	return s.repo.GetCategory(ctx, id)
}

// DeleteCategory removes a category and its links
func (s *InventoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, EventCategoryDeleted, map[string]interface{}{"category_id": id})
	return nil
}

// ItemsInCategory lists the items linked to a category. The category must
// exist, so a typo is reported rather than shown as an empty list.
func (s *InventoryService) ItemsInCategory(ctx context.Context, categoryID int64) ([]domain.Item, error) {
	if _, err := s.repo.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo.ListItemsByCategory(ctx, categoryID)
}

// CategoriesOfItem lists the categories an existing item is linked to
func (s *InventoryService) CategoriesOfItem(ctx context.Context, itemID int64) ([]domain.Category, error) {
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.ListCategoriesForItem(ctx, itemID)
}

// Categorize links an item to a category
func (s *InventoryService) Categorize(ctx context.Context, itemID, categoryID int64) error {
	if err := s.repo.AssignItemToCategory(ctx, itemID, categoryID); err != nil {
		return err
	}
	s.changed(ctx, EventItemCategorized, map[string]interface{}{"item_id": itemID, "category_id": categoryID})
	return nil
}

// Uncategorize removes a link between an item and a category
func (s *InventoryService) Uncategorize(ctx context.Context, itemID, categoryID int64) error {
	if err := s.repo.RemoveItemFromCategory(ctx, itemID, categoryID); err != nil {
		return err
	}
	s.changed(ctx, EventItemUncategorized, map[string]interface{}{"item_id": itemID, "category_id": categoryID})
	return nil
}

// ============================================================================
// Stats and seeding
// ============================================================================

// Stats summarises the inventory for today. A negative days value selects
// the configured window.
func (s *InventoryService) Stats(ctx context.Context, days int) (*domain.Stats, error) {
	if days < 0 {
		days = s.ExpiringWindow()
	}
	today := s.Today()
	gen := s.generation.Load()

	if cached, ok, err := s.stats.Get(ctx, today, days); err != nil {
		log.Printf("Stats cache read failed: %v", err)
	} else if ok {
		return cached, nil
	}

	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}

	stats := domain.NewInventory(items).Stats(today, days, counts)
	s.cacheStats(ctx, gen, stats)
	return &stats, nil
}

// cacheStats stores stats computed at generation gen. A write that lands
// while the entry is being stored is caught by the second check, because
// changed bumps the generation before it invalidates.
func (s *InventoryService) cacheStats(ctx context.Context, gen uint64, stats domain.Stats) {
	if s.generation.Load() != gen {
		return
	}
	if err := s.stats.Set(ctx, stats); err != nil {
		log.Printf("Stats cache write failed: %v", err)
		return
	}
	if s.generation.Load() != gen {
		if err := s.stats.Invalidate(ctx); err != nil {
			log.Printf("Stats cache invalidation failed: %v", err)
		}
	}
}

// SeedSampleData loads the sample inventory into an empty store
func (s *InventoryService) SeedSampleData(ctx context.Context) (bool, error) {
	seeded, err := s.repo.SeedSampleData(ctx)
	if err != nil {
		return false, err
	}
	if seeded {
		s.changed(ctx, EventInventorySeeded, nil)
	}
	return seeded, nil
}

// ============================================================================
// Import / export
// ============================================================================

// ImportResult represents the result of an import operation
type ImportResult struct {
	ItemsCreated      int      `json:"items_created"`
	CategoriesCreated int      `json:"categories_created"`
	LinksCreated      int      `json:"links_created"`
	Errors            []string `json:"errors,omitempty"`
}

// Snapshot exports the inventory with category names attached to items
func (s *InventoryService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64][]string)
	for _, category := range categories {
		linked, err := s.repo.ListItemsByCategory(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range linked {
			names[item.ID] = append(names[item.ID], category.Name)
		}
	}

	snapshot := &domain.Snapshot{
		Items:      make([]domain.SnapshotItem, 0, len(items)),
		Categories: categories,
	}
	for _, item := range items {
		itemCategories := names[item.ID]
		if itemCategories == nil {
			itemCategories = []string{}
		}
		snapshot.Items = append(snapshot.Items, domain.SnapshotItem{Item: item, Categories: itemCategories})
	}
	return snapshot, nil
}

// Export writes the inventory in the given format
func (s *InventoryService) Export(ctx context.Context, format string, w io.Writer) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return domain.ValidationErrorf("%v", err)
	}
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	return c.Export(snapshot, w)
}

// ImportFrom parses r in the given format and imports it
func (s *InventoryService) ImportFrom(ctx context.Context, format string, r io.Reader) (*ImportResult, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, domain.ValidationErrorf("%v", err)
	}
	snapshot, err := c.Parse(r)
	if err != nil {
		return nil, domain.ValidationErrorf("%v", err)
	}
	return s.Import(ctx, snapshot)
}

// Import adds every item and category of a snapshot. Existing categories
// are matched by name. Each row is its own write; rows that fail are
// listed in the result. Only storage faults abort the import.
func (s *InventoryService) Import(ctx context.Context, snapshot *domain.Snapshot) (*ImportResult, error) {
	result := &ImportResult{}

	existing, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	categoryIDs := make(map[string]int64, len(existing))
	for _, c := range existing {
		categoryIDs[c.Name] = c.ID
	}

	for _, name := range snapshot.CategoryNames() {
		if _, ok := categoryIDs[name]; ok {
			continue
		}
		id, err := s.repo.AddCategory(ctx, name)
		if err != nil {
			if isStorageFault(err) {
				return nil, err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("category %q: %v", name, err))
			continue
		}
		categoryIDs[name] = id
		result.CategoriesCreated++
	}

	for i, item := range snapshot.Items {
		id, err := s.repo.AddItem(ctx, item.Input())
		if err != nil {
			if isStorageFault(err) {
				return nil, err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("item %d (%s): %v", i+1, item.Name, err))
			continue
		}
		result.ItemsCreated++

		for _, name := range item.Categories {
			name = strings.TrimSpace(name)
			categoryID, ok := categoryIDs[name]
			if !ok {
				continue
			}
			if err := s.repo.AssignItemToCategory(ctx, id, categoryID); err != nil {
				if isStorageFault(err) {
					return nil, err
				}
				result.Errors = append(result.Errors, fmt.Sprintf("link %s to %s: %v", item.Name, name, err))
				continue
			}
			result.LinksCreated++
		}
	}

	if result.ItemsCreated > 0 || result.CategoriesCreated > 0 {
		s.changed(ctx, EventInventoryImported, result)
	}
	return result, nil
}

// changed invalidates derived state and announces a mutation
func (s *InventoryService) changed(ctx context.Context, eventType EventType, payload interface{}) {
	s.generation.Add(1)
	if err := s.stats.Invalidate(ctx); err != nil {
		log.Printf("Stats cache invalidation failed: %v", err)
	}
	if s.eventBus != nil {
		s.eventBus.Publish(Event{Type: eventType, Payload: payload})
	}
}
