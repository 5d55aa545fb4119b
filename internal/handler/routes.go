package handler

import "net/http"

// Routes registers the inventory API on mux
func (h *InventoryHandler) Routes(mux *http.ServeMux) {
	// Items
	mux.HandleFunc("GET /api/items", h.ListItems)
	mux.HandleFunc("POST /api/items", h.CreateItem)
	mux.HandleFunc("GET /api/items/search", h.SearchItems)
	mux.HandleFunc("GET /api/items/expiring", h.ListExpiring)
	mux.HandleFunc("GET /api/items/{id}", h.GetItem)
	mux.HandleFunc("PUT /api/items/{id}", h.UpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", h.DeleteItem)
	mux.HandleFunc("PUT /api/items/{id}/quantity", h.UpdateQuantity)
	mux.HandleFunc("GET /api/items/{id}/categories", h.ItemCategories)

	// Categories
	mux.HandleFunc("GET /api/categories", h.ListCategories)
	mux.HandleFunc("POST /api/categories", h.CreateCategory)
	mux.HandleFunc("GET /api/categories/{id}", h.GetCategory)
	mux.HandleFunc("PUT /api/categories/{id}", h.UpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", h.DeleteCategory)
	mux.HandleFunc("GET /api/categories/{id}/items", h.CategoryItems)
	mux.HandleFunc("PUT /api/categories/{id}/items/{item_id}", h.AssignItem)
	mux.HandleFunc("DELETE /api/categories/{id}/items/{item_id}", h.RemoveItem)

	// Stats and setup
	mux.HandleFunc("GET /api/stats", h.Stats)
	mux.HandleFunc("POST /api/seed", h.Seed)

	// Import/export
	mux.HandleFunc("GET /api/export/json", h.ExportJSON)
	mux.HandleFunc("GET /api/export/yaml", h.ExportYAML)
	mux.HandleFunc("POST /api/import/yaml", h.ImportYAML)
	mux.HandleFunc("POST /api/import/json", h.ImportJSON)

	mux.HandleFunc("GET /healthz", h.Health)
}
