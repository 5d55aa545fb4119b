package handler

import (
	"net/http"
)

// categoryRequest is the body of category create/rename
type categoryRequest struct {
	Name string `json:"name"`
}

// ListCategories returns all categories ordered by name
func (h *InventoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, "Failed to list categories", err)
		return
	}
	writeJSON(w, categories, http.StatusOK)
}

// GetCategory returns a single category
func (h *InventoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	category, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Failed to get category", err)
		return
	}
	writeJSON(w, category, http.StatusOK)
}

// CreateCategory adds a category
func (h *InventoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, "Failed to create category", err)
		return
	}
	writeJSON(w, category, http.StatusCreated)
}

// UpdateCategory renames a category
func (h *InventoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.svc.RenameCategory(r.Context(), id, req.Name)
	if err != nil {
		writeServiceError(w, "Failed to update category", err)
		return
	}
	writeJSON(w, category, http.StatusOK)
}

// DeleteCategory deletes a category
func (h *InventoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, "Failed to delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CategoryItems returns the items in a category
func (h *InventoryHandler) CategoryItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.svc.ItemsInCategory(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Failed to list category items", err)
		return
	}
	writeJSON(w, items, http.StatusOK)
}

// AssignItem links an item to a category
func (h *InventoryHandler) AssignItem(w http.ResponseWriter, r *http.Request) {
	categoryID, itemID, ok := linkIDs(w, r)
	if !ok {
		return
	}

	if err := h.svc.Categorize(r.Context(), itemID, categoryID); err != nil {
		writeServiceError(w, "Failed to assign item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem unlinks an item from a category
func (h *InventoryHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	categoryID, itemID, ok := linkIDs(w, r)
	if !ok {
		return
	}

	if err := h.svc.Uncategorize(r.Context(), itemID, categoryID); err != nil {
		writeServiceError(w, "Failed to remove item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func linkIDs(w http.ResponseWriter, r *http.Request) (categoryID, itemID int64, ok bool) {
	if categoryID, ok = pathID(w, r, "id"); !ok {
		return 0, 0, false
	}
	if itemID, ok = pathID(w, r, "item_id"); !ok {
		return 0, 0, false
	}
	return categoryID, itemID, true
}
