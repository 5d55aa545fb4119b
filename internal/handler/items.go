package handler

import (
	"net/http"

	"perishables/internal/domain"
)

// quantityRequest is the body of PUT /api/items/{id}/quantity
type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

// ListItems returns all items ordered by name
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		writeServiceError(w, "Failed to list items", err)
		return
	}
	writeJSON(w, items, http.StatusOK)
}

// GetItem returns a single item
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Failed to get item", err)
		return
	}
	writeJSON(w, item, http.StatusOK)
}

// CreateItem adds an item
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeItem(w, r)
	if !ok {
		return
	}

	item, err := h.svc.CreateItem(r.Context(), in)
	if err != nil {
		writeServiceError(w, "Failed to create item", err)
		return
	}
	writeJSON(w, item, http.StatusCreated)
}

// UpdateItem replaces the mutable fields of an item
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	in, ok := decodeItem(w, r)
	if !ok {
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, "Failed to update item", err)
		return
	}
	writeJSON(w, item, http.StatusOK)
}

// UpdateQuantity sets only the quantity of an item
func (h *InventoryHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req quantityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		writeError(w, "Invalid request body", "quantity is required", http.StatusBadRequest)
		return
	}

	item, err := h.svc.SetQuantity(r.Context(), id, *req.Quantity)
	if err != nil {
		writeServiceError(w, "Failed to update quantity", err)
		return
	}
	writeJSON(w, item, http.StatusOK)
}

// DeleteItem deletes an item
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		writeServiceError(w, "Failed to delete item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchItems matches ?q= against name or storage location
func (h *InventoryHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.SearchItems(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, "Failed to search items", err)
		return
	}
	writeJSON(w, items, http.StatusOK)
}

// ListExpiring returns items expiring within ?days= (default window if absent)
func (h *InventoryHandler) ListExpiring(w http.ResponseWriter, r *http.Request) {
	days, ok := queryDays(w, r)
	if !ok {
		return
	}

	items, err := h.svc.ListExpiring(r.Context(), days)
	if err != nil {
		writeServiceError(w, "Failed to list expiring items", err)
		return
	}
	writeJSON(w, items, http.StatusOK)
}

// ItemCategories returns the categories of an item
func (h *InventoryHandler) ItemCategories(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	categories, err := h.svc.CategoriesOfItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Failed to list item categories", err)
		return
	}
	writeJSON(w, categories, http.StatusOK)
}

// decodeItem reads an item body; an empty expiry date means none
func decodeItem(w http.ResponseWriter, r *http.Request) (domain.ItemInput, bool) {
	var in domain.ItemInput
	if !decodeBody(w, r, &in) {
		return in, false
	}
	if in.ExpiryDate != nil && in.ExpiryDate.IsZero() {
		in.ExpiryDate = nil
	}
	return in, true
}
