package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"perishables/internal/domain"
	"perishables/internal/service"
)

// maxBodyBytes bounds request bodies, imports included
const maxBodyBytes = 1 << 20

// InventoryHandler handles inventory API requests
type InventoryHandler struct {
	svc *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Health reports whether the store answers
func (h *InventoryHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		writeJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Stats returns the inventory summary
func (h *InventoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	days, ok := queryDays(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(r.Context(), days)
	if err != nil {
		writeServiceError(w, "Failed to compute stats", err)
		return
	}
	writeJSON(w, stats, http.StatusOK)
}

// Seed loads the sample inventory into an empty store
func (h *InventoryHandler) Seed(w http.ResponseWriter, r *http.Request) {
	seeded, err := h.svc.SeedSampleData(r.Context())
	if err != nil {
		writeServiceError(w, "Failed to seed sample data", err)
		return
	}
	writeJSON(w, map[string]bool{"seeded": seeded}, http.StatusOK)
}

// Helper functions

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// statusFor maps an error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForeignKeyViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err with the status its kind maps to
func writeServiceError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s: %v", msg, err)
	}
	writeError(w, msg, err.Error(), status)
}

// pathID parses a numeric path value
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, "Invalid "+name, "expected a positive integer, got "+strconv.Quote(raw), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// queryDays reads the optional days parameter; -1 means "use the default"
func queryDays(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return -1, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		writeError(w, "Invalid days", "expected a non-negative integer, got "+strconv.Quote(raw), http.StatusBadRequest)
		return 0, false
	}
	return days, true
}

// decodeBody decodes a bounded JSON request body into v
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
