package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"perishables/internal/codec"
)

// ExportJSON downloads the inventory as JSON
func (h *InventoryHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "json")
}

// ExportYAML downloads the inventory as YAML
func (h *InventoryHandler) ExportYAML(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "yaml")
}

// export renders into a buffer first so a failure still gets a proper
// error response
func (h *InventoryHandler) export(w http.ResponseWriter, r *http.Request, format string) {
	var buf bytes.Buffer
	if err := h.svc.Export(r.Context(), format, &buf); err != nil {
		writeServiceError(w, "Failed to export inventory", err)
		return
	}

	filename := fmt.Sprintf("inventory-%s.%s", time.Now().Format("20060102"), format)
	w.Header().Set("Content-Type", codec.ContentType(format))
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Failed to write export: %v", err)
	}
}

// ImportYAML imports a YAML snapshot
func (h *InventoryHandler) ImportYAML(w http.ResponseWriter, r *http.Request) {
	h.importFormat(w, r, "yaml")
}

// ImportJSON imports a JSON snapshot
func (h *InventoryHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	h.importFormat(w, r, "json")
}

func (h *InventoryHandler) importFormat(w http.ResponseWriter, r *http.Request, format string) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	result, err := h.svc.ImportFrom(r.Context(), format, body)
	if err != nil {
		writeServiceError(w, "Failed to import inventory", err)
		return
	}
	log.Printf("Imported %d items, %d categories (%d rows rejected)",
		result.ItemsCreated, result.CategoriesCreated, len(result.Errors))
	writeJSON(w, result, http.StatusOK)
}
