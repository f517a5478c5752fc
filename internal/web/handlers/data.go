package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mgnrega-backend/internal/store"
)

// DataHandler serves the MGNREGA read endpoints.
type DataHandler struct {
	Store      *store.Store
	CacheLimit int
}

// GetAll returns states, districts, fact rows (with identity joined) and the
// most recent raw-cache entries.
func (h *DataHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Store.Snapshot(h.CacheLimit)
	if err != nil {
		log.Printf("snapshot query failed: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, snapshot)
}

// GetSummary returns grouped sums and averages per state for dashboard KPIs.
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Store.StateSummaries()
	if err != nil {
		log.Printf("summary query failed: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"states": summaries})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
