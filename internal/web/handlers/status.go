package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
)

// ServiceInfo describes the upstream source this instance tracks.
type ServiceInfo struct {
	TargetState string `json:"target_state"`
	FinYear     string `json:"financial_year"`
	DataSource  string `json:"data_source"`
}

// StatusHandler serves the root info and health endpoints.
type StatusHandler struct {
	DB   *sql.DB
	Info ServiceInfo
}

// Root reports service identity and configuration.
func (h *StatusHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"message":        "MGNREGA Data Backend",
		"target_state":   h.Info.TargetState,
		"financial_year": h.Info.FinYear,
		"data_source":    h.Info.DataSource,
	})
}

// Health pings the database and reports status.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.DB.Ping(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "error",
			"db_status": "unreachable",
			"error":     err.Error(),
		})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "db_status": "connected"})
}
