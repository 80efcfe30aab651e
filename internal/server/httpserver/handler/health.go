package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	body, _ := json.Marshal(map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
	h.writeJSON(w, http.StatusOK, string(body))
}

// handleReady handles GET /ready.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	body, _ := json.Marshal(map[string]string{
		"status": "ready",
		"keys":   strconv.Itoa(h.kv.Count()),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
	h.writeJSON(w, http.StatusOK, string(body))
}
