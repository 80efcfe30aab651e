package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hugcis/kvdb-go/internal/core/domain"
	"github.com/hugcis/kvdb-go/internal/core/service"
	"github.com/hugcis/kvdb-go/pkg/jsonval"
)

// handleList handles GET /api/.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		h.writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.kv.List(r.Context(), &service.ListFilter{
		Prefix: opts.Prefix,
		Skip:   opts.Skip,
		Limit:  opts.Limit,
		Values: opts.Values,
	})
	if err != nil {
		h.logger.Error("list failed", "error", err)
		h.writeText(w, http.StatusInternalServerError, "Internal error")
		return
	}

	if opts.Format == "text" {
		h.writeText(w, http.StatusOK, formatEntriesText(entries, opts.Values))
		return
	}

	body, err := formatEntriesJSON(entries, opts.Values)
	if err != nil {
		h.logger.Error("list encoding failed", "error", err)
		h.writeText(w, http.StatusInternalServerError, "Internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, body)
}

// formatEntriesText renders one key (or key=value pair) per line.
func formatEntriesText(entries []*domain.Entry, values bool) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if values {
			lines = append(lines, e.Key+"="+e.Value.String())
		} else {
			lines = append(lines, e.Key)
		}
	}
	return strings.Join(lines, "\n")
}

// formatEntriesJSON renders a key array, or a key/value object when values
// are requested.
func formatEntriesJSON(entries []*domain.Entry, values bool) (string, error) {
	if values {
		obj := make(map[string]jsonval.Value, len(entries))
		for _, e := range entries {
			obj[e.Key] = e.Value
		}
		data, err := json.Marshal(obj)
		return string(data), err
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	data, err := json.Marshal(keys)
	return string(data), err
}
