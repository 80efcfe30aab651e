package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hugcis/kvdb-go/internal/core/domain"
	"github.com/hugcis/kvdb-go/internal/core/service"
)

// handleFetch handles GET /api/{key}.
//
// An expired-but-present key is reported distinctly from a missing one so
// that clients can tell the two apart, but both are 404s.
func (h *Handler) handleFetch(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	entry, err := h.kv.Fetch(r.Context(), key)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, entry.Value.String())
	case errors.Is(err, domain.ErrKeyExpired):
		if h.metrics != nil {
			h.metrics.ExpiredReads.Inc()
		}
		h.writeText(w, http.StatusNotFound, "Value found but expired")
	case errors.Is(err, domain.ErrKeyNotFound):
		h.writeText(w, http.StatusNotFound, "No value found")
	default:
		h.logger.Error("fetch failed", "key", key, "error", err)
		h.writeText(w, http.StatusInternalServerError, "Internal error")
	}
}

// handleInsert handles POST /api/{key}.
//
// The body is an arbitrary JSON value. A body shaped like a batch
// transaction is rejected: batches belong on the collection endpoint.
func (h *Handler) handleInsert(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	ttl, err := parseTTLParam(r)
	if err != nil {
		h.writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := h.readBody(w, r)
	if err != nil {
		h.writeReadError(w, err)
		return
	}

	_, isBatch, value, err := decodePostData(body)
	if err != nil {
		h.writeText(w, http.StatusBadRequest, err.Error())
		return
	}
	if isBatch {
		h.writeText(w, http.StatusBadRequest, "Transactions should be used without a key in the path")
		return
	}

	if err := h.kv.Set(r.Context(), &service.SetRequest{
		Key:        key,
		Value:      value,
		TTLSeconds: ttl,
	}); err != nil {
		h.writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeText(w, http.StatusCreated, "Inserted")
}

// handleIncrement handles PATCH /api/{key} with a "+N" or "-N" body.
func (h *Handler) handleIncrement(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.readBody(w, r)
	if err != nil {
		h.writeReadError(w, err)
		return
	}

	delta, ok := parseDelta(body)
	if !ok {
		h.writeText(w, http.StatusBadRequest, `Patch requests should be of the form "+N"`)
		return
	}

	n, err := h.kv.Increment(r.Context(), key, delta)
	switch {
	case err == nil:
		if h.metrics != nil {
			h.metrics.Increments.Inc()
		}
		h.writeText(w, http.StatusOK, strconv.FormatInt(n, 10))
	case errors.Is(err, domain.ErrValueNotNumber):
		h.writeText(w, http.StatusBadRequest, "Value is not a number")
	default:
		h.logger.Error("increment failed", "key", key, "error", err)
		h.writeText(w, http.StatusInternalServerError, "Internal error")
	}
}

// handleDelete handles DELETE /api/{key}.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	removed, err := h.kv.Delete(r.Context(), key)
	if err != nil {
		h.logger.Error("delete failed", "key", key, "error", err)
		h.writeText(w, http.StatusInternalServerError, "Internal error")
		return
	}

	if removed {
		h.writeText(w, http.StatusOK, "Key removed")
	} else {
		h.writeText(w, http.StatusNotFound, "Key not found")
	}
}

// writeReadError maps body-read failures to responses.
func (h *Handler) writeReadError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrPayloadTooLarge) {
		h.writeText(w, http.StatusBadRequest, "overflow")
		return
	}
	h.writeText(w, http.StatusBadRequest, err.Error())
}

// parseDelta parses a "+N"/"-N" increment body. The leading sign token is
// applied as a multiplier to the parsed remainder.
func parseDelta(body []byte) (int64, bool) {
	s := string(body)
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}

	n, err := strconv.ParseInt(s[1:], 10, 64)
	if err != nil {
		return 0, false
	}
	if s[0] == '-' {
		n = -n
	}
	return n, true
}
