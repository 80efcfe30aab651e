package handler

import (
	"net/http"

	"github.com/hugcis/kvdb-go/internal/core/service"
)

// handleBatch handles POST /api/.
//
// The body must be a transaction envelope; a plain value has no key to be
// stored under here and is rejected.
func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
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

	ops, isBatch, _, err := decodePostData(body)
	if err != nil || !isBatch {
		h.writeText(w, http.StatusBadRequest,
			"Invalid payload. Either the transaction is malformed or no key was specified")
		return
	}

	if err := h.kv.ApplyBatch(r.Context(), &service.ApplyBatchRequest{
		Ops:        ops,
		TTLSeconds: ttl,
	}); err != nil {
		h.writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.BatchesApplied.Inc()
		h.metrics.BatchOps.Add(float64(len(ops)))
	}
	h.writeText(w, http.StatusCreated, "Applied")
}
