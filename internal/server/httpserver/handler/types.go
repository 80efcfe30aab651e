package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hugcis/kvdb-go/internal/core/domain"
	"github.com/hugcis/kvdb-go/pkg/jsonval"
)

// batchEnvelope is the wire shape of a transactional batch payload.
type batchEnvelope struct {
	Txn []batchOperation `json:"txn"`
}

// batchOperation is one wire-level batch operation. A set operation carries
// "set" and "value" (plus optional "ttl"); a delete operation carries
// "delete". Value uses json.RawMessage so that an explicit null value is
// distinguishable from an absent one.
type batchOperation struct {
	Set    *string         `json:"set"`
	Value  json.RawMessage `json:"value"`
	TTL    *uint64         `json:"ttl"`
	Delete *string         `json:"delete"`
}

// decodePostData interprets a POST body the way the API contract requires:
// an object carrying a well-formed "txn" list is a batch; anything else
// that parses as JSON is a plain value. The same body is therefore a batch
// or a value depending only on its shape, never on the endpoint.
func decodePostData(data []byte) (ops []domain.BatchOp, isBatch bool, value jsonval.Value, err error) {
	var env batchEnvelope
	if jsonErr := json.Unmarshal(data, &env); jsonErr == nil && env.Txn != nil {
		ops, ok := convertBatch(env.Txn)
		if ok {
			return ops, true, jsonval.Value{}, nil
		}
		// A malformed batch falls back to being a plain value, matching
		// the untagged decoding of the wire format.
	}

	value, err = jsonval.Parse(data)
	if err != nil {
		return nil, false, jsonval.Value{}, domain.ErrBadRequest.WithCause(err)
	}

	return nil, false, value, nil
}

// convertBatch validates and converts wire operations to domain ops.
// Every operation must be a set (with a value) or a delete; otherwise the
// whole payload is not a batch.
func convertBatch(wire []batchOperation) ([]domain.BatchOp, bool) {
	ops := make([]domain.BatchOp, 0, len(wire))

	for _, op := range wire {
		switch {
		case op.Set != nil && op.Value != nil:
			v, err := jsonval.Parse(op.Value)
			if err != nil {
				return nil, false
			}
			ops = append(ops, domain.BatchOp{Set: &domain.SetOp{
				Key:        *op.Set,
				Value:      v,
				TTLSeconds: op.TTL,
			}})
		case op.Delete != nil:
			ops = append(ops, domain.BatchOp{Delete: &domain.DeleteOp{Key: *op.Delete}})
		default:
			return nil, false
		}
	}

	return ops, true
}

// parseTTLParam extracts the optional ?ttl= query parameter.
func parseTTLParam(r *http.Request) (*uint64, error) {
	raw := r.URL.Query().Get("ttl")
	if raw == "" {
		return nil, nil
	}

	ttl, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, domain.ErrBadRequest.WithDetails("invalid ttl parameter")
	}
	return &ttl, nil
}

// listOptions are the decoded query parameters of the list endpoint.
type listOptions struct {
	Format  string
	Limit   int
	Skip    int
	Prefix  string
	Values  bool
	Reverse bool // accepted for compatibility, unused
}

// parseListOptions decodes the list endpoint's query string.
func parseListOptions(r *http.Request) (*listOptions, error) {
	q := r.URL.Query()
	opts := &listOptions{
		Format: "json",
		Limit:  -1,
		Prefix: q.Get("prefix"),
	}

	if f := q.Get("format"); f == "text" {
		opts.Format = "text"
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, domain.ErrBadRequest.WithDetails("invalid limit parameter")
		}
		opts.Limit = n
	}

	if raw := q.Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, domain.ErrBadRequest.WithDetails("invalid skip parameter")
		}
		opts.Skip = n
	}

	if raw := q.Get("values"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, domain.ErrBadRequest.WithDetails("invalid values parameter")
		}
		opts.Values = b
	}

	if raw := q.Get("reverse"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, domain.ErrBadRequest.WithDetails("invalid reverse parameter")
		}
		opts.Reverse = b
	}

	return opts, nil
}
