package domain

import "github.com/hugcis/kvdb-go/pkg/jsonval"

// SetOp inserts or wholesale-replaces the entry for Key.
type SetOp struct {
	Key   string
	Value jsonval.Value

	// TTLSeconds overrides the batch default TTL when non-nil.
	TTLSeconds *uint64
}

// DeleteOp removes the entry for Key. Deleting an absent key is a no-op
// within a batch.
type DeleteOp struct {
	Key string
}

// BatchOp is one operation of a batch: exactly one of Set or Delete is
// non-nil.
type BatchOp struct {
	Set    *SetOp
	Delete *DeleteOp
}
