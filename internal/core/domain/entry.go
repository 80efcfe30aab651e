package domain

import (
	"math"
	"time"

	"github.com/hugcis/kvdb-go/pkg/jsonval"
)

// DefaultTTLSeconds is the TTL applied to writes that do not specify one.
// It is a process-wide constant, not a configuration knob.
const DefaultTTLSeconds uint64 = 30

// Entry is one stored key/value association.
type Entry struct {
	// Key is the unique, non-empty key of the entry.
	Key string `json:"key"`

	// Value is the stored JSON value.
	Value jsonval.Value `json:"value"`

	// TTLSeconds is the time-to-live in seconds, counted from CreatedAt.
	TTLSeconds uint64 `json:"ttl_seconds"`

	// CreatedAt is the timestamp of the last full write of the entry.
	// A re-set refreshes it; an increment does not.
	CreatedAt time.Time `json:"created_at"`
}

// maxDurationSeconds is the largest whole-second count representable as a
// time.Duration without overflowing its int64 nanosecond range.
const maxDurationSeconds = uint64(math.MaxInt64 / int64(time.Second))

// IsExpired reports whether the entry's TTL has elapsed at the given time.
// Expiration is a read-time predicate only: expired entries stay in the map
// until overwritten or deleted. The elapsed time is compared in whole
// seconds, so TTLs too large to represent as a time.Duration never read as
// already elapsed.
func (e *Entry) IsExpired(now time.Time) bool {
	elapsed := now.Sub(e.CreatedAt)
	if elapsed < 0 {
		return false
	}
	return uint64(elapsed/time.Second) >= e.TTLSeconds
}

// ExpiresAt returns the instant at which the entry expires. TTLs beyond the
// time.Duration range are clamped to it.
func (e *Entry) ExpiresAt() time.Time {
	ttl := e.TTLSeconds
	if ttl > maxDurationSeconds {
		ttl = maxDurationSeconds
	}
	return e.CreatedAt.Add(time.Duration(ttl) * time.Second)
}

// Clone returns a copy of the entry. Value is immutable and is shared.
func (e *Entry) Clone() *Entry {
	clone := *e
	return &clone
}
