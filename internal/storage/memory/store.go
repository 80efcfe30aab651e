package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hugcis/kvdb-go/internal/core/domain"
	"github.com/hugcis/kvdb-go/internal/core/service"
	"github.com/hugcis/kvdb-go/pkg/jsonval"
)

// Store provides in-memory key/value storage with per-entry TTL.
type Store struct {
	mu      sync.Mutex
	entries map[string]*domain.Entry

	defaultTTL uint64
	now        func() time.Time
}

var _ service.KVRepository = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithDefaultTTL overrides the TTL applied to writes that omit one.
func WithDefaultTTL(seconds uint64) Option {
	return func(s *Store) {
		s.defaultTTL = seconds
	}
}

// WithNowFunc overrides the clock. Intended for tests.
func WithNowFunc(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		entries:    make(map[string]*domain.Entry),
		defaultTTL: domain.DefaultTTLSeconds,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get retrieves an entry by key.
//
// An absent key returns domain.ErrKeyNotFound. A physically-present entry
// whose TTL has elapsed returns domain.ErrKeyExpired and is left in place:
// reads never remove entries.
func (s *Store) Get(_ context.Context, key string) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	if entry.IsExpired(s.now()) {
		return nil, domain.ErrKeyExpired
	}

	return entry.Clone(), nil
}

// Set inserts or wholesale-replaces the entry for key, stamping created_at
// to the current time.
func (s *Store) Set(_ context.Context, key string, value jsonval.Value, ttlSeconds uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &domain.Entry{
		Key:        key,
		Value:      value,
		TTLSeconds: ttlSeconds,
		CreatedAt:  s.now(),
	}

	return nil
}

// Increment adds delta to the integer value stored under key.
//
// An absent key is created with value 1 and the default TTL, whatever the
// requested delta. A present entry keeps its TTL and created_at: only the
// value changes. Expired-but-present entries are treated as present.
func (s *Store) Increment(_ context.Context, key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		s.entries[key] = &domain.Entry{
			Key:        key,
			Value:      jsonval.Int(1),
			TTLSeconds: s.defaultTTL,
			CreatedAt:  s.now(),
		}
		return 1, nil
	}

	n, ok := entry.Value.AsInt()
	if !ok {
		return 0, domain.ErrValueNotNumber
	}

	n += delta
	entry.Value = jsonval.Int(n)
	return n, nil
}

// Delete removes the entry for key regardless of expiration state and
// reports whether a removal occurred.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}

	return ok, nil
}

// ApplyBatch applies the ordered operations under one lock acquisition, so
// no concurrent caller observes a partially-applied batch. Operations apply
// in order; a later operation may overwrite an earlier one's effect.
func (s *Store) ApplyBatch(_ context.Context, ops []domain.BatchOp, defaultTTLSeconds uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, op := range ops {
		switch {
		case op.Set != nil:
			ttl := defaultTTLSeconds
			if op.Set.TTLSeconds != nil {
				ttl = *op.Set.TTLSeconds
			}
			s.entries[op.Set.Key] = &domain.Entry{
				Key:        op.Set.Key,
				Value:      op.Set.Value,
				TTLSeconds: ttl,
				CreatedAt:  now,
			}
		case op.Delete != nil:
			delete(s.entries, op.Delete.Key)
		}
	}

	return nil
}

// List returns clones of the entries whose key matches the filter prefix
// and whose TTL has not elapsed, after dropping filter.Skip matches and
// taking at most filter.Limit (negative = all). Iteration order is the
// map's natural order; callers must not rely on it across calls.
func (s *Store) List(_ context.Context, filter *service.ListFilter) ([]*domain.Entry, error) {
	if filter == nil {
		filter = &service.ListFilter{Limit: -1}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	skipped := 0
	results := make([]*domain.Entry, 0)

	for key, entry := range s.entries {
		if !strings.HasPrefix(key, filter.Prefix) {
			continue
		}
		if entry.IsExpired(now) {
			continue
		}
		if skipped < filter.Skip {
			skipped++
			continue
		}
		if filter.Limit >= 0 && len(results) >= filter.Limit {
			break
		}
		results = append(results, entry.Clone())
	}

	return results, nil
}

// Len returns the number of physically stored entries, expired included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// DefaultTTL returns the TTL applied when a write omits one.
func (s *Store) DefaultTTL() uint64 {
	return s.defaultTTL
}
