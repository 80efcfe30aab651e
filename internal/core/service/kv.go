package service

import (
	"context"
	"log/slog"

	"github.com/hugcis/kvdb-go/internal/core/domain"
	"github.com/hugcis/kvdb-go/pkg/jsonval"
)

// KVRepository defines the storage interface for key/value operations.
type KVRepository interface {
	// Get retrieves an entry. It returns domain.ErrKeyNotFound for absent
	// keys and domain.ErrKeyExpired for physically-present entries whose
	// TTL has elapsed.
	Get(ctx context.Context, key string) (*domain.Entry, error)

	// Set inserts or wholesale-replaces an entry, stamping created_at.
	Set(ctx context.Context, key string, value jsonval.Value, ttlSeconds uint64) error

	// Increment adds delta to an integer-valued entry. An absent key is
	// created with value 1 and the default TTL. Expiration is not consulted.
	Increment(ctx context.Context, key string, delta int64) (int64, error)

	// Delete removes an entry by physical presence and reports whether a
	// removal occurred.
	Delete(ctx context.Context, key string) (bool, error)

	// ApplyBatch applies an ordered sequence of set/delete operations under
	// one lock acquisition.
	ApplyBatch(ctx context.Context, ops []domain.BatchOp, defaultTTLSeconds uint64) error

	// List returns non-expired entries matching the filter.
	List(ctx context.Context, filter *ListFilter) ([]*domain.Entry, error)

	// Len returns the number of physically stored entries, expired included.
	Len() int

	// DefaultTTL returns the TTL applied when a write omits one.
	DefaultTTL() uint64
}

// ListFilter defines filter criteria for list queries.
type ListFilter struct {
	// Prefix restricts the result to keys starting with this string.
	Prefix string

	// Skip drops that many matching entries from the front.
	Skip int

	// Limit caps the number of returned entries. Negative means no limit.
	Limit int

	// Values requests entry values alongside keys. It does not change
	// which entries are selected, only how callers shape the output.
	Values bool
}

// KVService handles key/value operations.
type KVService struct {
	repo   KVRepository
	logger *slog.Logger
}

// NewKVService creates a new KVService.
func NewKVService(repo KVRepository, logger *slog.Logger) *KVService {
	if logger == nil {
		logger = slog.Default()
	}
	return &KVService{
		repo:   repo,
		logger: logger,
	}
}

// SetRequest contains parameters for a single-key write.
type SetRequest struct {
	Key   string
	Value jsonval.Value

	// TTLSeconds overrides the default TTL when non-nil.
	TTLSeconds *uint64
}

// ApplyBatchRequest contains parameters for a transactional batch write.
type ApplyBatchRequest struct {
	Ops []domain.BatchOp

	// TTLSeconds is the batch-level default for Set operations that carry
	// no TTL of their own. Nil means the process default.
	TTLSeconds *uint64
}

// Fetch retrieves an entry by key. Expired entries are reported as
// domain.ErrKeyExpired so that the transport layer can distinguish them
// from keys that never existed.
func (s *KVService) Fetch(ctx context.Context, key string) (*domain.Entry, error) {
	return s.repo.Get(ctx, key)
}

// Set inserts or replaces the entry for req.Key.
func (s *KVService) Set(ctx context.Context, req *SetRequest) error {
	if req.Key == "" {
		return domain.ErrBadRequest.WithDetails("key must not be empty")
	}

	ttl := s.resolveTTL(req.TTLSeconds)
	if err := s.repo.Set(ctx, req.Key, req.Value, ttl); err != nil {
		return err
	}

	s.logger.Debug("key set", "key", req.Key, "ttl_seconds", ttl)
	return nil
}

// Increment applies a signed integer delta to the entry for key.
func (s *KVService) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	if key == "" {
		return 0, domain.ErrBadRequest.WithDetails("key must not be empty")
	}

	n, err := s.repo.Increment(ctx, key, delta)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("key incremented", "key", key, "delta", delta, "value", n)
	return n, nil
}

// Delete removes the entry for key and reports whether a removal occurred.
func (s *KVService) Delete(ctx context.Context, key string) (bool, error) {
	removed, err := s.repo.Delete(ctx, key)
	if err != nil {
		return false, err
	}

	s.logger.Debug("key delete", "key", key, "removed", removed)
	return removed, nil
}

// ApplyBatch applies the ordered operations of req atomically with respect
// to all other store operations.
func (s *KVService) ApplyBatch(ctx context.Context, req *ApplyBatchRequest) error {
	ttl := s.resolveTTL(req.TTLSeconds)
	if err := s.repo.ApplyBatch(ctx, req.Ops, ttl); err != nil {
		return err
	}

	s.logger.Debug("batch applied", "ops", len(req.Ops), "default_ttl_seconds", ttl)
	return nil
}

// List returns the non-expired entries matching filter.
func (s *KVService) List(ctx context.Context, filter *ListFilter) ([]*domain.Entry, error) {
	if filter == nil {
		filter = &ListFilter{Limit: -1}
	}
	return s.repo.List(ctx, filter)
}

// Count returns the number of physically stored entries.
func (s *KVService) Count() int {
	return s.repo.Len()
}

func (s *KVService) resolveTTL(ttl *uint64) uint64 {
	if ttl != nil {
		return *ttl
	}
	return s.repo.DefaultTTL()
}
