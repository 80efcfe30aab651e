package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hugcis/kvdb-go/internal/core/domain"
	"github.com/hugcis/kvdb-go/internal/core/service"
	"github.com/hugcis/kvdb-go/pkg/jsonval"
)

// fakeClock is a manually-advanced clock for TTL tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	want, err := jsonval.Parse([]byte(`{"name":"alice","tags":[1,2]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if err := store.Set(ctx, "user:1", want, 30); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entry, err := store.Get(ctx, "user:1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !entry.Value.Equal(want) {
		t.Fatalf("Get value = %s, want %s", entry.Value, want)
	}
	if entry.TTLSeconds != 30 {
		t.Fatalf("TTLSeconds = %d, want 30", entry.TTLSeconds)
	}
}

func TestStore_GetAbsent(t *testing.T) {
	store := New()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("Get err = %v, want %v", err, domain.ErrKeyNotFound)
	}
}

func TestStore_ExpiryIsLazy(t *testing.T) {
	clock := newFakeClock()
	store := New(WithNowFunc(clock.Now))
	ctx := context.Background()

	if err := store.Set(ctx, "k", jsonval.Int(1), 30); err != nil {
		t.Fatalf("Set: %v", err)
	}

	clock.Advance(29 * time.Second)
	if _, err := store.Get(ctx, "k"); err != nil {
		t.Fatalf("Get before ttl: %v", err)
	}

	clock.Advance(2 * time.Second)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, domain.ErrKeyExpired) {
		t.Fatalf("Get after ttl err = %v, want %v", err, domain.ErrKeyExpired)
	}

	// The expired entry must remain physically present.
	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (lazy expiration keeps entries)", store.Len())
	}
}

func TestStore_SetRefreshesCreatedAt(t *testing.T) {
	clock := newFakeClock()
	store := New(WithNowFunc(clock.Now))
	ctx := context.Background()

	if err := store.Set(ctx, "k", jsonval.Int(1), 10); err != nil {
		t.Fatalf("Set: %v", err)
	}

	clock.Advance(15 * time.Second)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, domain.ErrKeyExpired) {
		t.Fatalf("Get err = %v, want %v", err, domain.ErrKeyExpired)
	}

	// Overwriting an expired entry revives it with a fresh timestamp.
	if err := store.Set(ctx, "k", jsonval.Int(2), 10); err != nil {
		t.Fatalf("Set: %v", err)
	}
	entry, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get after re-set: %v", err)
	}
	if n, _ := entry.Value.AsInt(); n != 2 {
		t.Fatalf("value = %d, want 2", n)
	}
}

func TestStore_Delete(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.Set(ctx, "a", jsonval.Int(1), 30); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "b", jsonval.Int(2), 30); err != nil {
		t.Fatalf("Set: %v", err)
	}

	removed, err := store.Delete(ctx, "a")
	if err != nil || !removed {
		t.Fatalf("Delete(a) = (%v, %v), want (true, nil)", removed, err)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("Get(a) err = %v, want %v", err, domain.ErrKeyNotFound)
	}

	removed, err = store.Delete(ctx, "a")
	if err != nil || removed {
		t.Fatalf("Delete(a) again = (%v, %v), want (false, nil)", removed, err)
	}

	// Other keys are untouched.
	if _, err := store.Get(ctx, "b"); err != nil {
		t.Fatalf("Get(b): %v", err)
	}
}

func TestStore_DeleteExpiredEntry(t *testing.T) {
	clock := newFakeClock()
	store := New(WithNowFunc(clock.Now))
	ctx := context.Background()

	if err := store.Set(ctx, "k", jsonval.Int(1), 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	clock.Advance(time.Minute)

	// Delete operates on physical presence, not logical expiration.
	removed, err := store.Delete(ctx, "k")
	if err != nil || !removed {
		t.Fatalf("Delete expired = (%v, %v), want (true, nil)", removed, err)
	}
}

func TestStore_IncrementAbsentAlwaysOne(t *testing.T) {
	tests := []struct {
		name  string
		delta int64
	}{
		{"plus one", 1},
		{"plus many", 500},
		{"minus one", -1},
		{"minus many", -42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New()
			ctx := context.Background()

			n, err := store.Increment(ctx, "counter", tt.delta)
			if err != nil {
				t.Fatalf("Increment: %v", err)
			}
			if n != 1 {
				t.Fatalf("first-touch value = %d, want 1", n)
			}

			entry, err := store.Get(ctx, "counter")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if entry.TTLSeconds != domain.DefaultTTLSeconds {
				t.Fatalf("TTLSeconds = %d, want default %d", entry.TTLSeconds, domain.DefaultTTLSeconds)
			}
		})
	}
}

func TestStore_IncrementExisting(t *testing.T) {
	clock := newFakeClock()
	store := New(WithNowFunc(clock.Now))
	ctx := context.Background()

	if err := store.Set(ctx, "counter", jsonval.Int(10), 30); err != nil {
		t.Fatalf("Set: %v", err)
	}
	created := clock.Now()

	clock.Advance(5 * time.Second)
	n, err := store.Increment(ctx, "counter", -3)
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if n != 7 {
		t.Fatalf("value = %d, want 7", n)
	}

	// Increment leaves ttl and created_at untouched.
	entry, err := store.Get(ctx, "counter")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !entry.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt = %v, want %v", entry.CreatedAt, created)
	}
	if entry.TTLSeconds != 30 {
		t.Fatalf("TTLSeconds = %d, want 30", entry.TTLSeconds)
	}
}

func TestStore_IncrementNonInteger(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"string", `"not a number"`},
		{"float", `2.5`},
		{"object", `{"a":1}`},
		{"array", `[1]`},
		{"bool", `true`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New()
			ctx := context.Background()

			v, err := jsonval.Parse([]byte(tt.body))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if err := store.Set(ctx, "k", v, 30); err != nil {
				t.Fatalf("Set: %v", err)
			}

			if _, err := store.Increment(ctx, "k", 1); !errors.Is(err, domain.ErrValueNotNumber) {
				t.Fatalf("Increment err = %v, want %v", err, domain.ErrValueNotNumber)
			}

			// The stored value must be left unmodified.
			entry, err := store.Get(ctx, "k")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !entry.Value.Equal(v) {
				t.Fatalf("value changed to %s after failed increment", entry.Value)
			}
		})
	}
}

func TestStore_IncrementIgnoresExpiration(t *testing.T) {
	clock := newFakeClock()
	store := New(WithNowFunc(clock.Now))
	ctx := context.Background()

	if err := store.Set(ctx, "counter", jsonval.Int(5), 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	clock.Advance(time.Hour)

	// Expired-but-present entries are treated as present by increment.
	n, err := store.Increment(ctx, "counter", 1)
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if n != 6 {
		t.Fatalf("value = %d, want 6", n)
	}
}

func TestStore_ApplyBatchOrderMatters(t *testing.T) {
	store := New()
	ctx := context.Background()

	ops := []domain.BatchOp{
		{Set: &domain.SetOp{Key: "a", Value: jsonval.Int(1)}},
		{Delete: &domain.DeleteOp{Key: "a"}},
		{Set: &domain.SetOp{Key: "a", Value: jsonval.Int(2)}},
	}
	if err := store.ApplyBatch(ctx, ops, 30); err != nil {
		t.Fatalf("ApplyBatch: %v", err)
	}

	entry, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n, _ := entry.Value.AsInt(); n != 2 {
		t.Fatalf("value = %d, want 2 (last writer within batch wins)", n)
	}
}

func TestStore_ApplyBatchTTLResolution(t *testing.T) {
	store := New()
	ctx := context.Background()

	ttl := uint64(120)
	ops := []domain.BatchOp{
		{Set: &domain.SetOp{Key: "explicit", Value: jsonval.Int(1), TTLSeconds: &ttl}},
		{Set: &domain.SetOp{Key: "fallback", Value: jsonval.Int(2)}},
		{Delete: &domain.DeleteOp{Key: "never-existed"}},
	}
	if err := store.ApplyBatch(ctx, ops, 60); err != nil {
		t.Fatalf("ApplyBatch: %v", err)
	}

	explicit, err := store.Get(ctx, "explicit")
	if err != nil {
		t.Fatalf("Get(explicit): %v", err)
	}
	if explicit.TTLSeconds != 120 {
		t.Fatalf("explicit TTL = %d, want 120", explicit.TTLSeconds)
	}

	fallback, err := store.Get(ctx, "fallback")
	if err != nil {
		t.Fatalf("Get(fallback): %v", err)
	}
	if fallback.TTLSeconds != 60 {
		t.Fatalf("fallback TTL = %d, want 60", fallback.TTLSeconds)
	}
}

func TestStore_ListPrefix(t *testing.T) {
	clock := newFakeClock()
	store := New(WithNowFunc(clock.Now))
	ctx := context.Background()

	for key, n := range map[string]int64{"user:1": 1, "user:2": 2, "admin:1": 3} {
		if err := store.Set(ctx, key, jsonval.Int(n), 30); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}

	entries, err := store.List(ctx, &service.ListFilter{Prefix: "user:", Limit: -1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	keys := make(map[string]bool)
	for _, e := range entries {
		keys[e.Key] = true
	}
	if len(keys) != 2 || !keys["user:1"] || !keys["user:2"] {
		t.Fatalf("List keys = %v, want {user:1, user:2}", keys)
	}

	// Once the TTLs elapse the same listing is empty.
	clock.Advance(time.Minute)
	entries, err = store.List(ctx, &service.ListFilter{Prefix: "user:", Limit: -1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("List after expiry = %d entries, want 0", len(entries))
	}
}

func TestStore_ListSkipLimit(t *testing.T) {
	store := New()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("k%02d", i)
		if err := store.Set(ctx, key, jsonval.Int(int64(i)), 30); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}

	tests := []struct {
		name  string
		skip  int
		limit int
		want  int
	}{
		{"all", 0, -1, 10},
		{"limit only", 0, 3, 3},
		{"skip only", 4, -1, 6},
		{"skip and limit", 4, 3, 3},
		{"skip past end", 20, -1, 0},
		{"zero limit", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.List(ctx, &service.ListFilter{Skip: tt.skip, Limit: tt.limit})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(entries) != tt.want {
				t.Fatalf("len = %d, want %d", len(entries), tt.want)
			}
		})
	}
}

func TestStore_ConcurrentWritesNoTornUpdates(t *testing.T) {
	store := New()
	ctx := context.Background()

	// Each writer stamps value i with ttl i+1000; a torn update would leave
	// an entry whose value and ttl come from different writers.
	const writers = 64
	const rounds = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				if err := store.Set(ctx, "shared", jsonval.Int(int64(i)), uint64(i+1000)); err != nil {
					t.Errorf("Set: %v", err)
					return
				}
				entry, err := store.Get(ctx, "shared")
				if err != nil {
					t.Errorf("Get: %v", err)
					return
				}
				n, ok := entry.Value.AsInt()
				if !ok {
					t.Errorf("non-integer value observed: %s", entry.Value)
					return
				}
				if entry.TTLSeconds != uint64(n+1000) {
					t.Errorf("torn update: value %d with ttl %d", n, entry.TTLSeconds)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestStore_ConcurrentMixedOperations(t *testing.T) {
	store := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for r := 0; r < 100; r++ {
				switch r % 4 {
				case 0:
					_ = store.Set(ctx, key, jsonval.Int(int64(r)), 30)
				case 1:
					_, _ = store.Get(ctx, key)
				case 2:
					_, _ = store.Increment(ctx, key, 1)
				case 3:
					_, _ = store.List(ctx, &service.ListFilter{Limit: -1})
				}
			}
		}(i)
	}
	wg.Wait()
}
