package domain

import (
	"testing"
	"time"

	"github.com/hugcis/kvdb-go/pkg/jsonval"
)

func TestEntryIsExpired(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := &Entry{
		Key:        "k",
		Value:      jsonval.Int(1),
		TTLSeconds: 30,
		CreatedAt:  created,
	}

	tests := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"at creation", created, false},
		{"just before ttl", created.Add(30*time.Second - time.Nanosecond), false},
		{"exactly at ttl", created.Add(30 * time.Second), true},
		{"well past ttl", created.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.IsExpired(tt.now); got != tt.expired {
				t.Fatalf("IsExpired = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestEntryZeroTTLAlwaysExpired(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := &Entry{Key: "k", TTLSeconds: 0, CreatedAt: created}

	if !e.IsExpired(created) {
		t.Fatalf("ttl=0 entry not expired at creation time")
	}
}

func TestEntryHugeTTLNotExpired(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// TTLs past ~292 years overflow int64 nanoseconds if multiplied into a
	// time.Duration. They must still read as live, not instantly expired.
	tests := []struct {
		name string
		ttl  uint64
	}{
		{"ten billion seconds", 10_000_000_000},
		{"max uint64", ^uint64(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{Key: "k", Value: jsonval.Int(1), TTLSeconds: tt.ttl, CreatedAt: created}

			if e.IsExpired(created) {
				t.Fatalf("ttl=%d entry expired at creation time", tt.ttl)
			}
			if e.IsExpired(created.Add(24 * time.Hour)) {
				t.Fatalf("ttl=%d entry expired after a day", tt.ttl)
			}
			if !e.ExpiresAt().After(created) {
				t.Fatalf("ExpiresAt = %v, want after %v", e.ExpiresAt(), created)
			}
		})
	}
}

func TestEntryExpiresAt(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := &Entry{Key: "k", TTLSeconds: 90, CreatedAt: created}

	want := created.Add(90 * time.Second)
	if got := e.ExpiresAt(); !got.Equal(want) {
		t.Fatalf("ExpiresAt = %v, want %v", got, want)
	}
}

func TestEntryClone(t *testing.T) {
	e := &Entry{
		Key:        "k",
		Value:      jsonval.String("v"),
		TTLSeconds: 10,
		CreatedAt:  time.Now(),
	}

	clone := e.Clone()
	if clone == e {
		t.Fatalf("Clone returned the same pointer")
	}
	clone.TTLSeconds = 99
	if e.TTLSeconds != 10 {
		t.Fatalf("mutating clone changed the original")
	}
}
