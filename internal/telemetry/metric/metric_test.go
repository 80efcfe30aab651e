package metric

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegistryExposition(t *testing.T) {
	r := NewRegistry()
	r.RegisterKeyCount(func() float64 { return 7 })

	r.RequestsTotal.WithLabelValues("GET", "/api/{key}", "200").Inc()
	r.RequestDuration.WithLabelValues("GET", "/api/{key}").Observe(0.01)
	r.ExpiredReads.Inc()
	r.BatchesApplied.Inc()
	r.BatchOps.Add(3)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"kvdb_keys_stored 7",
		"kvdb_expired_reads_total 1",
		"kvdb_batches_applied_total 1",
		"kvdb_batch_ops_total 3",
		`kvdb_http_requests_total{method="GET",route="/api/{key}",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition missing %q\n%s", want, body)
		}
	}
}

func TestIncrementsCounter(t *testing.T) {
	r := NewRegistry()
	r.Increments.Inc()
	r.Increments.Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "kvdb_increments_total 2") {
		t.Fatalf("exposition missing increments counter\n%s", rec.Body.String())
	}
}
