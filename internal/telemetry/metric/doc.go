// Package metric provides Prometheus metrics for kvdb.
//
// It exposes metrics in Prometheus format for monitoring stored key
// counts, request rates, latencies, and store operation totals.
package metric
