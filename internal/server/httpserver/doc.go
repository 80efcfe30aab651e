// Package httpserver provides the HTTP/HTTPS server for kvdb.
//
// It uses the Go standard library net/http for implementation, exposing
// the key/value API, health endpoints, and the Prometheus exposition
// endpoint behind a configurable middleware chain.
package httpserver
