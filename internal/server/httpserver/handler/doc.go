// Package handler provides HTTP request handlers for kvdb.
//
// This package implements the HTTP API endpoints for single-key reads and
// writes, counter patches, transactional batches, and key listing, plus
// the health endpoints.
package handler
