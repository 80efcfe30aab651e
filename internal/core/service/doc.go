// Package service provides the domain service layer for kvdb.
//
// KVService sits between the transport handlers and the storage layer:
// it validates input, resolves optional TTLs to the process default, and
// delegates to a KVRepository implementation.
package service
