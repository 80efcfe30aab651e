// Package memory provides the in-memory store for kvdb.
//
// The store is one map from key to entry behind a single mutex. Every
// operation holds the lock for its whole duration, which makes each
// operation atomic with respect to all others; batches reuse the same
// property by applying all their operations under one acquisition.
//
// Expiration is lazy: entries past their TTL stay in the map and are
// filtered out at read time (Get, List) only. Delete and Increment act on
// physical presence and never consult the TTL.
package memory
