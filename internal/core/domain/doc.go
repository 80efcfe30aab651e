// Package domain defines the core domain models for kvdb.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling: the stored Entry, the batch
// operation types, and the structured error taxonomy.
package domain
