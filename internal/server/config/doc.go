// Package config provides server configuration for kvdb.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files and environment variables.
package config
