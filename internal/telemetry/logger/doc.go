// Package logger provides structured logging for kvdb.
//
// It wraps the standard library log/slog to provide structured JSON
// logging with a dynamically adjustable level.
//
// Features:
//   - JSON structured logging (default), text for local development
//   - Log level configuration with runtime adjustment
//   - Global default logger for convenience
package logger
