// Package connection provides server communication for kvdb-cli.
//
// The HTTP client works with raw request and response bodies because the
// server API speaks plain JSON values and literal text responses rather
// than enveloped payloads.
package connection
