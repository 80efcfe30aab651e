// Package command provides CLI command definitions for kvdb-cli.
//
// It uses urfave/cli/v2 for command parsing. Every command talks to a
// running kvdb-server over its HTTP API.
package command
