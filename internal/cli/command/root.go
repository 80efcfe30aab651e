package command

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/hugcis/kvdb-go/internal/cli/connection"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "kvdb-cli",
		Usage:   "kvdb command-line client",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			SetCommand(),
			DelCommand(),
			IncrCommand(),
			DecrCommand(),
			ListCommand(),
			BatchCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "kvdb server address (e.g., localhost:8080)",
			EnvVars: []string{"KVDB_SERVER"},
			Value:   "127.0.0.1:8080",
		},
	}
}

// clientFor builds an HTTP client from the global flags.
func clientFor(c *cli.Context) *connection.HTTPClient {
	return connection.NewHTTPClient(c.String("server"))
}

// readResponse drains a server response, turning error statuses into errors.
func readResponse(resp *http.Response) (string, error) {
	return connection.ReadResponse(resp)
}
