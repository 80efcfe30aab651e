package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
)

// BatchCommand returns the batch command.
func BatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Apply a transactional batch of set/delete operations",
		ArgsUsage: "[FILE]",
		Description: `Reads a transaction payload from FILE, or from stdin when no
file is given. The payload has the form:

   {"txn": [{"set": "k1", "value": 1, "ttl": 60},
            {"delete": "k2"}]}`,
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:    "ttl",
				Aliases: []string{"t"},
				Usage:   "Default TTL in seconds for operations without one",
			},
		},
		Action: batchApply,
	}
}

func batchApply(c *cli.Context) error {
	var payload []byte
	var err error

	switch c.NArg() {
	case 0:
		payload, err = io.ReadAll(os.Stdin)
	case 1:
		payload, err = os.ReadFile(c.Args().Get(0))
	default:
		return cli.Exit("usage: kvdb-cli batch [FILE]", 1)
	}
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	if !json.Valid(payload) {
		return cli.Exit("payload is not valid JSON", 1)
	}

	path := "/api/"
	if c.IsSet("ttl") {
		path += "?ttl=" + strconv.FormatUint(c.Uint64("ttl"), 10)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := clientFor(c).Post(ctx, path, payload)
	if err != nil {
		return err
	}

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, body)
	return nil
}
