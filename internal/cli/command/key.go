package command

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
)

const requestTimeout = 30 * time.Second

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch the value stored under a key",
		ArgsUsage: "KEY",
		Action:    keyGet,
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store a JSON value under a key",
		ArgsUsage: "KEY VALUE",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:    "ttl",
				Aliases: []string{"t"},
				Usage:   "Time to live in seconds (server default when omitted)",
			},
		},
		Action: keySet,
	}
}

// DelCommand returns the del command.
func DelCommand() *cli.Command {
	return &cli.Command{
		Name:      "del",
		Aliases:   []string{"delete"},
		Usage:     "Remove a key",
		ArgsUsage: "KEY",
		Action:    keyDel,
	}
}

// IncrCommand returns the incr command.
func IncrCommand() *cli.Command {
	return &cli.Command{
		Name:      "incr",
		Usage:     "Increment an integer value",
		ArgsUsage: "KEY [DELTA]",
		Action: func(c *cli.Context) error {
			return keyIncr(c, "+")
		},
	}
}

// DecrCommand returns the decr command.
func DecrCommand() *cli.Command {
	return &cli.Command{
		Name:      "decr",
		Usage:     "Decrement an integer value",
		ArgsUsage: "KEY [DELTA]",
		Action: func(c *cli.Context) error {
			return keyIncr(c, "-")
		},
	}
}

func keyGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: kvdb-cli get KEY", 1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := clientFor(c).Get(ctx, keyPath(c.Args().Get(0)))
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

func keySet(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: kvdb-cli set KEY VALUE", 1)
	}

	key := c.Args().Get(0)
	raw := c.Args().Get(1)

	// Bare words become JSON strings so `set name alice` works without
	// shell-quoted JSON.
	value := []byte(raw)
	if !json.Valid(value) {
		value, _ = json.Marshal(raw)
	}

	path := keyPath(key)
	if c.IsSet("ttl") {
		path += "?ttl=" + strconv.FormatUint(c.Uint64("ttl"), 10)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := clientFor(c).Post(ctx, path, value)
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

func keyDel(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: kvdb-cli del KEY", 1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := clientFor(c).Delete(ctx, keyPath(c.Args().Get(0)))
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

func keyIncr(c *cli.Context, sign string) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return cli.Exit("usage: kvdb-cli incr KEY [DELTA]", 1)
	}

	delta := "1"
	if c.NArg() == 2 {
		delta = c.Args().Get(1)
		if _, err := strconv.ParseInt(delta, 10, 64); err != nil {
			return cli.Exit("DELTA must be an integer", 1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := clientFor(c).Patch(ctx, keyPath(c.Args().Get(0)), []byte(sign+delta))
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

// keyPath builds the API path for a key, escaping path metacharacters.
func keyPath(key string) string {
	return "/api/" + url.PathEscape(key)
}
