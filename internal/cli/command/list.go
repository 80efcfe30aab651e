package command

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/urfave/cli/v2"
)

// ListCommand returns the list command.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored keys",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Usage:   "Only keys starting with this prefix",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Value:   -1,
				Usage:   "Maximum number of keys to return",
			},
			&cli.IntFlag{
				Name:  "skip",
				Usage: "Number of matching keys to skip",
			},
			&cli.BoolFlag{
				Name:    "values",
				Aliases: []string{"v"},
				Usage:   "Include values in the output",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text or json",
			},
		},
		Action: listKeys,
	}
}

func listKeys(c *cli.Context) error {
	params := url.Values{}
	params.Set("format", c.String("format"))
	if prefix := c.String("prefix"); prefix != "" {
		params.Set("prefix", prefix)
	}
	if limit := c.Int("limit"); limit >= 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if skip := c.Int("skip"); skip > 0 {
		params.Set("skip", strconv.Itoa(skip))
	}
	if c.Bool("values") {
		params.Set("values", "true")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := clientFor(c).Get(ctx, "/api/?"+params.Encode())
	if err != nil {
		return err
	}

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if body != "" {
		fmt.Fprintln(c.App.Writer, body)
	}
	return nil
}
