package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

func requireArgs(c *cli.Context, names ...string) error {
	if c.Args().Len() < len(names) {
		return cli.Exit(fmt.Sprintf("usage: %s %s", c.Command.FullName(), joinArgs(names)), 2)
	}
	return nil
}

func joinArgs(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " "
		}
		out += "<" + n + ">"
	}
	return out
}

func intArg(c *cli.Context, i int, name string) (int, error) {
	v, err := strconv.Atoi(c.Args().Get(i))
	if err != nil {
		return 0, cli.Exit(fmt.Sprintf("%s must be an integer, got %q", name, c.Args().Get(i)), 2)
	}
	return v, nil
}

func idArg(c *cli.Context, i int, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Args().Get(i), 10, 64)
	if err != nil {
		return 0, cli.Exit(fmt.Sprintf("%s must be an id, got %q", name, c.Args().Get(i)), 2)
	}
	return v, nil
}
