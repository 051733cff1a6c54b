package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"watchlist_backend/internal/feature/watchlist/presentation"
)

type listCmd struct {
	raw bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the watchlist with live prices" }
func (*listCmd) Usage() string {
	return `watchlist list [-raw]

  Displays the watchlist, newest first.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal styling")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := newSession()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rows, err := s.api.List(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := presentation.WatchlistMarkdown(presentation.BuildRows(rows, s.email))
	if c.raw {
		fmt.Fprint(stdout, md)
	} else {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}
