package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"watchlist_backend/internal/feature/watchlist/presentation"
)

type toggleCmd struct{}

func (*toggleCmd) Name() string     { return "toggle" }
func (*toggleCmd) Synopsis() string { return "add a symbol to the watchlist, or remove it if present" }
func (*toggleCmd) Usage() string {
	return `watchlist toggle <symbol> [company]

  Adds <symbol> when it is not watched and removes it otherwise. Without
  [company] the server takes the name from the instrument catalog.
`
}

func (*toggleCmd) SetFlags(*flag.FlagSet) {}

func (*toggleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	company := strings.Join(f.Args()[1:], " ")

	s, err := newSession()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	member, err := s.api.IsWatchlisted(ctx, symbol)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	control := presentation.NewToggleControl(symbol, company, s.email, member, s.api, nil)
	fmt.Fprintf(stdout, "%s...\n", control.Title())

	_, res := control.Activate(ctx)
	if !res.Success {
		fmt.Fprintf(stderr, "Failed to update watchlist: %s\n", res.Error)
		return subcommands.ExitFailure
	}
	if control.Member() {
		fmt.Fprintf(stdout, "%s added to watchlist\n", symbol)
	} else {
		fmt.Fprintf(stdout, "%s removed from watchlist\n", symbol)
	}
	return subcommands.ExitSuccess
}
