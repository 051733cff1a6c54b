package main

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/google/subcommands"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/presentation"
)

type removeCmd struct {
	restore bool
	raw     bool
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a symbol and display the remaining watchlist" }
func (*removeCmd) Usage() string {
	return `watchlist remove [-restore] [-raw] <symbol>

  Removes <symbol> from the watchlist and displays the table. The row is
  dropped before the server answers; with -restore it comes back if the
  removal fails.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.restore, "restore", false, "show the row again when the removal fails")
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal styling")
}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)

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
	i := slices.IndexFunc(rows, func(r entity.WatchlistRow) bool { return r.Symbol == symbol })
	if i < 0 {
		fmt.Fprintf(stderr, "%s is not in your watchlist\n", symbol)
		return subcommands.ExitFailure
	}

	policy := presentation.KeepRemoved
	if c.restore {
		policy = presentation.RestoreOnRevert
	}
	table := presentation.NewTable(rows, policy)
	control := presentation.NewToggleControl(symbol, rows[i].Company, s.email, true, s.api, table.OnMembershipChange)

	status := subcommands.ExitSuccess
	if _, res := control.Activate(ctx); !res.Success {
		fmt.Fprintf(stderr, "Failed to update watchlist: %s\n", res.Error)
		status = subcommands.ExitFailure
	}

	md := presentation.WatchlistMarkdown(presentation.BuildRows(table.Rows(), s.email))
	if c.raw {
		fmt.Fprint(stdout, md)
	} else {
		printMarkdown(md)
	}
	return status
}
