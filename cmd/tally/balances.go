package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"

	"github.com/tallyhq/tally/internal/balance"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/snapshot"
)

// balancesCmd holds the flags for the 'balances' subcommand.
type balancesCmd struct {
	file string
	feed bool
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "derive per-participant balances from a snapshot" }
func (*balancesCmd) Usage() string {
	return `tally balances [-f <snapshot>] [-feed]

  Prints, for every counterparty, how much they owe you or you owe them.
  With -feed, also lists each relationship's contributing transactions.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", getEnv("TALLY_SNAPSHOT", "ledger.json"), "Path to the ledger snapshot (JSON)")
	f.BoolVar(&c.feed, "feed", false, "Include the related-transaction feed per participant")
}

func (c *balancesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := snapshot.LoadFile(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	registry, err := snap.Registry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building registry: %v\n", err)
		return subcommands.ExitFailure
	}

	positions := service.NewLedger().Summarize(ctx, snap.Transactions)
	if len(positions) == 0 {
		fmt.Println("no balances to report")
		return subcommands.ExitSuccess
	}

	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		pos := positions[id]
		name := registry.Name(id)
		switch net := pos.Net(); {
		case net > 0:
			fmt.Printf("%s owes you %s\n", name, net)
		case net < 0:
			fmt.Printf("you owe %s %s\n", name, net.Abs())
		default:
			fmt.Printf("%s: settled up\n", name)
		}
		if c.feed {
			printFeed(pos.Entries)
		}
	}
	return subcommands.ExitSuccess
}

func printFeed(entries []balance.Entry) {
	for _, e := range entries {
		fmt.Printf("  %-15s %-10s %s\n", e.Kind, e.TransactionID, e.Amount)
	}
}
