package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/snapshot"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	file string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "run the integrity checks over a ledger snapshot" }
func (*checkCmd) Usage() string {
	return `tally check [-f <snapshot>]

  Runs the full invariant battery and prints every finding. Exits non-zero
  when any finding has error severity.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", getEnv("TALLY_SNAPSHOT", "ledger.json"), "Path to the ledger snapshot (JSON)")
}

func (c *checkCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := snapshot.LoadFile(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	report, err := service.NewLedger().Check(ctx, snap.Transactions, snap.Participants)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error checking ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, f := range report.Findings {
		fmt.Printf("%-7s  %s\n", f.Severity, f.Message)
	}
	if report.IssueCount() == 0 {
		fmt.Println("ledger is consistent")
		return subcommands.ExitSuccess
	}

	fmt.Printf("%d issue(s) found\n", report.IssueCount())
	if report.HasErrors() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
