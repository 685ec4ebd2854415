// Command tally runs the ledger reconciliation engine against a snapshot
// document: integrity checking, balance derivation, and split allocation.
//
// The engine itself has no transport or storage; this command is the
// external collaborator surface, feeding it a JSON snapshot and rendering
// the results.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/tallyhq/tally/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&checkCmd{}, "ledger")
	subcommands.Register(&balancesCmd{}, "ledger")
	subcommands.Register(&splitCmd{}, "ledger")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
