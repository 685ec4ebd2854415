package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/subcommands"

	"github.com/tallyhq/tally/internal/money"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/split"
)

// splitCmd holds the flags for the 'split' subcommand.
type splitCmd struct {
	method       string
	total        string
	participants string
	pinned       string
	changed      string
	value        string
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "apply one split-allocation edit and print the result" }
func (*splitCmd) Usage() string {
	return `tally split -total <amount> -participants <id,id,...> -changed <id> -value <text> [-method dynamic] [-pinned id=amount,...]

  Applies a single participant edit under the chosen allocation method and
  prints the resulting split map. Pinned entries model previously locked
  participants. Unparseable -value text counts as zero; an empty -value
  unlocks the changed participant.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", string(split.MethodDynamic), "Allocation method: equal, percentage or dynamic")
	f.StringVar(&c.total, "total", "", "Transaction total in major units, e.g. 30.00")
	f.StringVar(&c.participants, "participants", "", "Comma-separated participant ids (include 'me')")
	f.StringVar(&c.pinned, "pinned", "", "Previously locked shares as id=amount pairs, comma separated")
	f.StringVar(&c.changed, "changed", "", "Participant id being edited")
	f.StringVar(&c.value, "value", "", "Raw input text for the edited participant")
}

func (c *splitCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids := splitList(c.participants)
	if len(ids) == 0 || c.changed == "" {
		fmt.Fprintln(os.Stderr, "Error: -participants and -changed are required")
		return subcommands.ExitUsageError
	}

	state := split.State{}
	if c.pinned != "" {
		state.Shares = make(split.Shares)
		state.Locked = make(split.Locked)
		for _, pair := range splitList(c.pinned) {
			id, raw, ok := strings.Cut(pair, "=")
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: malformed -pinned entry %q\n", pair)
				return subcommands.ExitUsageError
			}
			state.Shares[id] = money.ParseLenient(raw)
			state.Locked[id] = true
		}
	}

	total := money.ParseLenient(c.total)
	next := service.NewLedger().Allocate(ctx, split.Method(c.method), ids, total, state, c.changed, c.value)

	switch split.Method(c.method) {
	case split.MethodEqual:
		fmt.Printf("divide %s evenly across %d participants\n", total, len(ids))
	case split.MethodPercentage:
		keys := make([]string, 0, len(next.Percents))
		for id := range next.Percents {
			keys = append(keys, id)
		}
		sort.Strings(keys)
		for _, id := range keys {
			fmt.Printf("%-10s %s%%\n", id, next.Percents[id])
		}
	default:
		for _, id := range ids {
			lock := " "
			if next.Locked[id] {
				lock = "*"
			}
			fmt.Printf("%s %-10s %s\n", lock, id, next.Shares[id])
		}
		fmt.Printf("  total      %s\n", next.Shares.Sum())
	}
	return subcommands.ExitSuccess
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
