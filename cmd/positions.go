package cmd

import (
	"context"
	"flag"

	"github.com/etnz/optjournal"
	"github.com/etnz/optjournal/renderer"
	"github.com/google/subcommands"
)

type positionsCmd struct {
	open bool
}

func (*positionsCmd) Name() string { return "positions" }
func (*positionsCmd) Synopsis() string {
	return "show the net position of every contract"
}
func (*positionsCmd) Usage() string {
	return `oj positions [-open]

  Aggregates the account's executions into one net position per contract,
  with its weighted average premium.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.open, "open", false, "Only show open positions.")
}

func (c *positionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		execs, err := a.load(ctx)
		if err != nil {
			return err
		}
		positions := optjournal.SortedPositions(a.cfg.Calculator().Aggregate(execs))
		if c.open {
			kept := positions[:0]
			for _, p := range positions {
				if !p.IsClosed() {
					kept = append(kept, p)
				}
			}
			positions = kept
		}
		printMarkdown(renderer.PositionsMarkdown(a.cfg.Account, positions))
		return nil
	})
}
