package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/optjournal"
	"github.com/etnz/optjournal/renderer"
	"github.com/google/subcommands"
)

type matchCmd struct {
	mode  string
	json  bool
	marks marksFlag
}

func (*matchCmd) Name() string { return "match" }
func (*matchCmd) Synopsis() string {
	return "match closing executions against open lots (FIFO)"
}
func (*matchCmd) Usage() string {
	return `oj match [-mode compat|strict] [-mark SYMBOL:TYPE:STRIKE:EXPIRY=PRICE]... [-json]

  Matches the account's closing executions against the oldest open lots of
  the same contract, and reports the closed trades, the open lots and the
  closing quantities that found no open lot.

  In strict mode a closing quantity without an open lot is an error.
  -json writes the closed trades as JSONL instead of the markdown report.

Usage Examples:
$ oj match
$ oj match -mark AAPL:CALL:150:2024-03-15=2.35
`
}

func (c *matchCmd) SetFlags(f *flag.FlagSet) {
	c.marks = make(marksFlag)
	f.StringVar(&c.mode, "mode", "", "Matching mode: compat or strict. Overrides the configuration.")
	f.BoolVar(&c.json, "json", false, "Write closed trades as JSONL.")
	f.Var(c.marks, "mark", "Current price of an open contract. Repeatable.")
}

func (c *matchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if c.mode != "" {
			a.cfg.Matching.Mode = c.mode
			if err := a.cfg.Validate(); err != nil {
				return err
			}
		}
		execs, err := a.load(ctx)
		if err != nil {
			return err
		}
		r, err := a.matcher().Match(execs)
		if err != nil {
			return err
		}
		if c.json {
			return optjournal.EncodeClosedTrades(os.Stdout, r.Closed)
		}
		printMarkdown(renderer.JournalMarkdown(a.cfg.Account, r, a.cfg.Calculator(), c.marks.Marks(a.cfg.Currency)))
		return nil
	})
}
