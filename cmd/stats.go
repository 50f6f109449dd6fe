package cmd

import (
	"context"
	"flag"

	"github.com/etnz/optjournal"
	"github.com/etnz/optjournal/renderer"
	"github.com/google/subcommands"
)

type statsCmd struct {
	perExecution bool
	marks        marksFlag
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show trade statistics: P&L, win rate" }
func (*statsCmd) Usage() string {
	return `oj stats [-mark SYMBOL:TYPE:STRIKE:EXPIRY=PRICE]... [-per-execution]

  Computes the realized P&L of closed trades, the P&L of open lots (marked to
  market when a mark is given) and the win rate.

  -per-execution treats every execution as a trade on its own, for journals
  where executions carry their own close date and close premium.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	c.marks = make(marksFlag)
	f.BoolVar(&c.perExecution, "per-execution", false, "Count each execution as a trade.")
	f.Var(c.marks, "mark", "Current price of an open contract. Repeatable.")
}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		trades, err := a.trades(ctx, c.perExecution, c.marks.Marks(a.cfg.Currency))
		if err != nil {
			return err
		}
		printMarkdown(renderer.StatsMarkdown(a.cfg.Account, optjournal.ComputeStats(trades)))
		return nil
	})
}

// trades returns the trades of the account: the matched closed trades and
// open lots, or one trade per execution.
func (a *app) trades(ctx context.Context, perExecution bool, marks optjournal.Marks) ([]optjournal.Trade, error) {
	execs, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	calc := a.cfg.Calculator()
	if perExecution {
		return calc.ExecutionTrades(execs), nil
	}
	r, err := a.matcher().Match(execs)
	if err != nil {
		return nil, err
	}
	return calc.Trades(r, marks), nil
}
