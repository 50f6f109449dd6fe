package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/optjournal"
	"github.com/etnz/optjournal/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type reconcileCmd struct {
	statement    string
	realized     string
	markToMarket string
	perExecution bool
	marks        marksFlag
}

func (*reconcileCmd) Name() string { return "reconcile" }
func (*reconcileCmd) Synopsis() string {
	return "scale the journal P&L to a broker statement's totals"
}
func (*reconcileCmd) Usage() string {
	return `oj reconcile (-statement <file.json> | -realized <amount> [-mtm <amount>])

  Compares the realized and open P&L computed from the journal with the totals
  reported by the broker, and reports for every trade the P&L scaled to the
  broker's totals.

  The totals are either given on the command line or extracted from a JSON
  statement summary with the JSONPath expressions of the broker section of
  the configuration.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	c.marks = make(marksFlag)
	f.StringVar(&c.statement, "statement", "", "JSON statement summary to read the totals from.")
	f.StringVar(&c.realized, "realized", "", "Realized total reported by the broker.")
	f.StringVar(&c.markToMarket, "mtm", "", "Mark to market total reported by the broker.")
	f.BoolVar(&c.perExecution, "per-execution", false, "Count each execution as a trade.")
	f.Var(c.marks, "mark", "Current price of an open contract. Repeatable.")
}

func (c *reconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.statement == "") == (c.realized == "") {
		fmt.Fprintln(os.Stderr, "Error: give either -statement or -realized")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(a *app) error {
		totals, err := c.totals(a.cfg)
		if err != nil {
			return err
		}
		trades, err := a.trades(ctx, c.perExecution, c.marks.Marks(a.cfg.Currency))
		if err != nil {
			return err
		}
		stats := optjournal.ComputeStats(trades)
		factors := optjournal.ComputeFactors(stats, totals)
		a.logger.Debug("reconciliation factors",
			zap.Stringer("realized", factors.Realized),
			zap.Stringer("unrealized", factors.Unrealized),
		)
		reconciled := optjournal.Reconcile(trades, stats, totals)
		printMarkdown(renderer.ReconciliationMarkdown(a.cfg.Account, reconciled, stats, totals))
		return nil
	})
}

// totals reads the broker totals from the statement or the flags.
func (c *reconcileCmd) totals(cfg *Config) (optjournal.BrokerTotals, error) {
	if c.statement != "" {
		r, err := os.Open(c.statement)
		if err != nil {
			return optjournal.BrokerTotals{}, err
		}
		defer r.Close()
		return optjournal.DecodeBrokerTotals(r, cfg.BrokerPaths(), cfg.Currency)
	}

	realized, err := decimal.NewFromString(c.realized)
	if err != nil {
		return optjournal.BrokerTotals{}, fmt.Errorf("invalid realized total %q: %w", c.realized, err)
	}
	mtm := decimal.Zero
	if c.markToMarket != "" {
		if mtm, err = decimal.NewFromString(c.markToMarket); err != nil {
			return optjournal.BrokerTotals{}, fmt.Errorf("invalid mark to market total %q: %w", c.markToMarket, err)
		}
	}
	return optjournal.BrokerTotals{
		RealizedTotal:     optjournal.M(realized, cfg.Currency),
		MarkToMarketTotal: optjournal.M(mtm, cfg.Currency),
	}, nil
}
