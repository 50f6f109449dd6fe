package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/etnz/optjournal"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	all bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the journal into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `oj fmt [-all]

  Validates and formats the journal. This command reads all executions,
  validates them, sorts them by fill time (keeping the journal order for
  executions filled at the same time), and writes them back in a canonical
  form. It fails without writing anything if an execution is invalid.
  By default it formats the current account, -all formats every account.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Format all accounts.")
}

func (c *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		accounts := []string{a.cfg.Account}
		if c.all {
			var err error
			if accounts, err = a.store.Accounts(ctx); err != nil {
				return err
			}
		}
		for _, account := range accounts {
			execs, err := a.store.Load(ctx, account)
			if err != nil {
				return err
			}
			if _, err := optjournal.Ingest(execs, a.cfg.Currency); err != nil {
				return fmt.Errorf("account %q: %w", account, err)
			}
			sort.SliceStable(execs, func(i, j int) bool { return execs[i].Filled.Before(execs[j].Filled) })
			if err := a.store.Replace(ctx, account, execs); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Formatted %d executions of %s.\n", len(execs), account)
		}
		return nil
	})
}
