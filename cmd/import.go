package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/optjournal"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type importCmd struct {
	format string
	dryRun bool
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "import executions from CSV or JSONL files into the journal"
}
func (*importCmd) Usage() string {
	return `oj import [-format csv|jsonl] [-n] <file>...

  Reads executions from files, validates them and appends the valid ones to
  the account's journal. Invalid executions are reported and skipped.
  The format is guessed from the file extension unless -format is given.

Usage Examples:
$ oj import fills.csv
$ oj -account ibkr import -format jsonl export.txt
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Input format: csv or jsonl. Guessed from the extension by default.")
	f.BoolVar(&c.dryRun, "n", false, "Validate only, do not write to the journal.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing file to import")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(a *app) error {
		var all []optjournal.Execution
		for _, name := range f.Args() {
			execs, err := readExecutions(name, c.format)
			if err != nil {
				return err
			}
			accepted, err := optjournal.Ingest(execs, a.cfg.Currency)
			if err != nil {
				a.logger.Warn("invalid executions skipped", zap.String("file", name), zap.Error(err))
				fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", name, err)
			}
			all = append(all, accepted...)
		}
		if c.dryRun {
			fmt.Printf("%d valid executions\n", len(all))
			return nil
		}
		if err := a.store.Append(ctx, a.cfg.Account, all...); err != nil {
			return err
		}
		fmt.Printf("Imported %d executions into %s\n", len(all), a.cfg.Account)
		return nil
	})
}

// readExecutions decodes a file of executions in the given format, or the
// format of its extension.
func readExecutions(name, format string) ([]optjournal.Execution, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	}
	r, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var execs []optjournal.Execution
	switch format {
	case "csv":
		execs, err = optjournal.DecodeExecutionsCSV(r)
	case "jsonl", "json":
		execs, err = optjournal.DecodeExecutions(r)
	default:
		return nil, fmt.Errorf("unknown format %q for %s, use -format", format, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return execs, nil
}
