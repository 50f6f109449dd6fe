package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/optjournal"
	"github.com/google/subcommands"
)

type exportCmd struct {
	format string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the account's executions on stdout" }
func (*exportCmd) Usage() string {
	return `oj export [-format csv|jsonl]

  Writes the executions of the account on stdout, in journal order.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "Output format: csv or jsonl.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		execs, err := a.load(ctx)
		if err != nil {
			return err
		}
		switch c.format {
		case "csv":
			return optjournal.EncodeExecutionsCSV(os.Stdout, execs)
		case "jsonl":
			return optjournal.EncodeExecutions(os.Stdout, execs)
		}
		return fmt.Errorf("unknown format %q", c.format)
	})
}
