package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/optjournal/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type reviewCmd struct {
	marks marksFlag
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "review the journal with an AI assistant" }
func (*reviewCmd) Usage() string {
	return `oj review [-mark KEY=PRICE]... [<question>...]

  Starts an interactive review of the account's trades with Gemini. The
  question, when given, is asked first. Type 'bye' to exit.

  The Gemini client reads its API key from the GOOGLE_API_KEY environment
  variable, which can be set in a .env file.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	c.marks = make(marksFlag)
	f.Var(c.marks, "mark", "Current price of an open contract. Repeatable.")
}

func (c *reviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		execs, err := a.load(ctx)
		if err != nil {
			return err
		}

		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			return fmt.Errorf("initializing Gemini's client: %w", err)
		}

		model := a.cfg.Review.Model
		analyst := agent.NewAnalyst(model, &agent.Journal{
			Account:    a.cfg.Account,
			Executions: execs,
			Matcher:    a.matcher(),
			Marks:      c.marks.Marks(a.cfg.Currency),
		})
		coach := agent.NewCoach(model)
		for _, e := range []*agent.Expert{analyst, coach} {
			e.Logger = a.logger
		}

		session := agent.New(os.Stdout, os.Stdin, model, analyst, coach)
		session.Facilitator.Logger = a.logger
		return session.Run(ctx, client, strings.Join(f.Args(), " "))
	})
}
