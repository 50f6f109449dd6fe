// Package cmd implements the oj CLI application to keep an options trading journal.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/optjournal"
	"github.com/etnz/optjournal/store"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands() {
		c.Register(cmd.Command, cmd.Group)
	}
}

// GroupedCommand is a subcommand and the help group it belongs to.
type GroupedCommand struct {
	subcommands.Command
	Group string
}

// Commands returns all the oj subcommands.
func Commands() []GroupedCommand {
	return []GroupedCommand{
		{&importCmd{}, "journal"},
		{&exportCmd{}, "journal"},
		{&fmtCmd{}, "journal"},
		{&matchCmd{}, "reports"},
		{&positionsCmd{}, "reports"},
		{&statsCmd{}, "reports"},
		{&reconcileCmd{}, "reports"},
		{&reviewCmd{}, "reports"},
		{&topicCmd{}, "help"},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to the YAML configuration file. Defaults to $OJ_CONFIG or oj.yaml.")
	account    = flag.String("account", "", "Account to work on. Overrides the configuration.")
	verbose    = flag.Bool("v", false, "Log debug messages.")
)

// app is the environment of a command execution.
type app struct {
	cfg    *Config
	store  store.Store
	logger *zap.Logger
}

// openApp loads the configuration and opens the store.
func openApp(ctx context.Context) (*app, error) {
	path := *configFile
	if path == "" {
		path = os.Getenv("OJ_CONFIG")
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if *account != "" {
		cfg.Account = *account
	}
	logger, err := newLogger(cfg.Log.Level, cfg.Log.Format, *verbose)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open the journal: %w", err)
	}
	logger.Debug("journal opened",
		zap.String("driver", cfg.Store.Driver),
		zap.String("path", cfg.Store.Path),
		zap.String("account", cfg.Account),
	)
	return &app{cfg: cfg, store: s, logger: logger}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("could not close the journal", zap.Error(err))
	}
	a.logger.Sync()
}

// matcher returns the configured matcher.
func (a *app) matcher() optjournal.Matcher {
	mode, _ := optjournal.ParseMatchMode(a.cfg.Matching.Mode)
	return optjournal.Matcher{Mode: mode, Calculator: a.cfg.Calculator(), Logger: a.logger}
}

// load returns the executions of the current account.
func (a *app) load(ctx context.Context) ([]optjournal.Execution, error) {
	execs, err := a.store.Load(ctx, a.cfg.Account)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("executions loaded", zap.String("account", a.cfg.Account), zap.Int("count", len(execs)))
	return execs, nil
}

// run opens the app, runs f and reports its error the way all commands do.
func run(ctx context.Context, f func(*app) error) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer a.Close()
	if err := f(a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
