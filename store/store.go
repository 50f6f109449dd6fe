// Package store persists executions per account.
package store

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/etnz/optjournal"
)

// Store is a persistent list of executions per account. Executions are kept
// in the order they were written.
type Store interface {
	// Accounts lists the known accounts, sorted.
	Accounts(ctx context.Context) ([]string, error)
	// Load returns the executions of an account. An unknown account is empty.
	Load(ctx context.Context, account string) ([]optjournal.Execution, error)
	// Append adds executions at the end of an account.
	Append(ctx context.Context, account string, execs ...optjournal.Execution) error
	// Replace overwrites all the executions of an account.
	Replace(ctx context.Context, account string, execs []optjournal.Execution) error
	Close() error
}

// Drivers supported by Open.
const (
	JSONLDriver  = "jsonl"
	SQLiteDriver = "sqlite"
)

// Open opens the store of the given driver at path: a directory for the
// "jsonl" driver, a database file for the "sqlite" one.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case JSONLDriver, "":
		return NewJSONL(path)
	case SQLiteDriver:
		return NewSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// checkAccount rejects account names that cannot be stored safely.
func checkAccount(account string) error {
	switch {
	case account == "":
		return fmt.Errorf("account name is empty")
	case strings.HasPrefix(account, "/"), path.Clean(account) != account, strings.HasPrefix(account, ".."):
		return fmt.Errorf("invalid account name %q", account)
	}
	return nil
}
