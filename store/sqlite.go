package store

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/etnz/optjournal"
	_ "github.com/glebarez/go-sqlite"
)

// SQLite stores executions in a SQLite database, one row per execution. The
// row payload is the execution's JSONL line.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path with WAL mode enabled.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS executions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account TEXT NOT NULL,
			symbol TEXT NOT NULL,
			filled TEXT NOT NULL,
			payload TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS executions_account ON executions(account, id);`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create executions table: %w", err)
		}
	}
	return &SQLite{db: db}, nil
}

// Accounts implements Store.
func (s *SQLite) Accounts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT account FROM executions ORDER BY account")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var account string
		if err := rows.Scan(&account); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Load implements Store.
func (s *SQLite) Load(ctx context.Context, account string) ([]optjournal.Execution, error) {
	if err := checkAccount(account); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT payload FROM executions WHERE account = ? ORDER BY id ASC", account)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}
	defer rows.Close()

	var b strings.Builder
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		b.WriteString(payload)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	execs, err := optjournal.DecodeExecutions(strings.NewReader(b.String()))
	if err != nil {
		return nil, fmt.Errorf("account %q: %w", account, err)
	}
	return execs, nil
}

// Append implements Store.
func (s *SQLite) Append(ctx context.Context, account string, execs ...optjournal.Execution) error {
	if err := checkAccount(account); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insert(ctx, tx, account, execs); err != nil {
		return err
	}
	return tx.Commit()
}

// Replace implements Store.
func (s *SQLite) Replace(ctx context.Context, account string, execs []optjournal.Execution) error {
	if err := checkAccount(account); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM executions WHERE account = ?", account); err != nil {
		return fmt.Errorf("failed to delete executions: %w", err)
	}
	if err := insert(ctx, tx, account, execs); err != nil {
		return err
	}
	return tx.Commit()
}

func insert(ctx context.Context, tx *sql.Tx, account string, execs []optjournal.Execution) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO executions (account, symbol, filled, payload) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var buf bytes.Buffer
	for _, e := range execs {
		buf.Reset()
		if err := optjournal.EncodeExecution(&buf, e); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, account, e.Symbol, e.Filled.UTC().Format("2006-01-02T15:04:05Z"), buf.String()); err != nil {
			return fmt.Errorf("failed to insert execution: %w", err)
		}
	}
	return nil
}

// Close implements Store.
func (s *SQLite) Close() error { return s.db.Close() }

var _ Store = (*SQLite)(nil)
