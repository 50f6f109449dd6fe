package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/etnz/optjournal"
)

const ext = ".jsonl"

// JSONL stores each account in its own JSONL file under a directory. An
// account name is the file's relative path without the extension, so
// "john/ibkr" lives in <dir>/john/ibkr.jsonl.
type JSONL struct {
	dir string
}

// NewJSONL returns a store rooted in dir. The directory is created on first write.
func NewJSONL(dir string) (*JSONL, error) {
	if dir == "" {
		return nil, fmt.Errorf("missing journal directory")
	}
	return &JSONL{dir: dir}, nil
}

func (s *JSONL) file(account string) string {
	return filepath.Join(s.dir, filepath.FromSlash(account)+ext)
}

// Accounts implements Store.
func (s *JSONL) Accounts(_ context.Context) ([]string, error) {
	var accounts []string
	err := filepath.WalkDir(s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ext) {
			return nil
		}
		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			return fmt.Errorf("could not determine relative path for %q: %w", p, err)
		}
		accounts = append(accounts, filepath.ToSlash(strings.TrimSuffix(rel, ext)))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sort.Strings(accounts)
	return accounts, nil
}

// Load implements Store.
func (s *JSONL) Load(_ context.Context, account string) ([]optjournal.Execution, error) {
	if err := checkAccount(account); err != nil {
		return nil, err
	}
	filename := s.file(account)
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open journal file %q: %w", filename, err)
	}
	defer f.Close()

	execs, err := optjournal.DecodeExecutions(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal file %q: %w", filename, err)
	}
	return execs, nil
}

// Append implements Store.
func (s *JSONL) Append(_ context.Context, account string, execs ...optjournal.Execution) error {
	return s.write(account, os.O_APPEND|os.O_CREATE|os.O_WRONLY, execs)
}

// Replace implements Store.
func (s *JSONL) Replace(_ context.Context, account string, execs []optjournal.Execution) error {
	return s.write(account, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, execs)
}

func (s *JSONL) write(account string, flag int, execs []optjournal.Execution) error {
	if err := checkAccount(account); err != nil {
		return err
	}
	filename := s.file(account)
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("could not create directory for journal %q: %w", filename, err)
	}
	f, err := os.OpenFile(filename, flag, 0644)
	if err != nil {
		return fmt.Errorf("error opening journal file %q for writing: %w", filename, err)
	}
	if err := optjournal.EncodeExecutions(f, execs); err != nil {
		f.Close()
		return fmt.Errorf("error writing to journal file %q: %w", filename, err)
	}
	return f.Close()
}

// Close implements Store.
func (s *JSONL) Close() error { return nil }

var _ Store = (*JSONL)(nil)
