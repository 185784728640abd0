package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Store is an append-only collection of transactions.
type Store interface {
	// Append validates t and adds it after every existing record.
	Append(t model.Transaction) error
	// LoadAll returns every readable record in insertion order, plus one
	// ParseError per line that was skipped.
	LoadAll() ([]model.Transaction, []ParseError, error)
}

// FileStore keeps the ledger in a plain text file, one transaction per line.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file is created on the
// first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the ledger file location.
func (s *FileStore) Path() string { return s.path }

// Append writes t as a single line. The whole line goes out in one write on
// an O_APPEND descriptor, so a failure never leaves a half record behind
// the existing ones.
func (s *FileStore) Append(t model.Transaction) error {
	t, err := Prepare(t)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}

	if _, err := f.WriteString(MarshalTransaction(t)); err != nil {
		_ = f.Close()
		return fmt.Errorf("appending to ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w", err)
	}
	return nil
}

// LoadAll reads the whole ledger. A missing file is an empty ledger.
func (s *FileStore) LoadAll() ([]model.Transaction, []ParseError, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("opening ledger %s: %w", s.path, err)
	}
	defer f.Close()

	txns, warnings, err := ReadTransactions(f)
	if err != nil {
		return nil, nil, fmt.Errorf("reading ledger %s: %w", s.path, err)
	}
	return txns, warnings, nil
}

// MemoryStore is an in-memory Store with the same validation as FileStore.
type MemoryStore struct {
	txns []model.Transaction
}

// NewMemoryStore returns a store seeded with txns, which are taken as
// already stored and not re-validated.
func NewMemoryStore(txns ...model.Transaction) *MemoryStore {
	return &MemoryStore{txns: append([]model.Transaction(nil), txns...)}
}

// Append validates and records t.
func (m *MemoryStore) Append(t model.Transaction) error {
	t, err := Prepare(t)
	if err != nil {
		return err
	}
	m.txns = append(m.txns, t)
	return nil
}

// LoadAll returns a copy of the stored records.
func (m *MemoryStore) LoadAll() ([]model.Transaction, []ParseError, error) {
	return append([]model.Transaction(nil), m.txns...), nil, nil
}

// Recent returns the last n transactions, oldest first.
func Recent(txns []model.Transaction, n int) []model.Transaction {
	if n <= 0 {
		return nil
	}
	if len(txns) <= n {
		return txns
	}
	return txns[len(txns)-n:]
}
