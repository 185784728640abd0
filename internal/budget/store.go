package budget

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/money"
)

// Store maps categories to monthly limits.
type Store interface {
	// Set creates or overwrites the limit for category.
	Set(category string, limit money.Money) error
	// LoadAll returns every stored limit keyed by category.
	LoadAll() (map[string]money.Money, error)
}

// FileStore keeps budgets in a plain text file, one "category,limit" per line.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the budget file location.
func (s *FileStore) Path() string { return s.path }

// Entries returns the stored budgets in file order. A missing file has no
// entries.
func (s *FileStore) Entries() ([]model.Budget, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening budgets %s: %w", s.path, err)
	}
	defer f.Close()

	budgets, err := ReadBudgets(f)
	if err != nil {
		return nil, fmt.Errorf("reading budgets %s: %w", s.path, err)
	}
	return budgets, nil
}

// LoadAll returns the budgets keyed by category.
func (s *FileStore) LoadAll() (map[string]money.Money, error) {
	budgets, err := s.Entries()
	if err != nil {
		return nil, err
	}
	return ToMap(budgets), nil
}

// Set rewrites the budget file with category's limit replaced or added.
//
// The read-modify-write runs under an advisory lock on "<path>.lock" so two
// processes cannot interleave and lose an update. The new content is written
// to a temp file in the same directory and renamed over the old one, so a
// failed write leaves the previous file intact.
func (s *FileStore) Set(category string, limit money.Money) error {
	b := model.Budget{Category: category, Limit: limit}
	if err := Validate(b); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating budgets dir: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking budgets: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	existing, err := s.Entries()
	if err != nil {
		return err
	}
	return replaceFile(s.path, Render(Upsert(existing, b)))
}

func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp budgets file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing budgets: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("syncing budgets: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing budgets: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("setting budgets permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing budgets: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store with the same validation as FileStore.
type MemoryStore struct {
	entries []model.Budget
}

// NewMemoryStore returns a store seeded with budgets.
func NewMemoryStore(budgets ...model.Budget) *MemoryStore {
	return &MemoryStore{entries: append([]model.Budget(nil), budgets...)}
}

// Set validates and upserts the limit.
func (m *MemoryStore) Set(category string, limit money.Money) error {
	b := model.Budget{Category: category, Limit: limit}
	if err := Validate(b); err != nil {
		return err
	}
	m.entries = Upsert(m.entries, b)
	return nil
}

// LoadAll returns the limits keyed by category.
func (m *MemoryStore) LoadAll() (map[string]money.Money, error) {
	return ToMap(m.entries), nil
}

// Entries returns the budgets in insertion order.
func (m *MemoryStore) Entries() ([]model.Budget, error) {
	return append([]model.Budget(nil), m.entries...), nil
}
