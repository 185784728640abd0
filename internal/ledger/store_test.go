package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/model"
)

func TestFileStore_AppendLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database", "transactions.txt")
	store := NewFileStore(path)

	want := []model.Transaction{
		txn("2024-03-01", model.KindExpense, "Food", 1000, "lunch"),
		txn("2024-03-05", model.KindIncome, "Salary", 500000, "pay"),
		txn("2024-04-02", model.KindExpense, "Bills", 129999, "rent share"),
	}
	for _, tx := range want {
		require.NoError(t, store.Append(tx))
	}

	got, warnings, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, want, got)
}

func TestFileStore_AppendStripsCommas(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "transactions.txt"))
	require.NoError(t, store.Append(txn("2024-03-01", model.KindExpense, "Food", 1000, "pizza, beer")))

	got, _, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pizza  beer", got[0].Description)
}

func TestFileStore_AppendNeverRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.txt")
	existing := "2024-01-01,Expense,Food,100,hand written\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	store := NewFileStore(path)
	require.NoError(t, store.Append(txn("2024-01-02", model.KindExpense, "Food", 200, "second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, existing+"2024-01-02,Expense,Food,200,second\n", string(data))
}

func TestFileStore_ValidationFailureWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.txt")
	store := NewFileStore(path)

	err := store.Append(txn("2024-03-01", model.KindExpense, "Food", 0, "free lunch"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file should be created for a rejected transaction")
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope", "transactions.txt"))
	got, warnings, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, warnings)
}

func TestFileStore_LoadReportsMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.txt")
	content := "2024-03-01,Expense,Food,1000,lunch\n" +
		"2024-03-02,Expense,Food\n" +
		"2024-03-05,Income,Salary,500000,pay\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, warnings, err := NewFileStore(path).LoadAll()
	require.NoError(t, err)
	assert.Len(t, got, 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Line)
}

func TestFileStore_AppendToUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the open fail.
	path := filepath.Join(dir, "transactions.txt")
	require.NoError(t, os.Mkdir(path, 0o755))

	err := NewFileStore(path).Append(txn("2024-03-01", model.KindExpense, "Food", 100, "x"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(txn("2024-03-01", model.KindExpense, "Food", 1000, "lunch"))
	require.NoError(t, store.Append(txn("2024-03-02", model.KindIncome, "Gift", 5000, "")))
	require.Error(t, store.Append(txn("2024-03-02", model.KindIncome, "", 5000, "")))

	got, warnings, err := store.LoadAll()
	require.NoError(t, err)
	assert.Nil(t, warnings)
	require.Len(t, got, 2)
	assert.Equal(t, DefaultDescription, got[1].Description)

	// Callers get a copy.
	got[0].Category = "changed"
	again, _, _ := store.LoadAll()
	assert.Equal(t, "Food", again[0].Category)
}

func TestRecent(t *testing.T) {
	txns := []model.Transaction{
		txn("2024-03-01", model.KindExpense, "A", 1, ""),
		txn("2024-03-02", model.KindExpense, "B", 1, ""),
		txn("2024-03-03", model.KindExpense, "C", 1, ""),
	}
	assert.Len(t, Recent(txns, 10), 3)
	got := Recent(txns, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Category)
	assert.Equal(t, "C", got[1].Category)
	assert.Nil(t, Recent(txns, 0))
}
