package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/commands"
	"github.com/fintrack-dev/fintrack/internal/config"
)

type result struct {
	stdout string
	stderr string
}

func runFintrack(t *testing.T, args ...string) (result, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String()}, err
}

// mustRun runs fintrack against dir and fails the test on error.
func mustRun(t *testing.T, dir string, args ...string) result {
	t.Helper()
	res, err := runFintrack(t, append([]string{"--dir", dir}, args...)...)
	require.NoError(t, err, "stderr: %s", res.stderr)
	return res
}

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runFintrack(t, "init", dir)
	require.NoError(t, err)
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func ledgerPath(dir string) string {
	return filepath.Join(dir, "database", "transactions.txt")
}

func budgetPath(dir string) string {
	return filepath.Join(dir, "database", "budgets.txt")
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	res, err := runFintrack(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Initialized fintrack project")

	for _, p := range []string{"fintrack.yaml", ".gitignore", "database/transactions.txt", "database/budgets.txt"} {
		_, err := os.Stat(filepath.Join(dir, p))
		assert.NoError(t, err, "%s should exist", p)
	}
	assert.Empty(t, readFile(t, ledgerPath(dir)))

	cfg := readFile(t, filepath.Join(dir, "fintrack.yaml"))
	assert.Contains(t, cfg, "symbol: Rs")
	assert.Contains(t, cfg, "auto_commit: false")
}

func TestInit_Currency(t *testing.T) {
	dir := t.TempDir()
	_, err := runFintrack(t, "init", dir, "--currency", "EUR")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(dir, "fintrack.yaml")), "symbol: EUR")

	mustRun(t, dir, "add", "--type", "income", "--category", "Salary", "--amount", "1234.5", "--date", "2024-03-01")
	res := mustRun(t, dir, "list")
	assert.Contains(t, res.stdout, "EUR 1,234.50")
}

func TestInit_RefusesExistingProject(t *testing.T) {
	dir := newProject(t)
	_, err := runFintrack(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_Git(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	_, err := runFintrack(t, "init", dir, "--git")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")
	assert.Contains(t, readFile(t, filepath.Join(dir, "fintrack.yaml")), "auto_commit: true")

	mustRun(t, dir, "add", "-t", "expense", "-c", "Food", "-a", "10", "--date", "2024-03-05")
	mustRun(t, dir, "budget", "set", "Food", "500")

	log := exec.Command("git", "log", "--format=%s|%an <%ae>")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	history := string(out)
	assert.Contains(t, history, "budget: Food 500.00|fintrack <fintrack@localhost>")
	assert.Contains(t, history, "add: Expense Food 10.00")
	assert.Contains(t, history, "init: fintrack project")

	status := exec.Command("git", "status", "--porcelain")
	status.Dir = dir
	out, err = status.Output()
	require.NoError(t, err)
	assert.Empty(t, string(out), "working tree should be clean, lock files ignored")
}

func TestAdd_AppendsLine(t *testing.T) {
	dir := newProject(t)

	res := mustRun(t, dir, "add", "--type", "Expense", "--category", "Food", "--amount", "12.50", "--desc", "lunch, with team", "--date", "2024-03-05")
	assert.Contains(t, res.stdout, "Added Expense: Food Rs 12.50 on 2024-03-05")
	assert.Empty(t, res.stderr)

	mustRun(t, dir, "add", "-t", "income", "-c", "Salary", "-a", "500", "--date", "2024-03-01")

	assert.Equal(t,
		"2024-03-05,Expense,Food,1250,lunch  with team\n2024-03-01,Income,Salary,50000,No description\n",
		readFile(t, ledgerPath(dir)))
}

func TestAdd_Rejects(t *testing.T) {
	dir := newProject(t)

	tests := []struct {
		name string
		args []string
	}{
		{"zero amount", []string{"-t", "expense", "-c", "Food", "-a", "0"}},
		{"negative amount", []string{"-t", "expense", "-c", "Food", "-a", "-5"}},
		{"three decimals", []string{"-t", "expense", "-c", "Food", "-a", "1.005"}},
		{"bad kind", []string{"-t", "transfer", "-c", "Food", "-a", "5"}},
		{"bad date", []string{"-t", "expense", "-c", "Food", "-a", "5", "--date", "2024-02-30"}},
		{"comma in category", []string{"-t", "expense", "-c", "Food,Drink", "-a", "5"}},
		{"missing category", []string{"-t", "expense", "-a", "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runFintrack(t, append([]string{"--dir", dir, "add"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, readFile(t, ledgerPath(dir)), "rejected input must not touch the ledger")
}

func TestAdd_WarnsOnUnknownCategory(t *testing.T) {
	dir := newProject(t)

	res := mustRun(t, dir, "add", "-t", "expense", "-c", "Fod", "-a", "5", "--date", "2024-03-05")
	assert.Contains(t, res.stderr, `did you mean "Food"?`)

	res = mustRun(t, dir, "add", "-t", "expense", "-c", "Gym", "-a", "5", "--date", "2024-03-05")
	assert.Contains(t, res.stderr, `"Gym" is not a known Expense category`)

	assert.Contains(t, readFile(t, ledgerPath(dir)), ",Expense,Gym,500,")
}

func TestList(t *testing.T) {
	dir := newProject(t)

	res := mustRun(t, dir, "list")
	assert.Contains(t, res.stdout, "No transactions recorded.")

	mustRun(t, dir, "add", "-t", "income", "-c", "Salary", "-a", "5000", "--date", "2024-03-01")
	mustRun(t, dir, "add", "-t", "expense", "-c", "Food", "-a", "10", "-d", "groceries", "--date", "2024-04-02")

	res = mustRun(t, dir, "list")
	assert.Contains(t, res.stdout, "Salary")
	assert.Contains(t, res.stdout, "Rs 5,000.00")
	assert.Contains(t, res.stdout, "groceries")

	res = mustRun(t, dir, "list", "--month", "2024-04")
	assert.NotContains(t, res.stdout, "Salary")
	assert.Contains(t, res.stdout, "groceries")
}

func TestList_SkipsMalformedLines(t *testing.T) {
	dir := newProject(t)
	data := "2024-03-01,Income,Salary,500000,pay\ngarbage line\n2024-03-05,Expense,Food,1000,lunch\n"
	require.NoError(t, os.WriteFile(ledgerPath(dir), []byte(data), 0o644))

	res := mustRun(t, dir, "list")
	assert.Contains(t, res.stdout, "Salary")
	assert.Contains(t, res.stdout, "lunch")
	assert.Contains(t, res.stderr, "skipping malformed ledger line")
	assert.Contains(t, res.stderr, "line=2")
}

func TestBudget(t *testing.T) {
	dir := newProject(t)

	res := mustRun(t, dir, "budget", "list")
	assert.Contains(t, res.stdout, "No budgets set.")

	mustRun(t, dir, "budget", "set", "Transport", "200")
	res = mustRun(t, dir, "budget", "set", "Food", "500")
	assert.Contains(t, res.stdout, "Budget for Food set to Rs 500.00")
	mustRun(t, dir, "budget", "set", "Food", "750")

	assert.Equal(t, "Transport,20000\nFood,75000\n", readFile(t, budgetPath(dir)))

	res = mustRun(t, dir, "budget", "list")
	assert.Contains(t, res.stdout, "Rs 750.00")
	assert.Contains(t, res.stdout, "Rs 200.00")
	assert.NotContains(t, res.stdout, "Rs 500.00")

	_, err := runFintrack(t, "--dir", dir, "budget", "set", "Food", "-1")
	assert.Error(t, err)
	_, err = runFintrack(t, "--dir", dir, "budget", "set", "Food", "0")
	assert.Error(t, err)
	assert.Equal(t, "Transport,20000\nFood,75000\n", readFile(t, budgetPath(dir)))
}

func TestBudgetStatus(t *testing.T) {
	dir := newProject(t)
	mustRun(t, dir, "budget", "set", "Food", "50")
	mustRun(t, dir, "budget", "set", "Transport", "100")
	mustRun(t, dir, "add", "-t", "expense", "-c", "Food", "-a", "80", "--date", "2024-03-02")
	mustRun(t, dir, "add", "-t", "expense", "-c", "Transport", "-a", "70", "--date", "2024-03-03")
	mustRun(t, dir, "add", "-t", "expense", "-c", "Gift", "-a", "5", "--date", "2024-03-04")

	res := mustRun(t, dir, "budget", "status", "2024-03")
	out := res.stdout
	assert.Contains(t, out, "Budget status 2024-03")
	assert.Contains(t, out, "Over")
	assert.Contains(t, out, "Warning")
	assert.Contains(t, out, "No Budget")
	assert.Contains(t, out, "You are over budget in: Food.")

	res = mustRun(t, dir, "budget", "status", "2024-05")
	assert.Contains(t, res.stdout, "OK")
	assert.Contains(t, res.stdout, "within your overall budget")

	_, err := runFintrack(t, "--dir", dir, "budget", "status", "March")
	assert.Error(t, err)
}

func seedMarch(t *testing.T, dir string) {
	t.Helper()
	mustRun(t, dir, "add", "-t", "income", "-c", "Salary", "-a", "5000", "--date", "2024-03-01")
	mustRun(t, dir, "add", "-t", "expense", "-c", "Food", "-a", "600", "--date", "2024-03-05")
	mustRun(t, dir, "add", "-t", "expense", "-c", "Bills", "-a", "300", "--date", "2024-03-10")
	mustRun(t, dir, "add", "-t", "expense", "-c", "Transport", "-a", "100", "--date", "2024-03-11")
	mustRun(t, dir, "add", "-t", "expense", "-c", "Fun", "-a", "50", "--date", "2024-03-12")
	mustRun(t, dir, "add", "-t", "expense", "-c", "Food", "-a", "999", "--date", "2024-04-01")
}

func TestReport(t *testing.T) {
	dir := newProject(t)
	seedMarch(t, dir)

	res := mustRun(t, dir, "report", "2024-03")
	out := res.stdout
	assert.Contains(t, out, "Monthly report 2024-03")
	assert.Contains(t, out, "Rs 5,000.00")
	assert.Contains(t, out, "Rs 1,050.00")
	assert.Contains(t, out, "Rs 3,950.00")
	assert.Contains(t, out, "57.1%") // Food 600 of 1050
	assert.NotContains(t, out, "999")

	res = mustRun(t, dir, "report", "2023-01")
	assert.Contains(t, res.stdout, "No expenses this month.")
}

func TestAnalyze(t *testing.T) {
	dir := newProject(t)
	seedMarch(t, dir)

	res := mustRun(t, dir, "analyze", "2024-03")
	out := res.stdout
	assert.Contains(t, out, "Top 3 spending categories:")
	assert.Contains(t, out, "1. Food Rs 600.00")
	assert.Contains(t, out, "2. Bills Rs 300.00")
	assert.Contains(t, out, "3. Transport Rs 100.00")
	assert.Contains(t, out, "Rs 33.87 over 31 days") // 1050/31
	assert.Contains(t, out, "###########")

	res = mustRun(t, dir, "analyze", "2024-03", "--top", "1")
	assert.Contains(t, res.stdout, "Top 1 spending categories:")
	assert.NotContains(t, res.stdout, "2. Bills")
}

func TestHealth(t *testing.T) {
	dir := newProject(t)
	seedMarch(t, dir)
	mustRun(t, dir, "budget", "set", "Food", "500")
	mustRun(t, dir, "budget", "set", "Bills", "500")

	res := mustRun(t, dir, "health", "2024-03")
	out := res.stdout
	assert.Contains(t, out, "Savings rate: 79.0%")
	assert.Contains(t, out, "1 of 2 categories within budget")
	assert.Contains(t, out, "80.0 / 100 (Excellent)")

	res = mustRun(t, dir, "health", "2023-01")
	assert.Contains(t, res.stdout, "n/a (no income recorded)")
	assert.Contains(t, res.stdout, "0 / 60")
	assert.Contains(t, res.stdout, "40.0 / 100 (Needs Improvement)")
}

func TestOverview(t *testing.T) {
	dir := newProject(t)
	seedMarch(t, dir)

	res := mustRun(t, dir, "overview", "2024-04", "--recent", "2")
	out := res.stdout
	assert.Contains(t, out, "Rs 2,049.00") // all-time expense
	assert.Contains(t, out, "Rs 2,951.00") // balance
	assert.Contains(t, out, "Budgets 2024-04")
	assert.Contains(t, out, "Fun")
	assert.NotContains(t, out, "Bills")
}

func TestEnvDir(t *testing.T) {
	dir := newProject(t)
	t.Setenv("FINTRACK_DIR", dir)

	_, err := runFintrack(t, "add", "-t", "expense", "-c", "Food", "-a", "1", "--date", "2024-03-01")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, ledgerPath(dir)), "2024-03-01,Expense,Food,100,")
}

func TestHistory(t *testing.T) {
	dir := newProject(t)
	mustRun(t, dir, "add", "-t", "expense", "-c", "Food", "-a", "12.5", "--date", "2024-03-05")
	mustRun(t, dir, "budget", "set", "Food", "500")
	_, err := runFintrack(t, "--dir", dir, "budget", "set", "Food", "0")
	require.Error(t, err)

	res := mustRun(t, dir, "history")
	out := res.stdout
	assert.Contains(t, out, "init")
	assert.Contains(t, out, "Expense Food 12.50")
	assert.Contains(t, out, "Food 500.00")
	assert.NotContains(t, out, "Food 0.00", "failed changes are not logged")

	res = mustRun(t, dir, "history", "-n", "1")
	assert.NotContains(t, res.stdout, "Expense Food")
	assert.Contains(t, res.stdout, "Food 500.00")
}

func TestReport_StrictDates(t *testing.T) {
	dir := newProject(t)
	require.NoError(t, os.WriteFile(ledgerPath(dir),
		[]byte("2024-03-05,Expense,Food,60000,Lunch\n2024-03-32,Expense,Food,99900,Typo\n"), 0o644))

	res := mustRun(t, dir, "report", "2024-03")
	assert.Contains(t, res.stdout, "Rs 1,599.00")

	cfg, err := config.LoadOrDefault(dir)
	require.NoError(t, err)
	cfg.Reports.StrictDates = true
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))

	res = mustRun(t, dir, "report", "2024-03")
	assert.Contains(t, res.stdout, "Rs 600.00")
	assert.NotContains(t, res.stdout, "1,599")
}
