package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fintrack-dev/fintrack/internal/categories"
	"github.com/fintrack-dev/fintrack/internal/importer"
)

// FileName is the project config file, relative to the project root.
const FileName = "fintrack.yaml"

// EnvDir names the environment variable that selects the project root.
const EnvDir = "FINTRACK_DIR"

// Config represents the top-level fintrack.yaml configuration.
type Config struct {
	Currency   CurrencyConfig   `yaml:"currency"`
	Storage    StorageConfig    `yaml:"storage"`
	Categories CategoriesConfig `yaml:"categories"`
	Reports    ReportsConfig    `yaml:"reports"`
	Import     ImportConfig     `yaml:"import"`
	Git        GitConfig        `yaml:"git"`
}

// CurrencyConfig controls how amounts are displayed.
type CurrencyConfig struct {
	Symbol string `yaml:"symbol"`
}

// StorageConfig locates the ledger and budget files.
type StorageConfig struct {
	DataDir      string `yaml:"data_dir"` // relative to the project root
	Transactions string `yaml:"transactions"`
	Budgets      string `yaml:"budgets"`
}

// CategoriesConfig lists the categories offered for each kind.
type CategoriesConfig struct {
	Expense []string `yaml:"expense"`
	Income  []string `yaml:"income"`
}

// ReportsConfig holds report defaults.
type ReportsConfig struct {
	TopCategories int `yaml:"top_categories"`
	Recent        int `yaml:"recent"`

	// StrictDates drops transactions whose date is not a real calendar day
	// from monthly reports.
	StrictDates bool `yaml:"strict_dates"`
}

// ImportConfig controls how bank statements become transactions.
type ImportConfig struct {
	Format          string          `yaml:"format"`
	IncomeCategory  string          `yaml:"income_category"`
	ExpenseCategory string          `yaml:"expense_category"`
	Rules           []importer.Rule `yaml:"rules"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a fintrack.yaml file from disk. Fields missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads the config in root, or returns defaults when the
// project has no config file.
func LoadOrDefault(root string) (*Config, error) {
	cfg, err := Load(filepath.Join(root, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Currency: CurrencyConfig{
			Symbol: "Rs",
		},
		Storage: StorageConfig{
			DataDir:      "database",
			Transactions: "transactions.txt",
			Budgets:      "budgets.txt",
		},
		Categories: CategoriesConfig{
			Expense: categories.DefaultExpense(),
			Income:  categories.DefaultIncome(),
		},
		Reports: ReportsConfig{
			TopCategories: 3,
			Recent:        10,
		},
		Import: ImportConfig{
			Format:          "chase",
			IncomeCategory:  "Other",
			ExpenseCategory: "Other",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "fintrack",
			AuthorEmail: "fintrack@localhost",
		},
	}
}

// TransactionsPath returns the ledger file location under root.
func (c *Config) TransactionsPath(root string) string {
	return filepath.Join(root, c.Storage.DataDir, c.Storage.Transactions)
}

// BudgetsPath returns the budget file location under root.
func (c *Config) BudgetsPath(root string) string {
	return filepath.Join(root, c.Storage.DataDir, c.Storage.Budgets)
}

// CategoryList returns the configured category list.
func (c *Config) CategoryList() *categories.List {
	return categories.NewList(c.Categories.Expense, c.Categories.Income)
}

// Categorizer returns the import category rules.
func (c *Config) Categorizer() importer.Categorizer {
	return importer.Categorizer{
		Rules:           c.Import.Rules,
		IncomeFallback:  c.Import.IncomeCategory,
		ExpenseFallback: c.Import.ExpenseCategory,
	}
}

// ResolveRoot picks the project root: an explicit flag value wins, then
// FINTRACK_DIR (optionally set through a .env file in the working
// directory), then the working directory itself.
func ResolveRoot(flagValue string) (string, error) {
	if flagValue == "" {
		// A missing .env is normal.
		_ = godotenv.Load()
		flagValue = os.Getenv(EnvDir)
	}
	if flagValue == "" {
		flagValue = "."
	}
	root, err := filepath.Abs(flagValue)
	if err != nil {
		return "", fmt.Errorf("resolving project dir: %w", err)
	}
	return root, nil
}
