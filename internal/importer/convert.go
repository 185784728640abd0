package importer

import (
	"fmt"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/money"
)

// Rule assigns Category to rows whose description contains Match,
// ignoring case.
type Rule struct {
	Match    string `yaml:"match"`
	Category string `yaml:"category"`
}

// Categorizer picks a category for each imported row.
type Categorizer struct {
	Rules           []Rule
	IncomeFallback  string
	ExpenseFallback string
}

// Category returns the first matching rule's category, or the fallback for
// kind.
func (c Categorizer) Category(kind model.Kind, description string) string {
	desc := strings.ToLower(description)
	for _, r := range c.Rules {
		if r.Match != "" && strings.Contains(desc, strings.ToLower(r.Match)) {
			return r.Category
		}
	}
	if kind == model.KindIncome {
		return c.IncomeFallback
	}
	return c.ExpenseFallback
}

// Convert maps rows to transactions. Positive amounts become income and
// negative ones expenses; zero rows are skipped and counted.
func Convert(rows []Row, c Categorizer) ([]model.Transaction, int, error) {
	var txns []model.Transaction
	skipped := 0
	for i, row := range rows {
		if row.Amount.IsZero() {
			skipped++
			continue
		}
		kind := model.KindIncome
		if row.Amount.IsNegative() {
			kind = model.KindExpense
		}
		amount, err := money.FromDecimal(row.Amount.Abs())
		if err != nil {
			return nil, skipped, fmt.Errorf("row %d: %w", i+1, err)
		}
		txns = append(txns, model.Transaction{
			Date:        model.NewDate(row.Date),
			Kind:        kind,
			Category:    c.Category(kind, row.Description),
			Amount:      amount,
			Description: row.Description,
		})
	}
	return txns, skipped, nil
}
