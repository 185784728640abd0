package categories

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" suggestion.
const maxSuggestDistance = 2

// DefaultExpense returns the built-in expense categories.
func DefaultExpense() []string {
	return []string{"Food", "Transport", "Shopping", "Bills", "Entertainment", "Health", "Other"}
}

// DefaultIncome returns the built-in income categories.
func DefaultIncome() []string {
	return []string{"Salary", "Freelance", "Business", "Investment", "Gift", "Other"}
}

// List is the set of known categories for each transaction kind.
type List struct {
	expense []string
	income  []string
}

// NewList builds a List. Empty inputs fall back to the defaults.
func NewList(expense, income []string) *List {
	if len(expense) == 0 {
		expense = DefaultExpense()
	}
	if len(income) == 0 {
		income = DefaultIncome()
	}
	return &List{expense: expense, income: income}
}

// For returns the known categories of a kind.
func (l *List) For(kind model.Kind) []string {
	if kind == model.KindIncome {
		return l.income
	}
	return l.expense
}

// Budgetable returns the categories a budget can be set for.
func (l *List) Budgetable() []string {
	return l.expense
}

// Known reports whether category is listed for kind (exact match).
func (l *List) Known(kind model.Kind, category string) bool {
	for _, c := range l.For(kind) {
		if c == category {
			return true
		}
	}
	return false
}

// Suggest returns the known category closest to input: a case-insensitive
// match first, then the smallest edit distance within maxSuggestDistance.
// It returns false when input is already known or nothing is close.
func Suggest(input string, known []string) (string, bool) {
	for _, c := range known {
		if c == input {
			return "", false
		}
	}

	best := ""
	bestDist := maxSuggestDistance + 1
	lower := strings.ToLower(input)
	for _, c := range known {
		if strings.ToLower(c) == lower {
			return c, true
		}
		if d := levenshtein.ComputeDistance(lower, strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
