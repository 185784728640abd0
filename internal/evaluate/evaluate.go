// Package evaluate compares a month's spending against category budgets.
package evaluate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/money"
)

// Status classifies one category's spending against its budget.
type Status uint8

const (
	StatusOK Status = iota + 1
	StatusWarning
	StatusOver
	StatusNoBudget
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "Warning"
	case StatusOver:
		return "Over"
	case StatusNoBudget:
		return "No Budget"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// WarningPercent is the utilization at which a category turns Warning.
const WarningPercent = 70

const (
	recommendOver = "Review your spending in these areas to stay on track."
	recommendOK   = "Keep up the great work and continue monitoring your spending."
)

// Line is the budget status of a single category.
type Line struct {
	Category    string
	Budgeted    money.Money
	Spent       money.Money
	Remaining   money.Money // negative when overspent
	Utilization float64     // percent, display only
	Status      Status
}

// Report is the budget status of every category for a month.
type Report struct {
	Lines              []Line
	TotalBudget        money.Money
	TotalSpent         money.Money
	TotalRemaining     money.Money
	OverallUtilization float64
	Over               []string // categories with StatusOver, in Lines order
	Recommendation     string
}

// HasOver reports whether any category is over budget.
func (r Report) HasOver() bool { return len(r.Over) > 0 }

// Evaluate builds a report over every category that has a budget or spend.
// spend is the month's expense total per category; budgets maps categories
// to limits. Lines are sorted by category name.
func Evaluate(spend, budgets map[string]money.Money) Report {
	names := make(map[string]struct{}, len(spend)+len(budgets))
	for c := range spend {
		names[c] = struct{}{}
	}
	for c := range budgets {
		names[c] = struct{}{}
	}
	categories := make([]string, 0, len(names))
	for c := range names {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var r Report
	for _, c := range categories {
		line := EvaluateCategory(c, budgets[c], spend[c])
		r.Lines = append(r.Lines, line)
		r.TotalBudget = r.TotalBudget.Add(line.Budgeted)
		r.TotalSpent = r.TotalSpent.Add(line.Spent)
		if line.Status == StatusOver {
			r.Over = append(r.Over, c)
		}
	}
	r.TotalRemaining = r.TotalBudget.Sub(r.TotalSpent)
	r.OverallUtilization = money.Percent(r.TotalSpent, r.TotalBudget)

	if r.HasOver() {
		r.Recommendation = "You are over budget in: " + strings.Join(r.Over, ", ") + ". " + recommendOver
	} else {
		r.Recommendation = "You are within your overall budget. " + recommendOK
	}
	return r
}

// EvaluateCategory computes one line. Thresholds are checked on integer
// minor units so boundaries such as exactly 70% are exact.
func EvaluateCategory(category string, budgeted, spent money.Money) Line {
	line := Line{
		Category:  category,
		Budgeted:  budgeted,
		Spent:     spent,
		Remaining: budgeted.Sub(spent),
	}

	switch {
	case budgeted > 0:
		line.Utilization = money.Percent(spent, budgeted)
	case spent == 0:
		line.Utilization = 0
	default:
		line.Utilization = 100
	}

	b, s := budgeted.Minor(), spent.Minor()
	switch {
	case b == 0 && s > 0:
		line.Status = StatusNoBudget
	case b > 0 && s > b:
		line.Status = StatusOver
	case b > 0 && s*100 >= WarningPercent*b:
		line.Status = StatusWarning
	default:
		line.Status = StatusOK
	}
	return line
}
