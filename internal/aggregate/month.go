package aggregate

import (
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/money"
)

// MonthFilter selects the transactions that belong to a month.
type MonthFilter func(txns []model.Transaction, month model.MonthKey) []model.Transaction

// FilterByMonth keeps transactions whose date text starts with the month
// key. It does not parse dates: "2024-03-xx" still lands in "2024-03", and a
// shorter key such as "2024-0" matches several months.
func FilterByMonth(txns []model.Transaction, month model.MonthKey) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if t.Date.HasMonth(month) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByMonthStrict keeps only transactions with a parseable date in the
// month. Unparseable dates are dropped.
func FilterByMonthStrict(txns []model.Transaction, month model.MonthKey) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		d, err := t.Date.Time()
		if err != nil {
			continue
		}
		if model.MonthOf(d) == month {
			out = append(out, t)
		}
	}
	return out
}

// MonthlySummary is the income/expense picture for one month.
type MonthlySummary struct {
	Month        model.MonthKey
	Transactions int
	Income       money.Money
	Expense      money.Money
	Net          money.Money
	Spend        map[string]money.Money
	Breakdown    []CategoryShare
}

// Summarize filters txns to month with filter (FilterByMonth when nil) and
// totals the result.
func Summarize(txns []model.Transaction, month model.MonthKey, filter MonthFilter) MonthlySummary {
	if filter == nil {
		filter = FilterByMonth
	}
	monthly := filter(txns, month)

	income := TotalByKind(monthly, model.KindIncome)
	expense := TotalByKind(monthly, model.KindExpense)
	spend := SumByCategory(monthly, model.KindExpense)

	return MonthlySummary{
		Month:        month,
		Transactions: len(monthly),
		Income:       income,
		Expense:      expense,
		Net:          income.Sub(expense),
		Spend:        spend,
		Breakdown:    Breakdown(spend),
	}
}
