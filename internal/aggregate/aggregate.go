// Package aggregate derives totals and breakdowns from a loaded set of
// transactions. Every function is pure: nothing here reads storage or keeps
// state between calls.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/money"
)

// CategoryAmount pairs a category with a summed amount.
type CategoryAmount struct {
	Category string
	Amount   money.Money
}

// CategoryShare is a CategoryAmount with its share of the total.
type CategoryShare struct {
	CategoryAmount
	Percent float64
}

// TotalByKind sums the amounts of every transaction of the given kind.
func TotalByKind(txns []model.Transaction, kind model.Kind) money.Money {
	var total money.Money
	for _, t := range txns {
		if t.Kind == kind {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Balance is total income minus total expense. It may be negative.
func Balance(txns []model.Transaction) money.Money {
	return TotalByKind(txns, model.KindIncome).Sub(TotalByKind(txns, model.KindExpense))
}

// SumByCategory sums amounts per category for one kind.
func SumByCategory(txns []model.Transaction, kind model.Kind) map[string]money.Money {
	sums := make(map[string]money.Money)
	for _, t := range txns {
		if t.Kind == kind {
			sums[t.Category] = sums[t.Category].Add(t.Amount)
		}
	}
	return sums
}

// TopCategories returns the n categories with the highest amounts, highest
// first. Equal amounts keep category name order. n <= 0 returns all.
func TopCategories(spend map[string]money.Money, n int) []CategoryAmount {
	names := make([]string, 0, len(spend))
	for name := range spend {
		names = append(names, name)
	}
	sort.Strings(names)

	ranked := make([]CategoryAmount, len(names))
	for i, name := range names {
		ranked[i] = CategoryAmount{Category: name, Amount: spend[name]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Breakdown ranks every category like TopCategories and adds its percentage
// of the combined total.
func Breakdown(spend map[string]money.Money) []CategoryShare {
	ranked := TopCategories(spend, 0)

	var total money.Money
	for _, c := range ranked {
		total = total.Add(c.Amount)
	}

	shares := make([]CategoryShare, len(ranked))
	for i, c := range ranked {
		shares[i] = CategoryShare{CategoryAmount: c, Percent: money.Percent(c.Amount, total)}
	}
	return shares
}

// DaysInMonth returns the Gregorian day count of month, leap years included.
func DaysInMonth(month model.MonthKey) (int, error) {
	return month.Days()
}

// AverageDaily spreads total evenly over every calendar day of month,
// rounded to the nearest minor unit.
func AverageDaily(total money.Money, month model.MonthKey) (money.Money, error) {
	days, err := DaysInMonth(month)
	if err != nil {
		return 0, fmt.Errorf("average daily: %w", err)
	}
	return total.DivRound(int64(days)), nil
}
