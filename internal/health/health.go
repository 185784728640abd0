// Package health condenses a month into a 0-100 financial health score.
package health

import (
	"github.com/fintrack-dev/fintrack/internal/money"
)

const (
	// SavingsPoints is the weight of the savings rate component.
	SavingsPoints = 60.0
	// AdherencePoints is the weight of the budget adherence component.
	AdherencePoints = 40.0
	// TargetSavingsRate earns the full savings component.
	TargetSavingsRate = 0.2
)

// Tier is the interpretation band of a total score.
type Tier struct {
	Name           string
	MinScore       float64
	Interpretation string
	Recommendation string
}

// Tiers are ordered from best to worst; the first tier whose MinScore the
// total reaches applies.
var Tiers = []Tier{
	{
		Name:           "Excellent",
		MinScore:       80,
		Interpretation: "Excellent! You are managing your finances very well.",
		Recommendation: "Keep up the great habits. Consider allocating more to investments.",
	},
	{
		Name:           "Good",
		MinScore:       60,
		Interpretation: "Good! You are on the right track.",
		Recommendation: "Focus on increasing your savings rate or sticking closer to your budgets.",
	},
	{
		Name:           "Needs Improvement",
		MinScore:       40,
		Interpretation: "Needs Improvement. There are areas to work on.",
		Recommendation: "Create a stricter budget and try to increase your income or reduce expenses.",
	},
	{
		Name:           "Warning",
		MinScore:       0,
		Interpretation: "Warning! Your finances need immediate attention.",
		Recommendation: "Review your spending habits urgently. Focus on essential spending only.",
	},
}

// Result is a scored month.
type Result struct {
	SavingsRate   float64 // (income-expense)/income; 0 without income
	HasIncome     bool
	Savings       float64 // [0, SavingsPoints]
	Adherence     float64 // [0, AdherencePoints]
	Total         float64 // [0, 100]
	OnBudget      int
	BudgetedCount int
	Tier          Tier
}

// Score rates a month. income and expense are the month's totals, spend the
// expense per category and budgets the limits per category. Missing income
// or budgets only zero out their component; Score never fails.
func Score(income, expense money.Money, spend, budgets map[string]money.Money) Result {
	var r Result

	if income > 0 {
		r.HasIncome = true
		saved := income - expense
		r.SavingsRate = float64(saved) / float64(income)
		if saved*5 >= income {
			// At or above the target rate; decided on integers so 20%
			// exactly always earns full points.
			r.Savings = SavingsPoints
		} else {
			r.Savings = clamp(r.SavingsRate/TargetSavingsRate, 0, 1) * SavingsPoints
		}
	}

	r.BudgetedCount = len(budgets)
	if r.BudgetedCount > 0 {
		for category, limit := range budgets {
			if spend[category] <= limit {
				r.OnBudget++
			}
		}
		r.Adherence = float64(r.OnBudget) / float64(r.BudgetedCount) * AdherencePoints
	}

	r.Total = r.Savings + r.Adherence
	r.Tier = TierFor(r.Total)
	return r
}

// TierFor returns the tier a total falls into.
func TierFor(total float64) Tier {
	for _, t := range Tiers {
		if total >= t.MinScore {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
