// Package tracker composes the ledger and budget stores with the report
// calculations. Every query re-reads both stores.
package tracker

import (
	"fmt"
	"log/slog"

	"github.com/fintrack-dev/fintrack/internal/aggregate"
	"github.com/fintrack-dev/fintrack/internal/budget"
	"github.com/fintrack-dev/fintrack/internal/evaluate"
	"github.com/fintrack-dev/fintrack/internal/health"
	"github.com/fintrack-dev/fintrack/internal/ledger"
	"github.com/fintrack-dev/fintrack/internal/logging"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/money"
)

// Service provides the tracker operations.
type Service struct {
	ledger  ledger.Store
	budgets budget.Store
	log     *slog.Logger
	filter  aggregate.MonthFilter
}

// Option configures a Service.
type Option func(*Service)

// WithMonthFilter replaces the default prefix month filter.
func WithMonthFilter(f aggregate.MonthFilter) Option {
	return func(s *Service) {
		if f != nil {
			s.filter = f
		}
	}
}

// NewService creates a Service. A nil logger discards records.
func NewService(l ledger.Store, b budget.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		ledger:  l,
		budgets: b,
		log:     logging.Component(logger, logging.ComponentTracker),
		filter:  aggregate.FilterByMonth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTransaction validates t and appends it to the ledger. It returns the
// record as stored.
func (s *Service) AddTransaction(t model.Transaction) (model.Transaction, error) {
	stored, err := ledger.Prepare(t)
	if err != nil {
		return model.Transaction{}, err
	}
	if err := s.ledger.Append(stored); err != nil {
		return model.Transaction{}, fmt.Errorf("adding transaction: %w", err)
	}
	s.log.Debug("transaction added",
		logging.FieldOperation, logging.OpAdd,
		logging.FieldKind, stored.Kind.String(),
		logging.FieldCategory, stored.Category,
		logging.FieldAmount, stored.Amount.Minor(),
	)
	return stored, nil
}

// SetBudget creates or replaces the limit for category.
func (s *Service) SetBudget(category string, limit money.Money) error {
	if err := s.budgets.Set(category, limit); err != nil {
		return fmt.Errorf("setting budget: %w", err)
	}
	s.log.Debug("budget set",
		logging.FieldOperation, logging.OpSet,
		logging.FieldCategory, category,
		logging.FieldAmount, limit.Minor(),
	)
	return nil
}

// Budgets returns every budget limit by category.
func (s *Service) Budgets() (map[string]money.Money, error) {
	budgets, err := s.budgets.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading budgets: %w", err)
	}
	return budgets, nil
}

// Transactions returns every readable ledger record in insertion order,
// plus the lines that were skipped.
func (s *Service) Transactions() ([]model.Transaction, []ledger.ParseError, error) {
	txns, warnings, err := s.ledger.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("loading transactions: %w", err)
	}
	for _, w := range warnings {
		s.log.Warn("skipping malformed ledger line",
			logging.FieldOperation, logging.OpParse,
			logging.FieldLine, w.Line,
			logging.Err(w.Err),
		)
	}
	s.log.Debug("ledger loaded",
		logging.FieldOperation, logging.OpLoad,
		logging.FieldCount, len(txns),
	)
	return txns, warnings, nil
}

// MonthlyReport is the income/expense summary of one month.
type MonthlyReport struct {
	aggregate.MonthlySummary
	Warnings []ledger.ParseError
}

// MonthlyReport summarizes month.
func (s *Service) MonthlyReport(month model.MonthKey) (MonthlyReport, error) {
	txns, warnings, err := s.Transactions()
	if err != nil {
		return MonthlyReport{}, err
	}
	summary := aggregate.Summarize(txns, month, s.filter)
	s.log.Debug("monthly report",
		logging.FieldOperation, logging.OpReport,
		logging.FieldMonth, string(month),
		logging.FieldCount, summary.Transactions,
	)
	return MonthlyReport{
		MonthlySummary: summary,
		Warnings:       warnings,
	}, nil
}

// Analysis is the spending picture of one month.
type Analysis struct {
	Month        model.MonthKey
	Total        money.Money
	Breakdown    []aggregate.CategoryShare
	Top          []aggregate.CategoryAmount
	Days         int
	AverageDaily money.Money
	Warnings     []ledger.ParseError
}

// SpendingAnalysis breaks down the month's expenses. month must be a valid
// YYYY-MM key since the daily average needs its length.
func (s *Service) SpendingAnalysis(month model.MonthKey, topN int) (Analysis, error) {
	days, err := aggregate.DaysInMonth(month)
	if err != nil {
		return Analysis{}, fmt.Errorf("spending analysis: %w", err)
	}

	txns, warnings, err := s.Transactions()
	if err != nil {
		return Analysis{}, err
	}
	summary := aggregate.Summarize(txns, month, s.filter)

	avg, err := aggregate.AverageDaily(summary.Expense, month)
	if err != nil {
		return Analysis{}, err
	}

	s.log.Debug("spending analyzed",
		logging.FieldOperation, logging.OpAnalyze,
		logging.FieldMonth, month.String(),
		logging.FieldCount, summary.Transactions,
	)
	return Analysis{
		Month:        month,
		Total:        summary.Expense,
		Breakdown:    summary.Breakdown,
		Top:          aggregate.TopCategories(summary.Spend, topN),
		Days:         days,
		AverageDaily: avg,
		Warnings:     warnings,
	}, nil
}

// BudgetStatus is the month's spending evaluated against every budget.
type BudgetStatus struct {
	Month model.MonthKey
	evaluate.Report
	Warnings []ledger.ParseError
}

// BudgetStatus evaluates the month's expenses against the budgets.
func (s *Service) BudgetStatus(month model.MonthKey) (BudgetStatus, error) {
	txns, warnings, err := s.Transactions()
	if err != nil {
		return BudgetStatus{}, err
	}
	budgets, err := s.Budgets()
	if err != nil {
		return BudgetStatus{}, err
	}
	spend := aggregate.SumByCategory(s.filter(txns, month), model.KindExpense)
	return BudgetStatus{
		Month:    month,
		Report:   evaluate.Evaluate(spend, budgets),
		Warnings: warnings,
	}, nil
}

// HealthReport is the scored month.
type HealthReport struct {
	Month   model.MonthKey
	Income  money.Money
	Expense money.Money
	health.Result
	Warnings []ledger.ParseError
}

// Health scores month from its savings rate and budget adherence.
func (s *Service) Health(month model.MonthKey) (HealthReport, error) {
	txns, warnings, err := s.Transactions()
	if err != nil {
		return HealthReport{}, err
	}
	budgets, err := s.Budgets()
	if err != nil {
		return HealthReport{}, err
	}
	summary := aggregate.Summarize(txns, month, s.filter)
	return HealthReport{
		Month:    month,
		Income:   summary.Income,
		Expense:  summary.Expense,
		Result:   health.Score(summary.Income, summary.Expense, summary.Spend, budgets),
		Warnings: warnings,
	}, nil
}

// Overview is the dashboard: all-time totals, the current month's budget
// picture and the latest records.
type Overview struct {
	Month    model.MonthKey
	Income   money.Money
	Expense  money.Money
	Balance  money.Money
	Count    int
	Budget   evaluate.Report
	Recent   []model.Transaction
	Warnings []ledger.ParseError
}

// Overview gathers the dashboard for month with the last recent records.
func (s *Service) Overview(month model.MonthKey, recent int) (Overview, error) {
	txns, warnings, err := s.Transactions()
	if err != nil {
		return Overview{}, err
	}
	budgets, err := s.Budgets()
	if err != nil {
		return Overview{}, err
	}
	spend := aggregate.SumByCategory(s.filter(txns, month), model.KindExpense)
	return Overview{
		Month:    month,
		Income:   aggregate.TotalByKind(txns, model.KindIncome),
		Expense:  aggregate.TotalByKind(txns, model.KindExpense),
		Balance:  aggregate.Balance(txns),
		Count:    len(txns),
		Budget:   evaluate.Evaluate(spend, budgets),
		Recent:   ledger.Recent(txns, recent),
		Warnings: warnings,
	}, nil
}
