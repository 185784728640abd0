package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/money"
)

func newBudgetCommand(opts *globalOptions) *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly category budgets",
	}
	budgetCmd.AddCommand(
		newBudgetSetCommand(opts),
		newBudgetListCommand(opts),
		newBudgetStatusCommand(opts),
	)
	return budgetCmd
}

func newBudgetSetCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "set <category> <amount>",
		Short:   "Create or replace the monthly limit for a category",
		Example: "  fintrack budget set Food 5000",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			limit, err := money.Parse(args[1])
			if err != nil {
				return fmt.Errorf("amount: %w", err)
			}

			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			if err := p.svc.SetBudget(category, limit); err != nil {
				return err
			}
			warnUnknownCategory(cmd, p.cfg.CategoryList(), model.KindExpense, category)
			p.record("budget", fmt.Sprintf("%s %s", category, limit))

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			out.line("Budget for %s set to %s", category, out.money(limit))
			return nil
		},
	}
}

func newBudgetListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every budget limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			budgets, err := p.svc.Budgets()
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			if len(budgets) == 0 {
				out.line("No budgets set.")
				return nil
			}

			names := make([]string, 0, len(budgets))
			for c := range budgets {
				names = append(names, c)
			}
			sort.Strings(names)

			rows := make([][]string, 0, len(names))
			limits := make([]money.Money, 0, len(names))
			for _, c := range names {
				rows = append(rows, []string{c, out.money(budgets[c])})
				limits = append(limits, budgets[c])
			}
			out.table([]string{"Category", "Monthly limit"}, rows)
			out.field("Total", out.money(money.Sum(limits...)))
			return nil
		},
	}
}

func newBudgetStatusCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status [YYYY-MM]",
		Short: "Compare a month's spending with the budgets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := monthArg(args)
			if err != nil {
				return err
			}
			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			status, err := p.svc.BudgetStatus(month)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			out.title("Budget status " + month.String())
			if len(status.Lines) == 0 {
				out.line("No budgets or expenses for this month.")
				return nil
			}
			out.budgetReport(status.Report)
			out.line("")
			out.line("%s", status.Recommendation)
			return nil
		},
	}
}
