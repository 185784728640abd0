package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/health"
)

func newReportCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report [YYYY-MM]",
		Short: "Monthly income, expense and category breakdown",
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
			r, err := p.svc.MonthlyReport(month)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			out.title("Monthly report " + month.String())
			out.field("Transactions", humanCount(r.Transactions))
			out.field("Income", incomeStyle.Render(out.money(r.Income)))
			out.field("Expense", expenseStyle.Render(out.money(r.Expense)))
			out.field("Net", out.signed(r.Net))

			if len(r.Breakdown) == 0 {
				out.line("No expenses this month.")
				return nil
			}
			rows := make([][]string, 0, len(r.Breakdown))
			for _, s := range r.Breakdown {
				rows = append(rows, []string{s.Category, out.money(s.Amount), percent(s.Percent)})
			}
			out.table([]string{"Category", "Spent", "Share"}, rows)
			return nil
		},
	}
}

func newAnalyzeCommand(opts *globalOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "analyze [YYYY-MM]",
		Short: "Spending breakdown, top categories and daily average",
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
			if !cmd.Flags().Changed("top") {
				top = p.cfg.Reports.TopCategories
			}
			a, err := p.svc.SpendingAnalysis(month, top)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			out.title("Spending analysis " + month.String())
			if len(a.Breakdown) == 0 {
				out.line("No expenses this month.")
				return nil
			}

			rows := make([][]string, 0, len(a.Breakdown))
			for _, s := range a.Breakdown {
				rows = append(rows, []string{s.Category, out.money(s.Amount), percent(s.Percent), bar(s.Percent)})
			}
			out.table([]string{"Category", "Spent", "Share", ""}, rows)

			out.line("Top %d spending categories:", len(a.Top))
			for i, c := range a.Top {
				out.line("  %d. %s %s", i+1, c.Category, out.money(c.Amount))
			}
			out.field("Total spent", out.money(a.Total))
			out.field("Average daily expense", fmt.Sprintf("%s over %d days", out.money(a.AverageDaily), a.Days))
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 3, "number of top categories to show (0 for all)")

	return cmd
}

func newHealthCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health [YYYY-MM]",
		Short: "Financial health score from savings rate and budget adherence",
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
			h, err := p.svc.Health(month)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			out.title("Financial health " + month.String())
			if h.HasIncome {
				out.field("Savings rate", percent(h.SavingsRate*100))
			} else {
				out.field("Savings rate", "n/a (no income recorded)")
			}
			out.field("Savings score", fmt.Sprintf("%.1f / %.0f", h.Savings, health.SavingsPoints))
			if h.BudgetedCount > 0 {
				out.field("Budget adherence", fmt.Sprintf("%d of %d categories within budget", h.OnBudget, h.BudgetedCount))
			} else {
				out.field("Budget adherence", "n/a (no budgets set)")
			}
			out.field("Adherence score", fmt.Sprintf("%.1f / %.0f", h.Adherence, health.AdherencePoints))
			out.field("Total", titleStyle.Render(fmt.Sprintf("%.1f / 100 (%s)", h.Total, h.Tier.Name)))
			out.line("")
			out.line("%s", h.Tier.Interpretation)
			out.line("%s", h.Tier.Recommendation)
			return nil
		},
	}
}

func newOverviewCommand(opts *globalOptions) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "overview [YYYY-MM]",
		Short: "All-time balance, the month's budgets and recent transactions",
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
			if !cmd.Flags().Changed("recent") {
				recent = p.cfg.Reports.Recent
			}
			o, err := p.svc.Overview(month, recent)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			out.title("Overview")
			out.field("Total income", incomeStyle.Render(out.money(o.Income)))
			out.field("Total expense", expenseStyle.Render(out.money(o.Expense)))
			out.field("Balance", out.signed(o.Balance))
			out.field("Transactions", humanCount(o.Count))

			out.line("")
			out.title("Budgets " + month.String())
			if len(o.Budget.Lines) == 0 {
				out.line("No budgets or expenses for this month.")
			} else {
				out.budgetReport(o.Budget)
			}

			out.line("")
			out.title("Recent transactions")
			if len(o.Recent) == 0 {
				out.line("No transactions recorded.")
				return nil
			}
			out.transactions(o.Recent)
			return nil
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 10, "number of recent transactions to show")

	return cmd
}
