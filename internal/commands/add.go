package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/categories"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/money"
)

func newAddCommand(opts *globalOptions) *cobra.Command {
	var kind, category, amount, desc, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense transaction",
		Example: `  fintrack add --type expense --category Food --amount 12.50 --desc "lunch"
  fintrack add --type income --category Salary --amount 50000 --date 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := model.ParseKindFold(kind)
			if err != nil {
				return err
			}
			amt, err := money.Parse(amount)
			if err != nil {
				return fmt.Errorf("amount: %w", err)
			}
			if date == "" {
				date = time.Now().Format(model.DateFormat)
			}

			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}

			stored, err := p.svc.AddTransaction(model.Transaction{
				Date:        model.Date(date),
				Kind:        k,
				Category:    category,
				Amount:      amt,
				Description: desc,
			})
			if err != nil {
				return err
			}
			warnUnknownCategory(cmd, p.cfg.CategoryList(), k, stored.Category)
			p.record("add", fmt.Sprintf("%s %s %s", stored.Kind, stored.Category, stored.Amount))

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			out.line("Added %s: %s %s on %s (%s)",
				stored.Kind, stored.Category, out.money(stored.Amount), stored.Date, stored.Description)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "transaction type: income or expense (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (required)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "positive amount, at most two decimals (required)")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// warnUnknownCategory prints a hint for categories outside the configured
// list. The category is still accepted.
func warnUnknownCategory(cmd *cobra.Command, list *categories.List, kind model.Kind, category string) {
	if category == "" || list.Known(kind, category) {
		return
	}
	if suggestion, ok := categories.Suggest(category, list.For(kind)); ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q is not a known %s category, did you mean %q?\n", category, kind, suggestion)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q is not a known %s category\n", category, kind)
}
