package commands

import (
	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/aggregate"
	"github.com/fintrack-dev/fintrack/internal/model"
)

func newListCommand(opts *globalOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded transactions in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			txns, _, err := p.svc.Transactions()
			if err != nil {
				return err
			}
			if month != "" {
				m, err := model.ParseMonthKey(month)
				if err != nil {
					return err
				}
				txns = aggregate.FilterByMonth(txns, m)
			}

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			if len(txns) == 0 {
				out.line("No transactions recorded.")
				return nil
			}
			out.transactions(txns)
			out.field("Transactions", humanCount(len(txns)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "only show YYYY-MM")

	return cmd
}
