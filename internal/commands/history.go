package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/activity"
)

func newHistoryCommand(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the activity log of changes to this project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			entries, err := activity.Read(p.root)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			if len(entries) == 0 {
				out.line("No activity recorded.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Timestamp.Local().Format(time.DateTime), e.Action, e.Details, e.CommitHash})
			}
			out.table([]string{"When", "Action", "Details", "Commit"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show only the latest n entries (0 for all)")

	return cmd
}
