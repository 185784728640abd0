package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/importer"
	"github.com/fintrack-dev/fintrack/internal/ledger"
	"github.com/fintrack-dev/fintrack/internal/logging"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var format string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file.csv...]",
		Short: "Import bank statement CSVs as transactions",
		Long: `Import bank statement CSVs. Money in becomes income and money out
becomes an expense; categories come from the import rules in fintrack.yaml.

Without arguments every CSV in the project's import/ directory is imported
and then moved to import/processed/.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			if format == "" {
				format = p.cfg.Import.Format
			}
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q (known: %s)", format, strings.Join(importer.DefaultRegistry().Formats(), ", "))
			}

			scanned := len(args) == 0
			files := args
			if scanned {
				infos, err := importer.Scan(p.root)
				if err != nil {
					return err
				}
				for _, f := range infos {
					files = append(files, f.Path)
				}
			}

			out := newPrinter(cmd.OutOrStdout(), p.cfg.Currency.Symbol)
			if len(files) == 0 {
				out.line("Nothing to import in %s.", filepath.Join(p.root, importer.Dir))
				return nil
			}

			total := 0
			for _, path := range files {
				n, err := importFile(p, parser, path, dryRun)
				if err != nil {
					if total > 0 && !dryRun {
						p.record("import", fmt.Sprintf("%d transactions", total))
					}
					return fmt.Errorf("importing %s: %w", filepath.Base(path), err)
				}
				total += n
				verb := "Imported"
				if dryRun {
					verb = "Would import"
				}
				out.line("%s %s transactions from %s", verb, humanCount(n), filepath.Base(path))

				if scanned && !dryRun {
					if err := importer.MarkProcessed(p.root, filepath.Base(path)); err != nil {
						return err
					}
				}
			}
			if total > 0 && !dryRun {
				p.record("import", fmt.Sprintf("%d transactions", total))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "statement format: chase or simple (default from fintrack.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and categorize without writing")

	return cmd
}

// importFile parses one statement and appends its rows. Every row is
// validated before the first append, so a bad row leaves the ledger as it was.
func importFile(p *project, parser importer.Parser, path string, dryRun bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return 0, err
	}
	txns, skipped, err := importer.Convert(rows, p.cfg.Categorizer())
	if err != nil {
		return 0, err
	}
	if skipped > 0 {
		p.log.Info("skipped zero-amount rows",
			logging.FieldComponent, logging.ComponentCLI,
			logging.FieldPath, path,
			logging.FieldCount, skipped,
		)
	}
	for i, t := range txns {
		if _, err := ledger.Prepare(t); err != nil {
			return 0, fmt.Errorf("transaction %d (%s): %w", i+1, t.Date, err)
		}
	}
	if dryRun {
		return len(txns), nil
	}

	for i, t := range txns {
		if _, err := p.svc.AddTransaction(t); err != nil {
			return i, err
		}
	}
	return len(txns), nil
}
