package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/activity"
	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/gitops"
)

// gitignore keeps lock files, local environment and the activity log out of
// the history.
const gitignore = "*.lock\n.env\nlogs/\n"

func newInitCommand(opts *globalOptions) *cobra.Command {
	var useGit bool
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new fintrack project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.dir
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := config.ResolveRoot(dir)
			if err != nil {
				return err
			}
			return runInit(cmd, absDir, currency, useGit)
		},
	}

	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and commit every change")
	cmd.Flags().StringVar(&currency, "currency", "", "currency symbol shown in reports (default Rs)")

	return cmd
}

func runInit(cmd *cobra.Command, dir, currency string, useGit bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	if currency != "" {
		cfg.Currency.Symbol = currency
	}
	cfg.Git.AutoCommit = useGit

	if err := os.MkdirAll(filepath.Join(dir, cfg.Storage.DataDir), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Empty data files, so both exist from the first commit on.
	for _, path := range []string{cfg.TransactionsPath(dir), cfg.BudgetsPath(dir)} {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}
	ignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(ignorePath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(ignorePath, []byte(gitignore), 0o644); err != nil {
			return fmt.Errorf("writing .gitignore: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if !useGit {
		if err := activity.Append(dir, initEntry("")); err != nil {
			return err
		}
		fmt.Fprintf(out, "Initialized fintrack project at %s\n", dir)
		return nil
	}

	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir, cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	paths := []string{config.FileName, ".gitignore", filepath.Join(cfg.Storage.DataDir, cfg.Storage.Transactions), filepath.Join(cfg.Storage.DataDir, cfg.Storage.Budgets)}
	hash, err := gitops.CommitFiles(dir, "init: fintrack project", author, paths...)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	if err := activity.Append(dir, initEntry(hash)); err != nil {
		return err
	}

	fmt.Fprintf(out, "Initialized fintrack project at %s (%s)\n", dir, hash)
	return nil
}

func initEntry(hash string) activity.Entry {
	return activity.Entry{
		Timestamp:  time.Now().UTC().Truncate(time.Second),
		Action:     "init",
		Details:    "fintrack project",
		CommitHash: hash,
	}
}
