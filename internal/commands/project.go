package commands

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/activity"
	"github.com/fintrack-dev/fintrack/internal/aggregate"
	"github.com/fintrack-dev/fintrack/internal/budget"
	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/gitops"
	"github.com/fintrack-dev/fintrack/internal/ledger"
	"github.com/fintrack-dev/fintrack/internal/logging"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/tracker"
)

// project is an opened fintrack directory.
type project struct {
	root string
	cfg  *config.Config
	log  *slog.Logger
	svc  *tracker.Service
}

func openProject(cmd *cobra.Command, opts *globalOptions) (*project, error) {
	root, err := config.ResolveRoot(opts.dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(root)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), opts.verbose)
	logger.Debug("project opened",
		logging.FieldComponent, logging.ComponentCLI,
		logging.FieldPath, root,
	)

	var svcOpts []tracker.Option
	if cfg.Reports.StrictDates {
		svcOpts = append(svcOpts, tracker.WithMonthFilter(aggregate.FilterByMonthStrict))
	}
	svc := tracker.NewService(
		ledger.NewFileStore(cfg.TransactionsPath(root)),
		budget.NewFileStore(cfg.BudgetsPath(root)),
		logger,
		svcOpts...,
	)
	return &project{root: root, cfg: cfg, log: logger, svc: svc}, nil
}

// record logs a data change to the activity trail and, with auto_commit,
// commits the data files. Failures only warn: the data is already written.
func (p *project) record(action, details string) {
	hash := p.commit(action + ": " + details)
	entry := activity.Entry{
		Timestamp:  time.Now().UTC().Truncate(time.Second),
		Action:     action,
		Details:    details,
		CommitHash: hash,
	}
	if err := activity.Append(p.root, entry); err != nil {
		p.log.Warn("writing activity log failed", logging.FieldComponent, logging.ComponentCLI, logging.Err(err))
	}
}

// commit records the data files in git when auto_commit is on and returns
// the new commit hash, or "" when nothing was committed.
func (p *project) commit(message string) string {
	if !p.cfg.Git.AutoCommit || !gitops.IsRepo(p.root) {
		return ""
	}

	var paths []string
	for _, abs := range []string{p.cfg.TransactionsPath(p.root), p.cfg.BudgetsPath(p.root)} {
		if _, err := os.Stat(abs); err != nil {
			continue
		}
		rel, err := filepath.Rel(p.root, abs)
		if err != nil {
			continue
		}
		paths = append(paths, rel)
	}

	log := logging.Component(p.log, logging.ComponentGit)
	author := gitops.Author{Name: p.cfg.Git.AuthorName, Email: p.cfg.Git.AuthorEmail}
	hash, err := gitops.CommitFiles(p.root, message, author, paths...)
	switch {
	case errors.Is(err, gitops.ErrNothingToCommit):
		return ""
	case err != nil:
		log.Warn("auto-commit failed", logging.FieldOperation, logging.OpCommit, logging.Err(err))
		return ""
	}
	log.Debug("committed", logging.FieldOperation, logging.OpCommit, logging.FieldHash, hash)
	return hash
}

// monthArg returns the month named by args[0], or the current month.
func monthArg(args []string) (model.MonthKey, error) {
	if len(args) == 0 || args[0] == "" {
		return model.MonthOf(time.Now()), nil
	}
	return model.ParseMonthKey(args[0])
}
