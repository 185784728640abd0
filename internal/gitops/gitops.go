// Package gitops versions the data directory with the git binary.
package gitops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNothingToCommit is returned when the staged paths match HEAD.
var ErrNothingToCommit = errors.New("nothing to commit")

// Author identifies who records a commit.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init initializes a new git repository at dir. git's own output goes to out.
func Init(dir string, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// CommitFiles stages paths (relative to dir) and commits them as author.
// It returns the short commit hash, or ErrNothingToCommit when the paths
// are unchanged.
func CommitFiles(dir, message string, author Author, paths ...string) (string, error) {
	if len(paths) == 0 {
		return "", ErrNothingToCommit
	}

	addArgs := append([]string{"add", "--"}, paths...)
	if out, err := git(dir, author, addArgs...).CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	// Exit status 1 means the index differs from HEAD.
	diff := git(dir, author, append([]string{"diff", "--cached", "--quiet", "--"}, paths...)...)
	if err := diff.Run(); err == nil {
		return "", ErrNothingToCommit
	}

	commitArgs := append([]string{"commit", "-m", message, "--author", author.String(), "--"}, paths...)
	if out, err := git(dir, author, commitArgs...).CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	out, err := git(dir, author, "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// git builds a command in dir. The committer identity is set from author so
// commits work on machines without a global git identity.
func git(dir string, author Author, args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+author.Name,
		"GIT_COMMITTER_EMAIL="+author.Email,
	)
	return cmd
}
