package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chored-dev/chored/internal/ctxutil"
	chorederrors "github.com/chored-dev/chored/internal/errors"
)

// CLIRunner implements Runner using the git CLI.
type CLIRunner struct {
	workDir string // Working directory for git commands
}

// NewRunner creates a new CLIRunner for the given working directory.
// Returns an error if the directory is not a git repository.
func NewRunner(ctx context.Context, workDir string) (*CLIRunner, error) {
	if workDir == "" {
		return nil, fmt.Errorf("work directory cannot be empty: %w", chorederrors.ErrEmptyValue)
	}

	r := &CLIRunner{workDir: workDir}

	if _, err := r.runGitCommand(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("%w: %w", chorederrors.ErrNotGitRepo, err)
	}

	return r, nil
}

// Status returns the current working tree status.
func (r *CLIRunner) Status(ctx context.Context) (*Status, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	output, err := r.runGitCommand(ctx, "status", "--porcelain", "-uall", "--branch")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	return parseGitStatus(output), nil
}

// IsDirty reports whether the working tree has staged, unstaged or untracked changes.
func (r *CLIRunner) IsDirty(ctx context.Context) (bool, error) {
	status, err := r.Status(ctx)
	if err != nil {
		return false, err
	}
	return !status.IsClean(), nil
}

// RequireClean returns ErrWorktreeDirty listing the changed paths when the tree is dirty.
func (r *CLIRunner) RequireClean(ctx context.Context) error {
	status, err := r.Status(ctx)
	if err != nil {
		return err
	}
	if status.IsClean() {
		return nil
	}
	return fmt.Errorf("%w: %s", chorederrors.ErrWorktreeDirty, strings.Join(status.Paths(), ", "))
}

// CommitAll stages all changes and commits them.
func (r *CLIRunner) CommitAll(ctx context.Context, message string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if message == "" {
		return fmt.Errorf("commit message cannot be empty: %w", chorederrors.ErrEmptyValue)
	}

	if _, err := r.runGitCommand(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}

	// --cleanup=strip removes trailing whitespace and surrounding blank lines
	if _, err := r.runGitCommand(ctx, "commit", "-m", message, "--cleanup=strip"); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// CheckoutBranch checks out branch, keeping working tree changes.
//
// With a base, branch is created or reset to base (git checkout -B), so an
// earlier branch of the same name is overwritten. Without a base, an existing
// branch is checked out as it is and a missing one is created at HEAD; no
// branch is ever moved.
func (r *CLIRunner) CheckoutBranch(ctx context.Context, branch, base string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if branch == "" {
		return fmt.Errorf("branch name cannot be empty: %w", chorederrors.ErrEmptyValue)
	}

	var args []string
	switch {
	case base != "":
		args = []string{"checkout", "-B", branch, base}
	case r.branchExists(ctx, branch):
		args = []string{"checkout", branch}
	default:
		args = []string{"checkout", "-b", branch}
	}

	if _, err := r.runGitCommand(ctx, args...); err != nil {
		return fmt.Errorf("failed to check out branch '%s': %w", branch, err)
	}

	return nil
}

// branchExists reports whether a local branch named branch exists.
func (r *CLIRunner) branchExists(ctx context.Context, branch string) bool {
	_, err := r.runGitCommand(ctx, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// Push pushes branch to remote, setting the upstream tracking reference.
func (r *CLIRunner) Push(ctx context.Context, remote, branch string, force bool) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if remote == "" || branch == "" {
		return fmt.Errorf("remote and branch are required: %w", chorederrors.ErrEmptyValue)
	}

	args := []string{"push", "--set-upstream"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, remote, branch)

	if _, err := r.runGitCommand(ctx, args...); err != nil {
		return fmt.Errorf("failed to push: %w", withErrorClass(err))
	}

	return nil
}

// GitDir returns the absolute path of the git directory.
func (r *CLIRunner) GitDir(ctx context.Context) (string, error) {
	output, err := r.runGitCommand(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to locate git dir: %w", err)
	}
	if filepath.IsAbs(output) {
		return output, nil
	}
	return filepath.Abs(filepath.Join(r.workDir, output))
}

// runGitCommand executes a git command in the runner's workDir.
func (r *CLIRunner) runGitCommand(ctx context.Context, args ...string) (string, error) {
	return RunCommand(ctx, r.workDir, args...)
}

// parseGitStatus parses git status --porcelain --branch output.
func parseGitStatus(output string) *Status {
	status := &Status{
		Staged:    []FileChange{},
		Unstaged:  []FileChange{},
		Untracked: []string{},
	}

	for _, line := range strings.Split(output, "\n") {
		if len(line) < 2 {
			continue
		}

		if strings.HasPrefix(line, "## ") {
			parseBranchLine(line, status)
			continue
		}

		// XY PATH or XY ORIG -> PATH
		if len(line) < 4 {
			continue
		}
		indexStatus := line[0]
		workTreeStatus := line[1]
		path := strings.TrimSpace(line[3:])

		var oldPath string
		if strings.Contains(path, " -> ") {
			parts := strings.SplitN(path, " -> ", 2)
			oldPath = parts[0]
			path = parts[1]
		}

		if indexStatus == '?' && workTreeStatus == '?' {
			status.Untracked = append(status.Untracked, path)
			continue
		}

		if indexStatus != ' ' && indexStatus != '?' {
			status.Staged = append(status.Staged, FileChange{
				Path:    path,
				Status:  ChangeType(string(indexStatus)),
				OldPath: oldPath,
			})
		}

		if workTreeStatus != ' ' && workTreeStatus != '?' {
			status.Unstaged = append(status.Unstaged, FileChange{
				Path:    path,
				Status:  ChangeType(string(workTreeStatus)),
				OldPath: oldPath,
			})
		}
	}

	return status
}

// parseBranchLine parses "## branch...origin/branch [ahead N, behind M]",
// keeping only the branch name.
func parseBranchLine(line string, status *Status) {
	line = strings.TrimPrefix(line, "## ")
	branch, _, _ := strings.Cut(line, "...")
	status.Branch = branch
}
