package git

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chored-dev/chored/internal/ctxutil"
	chorederrors "github.com/chored-dev/chored/internal/errors"
)

// PRRequest describes the pull request the self-update loop wants open.
type PRRequest struct {
	// Head is the branch carrying the changes (required).
	Head string
	// Base is the target branch (required).
	Base string
	// Title is the PR title (required).
	Title string
	// Body is the PR description (required).
	Body string
	// Token is exported to gh as GH_TOKEN when set.
	Token string
}

// PRResult contains the outcome of CreateOrUpdatePR.
type PRResult struct {
	Number int
	URL    string
	// Created is false when an already open PR was edited.
	Created bool
}

// PullRequests opens or refreshes a pull request for a head branch.
type PullRequests interface {
	CreateOrUpdatePR(ctx context.Context, req PRRequest) (*PRResult, error)
}

// CLIGitHubRunner implements PullRequests using the gh CLI.
type CLIGitHubRunner struct {
	workDir string
	logger  zerolog.Logger
	cmdExec CommandExecutor
}

// CommandExecutor executes shell commands. Used for testing.
type CommandExecutor interface {
	// Execute runs a command with extra environment entries and returns its stdout.
	Execute(ctx context.Context, workDir string, env []string, name string, args ...string) ([]byte, error)
}

// CLIGitHubRunnerOption configures a CLIGitHubRunner.
type CLIGitHubRunnerOption func(*CLIGitHubRunner)

// NewCLIGitHubRunner creates a CLIGitHubRunner with the given options.
func NewCLIGitHubRunner(workDir string, opts ...CLIGitHubRunnerOption) *CLIGitHubRunner {
	r := &CLIGitHubRunner{
		workDir: workDir,
		logger:  zerolog.Nop(),
		cmdExec: &defaultCommandExecutor{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithGHLogger sets the logger for GitHub operations.
func WithGHLogger(logger zerolog.Logger) CLIGitHubRunnerOption {
	return func(r *CLIGitHubRunner) {
		r.logger = logger
	}
}

// WithGHCommandExecutor sets a custom command executor (for testing).
func WithGHCommandExecutor(exec CommandExecutor) CLIGitHubRunnerOption {
	return func(r *CLIGitHubRunner) {
		r.cmdExec = exec
	}
}

// ghPRListEntry is one element of `gh pr list --json number,url`.
type ghPRListEntry struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// CreateOrUpdatePR edits the open PR whose head is req.Head, or creates one.
// No retries are attempted.
func (r *CLIGitHubRunner) CreateOrUpdatePR(ctx context.Context, req PRRequest) (*PRResult, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	if err := validatePRRequest(req); err != nil {
		return nil, err
	}

	var env []string
	if req.Token != "" {
		env = append(env, "GH_TOKEN="+req.Token)
	}

	existing, err := r.findOpenPR(ctx, env, req.Head)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		args := []string{
			"pr", "edit", strconv.Itoa(existing.Number),
			"--title", req.Title,
			"--body", req.Body,
			"--base", req.Base,
		}
		if _, err := r.gh(ctx, env, args...); err != nil {
			return nil, fmt.Errorf("failed to edit PR #%d: %w", existing.Number, err)
		}
		r.logger.Info().
			Int("pr_number", existing.Number).
			Str("pr_url", existing.URL).
			Msg("updated existing pull request")
		return &PRResult{Number: existing.Number, URL: existing.URL}, nil
	}

	output, err := r.gh(ctx, env,
		"pr", "create",
		"--title", req.Title,
		"--body", req.Body,
		"--base", req.Base,
		"--head", req.Head,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create PR: %w", err)
	}

	url, number := parsePRCreateOutput(string(output))
	if url == "" {
		return nil, fmt.Errorf("failed to parse PR URL from gh output [%s]: %w", strings.TrimSpace(string(output)), chorederrors.ErrGitHubOperation)
	}

	r.logger.Info().
		Int("pr_number", number).
		Str("pr_url", url).
		Msg("created pull request")

	return &PRResult{Number: number, URL: url, Created: true}, nil
}

func (r *CLIGitHubRunner) findOpenPR(ctx context.Context, env []string, head string) (*ghPRListEntry, error) {
	output, err := r.gh(ctx, env, "pr", "list", "--head", head, "--state", "open", "--json", "number,url")
	if err != nil {
		return nil, fmt.Errorf("failed to list PRs for '%s': %w", head, err)
	}

	var entries []ghPRListEntry
	if err := json.Unmarshal(bytes.TrimSpace(output), &entries); err != nil {
		return nil, fmt.Errorf("failed to parse gh pr list output: %w: %w", chorederrors.ErrGitHubOperation, err)
	}
	if len(entries) == 0 {
		return nil, nil //nolint:nilnil // no open PR is not an error
	}
	return &entries[0], nil
}

// gh runs a gh command, annotating failures with their error class.
func (r *CLIGitHubRunner) gh(ctx context.Context, env []string, args ...string) ([]byte, error) {
	output, err := r.cmdExec.Execute(ctx, r.workDir, env, "gh", args...)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, withErrorClass(err)
	}
	return output, nil
}

func validatePRRequest(req PRRequest) error {
	switch {
	case req.Head == "":
		return fmt.Errorf("head branch is required: %w", chorederrors.ErrEmptyValue)
	case req.Base == "":
		return fmt.Errorf("base branch is required: %w", chorederrors.ErrEmptyValue)
	case req.Title == "":
		return fmt.Errorf("PR title is required: %w", chorederrors.ErrEmptyValue)
	case req.Body == "":
		return fmt.Errorf("PR body is required: %w", chorederrors.ErrEmptyValue)
	}
	return nil
}

//nolint:gochecknoglobals // compiled once
var prURLPattern = regexp.MustCompile(`https://github\.com/[^/\s]+/[^/\s]+/pull/(\d+)`)

// parsePRCreateOutput extracts the PR URL and number from gh pr create output,
// e.g. https://github.com/owner/repo/pull/42.
func parsePRCreateOutput(output string) (url string, number int) {
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if match := prURLPattern.FindStringSubmatch(line); match != nil {
			n, _ := strconv.Atoi(match[1])
			return match[0], n
		}
	}
	return "", 0
}

// defaultCommandExecutor runs commands through os/exec.
// Unit tests replace it through WithGHCommandExecutor.
type defaultCommandExecutor struct{}

// Execute runs a command using the standard exec package.
func (e *defaultCommandExecutor) Execute(ctx context.Context, workDir string, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //#nosec G204 -- args are constructed internally
	cmd.Dir = workDir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%s failed [%s]: %w", name, strings.TrimSpace(stderr.String()), chorederrors.ErrGitHubOperation)
		}
		return nil, fmt.Errorf("%s failed: %w", name, chorederrors.ErrGitHubOperation)
	}

	return stdout.Bytes(), nil
}
