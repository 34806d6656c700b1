// Package selfupdate implements the self-update control loop: regenerate the
// project's files, detect drift against the committed state and, depending
// on the mode, ignore it, commit it or propose it as a pull request.
//
// The loop refuses to start on a dirty tree, so any drift it observes after
// the update was produced by the update itself. Running it twice on an
// up-to-date project is a no-op.
package selfupdate

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chored-dev/chored/internal/ctxutil"
	"github.com/chored-dev/chored/internal/domain"
	"github.com/chored-dev/chored/internal/errors"
	"github.com/chored-dev/chored/internal/flock"
	"github.com/chored-dev/chored/internal/git"
)

// Repository is the subset of the git collaborator the loop needs.
type Repository interface {
	RequireClean(ctx context.Context) error
	IsDirty(ctx context.Context) (bool, error)
	CommitAll(ctx context.Context, message string) error
	CheckoutBranch(ctx context.Context, branch, base string) error
	Push(ctx context.Context, remote, branch string, force bool) error
}

// Request selects the mode and the literals used for commits and PRs.
type Request struct {
	Mode          domain.UpdateMode
	CommitMessage string
	// Branch is the head branch for pr mode.
	Branch string
	// Base is the branch the PR targets.
	Base   string
	Title  string
	Body   string
	Token  string
	Remote string
}

// Validate checks the request for the fields its mode needs.
func (r Request) Validate() error {
	if !r.Mode.Valid() {
		return fmt.Errorf("%w: %q", errors.ErrInvalidMode, r.Mode)
	}
	if r.CommitMessage == "" {
		return fmt.Errorf("%w: %w: commit message", errors.ErrConfigInvalid, errors.ErrEmptyValue)
	}
	if r.Mode != domain.UpdateModePR {
		return nil
	}
	required := []struct{ name, value string }{
		{"branch", r.Branch},
		{"base", r.Base},
		{"title", r.Title},
		{"body", r.Body},
		{"remote", r.Remote},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %w: pr mode needs %s", errors.ErrConfigInvalid, errors.ErrEmptyValue, f.name)
		}
	}
	return nil
}

// Deps are the loop's collaborators.
type Deps struct {
	Repo Repository
	PRs  git.PullRequests
	// Update regenerates the project's files in place.
	Update func(ctx context.Context) error
	// LockPath, when set, is locked for the whole run.
	LockPath string
}

// validate checks that every collaborator the mode reaches is present, so a
// missing one fails before the tree is touched.
func (d Deps) validate(mode domain.UpdateMode) error {
	if d.Repo == nil {
		return fmt.Errorf("%w: self-update needs a repository", errors.ErrInvalidArgument)
	}
	if d.Update == nil {
		return fmt.Errorf("%w: self-update needs an update procedure", errors.ErrInvalidArgument)
	}
	if mode == domain.UpdateModePR && d.PRs == nil {
		return fmt.Errorf("%w: pr mode needs a pull request collaborator", errors.ErrInvalidArgument)
	}
	return nil
}

// Run executes one pass of the control loop.
func Run(ctx context.Context, req Request, deps Deps) (domain.Outcome, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}
	if err := req.Validate(); err != nil {
		return "", err
	}
	if err := deps.validate(req.Mode); err != nil {
		return "", err
	}

	log := zerolog.Ctx(ctx).With().Str("mode", string(req.Mode)).Logger()

	if deps.LockPath != "" {
		lock, err := flock.TryLock(deps.LockPath)
		if err != nil {
			if stderrors.Is(err, errors.ErrLockTimeout) {
				return "", fmt.Errorf("%w: %w", errors.ErrSelfUpdateLocked, err)
			}
			return "", err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				log.Warn().Err(err).Msg("failed to release self-update lock")
			}
		}()
	}

	if err := deps.Repo.RequireClean(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrPreconditionFailed, err)
	}

	if err := deps.Update(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrUpdateFailed, err)
	}

	dirty, err := deps.Repo.IsDirty(ctx)
	if err != nil {
		return "", fmt.Errorf("checking for changes: %w", err)
	}
	if !dirty {
		log.Info().Msg("project is up to date")
		return domain.OutcomeNoop, nil
	}

	switch req.Mode {
	case domain.UpdateModeNoop:
		log.Warn().Msg("update produced changes; mode is noop so they are left uncommitted")
		return domain.OutcomeSuppressed, nil

	case domain.UpdateModeCommit:
		if err := deps.Repo.CommitAll(ctx, req.CommitMessage); err != nil {
			return "", fmt.Errorf("%w: %w", errors.ErrCommitFailed, err)
		}
		log.Info().Msg("committed update")
		return domain.OutcomeCommitted, nil

	case domain.UpdateModePR:
		return openPR(ctx, log, req, deps)
	}

	return "", fmt.Errorf("%w: %q", errors.ErrInvalidMode, req.Mode)
}

func openPR(ctx context.Context, log zerolog.Logger, req Request, deps Deps) (domain.Outcome, error) {
	// checkout carries the uncommitted update onto the branch
	if err := deps.Repo.CheckoutBranch(ctx, req.Branch, req.Base); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrCheckoutFailed, err)
	}
	if err := deps.Repo.CommitAll(ctx, req.CommitMessage); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrCommitFailed, err)
	}
	if err := deps.Repo.Push(ctx, req.Remote, req.Branch, true); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrPushFailed, err)
	}

	result, err := deps.PRs.CreateOrUpdatePR(ctx, git.PRRequest{
		Head:  req.Branch,
		Base:  req.Base,
		Title: req.Title,
		Body:  req.Body,
		Token: req.Token,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrPRFailed, err)
	}

	log.Info().
		Str("branch", req.Branch).
		Int("pr_number", result.Number).
		Str("pr_url", result.URL).
		Bool("created", result.Created).
		Msg("self-update pull request ready")
	return domain.OutcomePROpened, nil
}
