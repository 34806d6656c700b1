// Package chores assembles the task registry for a scala project: rendering
// generated files, the container build, CI, release, version bumps and the
// self-update loop.
package chores

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chored-dev/chored/internal/buildgraph"
	"github.com/chored-dev/chored/internal/config"
	"github.com/chored-dev/chored/internal/container"
	"github.com/chored-dev/chored/internal/domain"
	"github.com/chored-dev/chored/internal/errors"
	"github.com/chored-dev/chored/internal/git"
	"github.com/chored-dev/chored/internal/process"
	"github.com/chored-dev/chored/internal/selfupdate"
	"github.com/chored-dev/chored/internal/task"
)

// Containers is the container runtime collaborator.
type Containers interface {
	Build(ctx context.Context, spec domain.BuildSpec) error
	Run(ctx context.Context, opts container.RunOptions) error
	Login(ctx context.Context, registry, user, token string) error
}

// Repository is the git collaborator. It is nil when the project is not a
// git repository; tasks that need it then fail with ErrNotGitRepo.
type Repository interface {
	selfupdate.Repository
	GitDir(ctx context.Context) (string, error)
}

// Deps are the collaborators the chores run against.
type Deps struct {
	// Root is the project directory.
	Root string
	// Version is the running chored version recorded by bump.
	Version    string
	Runner     process.Runner
	Containers Containers
	Repo       Repository
	PRs        git.PullRequests
	// Stdout receives the output of the print tasks. Defaults to os.Stdout.
	Stdout io.Writer
}

// chores binds one configuration to its collaborators.
type chores struct {
	cfg  *config.Config
	deps Deps
	spec domain.BuildSpec
}

// New validates cfg and returns the project's task registry.
func New(cfg *config.Config, deps Deps) (*task.Registry, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if deps.Runner == nil {
		return nil, fmt.Errorf("%w: chores need a process runner", errors.ErrInvalidArgument)
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}

	spec, err := buildgraph.Build(cfg.Project)
	if err != nil {
		return nil, err
	}

	c := &chores{cfg: cfg, deps: deps, spec: spec}

	entries := []task.Entry{
		c.renderModule(),
		c.dockerModule(),
		c.ciTask(),
		c.releaseTask(),
		c.requireCleanTask(),
		c.bumpTask(),
		c.selfUpdateTask(),
	}
	if cfg.Project.Pypi {
		entries = append(entries, c.pypiModule())
	}
	return task.NewRegistry(entries...)
}

// NoOptions is the options type of tasks that take none.
type NoOptions struct{}

func (c *chores) run(ctx context.Context, args ...string) error {
	return c.deps.Runner.Run(ctx, process.Command{Args: args, Dir: c.deps.Root})
}

func (c *chores) repo() (Repository, error) {
	if c.deps.Repo == nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrNotGitRepo, c.deps.Root)
	}
	return c.deps.Repo, nil
}

func (c *chores) containers() (Containers, error) {
	if c.deps.Containers == nil {
		return nil, fmt.Errorf("%w: no container runtime configured", errors.ErrContainerOperation)
	}
	return c.deps.Containers, nil
}
