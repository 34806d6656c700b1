package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/chored-dev/chored/internal/chores"
	"github.com/chored-dev/chored/internal/config"
	"github.com/chored-dev/chored/internal/container"
	"github.com/chored-dev/chored/internal/git"
	"github.com/chored-dev/chored/internal/process"
	"github.com/chored-dev/chored/internal/task"
)

// Project describes where and how the task registry is built.
type Project struct {
	// Root is the project directory as given on the command line.
	Root string
	// Version is the running chored version.
	Version string
	// Stdout receives task output.
	Stdout io.Writer
	// Stderr receives the output of child processes' stderr.
	Stderr io.Writer
}

// RegistryFactory builds the task registry for a project.
type RegistryFactory func(ctx context.Context, p Project) (*task.Registry, error)

// ProjectRegistry loads the project configuration and wires the chores to the
// real process runner, container runtime, git and gh.
func ProjectRegistry(ctx context.Context, p Project) (*task.Registry, error) {
	root, err := filepath.Abs(p.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve project dir %q: %w", p.Root, err)
	}

	cfg, err := config.Load(ctx, root)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	runner := process.NewExecRunner(process.WithOutput(p.Stdout, p.Stderr))

	deps := chores.Deps{
		Root:    root,
		Version: p.Version,
		Runner:  runner,
		Containers: container.New(runner,
			container.WithBinary(cfg.Docker.Binary),
			container.WithDir(root),
		),
		PRs:    git.NewCLIGitHubRunner(root, git.WithGHLogger(*logger)),
		Stdout: p.Stdout,
	}

	// Leave Repo as a nil interface outside a git work tree; a typed nil
	// pointer would defeat the chores' nil check.
	repo, err := git.NewRunner(ctx, root)
	if err != nil {
		logger.Debug().Err(err).Str("root", root).Msg("git unavailable, git tasks disabled")
	} else {
		deps.Repo = repo
	}

	return chores.New(cfg, deps)
}
