package chores

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/chored-dev/chored/internal/bump"
	"github.com/chored-dev/chored/internal/constants"
	"github.com/chored-dev/chored/internal/domain"
	"github.com/chored-dev/chored/internal/selfupdate"
	"github.com/chored-dev/chored/internal/task"
)

// TestCommand is the sbt invocation ci runs.
//
//nolint:gochecknoglobals // fixed command line
var TestCommand = []string{"sbt", "strict compile", "test"}

// CIOptions are the options of ci.
type CIOptions struct {
	// Docker runs the tests inside the project image.
	Docker bool `mapstructure:"docker"`
}

// SelfUpdateOptions are the options of selfUpdate.
type SelfUpdateOptions struct {
	Mode        string `mapstructure:"mode"`
	GithubToken string `mapstructure:"githubToken"`
}

func (c *chores) ciTask() task.Task {
	return task.New("ci", "Run the tests and render, concurrently", CIOptions{},
		func(ctx context.Context, opts CIOptions) error {
			return task.Join(ctx,
				func(ctx context.Context) error { return c.test(ctx, opts.Docker) },
				c.render,
			)
		})
}

func (c *chores) test(ctx context.Context, docker bool) error {
	if !docker {
		return c.run(ctx, TestCommand...)
	}
	if err := c.dockerBuild(ctx); err != nil {
		return err
	}
	return c.dockerRun(ctx, TestCommand)
}

func (c *chores) releaseTask() task.Task {
	return task.New("release", "Publish signed artifacts to sonatype", NoOptions{},
		func(ctx context.Context, _ NoOptions) error {
			return c.run(ctx, "sbt", "publishSigned", "sonatypeBundleRelease")
		})
}

func (c *chores) requireCleanTask() task.Task {
	return task.New("requireClean", "Fail when the working tree has changes", NoOptions{},
		func(ctx context.Context, _ NoOptions) error {
			repo, err := c.repo()
			if err != nil {
				return err
			}
			return repo.RequireClean(ctx)
		})
}

func (c *chores) bumpTask() task.Task {
	return task.New("bump", "Record the running chored version", NoOptions{},
		func(ctx context.Context, _ NoOptions) error { return c.bump(ctx) })
}

func (c *chores) bump(ctx context.Context) error {
	_, err := bump.Bump(ctx, c.deps.Root, c.deps.Version)
	return err
}

func (c *chores) selfUpdateTask() task.Task {
	defaults := SelfUpdateOptions{Mode: string(domain.UpdateModeNoop)}
	return task.New("selfUpdate", "Bump and render, then commit or propose any change", defaults,
		func(ctx context.Context, opts SelfUpdateOptions) error {
			mode, err := domain.ParseUpdateMode(opts.Mode)
			if err != nil {
				return err
			}
			repo, err := c.repo()
			if err != nil {
				return err
			}
			gitDir, err := repo.GitDir(ctx)
			if err != nil {
				return err
			}

			req := selfupdate.Request{
				Mode:          mode,
				CommitMessage: c.cfg.SelfUpdate.CommitMessage,
				Branch:        c.cfg.SelfUpdate.Branch,
				Base:          c.cfg.Git.BaseBranch,
				Title:         c.cfg.SelfUpdate.PRTitle,
				Body:          c.cfg.SelfUpdate.PRBody,
				Token:         opts.GithubToken,
				Remote:        c.cfg.Git.Remote,
			}
			outcome, err := selfupdate.Run(ctx, req, selfupdate.Deps{
				Repo: repo,
				PRs:  c.deps.PRs,
				Update: func(ctx context.Context) error {
					if err := c.bump(ctx); err != nil {
						return err
					}
					return c.render(ctx)
				},
				LockPath: filepath.Join(gitDir, constants.SelfUpdateLockName),
			})
			if err != nil {
				return err
			}
			zerolog.Ctx(ctx).Info().Str("outcome", string(outcome)).Msg("self-update finished")
			return nil
		})
}
