package chores

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/chored-dev/chored/internal/buildgraph"
	"github.com/chored-dev/chored/internal/container"
	"github.com/chored-dev/chored/internal/domain"
	"github.com/chored-dev/chored/internal/task"
)

// DockerRunOptions are the options of docker.run.
type DockerRunOptions struct {
	// Args is the command run in the image, comma-separated on the command line.
	Args []string `mapstructure:"args"`
}

// DockerLoginOptions are the options of docker.login.
type DockerLoginOptions struct {
	User  string `mapstructure:"user"`
	Token string `mapstructure:"token"`
}

func (c *chores) dockerModule() *task.Module {
	return task.NewModule("docker", "Container image build",
		task.New("build", "Build every stage of the project image", NoOptions{},
			func(ctx context.Context, _ NoOptions) error { return c.dockerBuild(ctx) }),
		task.New("run", "Run a command in the last stage with the project mounted at /workspace", DockerRunOptions{},
			func(ctx context.Context, opts DockerRunOptions) error { return c.dockerRun(ctx, opts.Args) }),
		task.New("print", "Print the Dockerfile", NoOptions{},
			func(_ context.Context, _ NoOptions) error {
				_, err := fmt.Fprint(c.deps.Stdout, buildgraph.Dockerfile(c.spec))
				return err
			}),
		task.New("login", "Log into the image registry (token on stdin)", DockerLoginOptions{},
			func(ctx context.Context, opts DockerLoginOptions) error {
				rt, err := c.containers()
				if err != nil {
					return err
				}
				return rt.Login(ctx, c.cfg.Docker.Registry, opts.User, opts.Token)
			}),
	)
}

func (c *chores) dockerBuild(ctx context.Context) error {
	rt, err := c.containers()
	if err != nil {
		return err
	}
	return rt.Build(ctx, c.spec)
}

func (c *chores) dockerRun(ctx context.Context, args []string) error {
	rt, err := c.containers()
	if err != nil {
		return err
	}
	image, err := buildgraph.ImageForStage(c.spec, domain.LastStage)
	if err != nil {
		return err
	}
	hostDir, err := filepath.Abs(c.deps.Root)
	if err != nil {
		return err
	}
	return rt.Run(ctx, container.WorkspaceRun(image, hostDir, args))
}
