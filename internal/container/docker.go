// Package container drives the container runtime CLI: building a build spec
// stage by stage, running commands in a built image and logging into the
// image registry.
package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chored-dev/chored/internal/buildgraph"
	"github.com/chored-dev/chored/internal/constants"
	"github.com/chored-dev/chored/internal/domain"
	chorederrors "github.com/chored-dev/chored/internal/errors"
	"github.com/chored-dev/chored/internal/process"
)

// DefaultBinary is the container CLI used when none is configured.
const DefaultBinary = "docker"

// Mount bind-mounts a host path into the container.
type Mount struct {
	Source string
	Target string
}

// RunOptions describes a `docker run` invocation.
type RunOptions struct {
	// Image is the image reference to run. Required.
	Image string
	// Cmd overrides the image command when non-empty.
	Cmd []string
	// Workdir is the working directory inside the container.
	Workdir string
	// Mounts are passed as -v source:target.
	Mounts []Mount
}

// Docker implements the container collaborator on top of a process.Runner.
type Docker struct {
	runner process.Runner
	binary string
	dir    string
}

// Option configures Docker.
type Option func(*Docker)

// WithBinary replaces the container CLI (e.g. "podman").
func WithBinary(binary string) Option {
	return func(d *Docker) {
		if binary != "" {
			d.binary = binary
		}
	}
}

// WithDir sets the build context directory. Defaults to the current directory.
func WithDir(dir string) Option {
	return func(d *Docker) {
		d.dir = dir
	}
}

// New returns a Docker collaborator.
func New(runner process.Runner, opts ...Option) *Docker {
	d := &Docker{runner: runner, binary: DefaultBinary}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Build builds every stage of spec in order, tagging each as <url>:<stage>.
// The Dockerfile is piped on stdin; the build context is the configured dir.
func (d *Docker) Build(ctx context.Context, spec domain.BuildSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	dockerfile := buildgraph.Dockerfile(spec)
	log := zerolog.Ctx(ctx)

	for _, stage := range spec.Stages {
		tag := spec.URL + ":" + stage.Name
		log.Info().Str("stage", stage.Name).Str("tag", tag).Msg("building image stage")

		err := d.runner.Run(ctx, process.Command{
			Args:  []string{d.binary, "build", "-f", "-", "-t", tag, "--target", stage.Name, "."},
			Stdin: dockerfile,
			Dir:   d.dir,
		})
		if err != nil {
			return fmt.Errorf("%w: build stage %q: %w", chorederrors.ErrContainerOperation, stage.Name, err)
		}
	}
	return nil
}

// Run runs opts.Cmd in a throwaway container.
func (d *Docker) Run(ctx context.Context, opts RunOptions) error {
	if opts.Image == "" {
		return fmt.Errorf("%w: image is required", chorederrors.ErrEmptyValue)
	}

	args := []string{d.binary, "run", "--rm"}
	for _, m := range opts.Mounts {
		args = append(args, "-v", m.Source+":"+m.Target)
	}
	if opts.Workdir != "" {
		args = append(args, "-w", opts.Workdir)
	}
	args = append(args, opts.Image)
	args = append(args, opts.Cmd...)

	if err := d.runner.Run(ctx, process.Command{Args: args, Dir: d.dir}); err != nil {
		return fmt.Errorf("%w: run %s: %w", chorederrors.ErrContainerOperation, opts.Image, err)
	}
	return nil
}

// Login authenticates against registry. The token is written to stdin so it
// never shows up in the process list.
func (d *Docker) Login(ctx context.Context, registry, user, token string) error {
	if registry == "" {
		registry = constants.ContainerRegistry
	}
	if user == "" || token == "" {
		return fmt.Errorf("%w: docker login needs user and token", chorederrors.ErrEmptyValue)
	}

	err := d.runner.Run(ctx, process.Command{
		Args:  []string{d.binary, "login", registry, "--username", user, "--password-stdin"},
		Stdin: token,
		Dir:   d.dir,
	})
	if err != nil {
		return fmt.Errorf("%w: login to %s: %w", chorederrors.ErrContainerOperation, registry, err)
	}
	return nil
}

// WorkspaceRun returns RunOptions that mount hostDir at the container
// workspace and run cmd there.
func WorkspaceRun(image, hostDir string, cmd []string) RunOptions {
	return RunOptions{
		Image:   image,
		Cmd:     cmd,
		Workdir: constants.ContainerWorkspace,
		Mounts:  []Mount{{Source: hostDir, Target: constants.ContainerWorkspace}},
	}
}
