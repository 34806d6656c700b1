// Package buildgraph assembles the layered container build for a project.
//
// The builder stage is ordered so that rarely-changing inputs are copied and
// built first. Each phase copies only the files its sbt targets need, so an
// edit to sources does not invalidate the dependency-resolution layers.
package buildgraph

import (
	"fmt"

	"github.com/chored-dev/chored/internal/config"
	"github.com/chored-dev/chored/internal/constants"
	"github.com/chored-dev/chored/internal/domain"
)

// BuilderStage is the name of the single stage Build produces.
const BuilderStage = "builder"

// Phase is one cache layer group: copy Requires, then run sbt Targets.
type Phase struct {
	Name     string
	Requires []string
	Targets  []string
}

// Phases returns the build phases in their fixed order: init, update,
// build-deps, build-app.
func Phases(d config.DockerBuildOptions) []Phase {
	return []Phase{
		{Name: "init", Requires: d.InitRequires, Targets: d.InitTargets},
		{Name: "update", Requires: d.UpdateRequires, Targets: d.UpdateTargets},
		{Name: "build-deps", Requires: d.BuildDepsRequires, Targets: d.BuildDepsTargets},
		{Name: "build-app", Requires: d.BuildRequires, Targets: d.BuildTargets},
	}
}

// Steps expands a phase. A phase with no targets contributes nothing, not
// even its copies.
func (p Phase) Steps() []domain.Step {
	if len(p.Targets) == 0 {
		return nil
	}
	steps := make([]domain.Step, 0, len(p.Requires)+1)
	for _, path := range p.Requires {
		steps = append(steps, domain.CopyStep(path, path))
	}
	return append(steps, domain.RunStep(append([]string{"sbt"}, p.Targets...)...))
}

// BaseImage is the sbt image for the project's primary scala version.
func BaseImage(opts config.ProjectOptions) (string, error) {
	scala, err := config.PrimaryScalaVersion(opts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s_%s_%s", constants.ScalaBaseImage, config.DefaultJDKVersion, config.DefaultSbtVersion, scala), nil
}

// Build produces the project's build spec. It is pure: the same options
// always yield an identical spec.
func Build(opts config.ProjectOptions) (domain.BuildSpec, error) {
	docker := config.MergeDockerOptions(config.DefaultDockerOptions(), opts.Docker)

	from, err := BaseImage(opts)
	if err != nil {
		return domain.BuildSpec{}, err
	}

	steps := make([]domain.Step, 0, len(docker.BuilderSetup)+8)
	steps = append(steps, docker.BuilderSetup...)
	for _, phase := range Phases(docker) {
		steps = append(steps, phase.Steps()...)
	}

	spec := domain.BuildSpec{
		URL: opts.ImageURL(),
		Stages: []domain.Stage{{
			Name:    BuilderStage,
			From:    from,
			Workdir: docker.Workdir,
			Steps:   steps,
			Cmd:     docker.Cmd,
		}},
	}
	if err := spec.Validate(); err != nil {
		return domain.BuildSpec{}, err
	}
	return spec, nil
}

// ImageForStage returns the tag for a stage ("last" or a stage name).
func ImageForStage(spec domain.BuildSpec, name string) (string, error) {
	stage, err := spec.Stage(name)
	if err != nil {
		return "", err
	}
	return spec.URL + ":" + stage.Name, nil
}
