// Package config provides configuration management for chored with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (CHORED_* prefix, e.g. CHORED_PROJECT_REPO)
//  2. Project config (.chored.yaml in the project root)
//  3. Global config (~/.chored/config.yaml)
//  4. Built-in defaults
//
// The project section is the declarative project description every chore is
// derived from. The remaining sections tune how chored talks to git, GitHub
// and the container runtime.
//
// IMPORTANT: This package may import internal/constants, internal/errors and
// internal/domain, but MUST NOT import other internal packages.
package config

import "github.com/chored-dev/chored/internal/domain"

// Config is the root configuration structure for chored.
type Config struct {
	// Project is the declarative description of the project being managed.
	Project ProjectOptions `yaml:"project" mapstructure:"project"`

	// Git contains settings for git operations.
	Git GitConfig `yaml:"git" mapstructure:"git"`

	// SelfUpdate contains the literals used when the self-update loop commits
	// or opens a pull request.
	SelfUpdate SelfUpdateConfig `yaml:"self_update" mapstructure:"self_update"`

	// Docker contains container runtime settings.
	Docker DockerConfig `yaml:"docker" mapstructure:"docker"`
}

// ProjectOptions describes a scala project. It is loaded once and then
// treated as immutable; use Clone before handing it to code that may keep it.
type ProjectOptions struct {
	// Repo is the repository name. Required.
	Repo string `yaml:"repo" mapstructure:"repo"`

	// Owner is the GitHub owner used for URLs and the image registry path.
	// Default: "timbertson"
	Owner string `yaml:"owner" mapstructure:"owner"`

	// Organization is the published artifact organization.
	// Default: "net.gfxmonk"
	Organization string `yaml:"organization" mapstructure:"organization"`

	// Docker overrides individual build options. Unset fields keep defaults.
	Docker *DockerBuildOptions `yaml:"docker,omitempty" mapstructure:"docker"`

	// Scala selects the scala major versions to build against.
	Scala ScalaOptions `yaml:"scala" mapstructure:"scala"`

	// StrictPluginOverride replaces the strict-scope plugin line in project/strict.sbt.
	StrictPluginOverride string `yaml:"strict_plugin_override" mapstructure:"strict_plugin_override"`

	// Pypi enables the pypi build/release tasks.
	Pypi bool `yaml:"pypi" mapstructure:"pypi"`
}

// ScalaOptions lists the requested scala majors and optional explicit pins.
type ScalaOptions struct {
	// Majors are the requested major variants. The first is primary.
	// Default: ["2.13"]
	Majors []string `yaml:"majors" mapstructure:"majors"`

	// Versions pins a full version per major, e.g. {"2.13": "2.13.8"}.
	Versions map[string]string `yaml:"versions" mapstructure:"versions"`
}

// DockerBuildOptions controls the layers of the builder stage. A nil slice
// or empty string means "unset" when used as an override; a non-nil empty
// slice explicitly clears the default.
type DockerBuildOptions struct {
	Cmd     []string `yaml:"cmd" mapstructure:"cmd"`
	Workdir string   `yaml:"workdir" mapstructure:"workdir"`

	InitRequires []string `yaml:"init_requires" mapstructure:"init_requires"`
	InitTargets  []string `yaml:"init_targets" mapstructure:"init_targets"`

	UpdateRequires []string `yaml:"update_requires" mapstructure:"update_requires"`
	UpdateTargets  []string `yaml:"update_targets" mapstructure:"update_targets"`

	BuildDepsRequires []string `yaml:"build_deps_requires" mapstructure:"build_deps_requires"`
	BuildDepsTargets  []string `yaml:"build_deps_targets" mapstructure:"build_deps_targets"`

	BuildRequires []string `yaml:"build_requires" mapstructure:"build_requires"`
	BuildTargets  []string `yaml:"build_targets" mapstructure:"build_targets"`

	// BuilderSetup runs before any sbt phase, e.g. installing system packages.
	BuilderSetup []domain.Step `yaml:"builder_setup" mapstructure:"builder_setup"`
}

// GitConfig contains settings for git operations.
type GitConfig struct {
	// Remote is the remote the self-update branch is pushed to.
	// Default: "origin"
	Remote string `yaml:"remote" mapstructure:"remote"`

	// BaseBranch is the branch self-update pull requests target.
	// Default: "main"
	BaseBranch string `yaml:"base_branch" mapstructure:"base_branch"`
}

// SelfUpdateConfig holds the commit and pull request literals of the
// self-update loop.
type SelfUpdateConfig struct {
	CommitMessage string `yaml:"commit_message" mapstructure:"commit_message"`
	Branch        string `yaml:"branch" mapstructure:"branch"`
	PRTitle       string `yaml:"pr_title" mapstructure:"pr_title"`
	PRBody        string `yaml:"pr_body" mapstructure:"pr_body"`
}

// DockerConfig contains container runtime settings.
type DockerConfig struct {
	// Binary is the container CLI. Default: "docker"
	Binary string `yaml:"binary" mapstructure:"binary"`

	// Registry is the registry `docker.login` authenticates against.
	// Default: "ghcr.io"
	Registry string `yaml:"registry" mapstructure:"registry"`
}

// Clone returns a deep copy of the options.
func (o ProjectOptions) Clone() ProjectOptions {
	out := o
	out.Scala.Majors = cloneStrings(o.Scala.Majors)
	if o.Scala.Versions != nil {
		out.Scala.Versions = make(map[string]string, len(o.Scala.Versions))
		for k, v := range o.Scala.Versions {
			out.Scala.Versions[k] = v
		}
	}
	if o.Docker != nil {
		d := o.Docker.clone()
		out.Docker = &d
	}
	return out
}

// ImageURL is the registry path of the project image.
func (o ProjectOptions) ImageURL() string {
	return "ghcr.io/" + o.Owner + "/" + o.Repo
}

// RepoURL is the project's GitHub URL.
func (o ProjectOptions) RepoURL() string {
	return "https://github.com/" + o.Owner + "/" + o.Repo
}

func (d DockerBuildOptions) clone() DockerBuildOptions {
	out := d
	out.Cmd = cloneStrings(d.Cmd)
	out.InitRequires = cloneStrings(d.InitRequires)
	out.InitTargets = cloneStrings(d.InitTargets)
	out.UpdateRequires = cloneStrings(d.UpdateRequires)
	out.UpdateTargets = cloneStrings(d.UpdateTargets)
	out.BuildDepsRequires = cloneStrings(d.BuildDepsRequires)
	out.BuildDepsTargets = cloneStrings(d.BuildDepsTargets)
	out.BuildRequires = cloneStrings(d.BuildRequires)
	out.BuildTargets = cloneStrings(d.BuildTargets)
	if d.BuilderSetup != nil {
		out.BuilderSetup = make([]domain.Step, len(d.BuilderSetup))
		copy(out.BuilderSetup, d.BuilderSetup)
	}
	return out
}

// cloneStrings copies s, keeping the nil / empty distinction.
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
