package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chored-dev/chored/internal/domain"
	"github.com/chored-dev/chored/internal/errors"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Project.Repo = "demo"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "timbertson", cfg.Project.Owner)
	assert.Equal(t, "net.gfxmonk", cfg.Project.Organization)
	assert.Equal(t, []string{"2.13"}, cfg.Project.Scala.Majors)
	assert.Equal(t, "main", cfg.Git.BaseBranch)
	assert.Equal(t, "chore: update", cfg.SelfUpdate.CommitMessage)
	assert.Equal(t, "self-update", cfg.SelfUpdate.Branch)
	assert.Equal(t, "[bot] self-update", cfg.SelfUpdate.PRTitle)
	assert.Equal(t, ":robot:", cfg.SelfUpdate.PRBody)
	assert.Empty(t, cfg.Project.Repo)
}

func TestDefaultDockerOptions(t *testing.T) {
	d := DefaultDockerOptions()

	assert.Equal(t, "/app", d.Workdir)
	assert.Equal(t, []string{"project"}, d.InitRequires)
	assert.Equal(t, []string{"about"}, d.InitTargets)
	assert.Equal(t, []string{"build.sbt", "release.sbt"}, d.UpdateRequires)
	assert.Equal(t, []string{"update"}, d.UpdateTargets)
	assert.Empty(t, d.BuildDepsTargets)
	assert.Empty(t, d.BuildTargets)
	assert.Empty(t, d.BuilderSetup)
}

func TestResolveVersions(t *testing.T) {
	t.Run("default major", func(t *testing.T) {
		pins, err := ResolveVersions(ProjectOptions{})
		require.NoError(t, err)
		assert.Equal(t, []VersionPin{{Major: "2.13", Version: "2.13.7"}}, pins)
	})

	t.Run("explicit pin wins and order is kept", func(t *testing.T) {
		pins, err := ResolveVersions(ProjectOptions{Scala: ScalaOptions{
			Majors:   []string{"3", "2.13"},
			Versions: map[string]string{"2.13": "2.13.8"},
		}})
		require.NoError(t, err)
		assert.Equal(t, []VersionPin{
			{Major: "3", Version: "3.1.0"},
			{Major: "2.13", Version: "2.13.8"},
		}, pins)
	})

	t.Run("pin for unknown major", func(t *testing.T) {
		pins, err := ResolveVersions(ProjectOptions{Scala: ScalaOptions{
			Majors:   []string{"2.11"},
			Versions: map[string]string{"2.11": "2.11.12"},
		}})
		require.NoError(t, err)
		assert.Equal(t, "2.11.12", pins[0].Version)
	})

	t.Run("unresolvable major", func(t *testing.T) {
		_, err := ResolveVersions(ProjectOptions{Scala: ScalaOptions{Majors: []string{"2.11"}}})
		require.ErrorIs(t, err, errors.ErrUnresolvedVersion)
	})
}

func TestPrimaryScalaVersion(t *testing.T) {
	v, err := PrimaryScalaVersion(ProjectOptions{Scala: ScalaOptions{Majors: []string{"2.12", "2.13"}}})
	require.NoError(t, err)
	assert.Equal(t, "2.12.15", v)
}

func TestMergeDockerOptions(t *testing.T) {
	defaults := DefaultDockerOptions()

	t.Run("nil override keeps every default", func(t *testing.T) {
		assert.Equal(t, defaults, MergeDockerOptions(defaults, nil))
	})

	t.Run("set field replaces only that field", func(t *testing.T) {
		merged := MergeDockerOptions(defaults, &DockerBuildOptions{
			BuildTargets: []string{"compile"},
		})

		assert.Equal(t, []string{"compile"}, merged.BuildTargets)
		assert.Equal(t, defaults.Workdir, merged.Workdir)
		assert.Equal(t, defaults.InitRequires, merged.InitRequires)
		assert.Equal(t, defaults.InitTargets, merged.InitTargets)
		assert.Equal(t, defaults.UpdateRequires, merged.UpdateRequires)
		assert.Equal(t, defaults.UpdateTargets, merged.UpdateTargets)
		assert.Equal(t, defaults.BuildRequires, merged.BuildRequires)
	})

	t.Run("explicit empty slice clears the default", func(t *testing.T) {
		merged := MergeDockerOptions(defaults, &DockerBuildOptions{InitTargets: []string{}})

		assert.NotNil(t, merged.InitTargets)
		assert.Empty(t, merged.InitTargets)
		assert.Equal(t, defaults.InitRequires, merged.InitRequires)
	})

	t.Run("string and step fields", func(t *testing.T) {
		setup := []domain.Step{domain.RunStep("apt-get", "install", "-y", "git")}
		merged := MergeDockerOptions(defaults, &DockerBuildOptions{Workdir: "/src", BuilderSetup: setup})

		assert.Equal(t, "/src", merged.Workdir)
		assert.Equal(t, setup, merged.BuilderSetup)
	})

	t.Run("result does not alias inputs", func(t *testing.T) {
		override := &DockerBuildOptions{BuildTargets: []string{"compile"}}
		merged := MergeDockerOptions(defaults, override)
		merged.BuildTargets[0] = "mutated"
		merged.InitTargets[0] = "mutated"

		assert.Equal(t, "compile", override.BuildTargets[0])
		assert.Equal(t, "about", defaults.InitTargets[0])
	})
}

func TestProjectOptions_Clone(t *testing.T) {
	orig := ProjectOptions{
		Repo:   "demo",
		Docker: &DockerBuildOptions{InitTargets: []string{"about"}},
		Scala:  ScalaOptions{Majors: []string{"2.13"}, Versions: map[string]string{"2.13": "2.13.7"}},
	}
	c := orig.Clone()
	c.Docker.InitTargets[0] = "x"
	c.Scala.Majors[0] = "3"
	c.Scala.Versions["2.13"] = "x"

	assert.Equal(t, "about", orig.Docker.InitTargets[0])
	assert.Equal(t, "2.13", orig.Scala.Majors[0])
	assert.Equal(t, "2.13.7", orig.Scala.Versions["2.13"])
}

func TestProjectOptions_URLs(t *testing.T) {
	o := ProjectOptions{Repo: "demo", Owner: "timbertson"}
	assert.Equal(t, "ghcr.io/timbertson/demo", o.ImageURL())
	assert.Equal(t, "https://github.com/timbertson/demo", o.RepoURL())
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
	require.NoError(t, Validate(validConfig()))

	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"missing repo", func(c *Config) { c.Project.Repo = "" }, errors.ErrEmptyValue},
		{"missing owner", func(c *Config) { c.Project.Owner = "" }, errors.ErrEmptyValue},
		{"unknown major", func(c *Config) { c.Project.Scala.Majors = []string{"2.10"} }, errors.ErrUnresolvedVersion},
		{"duplicate major", func(c *Config) { c.Project.Scala.Majors = []string{"3", "3"} }, errors.ErrConfigInvalid},
		{"bad setup step", func(c *Config) {
			c.Project.Docker = &DockerBuildOptions{BuilderSetup: []domain.Step{{}}}
		}, errors.ErrConfigInvalid},
		{"empty commit message", func(c *Config) { c.SelfUpdate.CommitMessage = "" }, errors.ErrEmptyValue},
		{"empty base branch", func(c *Config) { c.Git.BaseBranch = "" }, errors.ErrEmptyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.ErrorIs(t, err, tt.target)
			require.ErrorIs(t, err, errors.ErrConfigInvalid)
		})
	}
}
