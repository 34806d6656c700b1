package config

import "github.com/chored-dev/chored/internal/constants"

// Toolchain versions baked into generated files and the builder image.
const (
	DefaultJDKVersion = "11.0.13"
	DefaultSbtVersion = "1.5.7"

	// DefaultScalaMajor is used when no majors are requested.
	DefaultScalaMajor = "2.13"

	DefaultOwner        = "timbertson"
	DefaultOrganization = "net.gfxmonk"
)

// DefaultScalaVersions returns the built-in version for each known major.
func DefaultScalaVersions() map[string]string {
	return map[string]string{
		"2.12": "2.12.15",
		"2.13": "2.13.7",
		"3":    "3.1.0",
	}
}

// DefaultDockerOptions returns the builder defaults: `sbt about` once the
// project directory is in place, `sbt update` once the build definition is,
// and no build-deps or build-app layers.
func DefaultDockerOptions() DockerBuildOptions {
	return DockerBuildOptions{
		Cmd:               []string{},
		Workdir:           "/app",
		InitRequires:      []string{"project"},
		InitTargets:       []string{"about"},
		UpdateRequires:    []string{"build.sbt", "release.sbt"},
		UpdateTargets:     []string{"update"},
		BuildDepsRequires: []string{},
		BuildDepsTargets:  []string{},
		BuildRequires:     []string{},
		BuildTargets:      []string{},
		BuilderSetup:      nil,
	}
}

// DefaultConfig returns a Config with the built-in defaults. Project.Repo is
// left empty; it has no sensible default.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectOptions{
			Owner:        DefaultOwner,
			Organization: DefaultOrganization,
			Scala: ScalaOptions{
				Majors: []string{DefaultScalaMajor},
			},
		},
		Git: GitConfig{
			Remote:     "origin",
			BaseBranch: constants.DefaultBaseBranch,
		},
		SelfUpdate: SelfUpdateConfig{
			CommitMessage: constants.DefaultCommitMessage,
			Branch:        constants.DefaultUpdateBranch,
			PRTitle:       constants.DefaultPRTitle,
			PRBody:        constants.DefaultPRBody,
		},
		Docker: DockerConfig{
			Binary:   "docker",
			Registry: constants.ContainerRegistry,
		},
	}
}
