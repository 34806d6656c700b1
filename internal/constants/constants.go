// Package constants provides centralized constant values used throughout chored.
// This package is the single source of truth for shared constants and MUST NOT
// import any other internal packages.
package constants

// Directory and file names used by chored on the host.
const (
	// ChoredHome is the hidden directory in the user's home where chored keeps
	// its global config and logs.
	ChoredHome = ".chored"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the rotating CLI log in ~/.chored/logs.
	CLILogFileName = "chored.log"

	// GlobalConfigName is the global configuration file inside ChoredHome.
	GlobalConfigName = "config.yaml"

	// ProjectConfigName is the project configuration file in the project root.
	ProjectConfigName = ".chored.yaml"

	// EnvPrefix is the prefix for environment variable overrides (CHORED_*).
	EnvPrefix = "CHORED"

	// VersionFile is the project-relative file recording the chored version
	// that last rendered the project.
	VersionFile = ".chored/version"

	// SelfUpdateLockName is the lock file created inside the git directory
	// while a self-update is mutating the working tree.
	SelfUpdateLockName = "chored-self-update.lock"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the size at which the CLI log is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is how long rotated files are kept.
	LogMaxAgeDays = 28
)

// Self-update defaults.
const (
	DefaultCommitMessage = "chore: update"
	DefaultUpdateBranch  = "self-update"
	DefaultBaseBranch    = "main"
	DefaultPRTitle       = "[bot] self-update"
	DefaultPRBody        = ":robot:"
)

// Registry and runtime locations.
const (
	// ContainerRegistry is the registry images are pushed to and logged into.
	ContainerRegistry = "ghcr.io"

	// ContainerWorkspace is where `docker run` mounts the current directory.
	ContainerWorkspace = "/workspace"

	// ScalaBaseImage is the base image repository for the builder stage.
	ScalaBaseImage = "hseeberger/scala-sbt"
)

// File permissions.
const (
	// GeneratedFileMode is used for computed and yaml files so they are not
	// edited by hand.
	GeneratedFileMode = 0o444

	// TextFileMode is used for plain text files that users may edit.
	TextFileMode = 0o644

	// DirMode is used for directories created while writing files.
	DirMode = 0o755
)
