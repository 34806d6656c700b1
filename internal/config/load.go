package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/chored-dev/chored/internal/constants"
	"github.com/chored-dev/chored/internal/errors"
)

// keyDelimiter separates nested keys. Scala majors such as "2.13" are map
// keys under project.scala.versions, so the default "." cannot be used.
const keyDelimiter = "::"

// newViperInstance creates a Viper instance with the CHORED_ env prefix,
// nested-key replacer and built-in defaults.
func newViperInstance() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_"))
	v.AutomaticEnv()
	return v
}

func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration for the project rooted at projectDir:
// built-in defaults, then ~/.chored/config.yaml, then projectDir/.chored.yaml,
// then CHORED_* environment variables.
//
// Missing config files are not errors; an invalid result is.
func Load(ctx context.Context, projectDir string) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		// No home directory: run with project config only.
		globalPath = ""
	}
	return LoadFromPaths(ctx, ProjectConfigPath(projectDir), globalPath)
}

// LoadFromPaths loads configuration from specific file paths. Either path may
// be empty or point at a missing file to skip that layer.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if err := mergeConfigFile(v, globalConfigPath); err != nil {
		return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "failed to unmarshal config: %v", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("project.repo", cfg.Project.Repo).
		Strs("project.scala.majors", cfg.Project.Scala.Majors).
		Bool("project.docker_override", cfg.Project.Docker != nil).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// mergeConfigFile merges path into v. Later merges take precedence.
func mergeConfigFile(v *viper.Viper, path string) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(filepath.Clean(path))
	return err == nil
}

// setDefaults mirrors DefaultConfig on the Viper instance. Keys must match the
// mapstructure tags joined with keyDelimiter. Every key an env var may
// override needs an entry here, which is why project repo is registered with
// an empty default.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("project::repo", "")
	v.SetDefault("project::owner", d.Project.Owner)
	v.SetDefault("project::organization", d.Project.Organization)
	v.SetDefault("project::scala::majors", d.Project.Scala.Majors)
	v.SetDefault("project::strict_plugin_override", "")
	v.SetDefault("project::pypi", false)

	v.SetDefault("git::remote", d.Git.Remote)
	v.SetDefault("git::base_branch", d.Git.BaseBranch)

	v.SetDefault("self_update::commit_message", d.SelfUpdate.CommitMessage)
	v.SetDefault("self_update::branch", d.SelfUpdate.Branch)
	v.SetDefault("self_update::pr_title", d.SelfUpdate.PRTitle)
	v.SetDefault("self_update::pr_body", d.SelfUpdate.PRBody)

	v.SetDefault("docker::binary", d.Docker.Binary)
	v.SetDefault("docker::registry", d.Docker.Registry)
}

// viperDecoderOption lets env vars carry lists as comma-separated strings
// (CHORED_PROJECT_SCALA_MAJORS="2.13,3").
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
