package config

import (
	"fmt"

	"github.com/chored-dev/chored/internal/errors"
)

// Validate checks the configuration for missing or inconsistent values.
// It returns the first failure found, wrapping ErrConfigInvalid.
//
// Validation rules:
//   - project.repo and project.owner must not be empty
//   - every requested scala major must resolve to a version, with no duplicates
//   - project.docker.builder_setup steps must be well formed
//   - self_update literals and git.base_branch must not be empty
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateProject(&cfg.Project); err != nil {
		return err
	}

	required := []struct {
		key, value string
	}{
		{"git.remote", cfg.Git.Remote},
		{"git.base_branch", cfg.Git.BaseBranch},
		{"self_update.commit_message", cfg.SelfUpdate.CommitMessage},
		{"self_update.branch", cfg.SelfUpdate.Branch},
		{"self_update.pr_title", cfg.SelfUpdate.PRTitle},
		{"self_update.pr_body", cfg.SelfUpdate.PRBody},
		{"docker.binary", cfg.Docker.Binary},
		{"docker.registry", cfg.Docker.Registry},
	}
	for _, r := range required {
		if r.value == "" {
			return emptyValue(r.key)
		}
	}
	return nil
}

func validateProject(p *ProjectOptions) error {
	if p.Repo == "" {
		return emptyValue("project.repo")
	}
	if p.Owner == "" {
		return emptyValue("project.owner")
	}
	if p.Organization == "" {
		return emptyValue("project.organization")
	}

	seen := make(map[string]struct{}, len(p.Scala.Majors))
	for _, major := range p.Scala.Majors {
		if _, dup := seen[major]; dup {
			return fmt.Errorf("%w: project.scala.majors lists %q twice", errors.ErrConfigInvalid, major)
		}
		seen[major] = struct{}{}
	}
	if _, err := ResolveVersions(*p); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrConfigInvalid, err)
	}

	if p.Docker != nil {
		for i, step := range p.Docker.BuilderSetup {
			if err := step.Validate(); err != nil {
				return fmt.Errorf("project.docker.builder_setup[%d]: %w", i, err)
			}
		}
	}
	return nil
}

func emptyValue(key string) error {
	return fmt.Errorf("%w: %s: %w", errors.ErrConfigInvalid, key, errors.ErrEmptyValue)
}
