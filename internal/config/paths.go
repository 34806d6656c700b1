package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chored-dev/chored/internal/constants"
	"github.com/chored-dev/chored/internal/errors"
)

// GlobalConfigDir returns ~/.chored.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.ChoredHome), nil
}

// GlobalConfigPath returns ~/.chored/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the project config path inside projectDir.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, constants.ProjectConfigName)
}
