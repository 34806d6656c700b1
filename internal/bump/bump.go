// Package bump records which chored version last managed a project.
package bump

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chored-dev/chored/internal/constants"
	"github.com/chored-dev/chored/internal/ctxutil"
	"github.com/chored-dev/chored/internal/errors"
	"github.com/chored-dev/chored/internal/fsutil"
)

// Current returns the version recorded under root, or "" when none is.
func Current(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(constants.VersionFile))) // #nosec G304 -- fixed project-relative path
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", constants.VersionFile, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Bump writes version to the project's version file. The file is left
// untouched when it already holds version, so an up-to-date project stays clean.
func Bump(ctx context.Context, root, version string) (bool, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return false, fmt.Errorf("%w: version", errors.ErrEmptyValue)
	}

	changed, err := fsutil.SafeWrite(root, constants.VersionFile, []byte(version+"\n"), constants.TextFileMode)
	if err != nil {
		return false, fmt.Errorf("writing %s: %w", constants.VersionFile, err)
	}

	zerolog.Ctx(ctx).Debug().Str("version", version).Bool("changed", changed).Msg("recorded chored version")
	return changed, nil
}
