// Package fsutil writes rendered files into a project tree.
package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chored-dev/chored/internal/constants"
	"github.com/chored-dev/chored/internal/ctxutil"
	"github.com/chored-dev/chored/internal/domain"
	"github.com/chored-dev/chored/internal/errors"
)

// Encoder turns a rendered file into the bytes written to disk.
type Encoder func(domain.RenderedFile) ([]byte, error)

// Writer writes rendered files below Root.
type Writer struct {
	root   string
	encode Encoder
}

// NewWriter returns a Writer rooted at root that serializes with encode.
func NewWriter(root string, encode Encoder) *Writer {
	return &Writer{root: root, encode: encode}
}

// WriteAll writes files in order. Generated files (yaml, computed) are made
// read-only; text files stay editable. A file whose bytes and mode already
// match is left untouched.
func (w *Writer) WriteAll(ctx context.Context, files []domain.RenderedFile) error {
	log := zerolog.Ctx(ctx)
	for _, f := range files {
		if err := ctxutil.Canceled(ctx); err != nil {
			return err
		}
		content, err := w.encode(f)
		if err != nil {
			return fmt.Errorf("%w: encode %s: %w", errors.ErrRenderFailed, f.Path, err)
		}
		mode := os.FileMode(constants.TextFileMode)
		if f.Generated() {
			mode = constants.GeneratedFileMode
		}
		written, err := SafeWrite(w.root, f.Path, content, mode)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errors.ErrRenderFailed, f.Path, err)
		}
		log.Debug().Str("path", f.Path).Bool("written", written).Msg("rendered file")
	}
	return nil
}

// ValidatePath resolves rel against root and ensures the result stays inside
// root, following symlinks for the part of the path that exists.
func ValidatePath(root, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s is absolute", errors.ErrPathTraversal, rel)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving project root: %w", err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolving project root symlinks: %w", err)
	}

	resolved, err := resolveExisting(filepath.Join(realRoot, rel))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", rel, err)
	}
	if resolved == realRoot || !strings.HasPrefix(resolved, realRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s resolves outside %s", errors.ErrPathTraversal, rel, realRoot)
	}
	return resolved, nil
}

// resolveExisting resolves symlinks for the longest existing prefix of path
// and appends the rest.
func resolveExisting(path string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved, nil
	}
	dir := filepath.Dir(path)
	if dir == path {
		return path, nil
	}
	resolvedDir, err := resolveExisting(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, filepath.Base(path)), nil
}

// SafeWrite atomically writes content to rel inside root with the given
// mode. It reports whether the file changed.
func SafeWrite(root, rel string, content []byte, mode os.FileMode) (bool, error) {
	target, err := ValidatePath(root, rel)
	if err != nil {
		return false, err
	}

	if unchanged(target, content, mode) {
		return false, nil
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, constants.DirMode); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".chored-*.tmp")
	if err != nil {
		return false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return false, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return false, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return false, fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return false, fmt.Errorf("renaming temp file to %s: %w", target, err)
	}
	committed = true
	return true, nil
}

func unchanged(path string, content []byte, mode os.FileMode) bool {
	info, err := os.Stat(path)
	if err != nil || info.Mode().Perm() != mode.Perm() {
		return false
	}
	existing, err := os.ReadFile(path) // #nosec G304 -- path validated by ValidatePath
	if err != nil {
		return false
	}
	return bytes.Equal(existing, content)
}
