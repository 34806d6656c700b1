package chores

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/chored-dev/chored/internal/errors"
	"github.com/chored-dev/chored/internal/task"
)

const distDir = "dist"

func (c *chores) pypiModule() *task.Module {
	return task.NewModule("pypi", "Python package build and upload",
		task.New("build", "Build a fresh sdist into dist/", NoOptions{},
			func(ctx context.Context, _ NoOptions) error {
				if err := os.RemoveAll(filepath.Join(c.deps.Root, distDir)); err != nil {
					return fmt.Errorf("removing %s: %w", distDir, err)
				}
				return c.run(ctx, "./setup.py", "sdist")
			}),
		task.New("release", "Check and upload everything in dist/", NoOptions{},
			func(ctx context.Context, _ NoOptions) error {
				files, err := c.distFiles()
				if err != nil {
					return err
				}
				if err := c.run(ctx, append([]string{"twine", "check"}, files...)...); err != nil {
					return err
				}
				return c.run(ctx, append([]string{"twine", "upload"}, files...)...)
			}),
	)
}

// distFiles lists dist/ entries as project-relative paths, sorted.
func (c *chores) distFiles() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(c.deps.Root, distDir))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", distDir, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, path.Join(distDir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: nothing to upload in %s", errors.ErrEmptyValue, distDir)
	}
	sort.Strings(files)
	return files, nil
}
