package chores

import (
	"context"
	"fmt"

	"github.com/chored-dev/chored/internal/fsutil"
	"github.com/chored-dev/chored/internal/render"
	"github.com/chored-dev/chored/internal/task"
)

func (c *chores) renderModule() *task.Module {
	return task.NewModule("render", "Generated project files",
		task.New(task.DefaultTaskName, "Write the generated files into the project", NoOptions{},
			func(ctx context.Context, _ NoOptions) error { return c.render(ctx) }),
		task.New("print", "List the paths render would write", NoOptions{},
			func(_ context.Context, _ NoOptions) error {
				files, err := render.Files(c.cfg.Project)
				if err != nil {
					return err
				}
				for _, p := range render.Paths(files) {
					if _, err := fmt.Fprintln(c.deps.Stdout, p); err != nil {
						return err
					}
				}
				return nil
			}),
	)
}

func (c *chores) render(ctx context.Context) error {
	files, err := render.Files(c.cfg.Project)
	if err != nil {
		return err
	}
	return fsutil.NewWriter(c.deps.Root, render.Encode).WriteAll(ctx, files)
}
