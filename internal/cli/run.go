package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chored-dev/chored/internal/errors"
	"github.com/chored-dev/chored/internal/task"
	"github.com/chored-dev/chored/internal/tui"
)

// AddRunCommand adds `chored run <task> [key=value...]`.
func AddRunCommand(root *cobra.Command, flags *GlobalFlags, info BuildInfo, factory RegistryFactory) {
	cmd := &cobra.Command{
		Use:   "run <task> [key=value...]",
		Short: "Run a task",
		Long: `Run a task by path. Module tasks are addressed as module.task; a bare module
name runs its default task. Options are passed as key=value pairs and
applied over the task's defaults.`,
		Example: `  chored run render
  chored run ci docker=true
  chored run docker.login user=bot token=$TOKEN
  chored run selfUpdate mode=pr githubToken=$GITHUB_TOKEN`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			raw, err := ParseOptions(args[1:])
			if err != nil {
				return errors.NewExitCode2Error(err)
			}

			registry, err := factory(ctx, Project{
				Root:    flags.ProjectDir,
				Version: info.withDefaults().Version,
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			if err := task.NewDispatcher(registry).Dispatch(ctx, args[0], raw); err != nil {
				return err
			}

			if flags.Output == tui.FormatJSON {
				out := tui.NewJSONOutput(cmd.ErrOrStderr())
				out.Success(args[0] + " completed")
			}
			return nil
		},
	}

	root.AddCommand(cmd)
}

// ParseOptions turns key=value arguments into a raw option map. Values may
// contain '='; keys may not repeat.
func ParseOptions(args []string) (map[string]string, error) {
	raw := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", errors.ErrInvalidTaskOption, arg)
		}
		if _, dup := raw[key]; dup {
			return nil, fmt.Errorf("%w: %q given more than once", errors.ErrInvalidTaskOption, key)
		}
		raw[key] = value
	}
	return raw, nil
}
