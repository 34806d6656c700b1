package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/chored-dev/chored/internal/task"
	"github.com/chored-dev/chored/internal/tui"
)

// taskListing is the JSON shape of one `chored tasks` entry.
type taskListing struct {
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

// AddTasksCommand adds `chored tasks`.
func AddTasksCommand(root *cobra.Command, flags *GlobalFlags, info BuildInfo, factory RegistryFactory) {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the tasks available in this project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := factory(cmd.Context(), Project{
				Root:    flags.ProjectDir,
				Version: info.withDefaults().Version,
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			out, err := tui.NewOutput(cmd.OutOrStdout(), flags.Output)
			if err != nil {
				return err
			}
			return printTasks(out, flags.Output, registry.List())
		},
	}

	root.AddCommand(cmd)
}

func printTasks(out tui.Output, format string, tasks []task.Descriptor) error {
	if format == tui.FormatJSON {
		listing := make([]taskListing, 0, len(tasks))
		for _, d := range tasks {
			opts := d.Options
			if opts == nil {
				opts = []string{}
			}
			listing = append(listing, taskListing{Path: d.Path, Description: d.Description, Options: opts})
		}
		return out.JSON(listing)
	}

	rows := make([][]string, 0, len(tasks))
	for _, d := range tasks {
		rows = append(rows, []string{d.Path, d.Description, strings.Join(d.Options, ", ")})
	}
	out.Table([]string{"TASK", "DESCRIPTION", "OPTIONS"}, rows)
	return nil
}
