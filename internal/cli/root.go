// Package cli provides the command-line interface for chored.
package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chored-dev/chored/internal/errors"
	"github.com/chored-dev/chored/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger is set during PersistentPreRunE; read it with GetLogger.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the logger built by the root command's pre-run. Before
// that it returns a zero-value logger that discards everything.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates the root command. factory builds the task registry for
// the run and tasks subcommands.
func newRootCmd(flags *GlobalFlags, info BuildInfo, factory RegistryFactory) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "chored",
		Short: "chored - project chores for scala repositories",
		Long: `chored keeps a scala project's generated files, container build and CI
workflows in step with one declarative description (.chored.yaml).

Run 'chored tasks' to see what a project can do, then 'chored run <task>'.`,
		Version: formatVersion(info),
		// Showing help from RunE keeps PersistentPreRunE (flag validation) in play.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd, flags); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			logger := InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Lock()
			globalLogger = logger
			globalLoggerMu.Unlock()

			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
		// Errors are printed by Execute with their suggested action.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddRunCommand(cmd, flags, info, factory)
	AddTasksCommand(cmd, flags, info, factory)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	info = info.withDefaults()
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

func (b BuildInfo) withDefaults() BuildInfo {
	if b.Version == "" {
		b.Version = "dev"
	}
	if b.Commit == "" {
		b.Commit = "none"
	}
	if b.Date == "" {
		b.Date = "unknown"
	}
	return b
}

// Execute runs the root command. A failure is printed to stderr with its
// suggested action and returned; map it to an exit status with
// ExitCodeForError.
func Execute(ctx context.Context, info BuildInfo) error {
	defer CloseLogFile()

	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info, ProjectRegistry)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(cmd.ErrOrStderr(), flags.Output, err)
	}
	return err
}

// printError prints err in the requested format, falling back to text when
// the format itself was the problem.
func printError(w io.Writer, format string, err error) {
	out, fmtErr := tui.NewOutput(w, format)
	if fmtErr != nil {
		out = tui.NewTTYOutput(w)
	}
	out.Error(tui.FromError(err))
}
