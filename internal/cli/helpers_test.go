package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chored-dev/chored/internal/chores"
	"github.com/chored-dev/chored/internal/config"
	"github.com/chored-dev/chored/internal/task"
	"github.com/chored-dev/chored/internal/testutil"
)

// isolateHome points HOME and CHORED_HOME at temp dirs so tests never read
// the developer's global config or write to their log file.
func isolateHome(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CHORED_HOME", filepath.Join(home, ".chored"))
	t.Setenv("NO_COLOR", "1")
}

// newProjectDir creates a project with a minimal .chored.yaml.
func newProjectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".chored.yaml"), []byte("project:\n  repo: demo\n"), 0o600))
	return dir
}

// recordingFactory builds the real chores against a RecordingRunner so no
// external command is executed.
func recordingFactory(runner *testutil.RecordingRunner) RegistryFactory {
	return func(_ context.Context, p Project) (*task.Registry, error) {
		cfg := config.DefaultConfig()
		cfg.Project.Repo = "demo"
		return chores.New(cfg, chores.Deps{
			Root:    p.Root,
			Version: p.Version,
			Runner:  runner,
			Stdout:  p.Stdout,
		})
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, factory RegistryFactory, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "0.1.0"}, factory)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
