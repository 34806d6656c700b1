package chores

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chored-dev/chored/internal/config"
	"github.com/chored-dev/chored/internal/container"
	"github.com/chored-dev/chored/internal/domain"
	chorederrors "github.com/chored-dev/chored/internal/errors"
	"github.com/chored-dev/chored/internal/git"
	"github.com/chored-dev/chored/internal/task"
	"github.com/chored-dev/chored/internal/testutil"
)

type fakeContainers struct {
	mu     sync.Mutex
	calls  []string
	runs   []container.RunOptions
	logins []string
	err    error
}

func (f *fakeContainers) Build(_ context.Context, spec domain.BuildSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "build:"+spec.URL)
	return f.err
}

func (f *fakeContainers) Run(_ context.Context, opts container.RunOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "run:"+opts.Image)
	f.runs = append(f.runs, opts)
	return f.err
}

func (f *fakeContainers) Login(_ context.Context, registry, user, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, registry+":"+user+":"+token)
	return f.err
}

func demoConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Project.Repo = "demo"
	return cfg
}

type fixture struct {
	root       string
	runner     *testutil.RecordingRunner
	containers *fakeContainers
	stdout     *bytes.Buffer
	dispatcher *task.Dispatcher
	registry   *task.Registry
}

func newFixture(t *testing.T, cfg *config.Config, repo Repository) *fixture {
	t.Helper()
	f := &fixture{
		root:       t.TempDir(),
		runner:     &testutil.RecordingRunner{},
		containers: &fakeContainers{},
		stdout:     &bytes.Buffer{},
	}
	deps := Deps{
		Root:       f.root,
		Version:    "0.1.0",
		Runner:     f.runner,
		Containers: f.containers,
		Stdout:     f.stdout,
	}
	if repo != nil {
		deps.Repo = repo
	}
	reg, err := New(cfg, deps)
	require.NoError(t, err)
	f.registry = reg
	f.dispatcher = task.NewDispatcher(reg)
	return f
}

func paths(reg *task.Registry) []string {
	var out []string
	for _, d := range reg.List() {
		out = append(out, d.Path)
	}
	return out
}

func TestNew_Registry(t *testing.T) {
	f := newFixture(t, demoConfig(), nil)

	assert.Equal(t, []string{
		"bump",
		"ci",
		"docker.build",
		"docker.login",
		"docker.print",
		"docker.run",
		"release",
		"render.default",
		"render.print",
		"requireClean",
		"selfUpdate",
	}, paths(f.registry))

	cfg := demoConfig()
	cfg.Project.Pypi = true
	withPypi := newFixture(t, cfg, nil)
	assert.Contains(t, paths(withPypi.registry), "pypi.build")
	assert.Contains(t, paths(withPypi.registry), "pypi.release")
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(config.DefaultConfig(), Deps{Runner: &testutil.RecordingRunner{}})
	require.ErrorIs(t, err, chorederrors.ErrConfigInvalid)

	_, err = New(demoConfig(), Deps{})
	require.ErrorIs(t, err, chorederrors.ErrInvalidArgument)

	cfg := demoConfig()
	cfg.Project.Scala.Majors = []string{"2.10"}
	_, err = New(cfg, Deps{Runner: &testutil.RecordingRunner{}})
	require.Error(t, err)
}

func TestRender_WritesFiles(t *testing.T) {
	f := newFixture(t, demoConfig(), nil)

	require.NoError(t, f.dispatcher.Dispatch(context.Background(), "render", nil))

	data, err := os.ReadFile(filepath.Join(f.root, "project", "build.properties"))
	require.NoError(t, err)
	assert.Equal(t, "sbt.version=1.5.7", string(data))

	info, err := os.Stat(filepath.Join(f.root, ".github", "workflows", "ci.yml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())

	require.NoError(t, f.dispatcher.Dispatch(context.Background(), "render.print", nil))
	lines := strings.Split(strings.TrimSpace(f.stdout.String()), "\n")
	assert.Len(t, lines, 9)
	assert.Equal(t, "project/sonatype.sbt", lines[0])
}

func TestDocker_Tasks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, demoConfig(), nil)

	require.NoError(t, f.dispatcher.Dispatch(ctx, "docker.print", nil))
	assert.True(t, strings.HasPrefix(f.stdout.String(), "FROM hseeberger/scala-sbt:11.0.13_1.5.7_2.13.7 AS builder\n"), f.stdout.String())

	require.NoError(t, f.dispatcher.Dispatch(ctx, "docker.build", nil))
	require.NoError(t, f.dispatcher.Dispatch(ctx, "docker.run", map[string]string{"args": "sbt,test"}))
	require.NoError(t, f.dispatcher.Dispatch(ctx, "docker.login", map[string]string{"user": "bot", "token": "tok"}))

	assert.Equal(t, []string{"build:ghcr.io/timbertson/demo", "run:ghcr.io/timbertson/demo:builder"}, f.containers.calls)
	require.Len(t, f.containers.runs, 1)
	assert.Equal(t, []string{"sbt", "test"}, f.containers.runs[0].Cmd)
	assert.Equal(t, "/workspace", f.containers.runs[0].Workdir)
	assert.Equal(t, []container.Mount{{Source: f.root, Target: "/workspace"}}, f.containers.runs[0].Mounts)
	assert.Equal(t, []string{"ghcr.io:bot:tok"}, f.containers.logins)
}

func TestDocker_UnknownOption(t *testing.T) {
	f := newFixture(t, demoConfig(), nil)

	err := f.dispatcher.Dispatch(context.Background(), "docker.run", map[string]string{"image": "x"})

	require.ErrorIs(t, err, chorederrors.ErrInvalidTaskOption)
}

func TestCI_Local(t *testing.T) {
	f := newFixture(t, demoConfig(), nil)

	require.NoError(t, f.dispatcher.Dispatch(context.Background(), "ci", nil))

	assert.Equal(t, []string{"sbt strict compile test"}, f.runner.Lines())
	assert.Empty(t, f.containers.calls)
	assert.FileExists(t, filepath.Join(f.root, "release.sbt"))
}

func TestCI_Docker(t *testing.T) {
	f := newFixture(t, demoConfig(), nil)

	require.NoError(t, f.dispatcher.Dispatch(context.Background(), "ci", map[string]string{"docker": "true"}))

	assert.Empty(t, f.runner.Lines())
	assert.Equal(t, []string{"build:ghcr.io/timbertson/demo", "run:ghcr.io/timbertson/demo:builder"}, f.containers.calls)
	assert.Equal(t, TestCommand, f.containers.runs[0].Cmd)
}

func TestCI_FailingTestsStillRender(t *testing.T) {
	f := newFixture(t, demoConfig(), nil)
	f.runner.Fail = map[string]error{"sbt strict compile test": testutil.ErrMockCommand}

	err := f.dispatcher.Dispatch(context.Background(), "ci", nil)

	require.ErrorIs(t, err, chorederrors.ErrTaskFailed)
	require.ErrorIs(t, err, testutil.ErrMockCommand)
	assert.FileExists(t, filepath.Join(f.root, ".gitattributes"))
}

func TestRelease(t *testing.T) {
	f := newFixture(t, demoConfig(), nil)

	require.NoError(t, f.dispatcher.Dispatch(context.Background(), "release", nil))

	assert.Equal(t, []string{"sbt publishSigned sonatypeBundleRelease"}, f.runner.Lines())
	for _, c := range f.runner.Commands() {
		assert.Equal(t, f.root, c.Dir)
	}
}

func TestBump(t *testing.T) {
	f := newFixture(t, demoConfig(), nil)

	require.NoError(t, f.dispatcher.Dispatch(context.Background(), "bump", nil))

	data, err := os.ReadFile(filepath.Join(f.root, ".chored", "version"))
	require.NoError(t, err)
	assert.Equal(t, "0.1.0\n", string(data))
}

func TestGitTasksNeedRepository(t *testing.T) {
	f := newFixture(t, demoConfig(), nil)

	require.ErrorIs(t, f.dispatcher.Dispatch(context.Background(), "requireClean", nil), chorederrors.ErrNotGitRepo)
	require.ErrorIs(t, f.dispatcher.Dispatch(context.Background(), "selfUpdate", nil), chorederrors.ErrNotGitRepo)
}

func TestSelfUpdate_InvalidMode(t *testing.T) {
	f := newFixture(t, demoConfig(), nil)

	err := f.dispatcher.Dispatch(context.Background(), "selfUpdate", map[string]string{"mode": "merge"})

	require.ErrorIs(t, err, chorederrors.ErrInvalidMode)
}

func TestPypi(t *testing.T) {
	ctx := context.Background()
	cfg := demoConfig()
	cfg.Project.Pypi = true
	f := newFixture(t, cfg, nil)

	dist := filepath.Join(f.root, "dist")
	require.NoError(t, os.MkdirAll(dist, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "stale.tar.gz"), nil, 0o600))

	require.NoError(t, f.dispatcher.Dispatch(ctx, "pypi.build", nil))
	assert.NoDirExists(t, dist)
	assert.Equal(t, []string{"./setup.py sdist"}, f.runner.Lines())

	require.NoError(t, os.MkdirAll(dist, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "demo-1.0.tar.gz"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "demo-1.0-py3-none-any.whl"), nil, 0o600))

	require.NoError(t, f.dispatcher.Dispatch(ctx, "pypi.release", nil))
	assert.Equal(t, []string{
		"./setup.py sdist",
		"twine check dist/demo-1.0-py3-none-any.whl dist/demo-1.0.tar.gz",
		"twine upload dist/demo-1.0-py3-none-any.whl dist/demo-1.0.tar.gz",
	}, f.runner.Lines())
}

func TestPypi_ReleaseWithoutDist(t *testing.T) {
	cfg := demoConfig()
	cfg.Project.Pypi = true
	f := newFixture(t, cfg, nil)

	err := f.dispatcher.Dispatch(context.Background(), "pypi.release", nil)

	require.Error(t, err)
	assert.Empty(t, f.runner.Lines())
}

// Compile-time check that the real collaborators satisfy the interfaces.
var (
	_ Containers = (*container.Docker)(nil)
	_ Repository = (*git.CLIRunner)(nil)
)
