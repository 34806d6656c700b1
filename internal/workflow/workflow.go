// Package workflow builds GitHub Actions documents whose steps call chored
// tasks. Documents are plain structs; the render package marshals them.
package workflow

import (
	"regexp"
	"sort"
	"strings"

	"github.com/chored-dev/chored/internal/domain"
)

// InstallCommand installs the chored binary on a CI runner.
const InstallCommand = "go install github.com/chored-dev/chored/cmd/chored@latest"

// Workflow is a GitHub Actions workflow document.
type Workflow struct {
	Name string         `yaml:"name,omitempty"`
	On   Triggers       `yaml:"on"`
	Jobs map[string]Job `yaml:"jobs"`
}

// Triggers lists the events that start a workflow.
type Triggers struct {
	Push             *PushTrigger `yaml:"push,omitempty"`
	PullRequest      *struct{}    `yaml:"pull_request,omitempty"`
	WorkflowDispatch *struct{}    `yaml:"workflow_dispatch,omitempty"`
	Schedule         []Schedule   `yaml:"schedule,omitempty"`
}

// PushTrigger restricts push events to branches.
type PushTrigger struct {
	Branches []string `yaml:"branches,omitempty"`
}

// Schedule is a cron trigger.
type Schedule struct {
	Cron string `yaml:"cron"`
}

// Job is a single workflow job.
type Job struct {
	RunsOn string `yaml:"runs-on"`
	Steps  []Step `yaml:"steps"`
}

// Step is a workflow step: either `uses` an action or `run`s a command.
type Step struct {
	Name string            `yaml:"name,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
	Run  string            `yaml:"run,omitempty"`
	Env  map[string]string `yaml:"env,omitempty"`
}

// Expr wraps an Actions expression, e.g. Expr("github.actor").
func Expr(e string) string {
	return "${{ " + e + " }}"
}

// Secret references a repository secret.
func Secret(name string) string {
	return Expr("secrets." + name)
}

// Setup returns the steps every chored job starts with.
func Setup() []Step {
	return []Step{
		{Uses: "actions/checkout@v4"},
		{Uses: "actions/setup-go@v5", With: map[string]string{"go-version": "stable"}},
		{Name: "Install chored", Run: InstallCommand},
	}
}

// Chores returns the setup steps followed by one step per invocation.
func Chores(invocations []domain.Invocation) []Step {
	steps := Setup()
	for _, inv := range invocations {
		steps = append(steps, Step{Name: inv.Path(), Run: Command(inv)})
	}
	return steps
}

// Command is the shell line that runs inv: `chored run <path> key=value...`
// with keys sorted so output is stable.
func Command(inv domain.Invocation) string {
	keys := make([]string, 0, len(inv.Options))
	for k := range inv.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{"chored", "run", inv.Path()}
	for _, k := range keys {
		parts = append(parts, shellQuote(k+"="+inv.Options[k]))
	}
	return strings.Join(parts, " ")
}

// CI is the standard pipeline: run steps on pushes to main and on pull requests.
func CI(steps []Step) Workflow {
	return Workflow{
		Name: "CI",
		On: Triggers{
			Push:        &PushTrigger{Branches: []string{"main"}},
			PullRequest: &struct{}{},
		},
		Jobs: map[string]Job{
			"build": {RunsOn: "ubuntu-latest", Steps: steps},
		},
	}
}

// Scheduled runs steps on a cron schedule and on manual dispatch.
func Scheduled(name, job, cron string, steps []Step) Workflow {
	return Workflow{
		Name: name,
		On: Triggers{
			WorkflowDispatch: &struct{}{},
			Schedule:         []Schedule{{Cron: cron}},
		},
		Jobs: map[string]Job{
			job: {RunsOn: "ubuntu-latest", Steps: steps},
		},
	}
}

var safeShellWord = regexp.MustCompile(`^[A-Za-z0-9_./=:@,+-]+$`)

func shellQuote(s string) string {
	if safeShellWord.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
