package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chored-dev/chored/internal/domain"
)

func TestExprAndSecret(t *testing.T) {
	assert.Equal(t, "${{ github.actor }}", Expr("github.actor"))
	assert.Equal(t, "${{ secrets.GITHUB_TOKEN }}", Secret("GITHUB_TOKEN"))
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name string
		inv  domain.Invocation
		want string
	}{
		{"no options", domain.Invocation{Name: "requireClean"}, "chored run requireClean"},
		{"bool option", domain.Invocation{Name: "ci", Options: map[string]string{"docker": "true"}}, "chored run ci docker=true"},
		{
			"sorted and quoted",
			domain.Invocation{Module: "docker", Name: "login", Options: map[string]string{
				"user":  Expr("github.actor"),
				"token": Secret("GITHUB_TOKEN"),
			}},
			"chored run docker.login 'token=${{ secrets.GITHUB_TOKEN }}' 'user=${{ github.actor }}'",
		},
		{"single quote", domain.Invocation{Name: "x", Options: map[string]string{"m": "it's"}}, `chored run x 'm=it'\''s'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Command(tt.inv))
		})
	}
}

func TestChores(t *testing.T) {
	steps := Chores([]domain.Invocation{{Name: "ci"}, {Name: "requireClean"}})

	setup := Setup()
	require.Len(t, steps, len(setup)+2)
	assert.Equal(t, setup, steps[:len(setup)])
	assert.Equal(t, Step{Name: "ci", Run: "chored run ci"}, steps[len(setup)])
	assert.Equal(t, "chored run requireClean", steps[len(setup)+1].Run)
}

func TestCI(t *testing.T) {
	wf := CI([]Step{{Run: "true"}})

	require.NotNil(t, wf.On.Push)
	assert.Equal(t, []string{"main"}, wf.On.Push.Branches)
	assert.NotNil(t, wf.On.PullRequest)
	assert.Equal(t, "ubuntu-latest", wf.Jobs["build"].RunsOn)
}

func TestScheduled(t *testing.T) {
	wf := Scheduled("Self-update", "self-update", "0 0 * * 1,4", nil)

	assert.NotNil(t, wf.On.WorkflowDispatch)
	assert.Nil(t, wf.On.Push)
	assert.Equal(t, []Schedule{{Cron: "0 0 * * 1,4"}}, wf.On.Schedule)
	assert.Contains(t, wf.Jobs, "self-update")
}
