package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chored-dev/chored/internal/errors"
)

func TestIsValidOutputFormat(t *testing.T) {
	assert.True(t, IsValidOutputFormat("text"))
	assert.True(t, IsValidOutputFormat("json"))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat(""))
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit code 2 wrapper", errors.NewExitCode2Error(errors.ErrCommandFailed), ExitInvalidInput},
		{"unknown task", fmt.Errorf("%w: foo", errors.ErrTaskNotFound), ExitInvalidInput},
		{"unknown module", errors.ErrModuleNotFound, ExitInvalidInput},
		{"bad option", errors.ErrInvalidTaskOption, ExitInvalidInput},
		{
			"invalid mode inside a task failure",
			fmt.Errorf("%w: selfUpdate: %w", errors.ErrTaskFailed, errors.ErrInvalidMode),
			ExitInvalidInput,
		},
		{"invalid output", errors.ErrInvalidOutputFormat, ExitInvalidInput},
		{"cobra unknown flag", fmt.Errorf("unknown flag: --nope"), ExitInvalidInput}, //nolint:err113 // test error
		{"task failure", fmt.Errorf("%w: ci: %w", errors.ErrTaskFailed, errors.ErrCommandFailed), ExitError},
		{"dirty tree", errors.ErrWorktreeDirty, ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestParseOptions(t *testing.T) {
	raw, err := ParseOptions([]string{"mode=pr", "githubToken=a=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"mode": "pr", "githubToken": "a=b", "empty": ""}, raw)

	raw, err = ParseOptions(nil)
	require.NoError(t, err)
	assert.Empty(t, raw)

	for _, bad := range [][]string{{"mode"}, {"=x"}, {"a=1", "a=2"}} {
		_, err := ParseOptions(bad)
		require.ErrorIs(t, err, errors.ErrInvalidTaskOption, "%v", bad)
	}
}
